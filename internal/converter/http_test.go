package converter

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/workshop/internal/model"
)

func TestMutationToModel(t *testing.T) {
	t.Parallel()

	price := decimal.NewFromInt(12)

	tests := []struct {
		name    string
		req     MutationRequest
		want    model.LineMutation
		wantErr bool
	}{
		{
			name: "add service line",
			req:  MutationRequest{Action: "add_line", Item: &ItemRequest{Kind: "service", ServiceID: 4}},
			want: model.AddLine{Item: model.ServiceLine{ServiceID: 4}},
		},
		{
			name: "add other line",
			req:  MutationRequest{Action: "ADD_LINE", Item: &ItemRequest{Kind: "OTHER", Description: "Tow", Quantity: 1, UnitPrice: &price}},
			want: model.AddLine{Item: model.OtherLine{Description: "Tow", Quantity: 1, UnitPrice: price}},
		},
		{
			name: "update price",
			req:  MutationRequest{Action: "UPDATE_PRICE", LineID: -2, Price: &price},
			want: model.UpdatePrice{LineID: -2, Price: price},
		},
		{
			name: "remove line",
			req:  MutationRequest{Action: "REMOVE_LINE", LineID: 9},
			want: model.RemoveLine{LineID: 9},
		},
		{name: "add without item", req: MutationRequest{Action: "ADD_LINE"}, wantErr: true},
		{name: "other line without price", req: MutationRequest{Action: "ADD_LINE", Item: &ItemRequest{Kind: "OTHER"}}, wantErr: true},
		{name: "price update without price", req: MutationRequest{Action: "UPDATE_PRICE", LineID: 1}, wantErr: true},
		{name: "unknown kind", req: MutationRequest{Action: "ADD_LINE", Item: &ItemRequest{Kind: "GIFT"}}, wantErr: true},
		{name: "unknown action", req: MutationRequest{Action: "MERGE"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MutationToModel(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderToResponse(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)
	later := now.Add(90 * 24 * time.Hour)

	ord := &model.Order{
		ID:       3,
		Status:   model.StatusReceived,
		Vehicle:  &model.Vehicle{Plate: "XYZ987", SoatExpiresAt: &expired, InspectionExpiresAt: &later},
		Mechanic: &model.Mechanic{Name: "Ana"},
		Lines: []model.Line{
			{ID: 1, Kind: model.KindOther, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{ID: 2, Kind: model.KindProduct, Quantity: 1, UnitPrice: decimal.NewFromInt(25), ProductID: lo.ToPtr(int64(5))},
		},
	}

	resp := OrderToResponse(ord, now, 30*24*time.Hour)

	assert.Equal(t, "XYZ987", resp.VehiclePlate)
	assert.Equal(t, "Ana", resp.MechanicName)
	assert.Equal(t, []string{"IN_PROGRESS", "CANCELLED"}, resp.NextStatuses)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(45)))
	assert.True(t, resp.Lines[0].Subtotal.Equal(decimal.NewFromInt(20)))
	assert.Nil(t, resp.UpdatedAt)

	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, "SOAT", resp.Alerts[0].Document)
	assert.True(t, resp.Alerts[0].Expired)
}

func TestSeenInvoice(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	seen := SeenInvoice(8, SeenRequest{PaymentStatus: "UNPAID", UpdatedAt: &at})

	assert.Equal(t, int64(8), seen.ID)
	assert.Equal(t, model.PaymentUnpaid, seen.PaymentStatus)
	assert.Equal(t, at, seen.UpdatedAt)
}
