package permission

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/workshop/internal/model"
)

func TestGateAuthorize(t *testing.T) {
	t.Parallel()

	mechanicID := int64(gofakeit.Number(1, 1000))
	otherMechanicID := mechanicID + 1

	mechanic := model.Actor{ID: 7, SessionID: "s-mech", Role: model.RoleMechanic, MechanicID: &mechanicID}
	admin := model.Actor{ID: 1, SessionID: "s-admin", Role: model.RoleAdmin}
	vendor := model.Actor{ID: 2, SessionID: "s-vendor", Role: model.RoleVendor}

	order := func(status model.OrderStatus, assigned int64) *model.Order {
		return &model.Order{ID: int64(gofakeit.Number(1, 1000)), Status: status, MechanicID: assigned}
	}
	invoice := func(status model.PaymentStatus) *model.Invoice {
		return &model.Invoice{ID: int64(gofakeit.Number(1, 1000)), PaymentStatus: status}
	}

	tests := []struct {
		name       string
		actor      model.Actor
		action     model.Action
		target     Target
		allowed    bool
		wantReason string
	}{
		{
			name:    "mechanic adds product line to own received order",
			actor:   mechanic,
			action:  model.ActionAddLine,
			target:  OrderTarget(order(model.StatusReceived, mechanicID)).WithLine(model.KindProduct),
			allowed: true,
		},
		{
			name:    "mechanic changes product quantity on own done order",
			actor:   mechanic,
			action:  model.ActionUpdateQuantity,
			target:  OrderTarget(order(model.StatusDone, mechanicID)).WithLine(model.KindProduct),
			allowed: true,
		},
		{
			name:       "mechanic adds service line",
			actor:      mechanic,
			action:     model.ActionAddLine,
			target:     OrderTarget(order(model.StatusReceived, mechanicID)).WithLine(model.KindService),
			wantReason: "mechanics may only change product lines",
		},
		{
			name:       "mechanic removes free-form line",
			actor:      mechanic,
			action:     model.ActionRemoveLine,
			target:     OrderTarget(order(model.StatusReceived, mechanicID)).WithLine(model.KindOther),
			wantReason: "mechanics may only change product lines",
		},
		{
			name:       "mechanic overrides price",
			actor:      mechanic,
			action:     model.ActionUpdatePrice,
			target:     OrderTarget(order(model.StatusReceived, mechanicID)).WithLine(model.KindProduct),
			wantReason: "prices are locked",
		},
		{
			name:       "mechanic edits someone else's order",
			actor:      mechanic,
			action:     model.ActionAddLine,
			target:     OrderTarget(order(model.StatusReceived, otherMechanicID)).WithLine(model.KindProduct),
			wantReason: "not assigned to you",
		},
		{
			name:       "mechanic edits invoiced order",
			actor:      mechanic,
			action:     model.ActionAddLine,
			target:     OrderTarget(order(model.StatusInvoiced, mechanicID)).WithLine(model.KindProduct),
			wantReason: "can no longer be edited",
		},
		{
			name:       "mechanic touches invoice",
			actor:      mechanic,
			action:     model.ActionAddLine,
			target:     InvoiceTarget(invoice(model.PaymentUnpaid)).WithLine(model.KindProduct),
			wantReason: "cannot modify invoices",
		},
		{
			name:       "mechanic transitions order",
			actor:      mechanic,
			action:     model.ActionTransitionOrder,
			target:     OrderTarget(order(model.StatusReceived, mechanicID)),
			wantReason: "may only add, remove or change the quantity",
		},
		{
			name:       "mechanic without mechanic id",
			actor:      model.Actor{ID: 9, SessionID: "s", Role: model.RoleMechanic},
			action:     model.ActionAddLine,
			target:     OrderTarget(order(model.StatusReceived, mechanicID)).WithLine(model.KindProduct),
			wantReason: "invalid actor",
		},
		{
			name:       "unknown role",
			actor:      model.Actor{ID: 9, SessionID: "s", Role: "GUEST"},
			action:     model.ActionCreateOrder,
			wantReason: "invalid actor",
		},
		{
			name:    "admin overrides price on in-progress order",
			actor:   admin,
			action:  model.ActionUpdatePrice,
			target:  OrderTarget(order(model.StatusInProgress, mechanicID)).WithLine(model.KindService),
			allowed: true,
		},
		{
			name:       "admin edits lines of cancelled order",
			actor:      admin,
			action:     model.ActionAddLine,
			target:     OrderTarget(order(model.StatusCancelled, mechanicID)).WithLine(model.KindOther),
			wantReason: "can no longer be edited",
		},
		{
			name:    "admin edits lines of unpaid invoice",
			actor:   admin,
			action:  model.ActionRemoveLine,
			target:  InvoiceTarget(invoice(model.PaymentUnpaid)).WithLine(model.KindProduct),
			allowed: true,
		},
		{
			name:       "admin edits lines of paid invoice",
			actor:      admin,
			action:     model.ActionUpdateQuantity,
			target:     InvoiceTarget(invoice(model.PaymentPaid)).WithLine(model.KindProduct),
			wantReason: "is paid",
		},
		{
			name:       "line action without kind",
			actor:      admin,
			action:     model.ActionAddLine,
			target:     OrderTarget(order(model.StatusReceived, mechanicID)),
			wantReason: "unknown line kind",
		},
		{
			name:    "admin deletes received order",
			actor:   admin,
			action:  model.ActionDeleteOrder,
			target:  OrderTarget(order(model.StatusReceived, mechanicID)),
			allowed: true,
		},
		{
			name:       "admin deletes in-progress order",
			actor:      admin,
			action:     model.ActionDeleteOrder,
			target:     OrderTarget(order(model.StatusInProgress, mechanicID)),
			wantReason: "only RECEIVED orders",
		},
		{
			name:       "admin invoices order that is not done",
			actor:      admin,
			action:     model.ActionCreateInvoice,
			target:     OrderTarget(order(model.StatusInProgress, mechanicID)),
			wantReason: "only DONE orders",
		},
		{
			name:    "vendor invoices done order",
			actor:   vendor,
			action:  model.ActionCreateInvoice,
			target:  OrderTarget(order(model.StatusDone, mechanicID)),
			allowed: true,
		},
		{
			name:       "vendor deletes paid invoice",
			actor:      vendor,
			action:     model.ActionDeleteInvoice,
			target:     InvoiceTarget(invoice(model.PaymentPaid)),
			wantReason: "is paid",
		},
		{
			name:    "admin toggles payment of paid invoice",
			actor:   admin,
			action:  model.ActionSetPaymentStatus,
			target:  InvoiceTarget(invoice(model.PaymentPaid)),
			allowed: true,
		},
		{
			name:       "admin updates cancelled order",
			actor:      admin,
			action:     model.ActionUpdateOrder,
			target:     OrderTarget(order(model.StatusCancelled, mechanicID)),
			wantReason: "can no longer be edited",
		},
	}

	gate := NewGate()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := gate.Authorize(tt.actor, tt.action, tt.target)
			if tt.allowed {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrPermissionDenied)

			var denied *model.DeniedError
			require.True(t, errors.As(err, &denied))
			assert.Equal(t, tt.action, denied.Action)
			assert.Contains(t, denied.Reason, tt.wantReason)
		})
	}
}
