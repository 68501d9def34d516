package stock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/workshop/internal/model"
)

type catalogStub map[int64]model.Product

func (c catalogStub) Product(id int64) (model.Product, bool) {
	p, ok := c[id]
	return p, ok
}

func TestGuardCheckQuantity(t *testing.T) {
	t.Parallel()

	guard := NewGuard(catalogStub{
		1: {ID: 1, Name: "oil filter", Stock: 5},
		2: {ID: 2, Name: "spark plug", Stock: 0},
	})

	tests := []struct {
		name      string
		productID int64
		qty       int64
		wantErr   error
		available int64
	}{
		{name: "within stock", productID: 1, qty: 3},
		{name: "exactly the stock", productID: 1, qty: 5},
		{name: "above stock", productID: 1, qty: 6, wantErr: model.ErrInsufficientStock, available: 5},
		{name: "out of stock", productID: 2, qty: 1, wantErr: model.ErrInsufficientStock, available: 0},
		{name: "zero quantity", productID: 1, qty: 0, wantErr: model.ErrValidation},
		{name: "unknown product", productID: 99, qty: 1, wantErr: model.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := guard.CheckQuantity(tt.productID, tt.qty)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var stockErr *model.InsufficientStockError
			if errors.As(err, &stockErr) {
				assert.Equal(t, tt.available, stockErr.Available)
				assert.Equal(t, tt.qty, stockErr.Requested)
				assert.False(t, stockErr.Remote)
			}
		})
	}
}

func TestGuardCheckRelease(t *testing.T) {
	t.Parallel()

	guard := NewGuard(catalogStub{})

	require.NoError(t, guard.CheckRelease(3, 3))
	require.NoError(t, guard.CheckRelease(3, 1))
	assert.ErrorIs(t, guard.CheckRelease(3, 4), model.ErrValidation)
	assert.ErrorIs(t, guard.CheckRelease(3, 0), model.ErrValidation)
}
