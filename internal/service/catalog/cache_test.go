package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/catalog/mocks"
)

func fakeProduct(id, stock, minStock int64) model.Product {
	return model.Product{
		ID:        id,
		Name:      gofakeit.ProductName(),
		Code:      gofakeit.LetterN(6),
		UnitPrice: decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
		Stock:     stock,
		MinStock:  minStock,
	}
}

func TestCacheRefresh(t *testing.T) {
	t.Parallel()

	type deps struct {
		backend *mocks.MockCatalogBackend
	}

	products := []model.Product{fakeProduct(1, 10, 2), fakeProduct(2, 0, 1), fakeProduct(3, 2, 2)}
	services := []model.Service{
		{ID: 1, Name: "Alignment", DurationMinutes: 30, Active: true},
		{ID: 2, Name: "Carburetor", DurationMinutes: 45},
	}

	type testCase struct {
		name   string
		setup  func(d deps)
		assert func(t *testing.T, snap *Snapshot, err error, c *Cache)
	}

	tests := []testCase{
		{
			name: "success: snapshot holds products and all services",
			setup: func(d deps) {
				d.backend.On("ListProducts", mock.Anything).Return(products, nil).Once()
				d.backend.On("ListServices", mock.Anything, false).Return(services, nil).Once()
			},
			assert: func(t *testing.T, snap *Snapshot, err error, c *Cache) {
				require.NoError(t, err)
				require.NotNil(t, snap)

				assert.Len(t, snap.Products(), 3)
				assert.Len(t, snap.Services(false), 2)
				assert.Len(t, snap.Services(true), 1)

				p, ok := snap.Product(2)
				require.True(t, ok)
				assert.Equal(t, products[1].Name, p.Name)

				_, ok = snap.Service(99)
				assert.False(t, ok)
			},
		},
		{
			name: "backend error: products",
			setup: func(d deps) {
				d.backend.On("ListProducts", mock.Anything).Return(nil, model.ErrBadGateway).Once()
				d.backend.On("ListServices", mock.Anything, false).Return(services, nil).Maybe()
			},
			assert: func(t *testing.T, snap *Snapshot, err error, c *Cache) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrBadGateway)
				assert.Nil(t, snap)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{backend: mocks.NewMockCatalogBackend(t)}
			if tt.setup != nil {
				tt.setup(d)
			}

			c := NewCache(d.backend, time.Second)

			snap, err := c.Refresh(context.Background())
			tt.assert(t, snap, err, c)
		})
	}
}

func TestCacheKeepsLastSnapshotOnFailure(t *testing.T) {
	t.Parallel()

	backend := mocks.NewMockCatalogBackend(t)
	backend.On("ListProducts", mock.Anything).Return([]model.Product{fakeProduct(1, 3, 1)}, nil).Once()
	backend.On("ListServices", mock.Anything, false).Return([]model.Service{}, nil).Once()

	c := NewCache(backend, time.Second)

	first, err := c.Refresh(context.Background())
	require.NoError(t, err)

	backend.On("ListProducts", mock.Anything).Return(nil, errors.New("connection reset")).Once()
	backend.On("ListServices", mock.Anything, false).Return([]model.Service{}, nil).Maybe()

	_, err = c.Refresh(context.Background())
	require.Error(t, err)

	snap, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, snap)
}

func TestCacheSharesConcurrentRefresh(t *testing.T) {
	t.Parallel()

	backend := mocks.NewMockCatalogBackend(t)
	gate := make(chan struct{})

	backend.On("ListProducts", mock.Anything).
		Run(func(mock.Arguments) { <-gate }).
		Return([]model.Product{fakeProduct(1, 3, 1)}, nil).
		Once()
	backend.On("ListServices", mock.Anything, false).Return([]model.Service{}, nil).Once()

	c := NewCache(backend, 2*time.Second)

	const callers = 5
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		snaps []*Snapshot
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := c.Refresh(context.Background())
			assert.NoError(t, err)

			mu.Lock()
			snaps = append(snaps, snap)
			mu.Unlock()
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	require.Len(t, snaps, callers)
	assert.Len(t, lo.Uniq(snaps), 1)
}

func TestCacheStockViews(t *testing.T) {
	t.Parallel()

	backend := mocks.NewMockCatalogBackend(t)
	backend.On("ListProducts", mock.Anything).Return([]model.Product{
		fakeProduct(1, 10, 2),
		fakeProduct(2, 0, 1),
		fakeProduct(3, 2, 2),
	}, nil).Once()
	backend.On("ListServices", mock.Anything, false).Return([]model.Service{
		{ID: 1, Name: "Alignment", DurationMinutes: 30, Active: true},
		{ID: 2, Name: "Carburetor", DurationMinutes: 45},
	}, nil).Once()

	c := NewCache(backend, time.Second)
	ctx := context.Background()

	inStock, err := c.InStock(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 3}, lo.Map(inStock, func(p model.Product, _ int) int64 { return p.ID }))

	low, err := c.LowStock(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 3}, lo.Map(low, func(p model.Product, _ int) int64 { return p.ID }))

	active, err := c.ListServices(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Alignment", active[0].Name)
}
