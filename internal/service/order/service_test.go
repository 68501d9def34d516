package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/catalog"
	"github.com/you-humble/workshop/internal/service/inflight"
	"github.com/you-humble/workshop/internal/service/order/mocks"
	"github.com/you-humble/workshop/internal/service/permission"
)

const (
	brakePadsID int64 = 1
	coolantID   int64 = 2
	diagID      int64 = 20
)

type deps struct {
	backend   *mocks.MockOrderBackend
	mechanics *mocks.MockMechanicDirectory
	catalog   *mocks.MockCatalogCache
	recorder  *mocks.MockRecorder
	flights   *inflight.Registry
}

func newDeps(t *testing.T) deps {
	return deps{
		backend:   mocks.NewMockOrderBackend(t),
		mechanics: mocks.NewMockMechanicDirectory(t),
		catalog:   mocks.NewMockCatalogCache(t),
		recorder:  mocks.NewMockRecorder(t),
		flights:   inflight.NewRegistry(),
	}
}

func newSvc(d deps) *service {
	return NewOrderService(
		d.backend,
		d.mechanics,
		d.catalog,
		permission.NewGate(),
		d.recorder,
		d.flights,
		time.Second,
		time.Second,
	)
}

func snapshot() *catalog.Snapshot {
	return catalog.NewSnapshot(
		[]model.Product{
			{ID: brakePadsID, Name: "Brake pads", UnitPrice: decimal.NewFromInt(35), Stock: 5},
			{ID: coolantID, Name: "Coolant", UnitPrice: decimal.NewFromInt(12), Stock: 4},
		},
		[]model.Service{
			{ID: diagID, Name: "Diagnostics", UnitPrice: decimal.NewFromInt(40), DurationMinutes: 30, Active: true},
		},
		time.Now(),
	)
}

func fakeOrder(status model.OrderStatus, mechanicID int64) *model.Order {
	return &model.Order{
		ID:         int64(gofakeit.Number(1, 100000)),
		ClientID:   int64(gofakeit.Number(1, 1000)),
		VehicleID:  int64(gofakeit.Number(1, 1000)),
		MechanicID: mechanicID,
		Status:     status,
		Notes:      gofakeit.Sentence(5),
		Lines: []model.Line{
			{
				ID:          101,
				Kind:        model.KindProduct,
				Description: "Coolant",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(12),
				ProductID:   lo.ToPtr(coolantID),
			},
			{
				ID:          102,
				Kind:        model.KindService,
				Description: "Diagnostics",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(40),
				ServiceID:   lo.ToPtr(diagID),
			},
		},
		UpdatedAt: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func cloneOrder(o *model.Order) *model.Order {
	c := *o
	c.Lines = model.CloneLines(o.Lines)
	return &c
}

func TestServiceApplyLines(t *testing.T) {
	t.Parallel()

	mechanicID := int64(gofakeit.Number(1, 50))
	mechanic := model.Actor{ID: 30, SessionID: "mech-session", Role: model.RoleMechanic, MechanicID: &mechanicID}
	admin := model.Actor{ID: 1, SessionID: "admin-session", Role: model.RoleAdmin}

	type testCase struct {
		name      string
		actor     model.Actor
		seen      *model.Order
		fresh     *model.Order
		mutations []model.LineMutation
		setup     func(d deps, fresh *model.Order)
		assert    func(t *testing.T, res *model.Order, err error, d deps)
	}

	received := fakeOrder(model.StatusReceived, mechanicID)
	inProgress := fakeOrder(model.StatusInProgress, mechanicID)

	stale := fakeOrder(model.StatusDone, mechanicID)
	invoiced := cloneOrder(stale)
	invoiced.Status = model.StatusInvoiced

	touched := cloneOrder(inProgress)
	touched.UpdatedAt = touched.UpdatedAt.Add(time.Minute)

	tests := []testCase{
		{
			name:      "mechanic cannot add a service line",
			actor:     mechanic,
			seen:      received,
			fresh:     received,
			mutations: []model.LineMutation{model.AddLine{Item: model.ServiceLine{ServiceID: diagID}}},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrPermissionDenied)
				assert.ErrorContains(t, err, "mechanics may only change product lines")
				assert.Nil(t, res)

				d.catalog.AssertNotCalled(t, "Refresh", mock.Anything)
				d.backend.AssertNotCalled(t, "ReplaceOrderLinesRestricted", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:      "mechanic adds product within stock",
			actor:     mechanic,
			seen:      received,
			fresh:     received,
			mutations: []model.LineMutation{model.AddLine{Item: model.ProductLine{ProductID: brakePadsID, Quantity: 3}}},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
				d.catalog.On("Refresh", mock.Anything).Return(snapshot(), nil).Once()

				committed := cloneOrder(fresh)
				committed.Lines = append(committed.Lines, model.Line{
					ID:          103,
					Kind:        model.KindProduct,
					Description: "Brake pads",
					Quantity:    3,
					UnitPrice:   decimal.NewFromInt(35),
					ProductID:   lo.ToPtr(brakePadsID),
				})

				d.backend.
					On("ReplaceOrderLinesRestricted", mock.Anything, fresh.ID, mock.MatchedBy(func(lines []model.Line) bool {
						if len(lines) != 3 {
							return false
						}
						added := lines[2]
						return added.ID < 0 &&
							added.Quantity == 3 &&
							added.UnitPrice.Equal(decimal.NewFromInt(35)) &&
							model.SumLines(lines).Equal(decimal.NewFromInt(157))
					})).
					Return(committed, nil).
					Once()
				d.recorder.
					On("Record", mock.Anything, mechanic, model.ActionAddLine, fresh.Parent(), committed.Lines).
					Return(model.LedgerCommitted{}).
					Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.Len(t, res.Lines, 3)
				assert.Equal(t, int64(103), res.Lines[2].ID)
				assert.True(t, res.Total().Equal(decimal.NewFromInt(157)))
			},
		},
		{
			name:      "admin quantity above stock leaves the order untouched",
			actor:     admin,
			seen:      inProgress,
			fresh:     inProgress,
			mutations: []model.LineMutation{model.UpdateQuantity{LineID: 101, Quantity: 10}},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
				d.catalog.On("Refresh", mock.Anything).Return(snapshot(), nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInsufficientStock)

				var stockErr *model.InsufficientStockError
				require.ErrorAs(t, err, &stockErr)
				assert.Equal(t, int64(4), stockErr.Available)
				assert.Nil(t, res)

				d.backend.AssertNotCalled(t, "ReplaceOrderLines", mock.Anything, mock.Anything, mock.Anything)
				assert.Equal(t, int64(1), inProgress.Lines[0].Quantity)
			},
		},
		{
			name:      "admin overrides a price through the full replace",
			actor:     admin,
			seen:      inProgress,
			fresh:     inProgress,
			mutations: []model.LineMutation{model.UpdatePrice{LineID: 102, Price: decimal.NewFromInt(25)}},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
				d.catalog.On("Refresh", mock.Anything).Return(snapshot(), nil).Once()

				committed := cloneOrder(fresh)
				committed.Lines[1].UnitPrice = decimal.NewFromInt(25)

				d.backend.
					On("ReplaceOrderLines", mock.Anything, fresh.ID, mock.MatchedBy(func(lines []model.Line) bool {
						return len(lines) == 2 && lines[1].UnitPrice.Equal(decimal.NewFromInt(25))
					})).
					Return(committed, nil).
					Once()
				d.recorder.
					On("Record", mock.Anything, admin, model.ActionUpdatePrice, fresh.Parent(), mock.Anything).
					Return(model.LedgerCommitted{}).
					Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.NoError(t, err)
				assert.True(t, res.Total().Equal(decimal.NewFromInt(37)))
			},
		},
		{
			name:      "stale: order was invoiced by another session",
			actor:     admin,
			seen:      stale,
			fresh:     invoiced,
			mutations: []model.LineMutation{model.RemoveLine{LineID: 101}},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrStaleEntity)
				assert.True(t, model.IsRetryable(err))
				assert.Nil(t, res)

				d.catalog.AssertNotCalled(t, "Refresh", mock.Anything)
			},
		},
		{
			name:      "stale: order modified since it was opened",
			actor:     admin,
			seen:      inProgress,
			fresh:     touched,
			mutations: []model.LineMutation{model.RemoveLine{LineID: 101}},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrStaleEntity)
			},
		},
		{
			name:      "remote stock rejection is retryable",
			actor:     admin,
			seen:      inProgress,
			fresh:     inProgress,
			mutations: []model.LineMutation{model.UpdateQuantity{LineID: 101, Quantity: 2}},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
				d.catalog.On("Refresh", mock.Anything).Return(snapshot(), nil).Once()
				d.backend.
					On("ReplaceOrderLines", mock.Anything, fresh.ID, mock.Anything).
					Return(nil, &model.InsufficientStockError{ProductID: coolantID, Requested: 2, Available: 1, Remote: true}).
					Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInsufficientStock)
				assert.True(t, model.IsRetryable(err))

				d.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:      "mechanic adds a product and adjusts it in the same batch",
			actor:     mechanic,
			seen:      received,
			fresh:     received,
			mutations: []model.LineMutation{
				model.AddLine{Item: model.ProductLine{ProductID: brakePadsID, Quantity: 1}},
				model.UpdateQuantity{LineID: -1, Quantity: 2},
			},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
				d.catalog.On("Refresh", mock.Anything).Return(snapshot(), nil).Once()

				committed := cloneOrder(fresh)
				d.backend.
					On("ReplaceOrderLinesRestricted", mock.Anything, fresh.ID, mock.MatchedBy(func(lines []model.Line) bool {
						return len(lines) == 3 &&
							lines[2].ID == -1 &&
							lines[2].Quantity == 2 &&
							model.SumLines(lines).Equal(decimal.NewFromInt(122))
					})).
					Return(committed, nil).
					Once()
				d.recorder.
					On("Record", mock.Anything, mechanic, model.ActionUpdateQuantity, fresh.Parent(), committed.Lines).
					Return(model.LedgerCommitted{}).
					Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.NoError(t, err)
				assert.NotNil(t, res)
			},
		},
		{
			name:      "mechanic cannot reprice a line added in the same batch",
			actor:     mechanic,
			seen:      received,
			fresh:     received,
			mutations: []model.LineMutation{
				model.AddLine{Item: model.ProductLine{ProductID: brakePadsID, Quantity: 1}},
				model.UpdatePrice{LineID: -1, Price: decimal.NewFromInt(1)},
			},
			setup: func(d deps, fresh *model.Order) {
				d.backend.On("OrderByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrPermissionDenied)
				d.catalog.AssertNotCalled(t, "Refresh", mock.Anything)
			},
		},
		{
			name:      "malformed mutation is rejected before any call",
			actor:     admin,
			seen:      inProgress,
			fresh:     inProgress,
			mutations: []model.LineMutation{
				model.UpdateQuantity{LineID: 101, Quantity: 2},
				model.UpdatePrice{LineID: 102, Price: decimal.NewFromInt(-5)},
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.ErrorContains(t, err, "unit_price")

				d.backend.AssertNotCalled(t, "OrderByID", mock.Anything, mock.Anything)
				d.catalog.AssertNotCalled(t, "Refresh", mock.Anything)
			},
		},
		{
			name:      "free-form line without description is rejected before any call",
			actor:     admin,
			seen:      inProgress,
			fresh:     inProgress,
			mutations: []model.LineMutation{model.AddLine{Item: model.OtherLine{Quantity: 1, UnitPrice: decimal.NewFromInt(3)}}},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				d.backend.AssertNotCalled(t, "OrderByID", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "nothing to apply",
			actor: admin,
			seen:  inProgress,
			fresh: inProgress,
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				d.backend.AssertNotCalled(t, "OrderByID", mock.Anything, mock.Anything)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			if tt.setup != nil {
				tt.setup(d, tt.fresh)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			res, err := newSvc(d).ApplyLines(ctx, tt.actor, tt.seen, tt.mutations...)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceOpen(t *testing.T) {
	t.Parallel()

	mechanicID := int64(gofakeit.Number(1, 50))
	mechanic := model.Actor{ID: 30, SessionID: "m", Role: model.RoleMechanic, MechanicID: &mechanicID}
	admin := model.Actor{ID: 1, SessionID: "a", Role: model.RoleAdmin}

	type testCase struct {
		name   string
		actor  model.Actor
		order  *model.Order
		assert func(t *testing.T, res *model.Order, err error)
	}

	tests := []testCase{
		{
			name:  "mechanic opens an assigned order",
			actor: mechanic,
			order: fakeOrder(model.StatusInProgress, mechanicID),
			assert: func(t *testing.T, res *model.Order, err error) {
				require.NoError(t, err)
				assert.NotNil(t, res)
			},
		},
		{
			name:  "mechanic cannot open another mechanic's order",
			actor: mechanic,
			order: fakeOrder(model.StatusInProgress, mechanicID+1),
			assert: func(t *testing.T, res *model.Order, err error) {
				assert.ErrorIs(t, err, model.ErrPermissionDenied)
				assert.ErrorContains(t, err, "not assigned to you")
				assert.Nil(t, res)
			},
		},
		{
			name:  "administrator opens any order",
			actor: admin,
			order: fakeOrder(model.StatusDone, mechanicID+1),
			assert: func(t *testing.T, res *model.Order, err error) {
				require.NoError(t, err)
				assert.NotNil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			d.backend.On("OrderByID", mock.Anything, tt.order.ID).Return(tt.order, nil).Once()

			res, err := newSvc(d).Open(context.Background(), tt.actor, tt.order.ID)
			tt.assert(t, res, err)
		})
	}
}

func TestServiceApplyLinesBusy(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	admin := model.Actor{ID: 1, SessionID: "tab-1", Role: model.RoleAdmin}
	ord := fakeOrder(model.StatusReceived, 3)

	release, ok := d.flights.TryAcquire(inflight.Key(admin.SessionID, ord.Parent()))
	require.True(t, ok)
	defer release()

	_, err := newSvc(d).ApplyLines(context.Background(), admin, ord, model.RemoveLine{LineID: 101})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrBusy)

	d.backend.AssertNotCalled(t, "OrderByID", mock.Anything, mock.Anything)
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	admin := model.Actor{ID: 1, SessionID: "s", Role: model.RoleAdmin}
	mechanicID := int64(gofakeit.Number(1, 50))

	draft := model.OrderDraft{
		ClientID:   int64(gofakeit.Number(1, 100)),
		VehicleID:  int64(gofakeit.Number(1, 100)),
		MechanicID: mechanicID,
		Notes:      gofakeit.Sentence(4),
		Items: []model.LineInput{
			model.ProductLine{ProductID: brakePadsID, Quantity: 2},
			model.ServiceLine{ServiceID: diagID},
			model.OtherLine{Description: "Disposal fee", Quantity: 1, UnitPrice: decimal.NewFromInt(3)},
		},
	}

	type testCase struct {
		name   string
		actor  model.Actor
		draft  model.OrderDraft
		setup  func(d deps)
		assert func(t *testing.T, res *model.Order, err error, d deps)
	}

	tests := []testCase{
		{
			name:  "mechanic cannot create orders",
			actor: model.Actor{ID: 5, SessionID: "s", Role: model.RoleMechanic, MechanicID: &mechanicID},
			draft: draft,
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrPermissionDenied)
				assert.Nil(t, res)
			},
		},
		{
			name:  "validation error: no items",
			actor: admin,
			draft: model.OrderDraft{ClientID: 1, VehicleID: 1, MechanicID: mechanicID},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				d.mechanics.AssertNotCalled(t, "ListMechanics", mock.Anything)
			},
		},
		{
			name:  "validation error: bad item caught before the mechanic lookup",
			actor: admin,
			draft: model.OrderDraft{
				ClientID:   1,
				VehicleID:  1,
				MechanicID: mechanicID,
				Items:      []model.LineInput{model.OtherLine{Description: "Tow", Quantity: 0}},
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				d.mechanics.AssertNotCalled(t, "ListMechanics", mock.Anything)
				d.catalog.AssertNotCalled(t, "Refresh", mock.Anything)
			},
		},
		{
			name:  "inactive mechanic",
			actor: admin,
			draft: draft,
			setup: func(d deps) {
				d.mechanics.On("ListMechanics", mock.Anything).Return([]model.Mechanic{
					{ID: mechanicID, Name: gofakeit.Name(), Active: false},
				}, nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.ErrorContains(t, err, "inactive")
			},
		},
		{
			name:  "unknown mechanic",
			actor: admin,
			draft: draft,
			setup: func(d deps) {
				d.mechanics.On("ListMechanics", mock.Anything).Return([]model.Mechanic{}, nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrMechanicNotFound)
			},
		},
		{
			name:  "success: lines priced from the catalog",
			actor: admin,
			draft: draft,
			setup: func(d deps) {
				d.mechanics.On("ListMechanics", mock.Anything).Return([]model.Mechanic{
					{ID: mechanicID, Name: gofakeit.Name(), Active: true},
				}, nil).Once()
				d.catalog.On("Refresh", mock.Anything).Return(snapshot(), nil).Once()

				created := &model.Order{ID: 77, Status: model.StatusReceived, MechanicID: mechanicID}
				d.backend.
					On("CreateOrder", mock.Anything, draft, mock.MatchedBy(func(lines []model.Line) bool {
						return len(lines) == 3 &&
							lines[0].UnitPrice.Equal(decimal.NewFromInt(35)) &&
							lines[1].Quantity == 1 &&
							model.SumLines(lines).Equal(decimal.NewFromInt(113))
					})).
					Return(created, nil).
					Once()
				d.recorder.
					On("Record", mock.Anything, admin, model.ActionCreateOrder, created.Parent(), mock.Anything).
					Return(model.LedgerCommitted{}).
					Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, int64(77), res.ID)
				assert.Equal(t, model.StatusReceived, res.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			res, err := newSvc(d).Create(context.Background(), tt.actor, tt.draft)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceTransition(t *testing.T) {
	t.Parallel()

	admin := model.Actor{ID: 1, SessionID: "s", Role: model.RoleAdmin}
	mechanicID := int64(8)

	type testCase struct {
		name   string
		actor  model.Actor
		order  *model.Order
		to     model.OrderStatus
		setup  func(d deps, o *model.Order)
		assert func(t *testing.T, res *model.Order, err error, d deps)
	}

	tests := []testCase{
		{
			name:  "invoiced only through invoice creation",
			actor: admin,
			order: fakeOrder(model.StatusDone, mechanicID),
			to:    model.StatusInvoiced,
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				d.backend.AssertNotCalled(t, "OrderByID", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "illegal backwards move",
			actor: admin,
			order: fakeOrder(model.StatusDone, mechanicID),
			to:    model.StatusInProgress,
			setup: func(d deps, o *model.Order) {
				d.backend.On("OrderByID", mock.Anything, o.ID).Return(o, nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrIllegalTransition)
			},
		},
		{
			name:  "mechanic cannot transition",
			actor: model.Actor{ID: 2, SessionID: "m", Role: model.RoleMechanic, MechanicID: &mechanicID},
			order: fakeOrder(model.StatusReceived, mechanicID),
			to:    model.StatusInProgress,
			setup: func(d deps, o *model.Order) {
				d.backend.On("OrderByID", mock.Anything, o.ID).Return(o, nil).Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrPermissionDenied)
			},
		},
		{
			name:  "success: received to in progress",
			actor: admin,
			order: fakeOrder(model.StatusReceived, mechanicID),
			to:    model.StatusInProgress,
			setup: func(d deps, o *model.Order) {
				d.backend.On("OrderByID", mock.Anything, o.ID).Return(o, nil).Once()

				moved := cloneOrder(o)
				moved.Status = model.StatusInProgress
				d.backend.On("UpdateOrderStatus", mock.Anything, o.ID, model.StatusInProgress).Return(moved, nil).Once()
				d.recorder.
					On("Record", mock.Anything, admin, model.ActionTransitionOrder, o.Parent(), moved.Lines).
					Return(model.LedgerCommitted{}).
					Once()
			},
			assert: func(t *testing.T, res *model.Order, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.StatusInProgress, res.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			if tt.setup != nil {
				tt.setup(d, tt.order)
			}

			res, err := newSvc(d).Transition(context.Background(), tt.actor, tt.order.ID, tt.to)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	t.Parallel()

	admin := model.Actor{ID: 1, SessionID: "s", Role: model.RoleAdmin}

	t.Run("update reassigns to an active mechanic", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		o := fakeOrder(model.StatusInProgress, 3)
		newMechanic := int64(4)
		header := model.OrderHeader{MechanicID: &newMechanic}

		d.backend.On("OrderByID", mock.Anything, o.ID).Return(o, nil).Once()
		d.mechanics.On("ListMechanics", mock.Anything).Return([]model.Mechanic{
			{ID: 3, Active: true},
			{ID: 4, Active: true},
		}, nil).Once()

		updated := cloneOrder(o)
		updated.MechanicID = newMechanic
		d.backend.On("UpdateOrder", mock.Anything, o.ID, header).Return(updated, nil).Once()
		d.recorder.On("Record", mock.Anything, admin, model.ActionUpdateOrder, o.Parent(), mock.Anything).
			Return(model.LedgerCommitted{}).Once()

		res, err := newSvc(d).Update(context.Background(), admin, o, header)
		require.NoError(t, err)
		assert.Equal(t, newMechanic, res.MechanicID)
	})

	t.Run("update with empty header", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		_, err := newSvc(d).Update(context.Background(), admin, fakeOrder(model.StatusReceived, 1), model.OrderHeader{})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("delete in-progress order is denied", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		o := fakeOrder(model.StatusInProgress, 3)
		d.backend.On("OrderByID", mock.Anything, o.ID).Return(o, nil).Once()

		err := newSvc(d).Delete(context.Background(), admin, o.ID)
		assert.ErrorIs(t, err, model.ErrPermissionDenied)
		d.backend.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)
	})

	t.Run("delete received order", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		o := fakeOrder(model.StatusReceived, 3)
		d.backend.On("OrderByID", mock.Anything, o.ID).Return(o, nil).Once()
		d.backend.On("DeleteOrder", mock.Anything, o.ID).Return(nil).Once()
		d.recorder.On("Record", mock.Anything, admin, model.ActionDeleteOrder, o.Parent(), []model.Line(nil)).
			Return(model.LedgerCommitted{}).Once()

		require.NoError(t, newSvc(d).Delete(context.Background(), admin, o.ID))
	})
}

func TestServiceListForMechanic(t *testing.T) {
	t.Parallel()

	mechanicID := int64(6)
	mechanic := model.Actor{ID: 2, SessionID: "m", Role: model.RoleMechanic, MechanicID: &mechanicID}

	d := newDeps(t)

	mine := fakeOrder(model.StatusInProgress, mechanicID)
	done := fakeOrder(model.StatusInvoiced, mechanicID)
	foreign := fakeOrder(model.StatusReceived, mechanicID+1)

	d.backend.
		On("ListOrders", mock.Anything, model.OrderFilter{MechanicID: &mechanicID}).
		Return([]*model.Order{mine, done, foreign}, nil).
		Once()

	res, err := newSvc(d).ListForMechanic(context.Background(), mechanic)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Same(t, mine, res[0])

	_, err = newSvc(d).ListForMechanic(context.Background(), model.Actor{ID: 1, SessionID: "a", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, model.ErrValidation)
}
