package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/catalog"
	"github.com/you-humble/workshop/internal/service/inflight"
	"github.com/you-humble/workshop/internal/service/ledger"
	"github.com/you-humble/workshop/internal/service/lifecycle"
	"github.com/you-humble/workshop/internal/service/permission"
	"github.com/you-humble/workshop/internal/service/stock"
	"github.com/you-humble/workshop/platform/logger"
)

type OrderBackend interface {
	OrderByID(ctx context.Context, id int64) (*model.Order, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error)
	CreateOrder(ctx context.Context, draft model.OrderDraft, lines []model.Line) (*model.Order, error)
	UpdateOrder(ctx context.Context, id int64, header model.OrderHeader) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	ReplaceOrderLines(ctx context.Context, id int64, lines []model.Line) (*model.Order, error)
	ReplaceOrderLinesRestricted(ctx context.Context, id int64, lines []model.Line) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type MechanicDirectory interface {
	ListMechanics(ctx context.Context) ([]model.Mechanic, error)
}

type CatalogCache interface {
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

type Gate interface {
	Authorize(actor model.Actor, action model.Action, target permission.Target) error
}

type Recorder interface {
	Record(
		ctx context.Context,
		actor model.Actor,
		action model.Action,
		parent model.Parent,
		lines []model.Line,
	) model.LedgerCommitted
}

type service struct {
	backend      OrderBackend
	mechanics    MechanicDirectory
	catalog      CatalogCache
	gate         Gate
	recorder     Recorder
	flights      *inflight.Registry
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewOrderService(
	backend OrderBackend,
	mechanics MechanicDirectory,
	catalog CatalogCache,
	gate Gate,
	recorder Recorder,
	flights *inflight.Registry,
	readTimeout time.Duration,
	writeTimeout time.Duration,
) *service {
	return &service{
		backend:      backend,
		mechanics:    mechanics,
		catalog:      catalog,
		gate:         gate,
		recorder:     recorder,
		flights:      flights,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Open fetches the authoritative order an edit session starts from. Mechanics
// may only open orders assigned to them.
func (svc *service) Open(ctx context.Context, actor model.Actor, id int64) (*model.Order, error) {
	const op = "order.service.Open"
	log := logger.With(
		logger.Int64("order_id", id),
		logger.Int64("actor_id", actor.ID),
	)

	ord, err := svc.fetch(ctx, id)
	if err != nil {
		log.Error(ctx, "backend order by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if actor.IsMechanic() && !ord.AssignedTo(actor.MechanicID) {
		log.Warn(ctx, "open denied", logger.Int64("assigned_to", ord.MechanicID))
		return nil, fmt.Errorf("%s: %w", op,
			model.Deny(model.ActionUpdateOrder, "order %d is not assigned to you", ord.ID))
	}

	return ord, nil
}

// ApplyLines applies mutations to the lines of the order the caller last saw.
// The mutations are authorized and applied as a unit; the returned order is the
// one the persistence service answered with and replaces seen.
func (svc *service) ApplyLines(
	ctx context.Context,
	actor model.Actor,
	seen *model.Order,
	mutations ...model.LineMutation,
) (*model.Order, error) {
	const op = "order.service.ApplyLines"

	if seen == nil || len(mutations) == 0 {
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError("mutations", "nothing to apply"))
	}
	if err := model.ValidateMutations(mutations); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log := logger.With(
		logger.Int64("order_id", seen.ID),
		logger.Int64("actor_id", actor.ID),
		logger.String("role", string(actor.Role)),
		logger.Int("mutations", len(mutations)),
	)

	release, ok := svc.flights.TryAcquire(inflight.Key(actor.SessionID, seen.Parent()))
	if !ok {
		log.Warn(ctx, "edit already in flight")
		return nil, fmt.Errorf("%s: %w", op, model.ErrBusy)
	}
	defer release()

	fresh, err := svc.fetch(ctx, seen.ID)
	if err != nil {
		log.Error(ctx, "backend order by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkFresh(seen, fresh); err != nil {
		log.Warn(ctx, "stale order", logger.String("status", string(fresh.Status)))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	led, err := ledger.New(fresh.Parent(), fresh.Lines)
	if err != nil {
		log.Error(ctx, "build ledger", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	kinds, err := led.KindsOf(mutations)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i, m := range mutations {
		target := permission.OrderTarget(fresh).WithLine(kinds[i])
		if err := svc.gate.Authorize(actor, m.Action(), target); err != nil {
			log.Warn(ctx, "mutation denied", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	snap, err := svc.catalog.Refresh(ctx)
	if err != nil {
		log.Error(ctx, "catalog refresh", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := led.ApplyAll(mutations, snap, stock.NewGuard(snap)); err != nil {
		log.Warn(ctx, "ledger rejected mutations", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := led.ValidateForSubmit(false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	replace := svc.backend.ReplaceOrderLines
	if actor.IsMechanic() {
		replace = svc.backend.ReplaceOrderLinesRestricted
	}

	updated, err := replace(wctx, fresh.ID, led.Lines())
	if err != nil {
		log.Error(ctx, "backend replace lines",
			logger.Bool("retryable", model.IsRetryable(err)),
			logger.ErrorF(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, lastAction(mutations), updated.Parent(), updated.Lines)

	return updated, nil
}

// Create submits a new RECEIVED order. It needs at least one line and an active
// mechanic.
func (svc *service) Create(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error) {
	const op = "order.service.Create"
	log := logger.With(
		logger.Int64("actor_id", actor.ID),
		logger.Int64("client_id", draft.ClientID),
		logger.Int64("mechanic_id", draft.MechanicID),
	)

	if err := svc.gate.Authorize(actor, model.ActionCreateOrder, permission.Target{}); err != nil {
		log.Warn(ctx, "create denied", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case draft.ClientID == 0:
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError("client_id", "client required"))
	case draft.VehicleID == 0:
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError("vehicle_id", "vehicle required"))
	case draft.MechanicID == 0:
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError("mechanic_id", "mechanic required"))
	case len(draft.Items) == 0:
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError("lines", "at least one item required"))
	}
	for i, item := range draft.Items {
		if err := model.ValidateInput(item); err != nil {
			return nil, fmt.Errorf("%s: item %d: %w", op, i, err)
		}
	}

	if err := svc.checkMechanic(ctx, draft.MechanicID); err != nil {
		log.Warn(ctx, "mechanic check", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snap, err := svc.catalog.Refresh(ctx)
	if err != nil {
		log.Error(ctx, "catalog refresh", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	led, err := ledger.New(model.Parent{Kind: model.ParentOrder}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	guard := stock.NewGuard(snap)
	for _, item := range draft.Items {
		if _, err := led.AddLine(item, snap, guard); err != nil {
			log.Warn(ctx, "ledger rejected item", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := led.ValidateForSubmit(true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	created, err := svc.backend.CreateOrder(wctx, draft, led.Lines())
	if err != nil {
		log.Error(ctx, "backend create order", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionCreateOrder, created.Parent(), created.Lines)

	return created, nil
}

// Update changes the header of the order: notes and the assigned mechanic.
func (svc *service) Update(
	ctx context.Context,
	actor model.Actor,
	seen *model.Order,
	header model.OrderHeader,
) (*model.Order, error) {
	const op = "order.service.Update"

	if seen == nil || (header.MechanicID == nil && header.Notes == nil) {
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError("header", "nothing to update"))
	}

	log := logger.With(
		logger.Int64("order_id", seen.ID),
		logger.Int64("actor_id", actor.ID),
	)

	release, ok := svc.flights.TryAcquire(inflight.Key(actor.SessionID, seen.Parent()))
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, model.ErrBusy)
	}
	defer release()

	fresh, err := svc.fetch(ctx, seen.ID)
	if err != nil {
		log.Error(ctx, "backend order by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkFresh(seen, fresh); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.gate.Authorize(actor, model.ActionUpdateOrder, permission.OrderTarget(fresh)); err != nil {
		log.Warn(ctx, "update denied", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if header.MechanicID != nil && *header.MechanicID != fresh.MechanicID {
		if err := svc.checkMechanic(ctx, *header.MechanicID); err != nil {
			log.Warn(ctx, "mechanic check", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	updated, err := svc.backend.UpdateOrder(wctx, fresh.ID, header)
	if err != nil {
		log.Error(ctx, "backend update order", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionUpdateOrder, updated.Parent(), updated.Lines)

	return updated, nil
}

// Transition moves the order one step forward. INVOICED is reached only by
// creating an invoice from the order.
func (svc *service) Transition(
	ctx context.Context,
	actor model.Actor,
	id int64,
	to model.OrderStatus,
) (*model.Order, error) {
	const op = "order.service.Transition"
	log := logger.With(
		logger.Int64("order_id", id),
		logger.Int64("actor_id", actor.ID),
		logger.String("to", string(to)),
	)

	if to == model.StatusInvoiced {
		return nil, fmt.Errorf("%s: %w", op,
			model.NewValidationError("status", "orders are invoiced by creating an invoice"))
	}

	release, ok := svc.flights.TryAcquire(inflight.Key(actor.SessionID, orderParent(id)))
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, model.ErrBusy)
	}
	defer release()

	fresh, err := svc.fetch(ctx, id)
	if err != nil {
		log.Error(ctx, "backend order by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.gate.Authorize(actor, model.ActionTransitionOrder, permission.OrderTarget(fresh)); err != nil {
		log.Warn(ctx, "transition denied", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := lifecycle.Transition(fresh.Status, to); err != nil {
		log.Warn(ctx, "illegal transition", logger.String("from", string(fresh.Status)))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	updated, err := svc.backend.UpdateOrderStatus(wctx, id, to)
	if err != nil {
		log.Error(ctx, "backend update order status", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionTransitionOrder, updated.Parent(), updated.Lines)

	return updated, nil
}

// Delete removes an order that is still RECEIVED.
func (svc *service) Delete(ctx context.Context, actor model.Actor, id int64) error {
	const op = "order.service.Delete"
	log := logger.With(
		logger.Int64("order_id", id),
		logger.Int64("actor_id", actor.ID),
	)

	release, ok := svc.flights.TryAcquire(inflight.Key(actor.SessionID, orderParent(id)))
	if !ok {
		return fmt.Errorf("%s: %w", op, model.ErrBusy)
	}
	defer release()

	fresh, err := svc.fetch(ctx, id)
	if err != nil {
		log.Error(ctx, "backend order by id", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.gate.Authorize(actor, model.ActionDeleteOrder, permission.OrderTarget(fresh)); err != nil {
		log.Warn(ctx, "delete denied", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	if err := svc.backend.DeleteOrder(wctx, id); err != nil {
		log.Error(ctx, "backend delete order", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionDeleteOrder, fresh.Parent(), nil)

	return nil
}

// ListForMechanic returns the orders of the calling mechanic that are not invoiced.
func (svc *service) ListForMechanic(ctx context.Context, actor model.Actor) ([]*model.Order, error) {
	const op = "order.service.ListForMechanic"

	if !actor.IsMechanic() || actor.MechanicID == nil {
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError("role", "only mechanics have assigned orders"))
	}

	rctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	orders, err := svc.backend.ListOrders(rctx, model.OrderFilter{MechanicID: actor.MechanicID})
	if err != nil {
		logger.Error(ctx, "backend list orders",
			logger.Int64("mechanic_id", *actor.MechanicID),
			logger.ErrorF(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lo.Filter(orders, func(o *model.Order, _ int) bool {
		return o.Status != model.StatusInvoiced && o.AssignedTo(actor.MechanicID)
	}), nil
}

func (svc *service) fetch(ctx context.Context, id int64) (*model.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	return svc.backend.OrderByID(ctx, id)
}

func (svc *service) checkMechanic(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	mechanics, err := svc.mechanics.ListMechanics(ctx)
	if err != nil {
		return err
	}

	m, found := lo.Find(mechanics, func(m model.Mechanic) bool { return m.ID == id })
	if !found {
		return fmt.Errorf("%w: %d", model.ErrMechanicNotFound, id)
	}
	if !m.Active {
		return model.NewValidationError("mechanic_id", fmt.Sprintf("mechanic %q is inactive", m.Name))
	}
	return nil
}

// checkFresh rejects an edit built on an order that changed since it was fetched.
func checkFresh(seen, fresh *model.Order) error {
	if seen.Status != fresh.Status {
		return fmt.Errorf("%w: order %d is now %s", model.ErrStaleEntity, fresh.ID, fresh.Status)
	}
	if !seen.UpdatedAt.IsZero() && !fresh.UpdatedAt.Equal(seen.UpdatedAt) {
		return fmt.Errorf("%w: order %d was modified at %s", model.ErrStaleEntity, fresh.ID,
			fresh.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func orderParent(id int64) model.Parent { return model.Parent{Kind: model.ParentOrder, ID: id} }

func lastAction(mutations []model.LineMutation) model.Action {
	if len(mutations) == 0 {
		return ""
	}
	return mutations[len(mutations)-1].Action()
}
