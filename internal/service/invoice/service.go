package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/catalog"
	"github.com/you-humble/workshop/internal/service/inflight"
	"github.com/you-humble/workshop/internal/service/ledger"
	"github.com/you-humble/workshop/internal/service/permission"
	"github.com/you-humble/workshop/internal/service/resolver"
	"github.com/you-humble/workshop/internal/service/stock"
	"github.com/you-humble/workshop/platform/logger"
)

type InvoiceBackend interface {
	InvoiceByID(ctx context.Context, id int64) (*model.Invoice, error)
	ListInvoices(ctx context.Context) ([]*model.Invoice, error)
	CreateInvoice(ctx context.Context, in model.InvoiceFromOrder) (*model.Invoice, error)
	CreateStandaloneInvoice(ctx context.Context, draft model.InvoiceDraft, lines []model.Line) (*model.Invoice, error)
	EditInvoice(ctx context.Context, id int64, update model.InvoiceUpdate, conf model.Confirmation) (*model.Invoice, error)
	DeleteInvoice(ctx context.Context, id int64, conf model.Confirmation) error
	SetPaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) (*model.Invoice, error)
}

type OrderReader interface {
	OrderByID(ctx context.Context, id int64) (*model.Order, error)
}

type CatalogCache interface {
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

type Gate interface {
	Authorize(actor model.Actor, action model.Action, target permission.Target) error
}

type Confirmer interface {
	Confirm(
		ctx context.Context,
		actor model.Actor,
		invoiceID int64,
		secret string,
		operation model.ConfirmOperation,
	) (model.Confirmation, error)
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

// View is an invoice with its vehicle and mechanic resolved.
type View struct {
	Invoice  *model.Invoice
	Vehicle  resolver.Resolved[model.Vehicle]
	Mechanic resolver.Resolved[model.Mechanic]
	Total    decimal.Decimal
}

func NewView(inv *model.Invoice) View {
	return View{
		Invoice:  inv,
		Vehicle:  resolver.ResolveVehicle(inv),
		Mechanic: resolver.ResolveMechanic(inv),
		Total:    inv.Total(),
	}
}

type service struct {
	backend      InvoiceBackend
	orders       OrderReader
	catalog      CatalogCache
	gate         Gate
	confirmer    Confirmer
	recorder     Recorder
	flights      *inflight.Registry
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewInvoiceService(
	backend InvoiceBackend,
	orders OrderReader,
	catalog CatalogCache,
	gate Gate,
	confirmer Confirmer,
	recorder Recorder,
	flights *inflight.Registry,
	readTimeout time.Duration,
	writeTimeout time.Duration,
) *service {
	return &service{
		backend:      backend,
		orders:       orders,
		catalog:      catalog,
		gate:         gate,
		confirmer:    confirmer,
		recorder:     recorder,
		flights:      flights,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (svc *service) Open(ctx context.Context, actor model.Actor, id int64) (View, error) {
	const op = "invoice.service.Open"

	if !actor.IsAdministrator() {
		return View{}, fmt.Errorf("%s: %w", op, model.Deny(model.ActionEditInvoice, "mechanics cannot open invoices"))
	}

	inv, err := svc.fetch(ctx, id)
	if err != nil {
		logger.Error(ctx, "backend invoice by id", logger.Int64("invoice_id", id), logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	return NewView(inv), nil
}

// List returns the invoices matching the vehicle filter.
func (svc *service) List(ctx context.Context, actor model.Actor, filter resolver.VehicleFilter) ([]View, error) {
	const op = "invoice.service.List"

	if !actor.IsAdministrator() {
		return nil, fmt.Errorf("%s: %w", op, model.Deny(model.ActionEditInvoice, "mechanics cannot list invoices"))
	}

	rctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	invoices, err := svc.backend.ListInvoices(rctx)
	if err != nil {
		logger.Error(ctx, "backend list invoices", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filtered := resolver.FilterInvoices(invoices, filter)
	views := make([]View, 0, len(filtered))
	for _, inv := range filtered {
		views = append(views, NewView(inv))
	}
	return views, nil
}

// Edit applies a confirmed edit to an unpaid invoice. The gate runs before the
// credential is checked, so a paid invoice never asks for one.
func (svc *service) Edit(
	ctx context.Context,
	actor model.Actor,
	seen *model.Invoice,
	secret string,
	edit model.InvoiceEdit,
) (View, error) {
	const op = "invoice.service.Edit"

	if seen == nil {
		return View{}, fmt.Errorf("%s: %w", op, model.NewValidationError("invoice", "no invoice given"))
	}
	if edit.PaymentMethod != nil && !edit.PaymentMethod.Valid() {
		return View{}, fmt.Errorf("%s: %w", op,
			model.NewValidationError("payment_method", fmt.Sprintf("unknown payment method %q", *edit.PaymentMethod)))
	}
	if err := model.ValidateMutations(edit.Mutations); err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	log := logger.With(
		logger.Int64("invoice_id", seen.ID),
		logger.Int64("actor_id", actor.ID),
		logger.Int("mutations", len(edit.Mutations)),
	)

	release, ok := svc.flights.TryAcquire(inflight.Key(actor.SessionID, seen.Parent()))
	if !ok {
		log.Warn(ctx, "edit already in flight")
		return View{}, fmt.Errorf("%s: %w", op, model.ErrBusy)
	}
	defer release()

	fresh, err := svc.fetch(ctx, seen.ID)
	if err != nil {
		log.Error(ctx, "backend invoice by id", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkFresh(seen, fresh); err != nil {
		log.Warn(ctx, "stale invoice", logger.String("payment_status", string(fresh.PaymentStatus)))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	led, err := ledger.New(fresh.Parent(), fresh.Lines)
	if err != nil {
		log.Error(ctx, "build ledger", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	target := permission.InvoiceTarget(fresh)
	if err := svc.gate.Authorize(actor, model.ActionEditInvoice, target); err != nil {
		log.Warn(ctx, "edit denied", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}
	kinds, err := led.KindsOf(edit.Mutations)
	if err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}
	for i, m := range edit.Mutations {
		if err := svc.gate.Authorize(actor, m.Action(), target.WithLine(kinds[i])); err != nil {
			log.Warn(ctx, "mutation denied", logger.ErrorF(err))
			return View{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	conf, err := svc.confirm(ctx, actor, fresh.ID, secret, model.ConfirmEdit)
	if err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(edit.Mutations) > 0 {
		snap, err := svc.catalog.Refresh(ctx)
		if err != nil {
			log.Error(ctx, "catalog refresh", logger.ErrorF(err))
			return View{}, fmt.Errorf("%s: %w", op, err)
		}
		if err := led.ApplyAll(edit.Mutations, snap, stock.NewGuard(snap)); err != nil {
			log.Warn(ctx, "ledger rejected mutations", logger.ErrorF(err))
			return View{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := led.ValidateForSubmit(false); err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	updated, err := svc.backend.EditInvoice(wctx, fresh.ID, mergeEdit(fresh, edit, led.Lines()), conf)
	if err != nil {
		log.Error(ctx, "backend edit invoice",
			logger.Bool("retryable", model.IsRetryable(err)),
			logger.ErrorF(err),
		)
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionEditInvoice, updated.Parent(), updated.Lines)

	return NewView(updated), nil
}

// Delete removes an unpaid invoice after the credential is confirmed.
func (svc *service) Delete(ctx context.Context, actor model.Actor, id int64, secret string) error {
	const op = "invoice.service.Delete"
	log := logger.With(
		logger.Int64("invoice_id", id),
		logger.Int64("actor_id", actor.ID),
	)

	release, ok := svc.flights.TryAcquire(inflight.Key(actor.SessionID, invoiceParent(id)))
	if !ok {
		return fmt.Errorf("%s: %w", op, model.ErrBusy)
	}
	defer release()

	fresh, err := svc.fetch(ctx, id)
	if err != nil {
		log.Error(ctx, "backend invoice by id", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.gate.Authorize(actor, model.ActionDeleteInvoice, permission.InvoiceTarget(fresh)); err != nil {
		log.Warn(ctx, "delete denied", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	conf, err := svc.confirm(ctx, actor, id, secret, model.ConfirmDelete)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	if err := svc.backend.DeleteInvoice(wctx, id, conf); err != nil {
		log.Error(ctx, "backend delete invoice", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionDeleteInvoice, fresh.Parent(), nil)

	return nil
}

// SetPaymentStatus marks an invoice paid or unpaid. Setting the current status
// again returns the invoice unchanged.
func (svc *service) SetPaymentStatus(
	ctx context.Context,
	actor model.Actor,
	id int64,
	status model.PaymentStatus,
) (View, error) {
	const op = "invoice.service.SetPaymentStatus"
	log := logger.With(
		logger.Int64("invoice_id", id),
		logger.Int64("actor_id", actor.ID),
		logger.String("status", string(status)),
	)

	if !status.Valid() {
		return View{}, fmt.Errorf("%s: %w", op, model.ErrUnknownStatus)
	}

	release, ok := svc.flights.TryAcquire(inflight.Key(actor.SessionID, invoiceParent(id)))
	if !ok {
		return View{}, fmt.Errorf("%s: %w", op, model.ErrBusy)
	}
	defer release()

	fresh, err := svc.fetch(ctx, id)
	if err != nil {
		log.Error(ctx, "backend invoice by id", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.gate.Authorize(actor, model.ActionSetPaymentStatus, permission.InvoiceTarget(fresh)); err != nil {
		log.Warn(ctx, "payment status denied", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}
	if fresh.PaymentStatus == status {
		return NewView(fresh), nil
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	updated, err := svc.backend.SetPaymentStatus(wctx, id, status)
	if err != nil {
		log.Error(ctx, "backend set payment status", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionSetPaymentStatus, updated.Parent(), updated.Lines)

	return NewView(updated), nil
}

// CreateFromOrder invoices a DONE order. The persistence service copies the
// order lines and moves the order to INVOICED.
func (svc *service) CreateFromOrder(ctx context.Context, actor model.Actor, in model.InvoiceFromOrder) (View, error) {
	const op = "invoice.service.CreateFromOrder"
	log := logger.With(
		logger.Int64("order_id", in.OrderID),
		logger.Int64("actor_id", actor.ID),
	)

	if !in.PaymentMethod.Valid() {
		return View{}, fmt.Errorf("%s: %w", op,
			model.NewValidationError("payment_method", fmt.Sprintf("unknown payment method %q", in.PaymentMethod)))
	}

	release, ok := svc.flights.TryAcquire(inflight.Key(actor.SessionID, model.Parent{Kind: model.ParentOrder, ID: in.OrderID}))
	if !ok {
		return View{}, fmt.Errorf("%s: %w", op, model.ErrBusy)
	}
	defer release()

	rctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	ord, err := svc.orders.OrderByID(rctx, in.OrderID)
	if err != nil {
		log.Error(ctx, "backend order by id", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.gate.Authorize(actor, model.ActionCreateInvoice, permission.OrderTarget(ord)); err != nil {
		log.Warn(ctx, "create invoice denied", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	led, err := ledger.New(model.Parent{Kind: model.ParentInvoice}, ord.Lines)
	if err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := led.ValidateForSubmit(true); err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	wctx, wcancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer wcancel()

	created, err := svc.backend.CreateInvoice(wctx, in)
	if err != nil {
		log.Error(ctx, "backend create invoice", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionCreateInvoice, created.Parent(), created.Lines)

	return NewView(created), nil
}

// CreateStandalone submits an invoice that has no order behind it.
func (svc *service) CreateStandalone(ctx context.Context, actor model.Actor, draft model.InvoiceDraft) (View, error) {
	const op = "invoice.service.CreateStandalone"
	log := logger.With(
		logger.Int64("client_id", draft.ClientID),
		logger.Int64("actor_id", actor.ID),
	)

	if err := svc.gate.Authorize(actor, model.ActionCreateInvoice, permission.Target{}); err != nil {
		log.Warn(ctx, "create invoice denied", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case draft.ClientID == 0:
		return View{}, fmt.Errorf("%s: %w", op, model.NewValidationError("client_id", "client required"))
	case !draft.PaymentMethod.Valid():
		return View{}, fmt.Errorf("%s: %w", op,
			model.NewValidationError("payment_method", fmt.Sprintf("unknown payment method %q", draft.PaymentMethod)))
	case len(draft.Items) == 0:
		return View{}, fmt.Errorf("%s: %w", op, model.NewValidationError("lines", "at least one item required"))
	}
	for i, item := range draft.Items {
		if err := model.ValidateInput(item); err != nil {
			return View{}, fmt.Errorf("%s: item %d: %w", op, i, err)
		}
	}

	snap, err := svc.catalog.Refresh(ctx)
	if err != nil {
		log.Error(ctx, "catalog refresh", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	led, err := ledger.New(model.Parent{Kind: model.ParentInvoice}, nil)
	if err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	guard := stock.NewGuard(snap)
	for _, item := range draft.Items {
		if _, err := led.AddLine(item, snap, guard); err != nil {
			log.Warn(ctx, "ledger rejected item", logger.ErrorF(err))
			return View{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := led.ValidateForSubmit(true); err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	wctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	created, err := svc.backend.CreateStandaloneInvoice(wctx, draft, led.Lines())
	if err != nil {
		log.Error(ctx, "backend create standalone invoice", logger.ErrorF(err))
		return View{}, fmt.Errorf("%s: %w", op, err)
	}

	svc.recorder.Record(ctx, actor, model.ActionCreateInvoice, created.Parent(), created.Lines)

	return NewView(created), nil
}

func (svc *service) fetch(ctx context.Context, id int64) (*model.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	return svc.backend.InvoiceByID(ctx, id)
}

func (svc *service) confirm(
	ctx context.Context,
	actor model.Actor,
	invoiceID int64,
	secret string,
	operation model.ConfirmOperation,
) (model.Confirmation, error) {
	rctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	return svc.confirmer.Confirm(rctx, actor, invoiceID, secret, operation)
}

func checkFresh(seen, fresh *model.Invoice) error {
	if seen.PaymentStatus != fresh.PaymentStatus {
		return fmt.Errorf("%w: invoice %d is now %s", model.ErrStaleEntity, fresh.ID, fresh.PaymentStatus)
	}
	if !seen.UpdatedAt.IsZero() && !fresh.UpdatedAt.Equal(seen.UpdatedAt) {
		return fmt.Errorf("%w: invoice %d was modified at %s", model.ErrStaleEntity, fresh.ID,
			fresh.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

// mergeEdit builds the full replacement body from the fresh invoice and the edit.
// Direct vehicle and mechanic references are kept unless the edit sets them.
func mergeEdit(fresh *model.Invoice, edit model.InvoiceEdit, lines []model.Line) model.InvoiceUpdate {
	upd := model.InvoiceUpdate{
		PaymentMethod: fresh.PaymentMethod,
		Notes:         fresh.Notes,
		Lines:         lines,
	}
	if fresh.Vehicle != nil {
		upd.VehicleID = &fresh.Vehicle.ID
	}
	if fresh.Mechanic != nil {
		upd.MechanicID = &fresh.Mechanic.ID
	}

	if edit.PaymentMethod != nil {
		upd.PaymentMethod = *edit.PaymentMethod
	}
	if edit.Notes != nil {
		upd.Notes = *edit.Notes
	}
	if edit.VehicleID != nil {
		upd.VehicleID = edit.VehicleID
	}
	if edit.MechanicID != nil {
		upd.MechanicID = edit.MechanicID
	}
	return upd
}

func invoiceParent(id int64) model.Parent { return model.Parent{Kind: model.ParentInvoice, ID: id} }
