package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/workshop/internal/converter"
	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/catalog"
	invoice "github.com/you-humble/workshop/internal/service/invoice"
	"github.com/you-humble/workshop/internal/service/resolver"
)

const maxBodyBytes = 1 << 20

type OrderService interface {
	Open(ctx context.Context, actor model.Actor, id int64) (*model.Order, error)
	ApplyLines(ctx context.Context, actor model.Actor, seen *model.Order, mutations ...model.LineMutation) (*model.Order, error)
	Create(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error)
	Update(ctx context.Context, actor model.Actor, seen *model.Order, header model.OrderHeader) (*model.Order, error)
	Transition(ctx context.Context, actor model.Actor, id int64, to model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error
	ListForMechanic(ctx context.Context, actor model.Actor) ([]*model.Order, error)
}

type InvoiceService interface {
	Open(ctx context.Context, actor model.Actor, id int64) (invoice.View, error)
	List(ctx context.Context, actor model.Actor, filter resolver.VehicleFilter) ([]invoice.View, error)
	Edit(ctx context.Context, actor model.Actor, seen *model.Invoice, secret string, edit model.InvoiceEdit) (invoice.View, error)
	Delete(ctx context.Context, actor model.Actor, id int64, secret string) error
	SetPaymentStatus(ctx context.Context, actor model.Actor, id int64, status model.PaymentStatus) (invoice.View, error)
	CreateFromOrder(ctx context.Context, actor model.Actor, in model.InvoiceFromOrder) (invoice.View, error)
	CreateStandalone(ctx context.Context, actor model.Actor, draft model.InvoiceDraft) (invoice.View, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error)
	InStock(ctx context.Context) ([]model.Product, error)
	LowStock(ctx context.Context) ([]model.Product, error)
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

type JournalReader interface {
	List(ctx context.Context, filter model.JournalFilter) ([]model.JournalEntry, error)
}

type handler struct {
	orders       OrderService
	invoices     InvoiceService
	catalog      CatalogService
	journal      JournalReader
	expiryWindow time.Duration
	now          func() time.Time
}

func NewWorkshopHandler(
	orders OrderService,
	invoices InvoiceService,
	catalog CatalogService,
	journal JournalReader,
	expiryWindow time.Duration,
) *handler {
	return &handler{
		orders:       orders,
		invoices:     invoices,
		catalog:      catalog,
		journal:      journal,
		expiryWindow: expiryWindow,
		now:          time.Now,
	}
}

// Routes mounts the API on r. Every route requires the actor headers.
func (h *handler) Routes(r chi.Router, forward TokenForwarder) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticate(forward))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", h.ListProducts)
			r.Get("/products/low-stock", h.ListLowStock)
			r.Get("/services", h.ListServices)
			r.Post("/refresh", h.RefreshCatalog)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/mine", h.ListMyOrders)
			r.Post("/", h.CreateOrder)
			r.Get("/{id}", h.GetOrder)
			r.Put("/{id}", h.UpdateOrder)
			r.Patch("/{id}/status", h.TransitionOrder)
			r.Post("/{id}/lines", h.ApplyOrderLines)
			r.Delete("/{id}", h.DeleteOrder)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.ListInvoices)
			r.Post("/", h.CreateInvoice)
			r.Post("/standalone", h.CreateStandaloneInvoice)
			r.Get("/{id}", h.GetInvoice)
			r.Post("/{id}/edit", h.EditInvoice)
			r.Patch("/{id}/payment-status", h.SetPaymentStatus)
			r.Delete("/{id}", h.DeleteInvoice)
		})

		r.Get("/journal", h.ListJournal)
	})
}

// ======= Catalog =======

// ListProducts returns only products in stock to mechanics.
func (h *handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	list := h.catalog.ListProducts
	if actor.IsMechanic() || r.URL.Query().Get("inStock") == "true" {
		list = h.catalog.InStock
	}

	products, err := list(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, converter.ProductsToResponse(products))
}

func (h *handler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.LowStock(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, converter.ProductsToResponse(products))
}

func (h *handler) ListServices(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") != "false"

	services, err := h.catalog.ListServices(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, converter.ServicesToResponse(services))
}

func (h *handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	if !actor.IsAdministrator() {
		writeError(w, r, model.Deny("REFRESH_CATALOG", "only administrators can refresh the catalog"))
		return
	}

	snap, err := h.catalog.Refresh(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"products": len(snap.Products()),
		"services": len(snap.Services(false)),
		"takenAt":  snap.TakenAt(),
	})
}

// ======= Orders =======

func (h *handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	orders, err := h.orders.ListForMechanic(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, converter.OrdersToResponse(orders, h.now(), h.expiryWindow))
}

func (h *handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ord, err := h.orders.Open(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeOrder(w, r, http.StatusOK, ord)
}

func (h *handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req converter.CreateOrderBody
	if !decode(w, r, &req) {
		return
	}
	draft, err := converter.CreateOrderToModel(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ord, err := h.orders.Create(r.Context(), actor, draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeOrder(w, r, http.StatusCreated, ord)
}

func (h *handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req converter.UpdateOrderBody
	if !decode(w, r, &req) {
		return
	}

	header := model.OrderHeader{MechanicID: req.MechanicID, Notes: req.Notes}
	ord, err := h.orders.Update(r.Context(), actor, converter.SeenOrder(id, req.SeenRequest), header)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeOrder(w, r, http.StatusOK, ord)
}

func (h *handler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req converter.TransitionBody
	if !decode(w, r, &req) {
		return
	}

	to := model.OrderStatus(strings.ToUpper(req.Status))
	ord, err := h.orders.Transition(r.Context(), actor, id, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeOrder(w, r, http.StatusOK, ord)
}

func (h *handler) ApplyOrderLines(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req converter.ApplyLinesRequest
	if !decode(w, r, &req) {
		return
	}
	muts, err := converter.MutationsToModel(req.Mutations)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ord, err := h.orders.ApplyLines(r.Context(), actor, converter.SeenOrder(id, req.SeenRequest), muts...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeOrder(w, r, http.StatusOK, ord)
}

func (h *handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ======= Invoices =======

func (h *handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	filter := resolver.VehicleFilter(strings.ToUpper(r.URL.Query().Get("vehicle")))
	if filter == "" {
		filter = resolver.FilterAll
	}

	views, err := h.invoices.List(r.Context(), actor, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]converter.InvoiceResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, h.invoiceResponse(v))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.invoices.Open(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.invoiceResponse(view))
}

func (h *handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req converter.CreateInvoiceBody
	if !decode(w, r, &req) {
		return
	}

	view, err := h.invoices.CreateFromOrder(r.Context(), actor, model.InvoiceFromOrder{
		OrderID:       req.OrderID,
		PaymentMethod: model.PaymentMethod(strings.ToUpper(req.PaymentMethod)),
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, h.invoiceResponse(view))
}

func (h *handler) CreateStandaloneInvoice(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req converter.StandaloneInvoiceBody
	if !decode(w, r, &req) {
		return
	}
	draft, err := converter.StandaloneInvoiceToModel(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.invoices.CreateStandalone(r.Context(), actor, draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, h.invoiceResponse(view))
}

func (h *handler) EditInvoice(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req converter.EditInvoiceBody
	if !decode(w, r, &req) {
		return
	}
	edit, err := converter.EditInvoiceToModel(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.invoices.Edit(r.Context(), actor, converter.SeenInvoice(id, req.SeenRequest), req.Password, edit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.invoiceResponse(view))
}

func (h *handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req converter.PaymentStatusBody
	if !decode(w, r, &req) {
		return
	}

	status := model.PaymentStatus(strings.ToUpper(req.PaymentStatus))
	view, err := h.invoices.SetPaymentStatus(r.Context(), actor, id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.invoiceResponse(view))
}

func (h *handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req converter.DeleteInvoiceBody
	if !decode(w, r, &req) {
		return
	}

	if err := h.invoices.Delete(r.Context(), actor, id, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ======= Journal =======

func (h *handler) ListJournal(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	if !actor.IsAdministrator() {
		writeError(w, r, model.Deny("READ_JOURNAL", "only administrators can read the journal"))
		return
	}

	q := r.URL.Query()
	var filter model.JournalFilter

	if kind := q.Get("kind"); kind != "" {
		id, err := strconv.ParseInt(q.Get("id"), 10, 64)
		if err != nil {
			writeError(w, r, model.NewValidationError("id", "entity id required with kind"))
			return
		}
		filter.Parent = &model.Parent{Kind: model.ParentKind(strings.ToUpper(kind)), ID: id}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, r, model.NewValidationError("limit", "limit must be a positive number"))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.journal.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, converter.JournalToResponse(entries))
}

func (h *handler) writeOrder(w http.ResponseWriter, r *http.Request, status int, ord *model.Order) {
	writeJSON(w, r, status, converter.OrderToResponse(ord, h.now(), h.expiryWindow))
}

func (h *handler) invoiceResponse(v invoice.View) converter.InvoiceResponse {
	return converter.InvoiceToResponse(v.Invoice, v.Vehicle, v.Mechanic, v.Total, h.now(), h.expiryWindow)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, model.NewValidationError("id", "invalid id"))
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, model.NewValidationError("body", "malformed JSON body"))
		return false
	}
	return true
}
