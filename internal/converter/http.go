package converter

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/lifecycle"
	"github.com/you-humble/workshop/internal/service/resolver"
)

// ======= Requests =======

type ItemRequest struct {
	Kind        string           `json:"kind"`
	ProductID   int64            `json:"productId,omitempty"`
	ServiceID   int64            `json:"serviceId,omitempty"`
	Description string           `json:"description,omitempty"`
	Quantity    int64            `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
}

type MutationRequest struct {
	Action   string           `json:"action"`
	LineID   int64            `json:"lineId,omitempty"`
	Quantity int64            `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Item     *ItemRequest     `json:"item,omitempty"`
}

// SeenRequest is the version of the entity the caller's edit is based on.
type SeenRequest struct {
	Status        string     `json:"seenStatus"`
	PaymentStatus string     `json:"seenPaymentStatus"`
	UpdatedAt     *time.Time `json:"seenUpdatedAt,omitempty"`
}

type ApplyLinesRequest struct {
	SeenRequest
	Mutations []MutationRequest `json:"mutations"`
}

type CreateOrderBody struct {
	ClientID   int64         `json:"clientId"`
	VehicleID  int64         `json:"vehicleId"`
	MechanicID int64         `json:"mechanicId"`
	Notes      string        `json:"notes"`
	Items      []ItemRequest `json:"items"`
}

type UpdateOrderBody struct {
	SeenRequest
	MechanicID *int64  `json:"mechanicId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type TransitionBody struct {
	Status string `json:"status"`
}

type CreateInvoiceBody struct {
	OrderID       int64  `json:"orderId"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

type StandaloneInvoiceBody struct {
	ClientID      int64         `json:"clientId"`
	VehicleID     *int64        `json:"vehicleId,omitempty"`
	MechanicID    *int64        `json:"mechanicId,omitempty"`
	PaymentMethod string        `json:"paymentMethod"`
	Notes         string        `json:"notes"`
	Items         []ItemRequest `json:"items"`
}

type EditInvoiceBody struct {
	SeenRequest
	Password      string            `json:"password"`
	PaymentMethod *string           `json:"paymentMethod,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
	VehicleID     *int64            `json:"vehicleId,omitempty"`
	MechanicID    *int64            `json:"mechanicId,omitempty"`
	Mutations     []MutationRequest `json:"mutations"`
}

type DeleteInvoiceBody struct {
	Password string `json:"password"`
}

type PaymentStatusBody struct {
	PaymentStatus string `json:"paymentStatus"`
}

// ======= Responses =======

type LineResponse struct {
	ID          int64           `json:"id"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ProductID   *int64          `json:"productId,omitempty"`
	ServiceID   *int64          `json:"serviceId,omitempty"`
}

type AlertResponse struct {
	Document  string    `json:"document"`
	ExpiresAt time.Time `json:"expiresAt"`
	Expired   bool      `json:"expired"`
}

type OrderResponse struct {
	ID           int64           `json:"id"`
	ClientID     int64           `json:"clientId"`
	VehicleID    int64           `json:"vehicleId"`
	MechanicID   int64           `json:"mechanicId"`
	ClientName   string          `json:"clientName,omitempty"`
	VehiclePlate string          `json:"vehiclePlate,omitempty"`
	MechanicName string          `json:"mechanicName,omitempty"`
	Status       string          `json:"status"`
	NextStatuses []string        `json:"nextStatuses"`
	Notes        string          `json:"notes"`
	Lines        []LineResponse  `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
	Alerts       []AlertResponse `json:"alerts,omitempty"`
}

type ResolvedResponse struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Origin string `json:"origin"`
}

type InvoiceResponse struct {
	ID            int64             `json:"id"`
	OrderID       *int64            `json:"orderId,omitempty"`
	ClientID      int64             `json:"clientId"`
	Vehicle       *ResolvedResponse `json:"vehicle,omitempty"`
	Mechanic      *ResolvedResponse `json:"mechanic,omitempty"`
	PaymentMethod string            `json:"paymentMethod"`
	PaymentStatus string            `json:"paymentStatus"`
	PaidAt        *time.Time        `json:"paidAt,omitempty"`
	Notes         string            `json:"notes"`
	Lines         []LineResponse    `json:"lines"`
	Total         decimal.Decimal   `json:"total"`
	UpdatedAt     *time.Time        `json:"updatedAt,omitempty"`
	Alerts        []AlertResponse   `json:"alerts,omitempty"`
}

type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int64           `json:"stock"`
	MinStock  int64           `json:"minStock"`
	LowStock  bool            `json:"lowStock"`
}

type ServiceResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DurationMinutes int             `json:"durationMinutes"`
	RequiresParts   bool            `json:"requiresParts"`
	Active          bool            `json:"active"`
}

type JournalEntryResponse struct {
	ID         string          `json:"id"`
	EntityKind string          `json:"entityKind"`
	EntityID   int64           `json:"entityId"`
	ActorID    int64           `json:"actorId"`
	Role       string          `json:"role"`
	Action     string          `json:"action"`
	Total      decimal.Decimal `json:"total"`
	LineCount  int             `json:"lineCount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Available *int64 `json:"available,omitempty"`
}

// ======= Request conversion =======

func ItemToModel(req ItemRequest) (model.LineInput, error) {
	switch model.LineKind(strings.ToUpper(req.Kind)) {
	case model.KindProduct:
		return model.ProductLine{
			ProductID:   req.ProductID,
			Quantity:    req.Quantity,
			Description: req.Description,
		}, nil
	case model.KindService:
		return model.ServiceLine{ServiceID: req.ServiceID, Description: req.Description}, nil
	case model.KindOther:
		if req.UnitPrice == nil {
			return nil, model.NewValidationError("unitPrice", "price required")
		}
		return model.OtherLine{
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitPrice:   *req.UnitPrice,
		}, nil
	default:
		return nil, model.NewValidationError("kind", fmt.Sprintf("unknown line kind %q", req.Kind))
	}
}

func ItemsToModel(reqs []ItemRequest) ([]model.LineInput, error) {
	items := make([]model.LineInput, 0, len(reqs))
	for _, r := range reqs {
		item, err := ItemToModel(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func MutationToModel(req MutationRequest) (model.LineMutation, error) {
	switch model.Action(strings.ToUpper(req.Action)) {
	case model.ActionAddLine:
		if req.Item == nil {
			return nil, model.NewValidationError("item", "item required")
		}
		item, err := ItemToModel(*req.Item)
		if err != nil {
			return nil, err
		}
		return model.AddLine{Item: item}, nil
	case model.ActionRemoveLine:
		return model.RemoveLine{LineID: req.LineID}, nil
	case model.ActionUpdateQuantity:
		return model.UpdateQuantity{LineID: req.LineID, Quantity: req.Quantity}, nil
	case model.ActionUpdatePrice:
		if req.Price == nil {
			return nil, model.NewValidationError("price", "price required")
		}
		return model.UpdatePrice{LineID: req.LineID, Price: *req.Price}, nil
	default:
		return nil, model.NewValidationError("action", fmt.Sprintf("unknown line action %q", req.Action))
	}
}

func MutationsToModel(reqs []MutationRequest) ([]model.LineMutation, error) {
	muts := make([]model.LineMutation, 0, len(reqs))
	for _, r := range reqs {
		m, err := MutationToModel(r)
		if err != nil {
			return nil, err
		}
		muts = append(muts, m)
	}
	return muts, nil
}

// SeenOrder rebuilds the version of the order the caller based the edit on.
func SeenOrder(id int64, req SeenRequest) *model.Order {
	return &model.Order{
		ID:        id,
		Status:    model.OrderStatus(req.Status),
		UpdatedAt: lo.FromPtr(req.UpdatedAt),
	}
}

func SeenInvoice(id int64, req SeenRequest) *model.Invoice {
	return &model.Invoice{
		ID:            id,
		PaymentStatus: model.PaymentStatus(req.PaymentStatus),
		UpdatedAt:     lo.FromPtr(req.UpdatedAt),
	}
}

func CreateOrderToModel(req CreateOrderBody) (model.OrderDraft, error) {
	items, err := ItemsToModel(req.Items)
	if err != nil {
		return model.OrderDraft{}, err
	}
	return model.OrderDraft{
		ClientID:   req.ClientID,
		VehicleID:  req.VehicleID,
		MechanicID: req.MechanicID,
		Notes:      req.Notes,
		Items:      items,
	}, nil
}

func StandaloneInvoiceToModel(req StandaloneInvoiceBody) (model.InvoiceDraft, error) {
	items, err := ItemsToModel(req.Items)
	if err != nil {
		return model.InvoiceDraft{}, err
	}
	return model.InvoiceDraft{
		ClientID:      req.ClientID,
		VehicleID:     req.VehicleID,
		MechanicID:    req.MechanicID,
		PaymentMethod: model.PaymentMethod(strings.ToUpper(req.PaymentMethod)),
		Notes:         req.Notes,
		Items:         items,
	}, nil
}

func EditInvoiceToModel(req EditInvoiceBody) (model.InvoiceEdit, error) {
	muts, err := MutationsToModel(req.Mutations)
	if err != nil {
		return model.InvoiceEdit{}, err
	}
	edit := model.InvoiceEdit{
		Notes:      req.Notes,
		VehicleID:  req.VehicleID,
		MechanicID: req.MechanicID,
		Mutations:  muts,
	}
	if req.PaymentMethod != nil {
		edit.PaymentMethod = lo.ToPtr(model.PaymentMethod(strings.ToUpper(*req.PaymentMethod)))
	}
	return edit, nil
}

// ======= Response conversion =======

func LinesToResponse(lines []model.Line) []LineResponse {
	return lo.Map(lines, func(l model.Line, _ int) LineResponse {
		return LineResponse{
			ID:          l.ID,
			Kind:        string(l.Kind),
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
			ProductID:   l.ProductID,
			ServiceID:   l.ServiceID,
		}
	})
}

func AlertsToResponse(v *model.Vehicle, now time.Time, window time.Duration) []AlertResponse {
	if v == nil {
		return nil
	}
	return lo.Map(v.ExpiringDocuments(now, window), func(d model.DocumentExpiry, _ int) AlertResponse {
		return AlertResponse{Document: string(d.Kind), ExpiresAt: d.ExpiresAt, Expired: d.Expired}
	})
}

func OrderToResponse(o *model.Order, now time.Time, window time.Duration) OrderResponse {
	next := lo.Map(lifecycle.Next(o.Status), func(s model.OrderStatus, _ int) string { return string(s) })

	resp := OrderResponse{
		ID:           o.ID,
		ClientID:     o.ClientID,
		VehicleID:    o.VehicleID,
		MechanicID:   o.MechanicID,
		Status:       string(o.Status),
		NextStatuses: next,
		Notes:        o.Notes,
		Lines:        LinesToResponse(o.Lines),
		Total:        o.Total(),
		UpdatedAt:    timePtr(o.UpdatedAt),
		Alerts:       AlertsToResponse(o.Vehicle, now, window),
	}
	if o.Client != nil {
		resp.ClientName = o.Client.Name
	}
	if o.Vehicle != nil {
		resp.VehiclePlate = o.Vehicle.Plate
	}
	if o.Mechanic != nil {
		resp.MechanicName = o.Mechanic.Name
	}
	return resp
}

func OrdersToResponse(orders []*model.Order, now time.Time, window time.Duration) []OrderResponse {
	return lo.Map(orders, func(o *model.Order, _ int) OrderResponse { return OrderToResponse(o, now, window) })
}

func InvoiceToResponse(
	inv *model.Invoice,
	vehicle resolver.Resolved[model.Vehicle],
	mechanic resolver.Resolved[model.Mechanic],
	total decimal.Decimal,
	now time.Time,
	window time.Duration,
) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		ClientID:      inv.ClientID,
		PaymentMethod: string(inv.PaymentMethod),
		PaymentStatus: string(inv.PaymentStatus),
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
		Lines:         LinesToResponse(inv.Lines),
		Total:         total,
		UpdatedAt:     timePtr(inv.UpdatedAt),
		Alerts:        AlertsToResponse(vehicle.Value, now, window),
	}
	if vehicle.Found() {
		resp.Vehicle = &ResolvedResponse{ID: vehicle.Value.ID, Label: vehicle.Value.Plate, Origin: string(vehicle.Origin)}
	}
	if mechanic.Found() {
		resp.Mechanic = &ResolvedResponse{ID: mechanic.Value.ID, Label: mechanic.Value.Name, Origin: string(mechanic.Origin)}
	}
	return resp
}

func ProductsToResponse(products []model.Product) []ProductResponse {
	return lo.Map(products, func(p model.Product, _ int) ProductResponse {
		return ProductResponse{
			ID:        p.ID,
			Name:      p.Name,
			Code:      p.Code,
			Category:  p.Category,
			UnitPrice: p.UnitPrice,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			LowStock:  p.LowStock(),
		}
	})
}

func ServicesToResponse(services []model.Service) []ServiceResponse {
	return lo.Map(services, func(s model.Service, _ int) ServiceResponse {
		return ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Category:        s.Category,
			UnitPrice:       s.UnitPrice,
			DurationMinutes: s.DurationMinutes,
			RequiresParts:   s.RequiresParts,
			Active:          s.Active,
		}
	})
}

func JournalToResponse(entries []model.JournalEntry) []JournalEntryResponse {
	return lo.Map(entries, func(e model.JournalEntry, _ int) JournalEntryResponse {
		return JournalEntryResponse{
			ID:         e.ID.String(),
			EntityKind: string(e.Parent.Kind),
			EntityID:   e.Parent.ID,
			ActorID:    e.ActorID,
			Role:       string(e.Role),
			Action:     string(e.Action),
			Total:      e.Total,
			LineCount:  e.LineCount,
			CreatedAt:  e.CreatedAt,
		}
	})
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
