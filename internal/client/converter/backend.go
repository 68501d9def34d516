package converter

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/workshop/internal/model"
)

// Wire shapes of the persistence service. Field names follow its camelCase JSON.

type LineDTO struct {
	ID          int64           `json:"id,omitempty"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	ProductID   *int64          `json:"productId,omitempty"`
	ServiceID   *int64          `json:"serviceId,omitempty"`
}

type ClientDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DocumentID   string `json:"documentId"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Municipality string `json:"municipality"`
}

type VehicleDTO struct {
	ID                  int64      `json:"id"`
	ClientID            int64      `json:"clientId"`
	Plate               string     `json:"plate"`
	Make                string     `json:"make"`
	Model               string     `json:"model"`
	Year                int        `json:"year"`
	Displacement        int        `json:"displacement"`
	Color               string     `json:"color"`
	Odometer            int64      `json:"odometer"`
	SoatExpiresAt       *time.Time `json:"soatExpiresAt,omitempty"`
	InspectionExpiresAt *time.Time `json:"inspectionExpiresAt,omitempty"`
	Active              bool       `json:"active"`
}

type MechanicDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Active    bool   `json:"active"`
}

type ProductDTO struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int64           `json:"stock"`
	MinStock  int64           `json:"minStock"`
}

type ServiceDTO struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DurationMinutes int             `json:"durationMinutes"`
	RequiresParts   bool            `json:"requiresParts"`
	Active          bool            `json:"active"`
}

type OrderDTO struct {
	ID         int64        `json:"id"`
	ClientID   int64        `json:"clientId"`
	VehicleID  int64        `json:"vehicleId"`
	MechanicID int64        `json:"mechanicId"`
	Client     *ClientDTO   `json:"client,omitempty"`
	Vehicle    *VehicleDTO  `json:"vehicle,omitempty"`
	Mechanic   *MechanicDTO `json:"mechanic,omitempty"`
	Status     string       `json:"status"`
	Notes      string       `json:"notes"`
	Lines      []LineDTO    `json:"lines"`
	UpdatedAt  *time.Time   `json:"updatedAt,omitempty"`
}

type InvoiceDTO struct {
	ID            int64        `json:"id"`
	OrderID       *int64       `json:"orderId,omitempty"`
	Order         *OrderDTO    `json:"order,omitempty"`
	ClientID      int64        `json:"clientId"`
	Vehicle       *VehicleDTO  `json:"vehicle,omitempty"`
	Mechanic      *MechanicDTO `json:"mechanic,omitempty"`
	PaymentMethod string       `json:"paymentMethod"`
	PaymentStatus string       `json:"paymentStatus"`
	PaidAt        *time.Time   `json:"paidAt,omitempty"`
	Notes         string       `json:"notes"`
	Lines         []LineDTO    `json:"lines"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`
}

type CreateOrderRequest struct {
	ClientID   int64     `json:"clientId"`
	VehicleID  int64     `json:"vehicleId"`
	MechanicID int64     `json:"mechanicId"`
	Notes      string    `json:"notes"`
	Lines      []LineDTO `json:"lines"`
}

type UpdateOrderRequest struct {
	MechanicID *int64  `json:"mechanicId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type LinesRequest struct {
	Lines []LineDTO `json:"lines"`
}

type CreateInvoiceRequest struct {
	OrderID       int64  `json:"orderId"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

type StandaloneInvoiceRequest struct {
	ClientID      int64     `json:"clientId"`
	VehicleID     *int64    `json:"vehicleId,omitempty"`
	MechanicID    *int64    `json:"mechanicId,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         string    `json:"notes"`
	Lines         []LineDTO `json:"lines"`
}

// ConfirmationDTO is the {password, action} payload of sensitive invoice calls.
type ConfirmationDTO struct {
	Password string `json:"password"`
	Action   string `json:"action"`
}

type EditInvoiceRequest struct {
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	VehicleID     *int64          `json:"vehicleId,omitempty"`
	MechanicID    *int64          `json:"mechanicId,omitempty"`
	Lines         []LineDTO       `json:"lines"`
	Confirmation  ConfirmationDTO `json:"confirmation"`
}

type PaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

type ValidateCredentialResponse struct {
	Valid bool `json:"valid"`
}

// ErrorDTO is the structured error body of the persistence service.
type ErrorDTO struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ProductID int64  `json:"productId,omitempty"`
	Requested int64  `json:"requested,omitempty"`
	Available *int64 `json:"available,omitempty"`
}

func LineToModel(d LineDTO) model.Line {
	return model.Line{
		ID:          d.ID,
		Kind:        model.LineKind(d.Kind),
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		ProductID:   d.ProductID,
		ServiceID:   d.ServiceID,
	}
}

// LinesToDTO drops the temporary ids of lines that were never committed.
func LinesToDTO(lines []model.Line) []LineDTO {
	return lo.Map(lines, func(l model.Line, _ int) LineDTO {
		d := LineDTO{
			Kind:        string(l.Kind),
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			ProductID:   l.ProductID,
			ServiceID:   l.ServiceID,
		}
		if l.Persisted() {
			d.ID = l.ID
		}
		return d
	})
}

func LinesToModel(lines []LineDTO) []model.Line {
	return lo.Map(lines, func(d LineDTO, _ int) model.Line { return LineToModel(d) })
}

func ClientToModel(d ClientDTO) model.Client {
	return model.Client{
		ID:           d.ID,
		Name:         d.Name,
		DocumentID:   d.DocumentID,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		Municipality: d.Municipality,
	}
}

func VehicleToModel(d VehicleDTO) model.Vehicle {
	return model.Vehicle{
		ID:                  d.ID,
		ClientID:            d.ClientID,
		Plate:               model.NormalizePlate(d.Plate),
		Make:                d.Make,
		Model:               d.Model,
		Year:                d.Year,
		Displacement:        d.Displacement,
		Color:               d.Color,
		Odometer:            d.Odometer,
		SoatExpiresAt:       d.SoatExpiresAt,
		InspectionExpiresAt: d.InspectionExpiresAt,
		Active:              d.Active,
	}
}

func MechanicToModel(d MechanicDTO) model.Mechanic {
	return model.Mechanic{
		ID:        d.ID,
		Name:      d.Name,
		Specialty: d.Specialty,
		Phone:     d.Phone,
		Email:     d.Email,
		Active:    d.Active,
	}
}

func ProductToModel(d ProductDTO) model.Product {
	return model.Product{
		ID:        d.ID,
		Name:      d.Name,
		Code:      d.Code,
		Category:  d.Category,
		UnitPrice: d.UnitPrice,
		Stock:     d.Stock,
		MinStock:  d.MinStock,
	}
}

func ServiceToModel(d ServiceDTO) model.Service {
	return model.Service{
		ID:              d.ID,
		Name:            d.Name,
		Category:        d.Category,
		UnitPrice:       d.UnitPrice,
		DurationMinutes: d.DurationMinutes,
		RequiresParts:   d.RequiresParts,
		Active:          d.Active,
	}
}

func OrderToModel(d OrderDTO) *model.Order {
	ord := &model.Order{
		ID:         d.ID,
		ClientID:   d.ClientID,
		VehicleID:  d.VehicleID,
		MechanicID: d.MechanicID,
		Status:     model.OrderStatus(d.Status),
		Notes:      d.Notes,
		Lines:      LinesToModel(d.Lines),
		UpdatedAt:  lo.FromPtr(d.UpdatedAt),
	}
	if d.Client != nil {
		ord.Client = lo.ToPtr(ClientToModel(*d.Client))
	}
	if d.Vehicle != nil {
		ord.Vehicle = lo.ToPtr(VehicleToModel(*d.Vehicle))
	}
	if d.Mechanic != nil {
		ord.Mechanic = lo.ToPtr(MechanicToModel(*d.Mechanic))
	}
	return ord
}

func InvoiceToModel(d InvoiceDTO) *model.Invoice {
	inv := &model.Invoice{
		ID:            d.ID,
		OrderID:       d.OrderID,
		ClientID:      d.ClientID,
		PaymentMethod: model.PaymentMethod(d.PaymentMethod),
		PaymentStatus: model.PaymentStatus(d.PaymentStatus),
		PaidAt:        d.PaidAt,
		Notes:         d.Notes,
		Lines:         LinesToModel(d.Lines),
		UpdatedAt:     lo.FromPtr(d.UpdatedAt),
	}
	if d.Order != nil {
		inv.Order = OrderToModel(*d.Order)
	}
	if d.Vehicle != nil {
		inv.Vehicle = lo.ToPtr(VehicleToModel(*d.Vehicle))
	}
	if d.Mechanic != nil {
		inv.Mechanic = lo.ToPtr(MechanicToModel(*d.Mechanic))
	}
	return inv
}

func CreateOrderToDTO(draft model.OrderDraft, lines []model.Line) CreateOrderRequest {
	return CreateOrderRequest{
		ClientID:   draft.ClientID,
		VehicleID:  draft.VehicleID,
		MechanicID: draft.MechanicID,
		Notes:      draft.Notes,
		Lines:      LinesToDTO(lines),
	}
}

func StandaloneInvoiceToDTO(draft model.InvoiceDraft, lines []model.Line) StandaloneInvoiceRequest {
	return StandaloneInvoiceRequest{
		ClientID:      draft.ClientID,
		VehicleID:     draft.VehicleID,
		MechanicID:    draft.MechanicID,
		PaymentMethod: string(draft.PaymentMethod),
		Notes:         draft.Notes,
		Lines:         LinesToDTO(lines),
	}
}

func ConfirmationToDTO(c model.Confirmation) ConfirmationDTO {
	return ConfirmationDTO{Password: c.Secret, Action: string(c.Operation)}
}

func EditInvoiceToDTO(upd model.InvoiceUpdate, conf model.Confirmation) EditInvoiceRequest {
	return EditInvoiceRequest{
		PaymentMethod: string(upd.PaymentMethod),
		Notes:         upd.Notes,
		VehicleID:     upd.VehicleID,
		MechanicID:    upd.MechanicID,
		Lines:         LinesToDTO(upd.Lines),
		Confirmation:  ConfirmationToDTO(conf),
	}
}
