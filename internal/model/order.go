package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusReceived   OrderStatus = "RECEIVED"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusDone       OrderStatus = "DONE"
	StatusInvoiced   OrderStatus = "INVOICED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusDone, StatusInvoiced, StatusCancelled:
		return true
	default:
		return false
	}
}

type Order struct {
	ID         int64
	ClientID   int64
	VehicleID  int64
	MechanicID int64

	// Expanded references, present when the persistence service embeds them.
	Client   *Client
	Vehicle  *Vehicle
	Mechanic *Mechanic

	Status OrderStatus
	Notes  string
	Lines  []Line
	// UpdatedAt is the backend modification time, zero when the backend omits it.
	UpdatedAt time.Time
}

// Total is derived from the lines and never stored.
func (o *Order) Total() decimal.Decimal { return SumLines(o.Lines) }

// AssignedTo reports whether the order is assigned to the mechanic.
func (o *Order) AssignedTo(mechanicID *int64) bool {
	return mechanicID != nil && o.MechanicID == *mechanicID
}

func (o *Order) Parent() Parent { return Parent{Kind: ParentOrder, ID: o.ID} }

// OrderDraft is a new order before submission.
type OrderDraft struct {
	ClientID   int64
	VehicleID  int64
	MechanicID int64
	Notes      string
	Items      []LineInput
}

// OrderHeader holds the order fields editable without touching its lines.
type OrderHeader struct {
	MechanicID *int64
	Notes      *string
}

type OrderFilter struct {
	MechanicID *int64
	Statuses   []OrderStatus
}

type ParentKind string

const (
	ParentOrder   ParentKind = "ORDER"
	ParentInvoice ParentKind = "INVOICE"
)

// Parent identifies the order or invoice that owns a ledger.
type Parent struct {
	Kind ParentKind
	ID   int64
}
