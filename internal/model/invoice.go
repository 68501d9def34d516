package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "PAID"
	PaymentUnpaid PaymentStatus = "UNPAID"
)

func (s PaymentStatus) Valid() bool { return s == PaymentPaid || s == PaymentUnpaid }

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCredit   PaymentMethod = "CREDIT"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCredit:
		return true
	default:
		return false
	}
}

type Invoice struct {
	ID int64
	// OrderID is nil for a standalone invoice.
	OrderID *int64
	// Order is the linked order as embedded by the persistence service.
	Order    *Order
	ClientID int64

	// Direct references override whatever the linked order carries. Read them
	// through the resolver.
	Vehicle  *Vehicle
	Mechanic *Mechanic

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	PaidAt        *time.Time
	Notes         string
	Lines         []Line
	UpdatedAt     time.Time
}

func (inv *Invoice) Total() decimal.Decimal { return SumLines(inv.Lines) }

func (inv *Invoice) Standalone() bool { return inv.OrderID == nil }

func (inv *Invoice) Paid() bool { return inv.PaymentStatus == PaymentPaid }

func (inv *Invoice) Parent() Parent { return Parent{Kind: ParentInvoice, ID: inv.ID} }

// InvoiceDraft is a standalone invoice before submission.
type InvoiceDraft struct {
	ClientID      int64
	VehicleID     *int64
	MechanicID    *int64
	PaymentMethod PaymentMethod
	Notes         string
	Items         []LineInput
}

// InvoiceEdit is a set of changes applied to an invoice in one confirmed edit.
type InvoiceEdit struct {
	PaymentMethod *PaymentMethod
	Notes         *string
	VehicleID     *int64
	MechanicID    *int64
	Mutations     []LineMutation
}

// InvoiceFromOrder converts a DONE order into an invoice.
type InvoiceFromOrder struct {
	OrderID       int64
	PaymentMethod PaymentMethod
	Notes         string
}

// InvoiceUpdate is the full replacement body sent to the persistence service.
type InvoiceUpdate struct {
	PaymentMethod PaymentMethod
	Notes         string
	VehicleID     *int64
	MechanicID    *int64
	Lines         []Line
}

type ConfirmOperation string

const (
	ConfirmEdit   ConfirmOperation = "EDIT"
	ConfirmDelete ConfirmOperation = "DELETE"
)

// Confirmation is the secondary credential attached to a sensitive invoice operation.
type Confirmation struct {
	Secret    string
	Operation ConfirmOperation
}
