package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type LineKind string

const (
	KindProduct LineKind = "PRODUCT"
	KindService LineKind = "SERVICE"
	KindOther   LineKind = "OTHER"
)

func (k LineKind) Valid() bool {
	switch k {
	case KindProduct, KindService, KindOther:
		return true
	default:
		return false
	}
}

// Line is one billable row of an order or an invoice.
type Line struct {
	// ID is assigned by the persistence service. Lines added locally and not yet
	// committed carry a negative temporary id.
	ID          int64
	Kind        LineKind
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	// ProductID is set only on PRODUCT lines, ServiceID only on SERVICE lines.
	ProductID *int64
	ServiceID *int64
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Persisted reports whether the line already exists on the backend.
func (l Line) Persisted() bool { return l.ID > 0 }

func (l Line) Validate() error {
	if !l.Kind.Valid() {
		return NewValidationError("kind", "unknown line kind "+string(l.Kind))
	}
	if strings.TrimSpace(l.Description) == "" {
		return NewValidationError("description", "empty description")
	}
	if l.Quantity < 1 {
		return NewValidationError("quantity", "quantity must be at least 1")
	}
	if l.UnitPrice.IsNegative() {
		return NewValidationError("unit_price", "negative price")
	}

	switch l.Kind {
	case KindProduct:
		if l.ProductID == nil || l.ServiceID != nil {
			return NewValidationError("product_id", "product line must reference exactly one product")
		}
	case KindService:
		if l.ServiceID == nil || l.ProductID != nil {
			return NewValidationError("service_id", "service line must reference exactly one service")
		}
		if l.Quantity != 1 {
			return NewValidationError("quantity", "service line quantity is always 1")
		}
	case KindOther:
		if l.ProductID != nil || l.ServiceID != nil {
			return NewValidationError("kind", "free-form line cannot reference the catalog")
		}
	}

	return nil
}

// LineInput is the payload of a new line. It is one of ProductLine, ServiceLine
// or OtherLine.
type LineInput interface {
	Kind() LineKind
	lineInput()
}

// ProductLine adds a catalog product. The unit price is always taken from the catalog.
type ProductLine struct {
	ProductID   int64
	Quantity    int64
	Description string
}

// ServiceLine adds a catalog service. Its quantity is always 1.
type ServiceLine struct {
	ServiceID   int64
	Description string
}

// OtherLine is a free-form charge outside the catalog.
type OtherLine struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

func (ProductLine) Kind() LineKind { return KindProduct }
func (ServiceLine) Kind() LineKind { return KindService }
func (OtherLine) Kind() LineKind   { return KindOther }

func (ProductLine) lineInput() {}
func (ServiceLine) lineInput() {}
func (OtherLine) lineInput()   {}

// LineMutation is one requested change of a ledger. It is one of AddLine,
// RemoveLine, UpdateQuantity or UpdatePrice.
type LineMutation interface {
	Action() Action
	lineMutation()
}

type AddLine struct {
	Item LineInput
}

type RemoveLine struct {
	LineID int64
}

type UpdateQuantity struct {
	LineID   int64
	Quantity int64
}

type UpdatePrice struct {
	LineID int64
	Price  decimal.Decimal
}

func (AddLine) Action() Action        { return ActionAddLine }
func (RemoveLine) Action() Action     { return ActionRemoveLine }
func (UpdateQuantity) Action() Action { return ActionUpdateQuantity }
func (UpdatePrice) Action() Action    { return ActionUpdatePrice }

func (AddLine) lineMutation()        {}
func (RemoveLine) lineMutation()     {}
func (UpdateQuantity) lineMutation() {}
func (UpdatePrice) lineMutation()    {}

// ValidateInput checks what can be known about item without the catalog.
func ValidateInput(item LineInput) error {
	switch it := item.(type) {
	case ProductLine:
		if it.Quantity < 1 {
			return NewValidationError("quantity", "quantity must be at least 1")
		}
	case OtherLine:
		switch {
		case strings.TrimSpace(it.Description) == "":
			return NewValidationError("description", "empty description")
		case it.Quantity < 1:
			return NewValidationError("quantity", "quantity must be at least 1")
		case it.UnitPrice.IsNegative():
			return NewValidationError("unit_price", "negative price")
		}
	case nil:
		return NewValidationError("item", "empty line item")
	}
	return nil
}

// ValidateMutations rejects a malformed batch before anything is fetched. Checks
// that need the current lines or the catalog stay with the ledger.
func ValidateMutations(muts []LineMutation) error {
	for i, m := range muts {
		if err := validateMutation(m); err != nil {
			return fmt.Errorf("mutation %d: %w", i, err)
		}
	}
	return nil
}

func validateMutation(m LineMutation) error {
	switch m := m.(type) {
	case AddLine:
		return ValidateInput(m.Item)
	case UpdateQuantity:
		if m.Quantity < 1 {
			return NewValidationError("quantity", "quantity must be at least 1")
		}
	case UpdatePrice:
		if m.Price.IsNegative() {
			return NewValidationError("unit_price", "negative price")
		}
	case nil:
		return NewValidationError("mutation", "empty mutation")
	}
	return nil
}

// TargetLineID returns the id of the line a mutation addresses, or 0 for AddLine.
func TargetLineID(m LineMutation) int64 {
	switch m := m.(type) {
	case RemoveLine:
		return m.LineID
	case UpdateQuantity:
		return m.LineID
	case UpdatePrice:
		return m.LineID
	default:
		return 0
	}
}

// FindLine returns the line with id from lines.
func FindLine(lines []Line, id int64) (Line, bool) {
	for _, l := range lines {
		if l.ID == id {
			return l, true
		}
	}
	return Line{}, false
}

func CloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// SumLines is the derived total of lines.
func SumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
