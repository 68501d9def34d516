// Package ledger keeps the ordered line items of one order or invoice and the
// total derived from them.
package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/you-humble/workshop/internal/model"
)

type Catalog interface {
	Product(id int64) (model.Product, bool)
	Service(id int64) (model.Service, bool)
}

type StockGuard interface {
	CheckQuantity(productID, qty int64) error
	CheckRelease(held, released int64) error
}

// Ledger is not safe for concurrent use. Every mutation either fully applies and
// recomputes the total or leaves the ledger untouched.
type Ledger struct {
	parent model.Parent
	lines  []model.Line
	total  decimal.Decimal
	nextID int64
}

func New(parent model.Parent, lines []model.Line) (*Ledger, error) {
	seen := make(map[int64]struct{}, len(lines))
	nextID := int64(-1)

	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if _, dup := seen[line.ID]; dup {
			return nil, model.NewValidationError("id", fmt.Sprintf("duplicate line id %d", line.ID))
		}
		seen[line.ID] = struct{}{}

		if line.ID <= nextID {
			nextID = line.ID - 1
		}
	}

	l := &Ledger{parent: parent, nextID: nextID}
	l.commit(model.CloneLines(lines))

	return l, nil
}

func (l *Ledger) Parent() model.Parent { return l.parent }

func (l *Ledger) Lines() []model.Line { return model.CloneLines(l.lines) }

func (l *Ledger) Len() int { return len(l.lines) }

func (l *Ledger) Total() decimal.Decimal { return l.total }

// Total sums quantity × unit price over lines.
func Total(lines []model.Line) decimal.Decimal { return model.SumLines(lines) }

// AddLine appends a line built from item. Product and service prices come from
// the catalog, a service line always has quantity 1 and a product quantity must
// pass the stock guard.
func (l *Ledger) AddLine(item model.LineInput, cat Catalog, guard StockGuard) (model.Line, error) {
	line, err := l.build(item, cat, guard)
	if err != nil {
		return model.Line{}, err
	}
	if err := line.Validate(); err != nil {
		return model.Line{}, err
	}

	next := append(model.CloneLines(l.lines), line)
	l.nextID--
	l.commit(next)

	return line, nil
}

func (l *Ledger) RemoveLine(lineID int64, guard StockGuard) error {
	idx, err := l.index(lineID)
	if err != nil {
		return err
	}

	line := l.lines[idx]
	if line.Kind == model.KindProduct {
		if err := guard.CheckRelease(line.Quantity, line.Quantity); err != nil {
			return err
		}
	}

	next := make([]model.Line, 0, len(l.lines)-1)
	next = append(next, l.lines[:idx]...)
	next = append(next, l.lines[idx+1:]...)
	l.commit(next)

	return nil
}

func (l *Ledger) UpdateQuantity(lineID, qty int64, guard StockGuard) error {
	idx, err := l.index(lineID)
	if err != nil {
		return err
	}

	line := l.lines[idx]
	switch {
	case line.Kind == model.KindService:
		return model.NewValidationError("quantity", "service lines are not quantity-adjustable")
	case qty < 1:
		return model.NewValidationError("quantity", "quantity must be at least 1")
	case line.Kind == model.KindProduct:
		if err := guard.CheckQuantity(*line.ProductID, qty); err != nil {
			return err
		}
		if qty < line.Quantity {
			if err := guard.CheckRelease(line.Quantity, line.Quantity-qty); err != nil {
				return err
			}
		}
	}

	next := model.CloneLines(l.lines)
	next[idx].Quantity = qty
	l.commit(next)

	return nil
}

// UpdatePrice overrides the unit price of a line. Who may do so is decided by
// the permission gate.
func (l *Ledger) UpdatePrice(lineID int64, price decimal.Decimal) error {
	idx, err := l.index(lineID)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return model.NewValidationError("unit_price", "negative price")
	}

	next := model.CloneLines(l.lines)
	next[idx].UnitPrice = price
	l.commit(next)

	return nil
}

func (l *Ledger) Apply(m model.LineMutation, cat Catalog, guard StockGuard) error {
	switch m := m.(type) {
	case model.AddLine:
		_, err := l.AddLine(m.Item, cat, guard)
		return err
	case model.RemoveLine:
		return l.RemoveLine(m.LineID, guard)
	case model.UpdateQuantity:
		return l.UpdateQuantity(m.LineID, m.Quantity, guard)
	case model.UpdatePrice:
		return l.UpdatePrice(m.LineID, m.Price)
	case nil:
		return model.NewValidationError("mutation", "empty mutation")
	default:
		return model.NewValidationError("mutation", fmt.Sprintf("unsupported mutation %T", m))
	}
}

// ApplyAll applies every mutation in order. If one fails none of them is kept.
func (l *Ledger) ApplyAll(muts []model.LineMutation, cat Catalog, guard StockGuard) error {
	work := l.clone()
	for i, m := range muts {
		if err := work.Apply(m, cat, guard); err != nil {
			return fmt.Errorf("mutation %d: %w", i, err)
		}
	}

	*l = *work
	return nil
}

// KindsOf returns the kind of line each mutation of muts touches, walking the
// batch the way ApplyAll does. A line added earlier in the batch is found by
// its temporary id and a removed one is gone for the mutations after it.
func (l *Ledger) KindsOf(muts []model.LineMutation) ([]model.LineKind, error) {
	kinds := make(map[int64]model.LineKind, len(l.lines)+len(muts))
	for _, line := range l.lines {
		kinds[line.ID] = line.Kind
	}

	nextID := l.nextID
	out := make([]model.LineKind, 0, len(muts))
	for i, m := range muts {
		if add, ok := m.(model.AddLine); ok {
			if add.Item == nil {
				return nil, fmt.Errorf("mutation %d: %w", i, model.NewValidationError("item", "empty line item"))
			}
			kinds[nextID] = add.Item.Kind()
			nextID--
			out = append(out, add.Item.Kind())
			continue
		}

		id := model.TargetLineID(m)
		kind, ok := kinds[id]
		if !ok {
			return nil, fmt.Errorf("mutation %d: %w: %d", i, model.ErrLineNotFound, id)
		}
		if _, removed := m.(model.RemoveLine); removed {
			delete(kinds, id)
		}
		out = append(out, kind)
	}

	return out, nil
}

// ValidateForSubmit is called right before the lines are sent. A new order or
// invoice needs at least one item.
func (l *Ledger) ValidateForSubmit(isNew bool) error {
	if isNew && len(l.lines) == 0 {
		return model.NewValidationError("lines", "at least one item required")
	}
	for _, line := range l.lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) build(item model.LineInput, cat Catalog, guard StockGuard) (model.Line, error) {
	switch it := item.(type) {
	case model.ProductLine:
		p, ok := cat.Product(it.ProductID)
		if !ok {
			return model.Line{}, fmt.Errorf("%w: %d", model.ErrProductNotFound, it.ProductID)
		}
		if it.Quantity < 1 {
			return model.Line{}, model.NewValidationError("quantity", "quantity must be at least 1")
		}
		if err := guard.CheckQuantity(p.ID, it.Quantity); err != nil {
			return model.Line{}, err
		}

		productID := p.ID
		return model.Line{
			ID:          l.nextID,
			Kind:        model.KindProduct,
			Description: orDefault(it.Description, p.Name),
			Quantity:    it.Quantity,
			UnitPrice:   p.UnitPrice,
			ProductID:   &productID,
		}, nil

	case model.ServiceLine:
		s, ok := cat.Service(it.ServiceID)
		if !ok {
			return model.Line{}, fmt.Errorf("%w: %d", model.ErrServiceNotFound, it.ServiceID)
		}
		if !s.Active {
			return model.Line{}, model.NewValidationError("service_id", fmt.Sprintf("service %q is inactive", s.Name))
		}

		serviceID := s.ID
		return model.Line{
			ID:          l.nextID,
			Kind:        model.KindService,
			Description: orDefault(it.Description, s.Name),
			Quantity:    1,
			UnitPrice:   s.UnitPrice,
			ServiceID:   &serviceID,
		}, nil

	case model.OtherLine:
		return model.Line{
			ID:          l.nextID,
			Kind:        model.KindOther,
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}, nil

	case nil:
		return model.Line{}, model.NewValidationError("item", "empty line item")
	default:
		return model.Line{}, model.NewValidationError("item", fmt.Sprintf("unsupported line item %T", item))
	}
}

func (l *Ledger) index(lineID int64) (int, error) {
	for i := range l.lines {
		if l.lines[i].ID == lineID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", model.ErrLineNotFound, lineID)
}

func (l *Ledger) clone() *Ledger {
	return &Ledger{
		parent: l.parent,
		lines:  model.CloneLines(l.lines),
		total:  l.total,
		nextID: l.nextID,
	}
}

func (l *Ledger) commit(lines []model.Line) {
	l.lines = lines
	l.total = model.SumLines(lines)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
