package permission

import (
	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/lifecycle"
)

// Target is what an action is applied to. Exactly one of Order and Invoice is set
// for actions on an existing entity. LineKind is the kind of the line a line
// action touches.
type Target struct {
	Order    *model.Order
	Invoice  *model.Invoice
	LineKind model.LineKind
}

func OrderTarget(ord *model.Order) Target { return Target{Order: ord} }

func InvoiceTarget(inv *model.Invoice) Target { return Target{Invoice: inv} }

func (t Target) WithLine(kind model.LineKind) Target {
	t.LineKind = kind
	return t
}

type Gate struct{}

func NewGate() *Gate { return &Gate{} }

// Authorize returns nil when actor may perform action on target and a
// *model.DeniedError with the reason otherwise.
func (g *Gate) Authorize(actor model.Actor, action model.Action, target Target) error {
	if err := actor.Validate(); err != nil {
		return model.Deny(action, "invalid actor: %v", err)
	}

	switch {
	case actor.IsMechanic():
		return g.mechanic(actor, action, target)
	case actor.IsAdministrator():
		return g.administrator(action, target)
	default:
		return model.Deny(action, "role %s has no permissions", actor.Role)
	}
}

func (g *Gate) mechanic(actor model.Actor, action model.Action, t Target) error {
	if t.Invoice != nil {
		return model.Deny(action, "mechanics cannot modify invoices")
	}

	switch action {
	case model.ActionAddLine, model.ActionRemoveLine, model.ActionUpdateQuantity:
	case model.ActionUpdatePrice:
		return model.Deny(action, "product prices are locked to the catalog for mechanics")
	default:
		return model.Deny(action, "mechanics may only add, remove or change the quantity of product lines")
	}

	if t.LineKind != model.KindProduct {
		return model.Deny(action, "mechanics may only change product lines, not %s lines", kindName(t.LineKind))
	}

	if t.Order == nil {
		return model.Deny(action, "no order given")
	}
	if !t.Order.AssignedTo(actor.MechanicID) {
		return model.Deny(action, "order %d is not assigned to you", t.Order.ID)
	}
	if !lifecycle.LinesEditable(t.Order.Status, model.RoleMechanic) {
		return model.Deny(action, "order %d is %s and can no longer be edited", t.Order.ID, t.Order.Status)
	}

	return nil
}

func (g *Gate) administrator(action model.Action, t Target) error {
	switch {
	case action.IsLineAction():
		return g.adminLines(action, t)

	case action == model.ActionDeleteOrder:
		if t.Order == nil {
			return model.Deny(action, "no order given")
		}
		if !lifecycle.Deletable(t.Order.Status) {
			return model.Deny(action, "only RECEIVED orders can be deleted, order %d is %s", t.Order.ID, t.Order.Status)
		}
		return nil

	case action == model.ActionUpdateOrder:
		if t.Order == nil {
			return model.Deny(action, "no order given")
		}
		if lifecycle.Terminal(t.Order.Status) {
			return model.Deny(action, "order %d is %s and can no longer be edited", t.Order.ID, t.Order.Status)
		}
		return nil

	case action == model.ActionTransitionOrder:
		if t.Order == nil {
			return model.Deny(action, "no order given")
		}
		if lifecycle.Terminal(t.Order.Status) {
			return model.Deny(action, "order %d is %s", t.Order.ID, t.Order.Status)
		}
		return nil

	case action == model.ActionCreateOrder:
		return nil

	case action == model.ActionCreateInvoice:
		if t.Order != nil && t.Order.Status != model.StatusDone {
			return model.Deny(action, "only DONE orders can be invoiced, order %d is %s", t.Order.ID, t.Order.Status)
		}
		return nil

	case action == model.ActionEditInvoice, action == model.ActionDeleteInvoice:
		if t.Invoice == nil {
			return model.Deny(action, "no invoice given")
		}
		if !lifecycle.InvoiceMutable(t.Invoice.PaymentStatus) {
			return model.Deny(action, "invoice %d is paid", t.Invoice.ID)
		}
		return nil

	case action == model.ActionSetPaymentStatus:
		if t.Invoice == nil {
			return model.Deny(action, "no invoice given")
		}
		return nil
	}

	return model.Deny(action, "action is not allowed")
}

func (g *Gate) adminLines(action model.Action, t Target) error {
	switch {
	case t.Order != nil && t.Invoice != nil:
		return model.Deny(action, "a line belongs to an order or an invoice, not both")
	case t.Order != nil:
		if !lifecycle.LinesEditable(t.Order.Status, model.RoleAdmin) {
			return model.Deny(action, "order %d is %s and its lines can no longer be edited", t.Order.ID, t.Order.Status)
		}
	case t.Invoice != nil:
		if !lifecycle.InvoiceMutable(t.Invoice.PaymentStatus) {
			return model.Deny(action, "invoice %d is paid", t.Invoice.ID)
		}
	default:
		return model.Deny(action, "no order or invoice given")
	}

	if !t.LineKind.Valid() {
		return model.Deny(action, "unknown line kind %q", t.LineKind)
	}
	return nil
}

func kindName(k model.LineKind) string {
	if k == "" {
		return "unknown"
	}
	return string(k)
}
