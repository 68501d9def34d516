// Package lifecycle holds the order status machine and the invoice payment
// status rules that gate ledger mutation.
package lifecycle

import (
	"fmt"

	"github.com/you-humble/workshop/internal/model"
)

var forward = map[model.OrderStatus][]model.OrderStatus{
	model.StatusReceived:   {model.StatusInProgress, model.StatusCancelled},
	model.StatusInProgress: {model.StatusDone, model.StatusCancelled},
	model.StatusDone:       {model.StatusInvoiced},
	model.StatusInvoiced:   nil,
	model.StatusCancelled:  nil,
}

type rules struct {
	adminEdits    bool
	mechanicEdits bool
	deletable     bool
}

var table = map[model.OrderStatus]rules{
	model.StatusReceived:   {adminEdits: true, mechanicEdits: true, deletable: true},
	model.StatusInProgress: {adminEdits: true, mechanicEdits: true},
	model.StatusDone:       {adminEdits: true, mechanicEdits: true},
	model.StatusInvoiced:   {},
	model.StatusCancelled:  {},
}

// Next lists the statuses reachable from s in one step.
func Next(s model.OrderStatus) []model.OrderStatus {
	next := forward[s]
	out := make([]model.OrderStatus, len(next))
	copy(out, next)
	return out
}

func CanTransition(from, to model.OrderStatus) bool {
	for _, s := range forward[from] {
		if s == to {
			return true
		}
	}
	return false
}

func Transition(from, to model.OrderStatus) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownStatus, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownStatus, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", model.ErrIllegalTransition, from, to)
	}
	return nil
}

func Terminal(s model.OrderStatus) bool {
	return s == model.StatusInvoiced || s == model.StatusCancelled
}

// LinesEditable reports whether role may mutate the lines of an order in status s.
// Mechanics are further restricted to product lines by the permission gate.
func LinesEditable(s model.OrderStatus, role model.Role) bool {
	r := table[s]
	if role == model.RoleMechanic {
		return r.mechanicEdits
	}
	return r.adminEdits
}

func Deletable(s model.OrderStatus) bool { return table[s].deletable }

// InvoiceMutable is false once an invoice is paid.
func InvoiceMutable(s model.PaymentStatus) bool { return s == model.PaymentUnpaid }

// TogglePayment returns the other payment status.
func TogglePayment(s model.PaymentStatus) model.PaymentStatus {
	if s == model.PaymentPaid {
		return model.PaymentUnpaid
	}
	return model.PaymentPaid
}
