// Package resolver decides which vehicle and mechanic an invoice is for. A
// reference set directly on the invoice always wins over the one inherited from
// the linked order. Callers must go through this package instead of reading the
// invoice fields.
package resolver

import (
	"github.com/samber/lo"

	"github.com/you-humble/workshop/internal/model"
)

type Origin string

const (
	OriginDirect Origin = "DIRECT"
	OriginOrder  Origin = "ORDER"
	OriginNone   Origin = "NONE"
)

type Resolved[T any] struct {
	Value  *T
	Origin Origin
}

func (r Resolved[T]) Found() bool { return r.Value != nil }

func resolve[T any](direct *T, fromOrder func(*model.Order) *T, ord *model.Order) Resolved[T] {
	if direct != nil {
		return Resolved[T]{Value: direct, Origin: OriginDirect}
	}
	if ord != nil {
		if v := fromOrder(ord); v != nil {
			return Resolved[T]{Value: v, Origin: OriginOrder}
		}
	}
	return Resolved[T]{Origin: OriginNone}
}

func ResolveVehicle(inv *model.Invoice) Resolved[model.Vehicle] {
	if inv == nil {
		return Resolved[model.Vehicle]{Origin: OriginNone}
	}
	return resolve(inv.Vehicle, func(o *model.Order) *model.Vehicle { return o.Vehicle }, inv.Order)
}

func ResolveMechanic(inv *model.Invoice) Resolved[model.Mechanic] {
	if inv == nil {
		return Resolved[model.Mechanic]{Origin: OriginNone}
	}
	return resolve(inv.Mechanic, func(o *model.Order) *model.Mechanic { return o.Mechanic }, inv.Order)
}

type VehicleFilter string

const (
	FilterAll            VehicleFilter = "ALL"
	FilterWithVehicle    VehicleFilter = "WITH_VEHICLE"
	FilterWithoutVehicle VehicleFilter = "WITHOUT_VEHICLE"
	FilterDirect         VehicleFilter = "DIRECT"
	FilterFromOrder      VehicleFilter = "FROM_ORDER"
)

// FilterInvoices keeps the invoices whose resolved vehicle matches f.
func FilterInvoices(invoices []*model.Invoice, f VehicleFilter) []*model.Invoice {
	return lo.Filter(invoices, func(inv *model.Invoice, _ int) bool {
		origin := ResolveVehicle(inv).Origin

		switch f {
		case FilterWithVehicle:
			return origin != OriginNone
		case FilterWithoutVehicle:
			return origin == OriginNone
		case FilterDirect:
			return origin == OriginDirect
		case FilterFromOrder:
			return origin == OriginOrder
		default:
			return true
		}
	})
}
