package catalog

import (
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/workshop/internal/model"
)

// Snapshot is an immutable view of the catalog taken at one point in time.
type Snapshot struct {
	products   []model.Product
	services   []model.Service
	productIdx map[int64]model.Product
	serviceIdx map[int64]model.Service
	takenAt    time.Time
}

func NewSnapshot(products []model.Product, services []model.Service, takenAt time.Time) *Snapshot {
	return &Snapshot{
		products:   products,
		services:   services,
		productIdx: lo.KeyBy(products, func(p model.Product) int64 { return p.ID }),
		serviceIdx: lo.KeyBy(services, func(s model.Service) int64 { return s.ID }),
		takenAt:    takenAt,
	}
}

func (s *Snapshot) Product(id int64) (model.Product, bool) {
	p, ok := s.productIdx[id]
	return p, ok
}

func (s *Snapshot) Service(id int64) (model.Service, bool) {
	svc, ok := s.serviceIdx[id]
	return svc, ok
}

func (s *Snapshot) Products() []model.Product {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Snapshot) Services(activeOnly bool) []model.Service {
	if !activeOnly {
		out := make([]model.Service, len(s.services))
		copy(out, s.services)
		return out
	}
	return lo.Filter(s.services, func(svc model.Service, _ int) bool { return svc.Active })
}

func (s *Snapshot) TakenAt() time.Time { return s.takenAt }
