package model

import "github.com/shopspring/decimal"

const MinServiceDurationMinutes = 5

type Product struct {
	ID        int64
	Name      string
	Code      string
	Category  string
	UnitPrice decimal.Decimal
	Stock     int64
	// MinStock is the alert boundary for LowStock.
	MinStock int64
}

func (p Product) LowStock() bool { return p.Stock <= p.MinStock }

func (p Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "empty product name")
	}
	if p.UnitPrice.IsNegative() {
		return NewValidationError("unit_price", "negative price")
	}
	if p.Stock < 0 {
		return NewValidationError("stock", "negative stock")
	}
	return nil
}

type Service struct {
	ID              int64
	Name            string
	Category        string
	UnitPrice       decimal.Decimal
	DurationMinutes int
	RequiresParts   bool
	Active          bool
}

func (s Service) Validate() error {
	if s.Name == "" {
		return NewValidationError("name", "empty service name")
	}
	if s.UnitPrice.IsNegative() {
		return NewValidationError("unit_price", "negative price")
	}
	if s.DurationMinutes < MinServiceDurationMinutes {
		return NewValidationError("duration", "duration must be at least 5 minutes")
	}
	return nil
}
