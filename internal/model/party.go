package model

import (
	"regexp"
	"strings"
	"time"
)

type Client struct {
	ID           int64
	Name         string
	DocumentID   string
	Email        string
	Phone        string
	Address      string
	Municipality string
}

type Mechanic struct {
	ID        int64
	Name      string
	Specialty string
	Phone     string
	Email     string
	Active    bool
}

type Vehicle struct {
	ID           int64
	ClientID     int64
	Plate        string
	Make         string
	Model        string
	Year         int
	Displacement int
	Color        string
	Odometer     int64
	// Insurance (SOAT) and technical inspection expiry dates.
	SoatExpiresAt       *time.Time
	InspectionExpiresAt *time.Time
	Active              bool
}

var plateRe = regexp.MustCompile(`^[A-Z0-9]{6,7}$`)

// NormalizePlate upper-cases the plate and strips spaces and dashes.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	return strings.NewReplacer(" ", "", "-", "").Replace(plate)
}

func (v Vehicle) Validate() error {
	if !plateRe.MatchString(v.Plate) {
		return NewValidationError("plate", "plate must be 6-7 uppercase alphanumeric characters")
	}
	if v.ClientID == 0 {
		return NewValidationError("client_id", "vehicle must belong to a client")
	}
	return nil
}

type DocumentKind string

const (
	DocumentSoat       DocumentKind = "SOAT"
	DocumentInspection DocumentKind = "TECHNICAL_INSPECTION"
)

type DocumentExpiry struct {
	Kind      DocumentKind
	ExpiresAt time.Time
	Expired   bool
}

// ExpiringDocuments lists documents that are expired or expire within window of now.
func (v Vehicle) ExpiringDocuments(now time.Time, window time.Duration) []DocumentExpiry {
	var res []DocumentExpiry

	check := func(kind DocumentKind, at *time.Time) {
		if at == nil {
			return
		}
		if at.Sub(now) <= window {
			res = append(res, DocumentExpiry{Kind: kind, ExpiresAt: *at, Expired: !at.After(now)})
		}
	}
	check(DocumentSoat, v.SoatExpiresAt)
	check(DocumentInspection, v.InspectionExpiresAt)

	return res
}
