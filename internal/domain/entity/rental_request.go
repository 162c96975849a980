package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de renta.
const (
	RentalStatusSubmitted = "submitted"
	RentalStatusOrdered   = "ordered"
	RentalStatusCancelled = "cancelled"
)

// RentalRequest solicitud de renta de equipo creada por un Especialista de Equipos.
type RentalRequest struct {
	ID            string
	Number        string // RR-YYYYMMDD-xxxxxx
	DistrictID    string
	CommodityCode string
	Equipment     string
	Quantity      int
	StartDate     time.Time
	EndDate       time.Time
	DailyRate     decimal.Decimal
	Status        string
	Notes         string
	RequestedBy   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Days número de días de renta, contando inicio y fin.
func (r *RentalRequest) Days() int {
	start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// EstimatedTotal tarifa diaria × cantidad × días.
func (r *RentalRequest) EstimatedTotal() decimal.Decimal {
	return r.DailyRate.
		Mul(decimal.NewFromInt(int64(r.Quantity))).
		Mul(decimal.NewFromInt(int64(r.Days()))).
		Round(2)
}

// CanBeOrdered informa si se le puede asociar una orden de compra.
func (r *RentalRequest) CanBeOrdered() bool {
	return r.Status == RentalStatusSubmitted
}
