package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas en formularios (input type=date).
const DateLayout = "2006-01-02"

// CreateRentalRequest entrada del formulario de nueva renta.
type CreateRentalRequest struct {
	DistrictID    string `form:"district_id" json:"district_id" validate:"required"`
	CommodityCode string `form:"commodity_code" json:"commodity_code" validate:"required,max=20"`
	Equipment     string `form:"equipment" json:"equipment" validate:"required,min=3,max=200"`
	Quantity      int    `form:"quantity" json:"quantity" validate:"gte=1,lte=999"`
	StartDate     string `form:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `form:"end_date" json:"end_date" validate:"required,datetime=2006-01-02"`
	DailyRate     string `form:"daily_rate" json:"daily_rate" validate:"required"`
	Notes         string `form:"notes" json:"notes" validate:"max=1000"`
}

// RentalResponse salida de una solicitud de renta.
type RentalResponse struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	DistrictID     string          `json:"district_id"`
	CommodityCode  string          `json:"commodity_code"`
	Equipment      string          `json:"equipment"`
	Quantity       int             `json:"quantity"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Days           int             `json:"days"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	RequestedBy    string          `json:"requested_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RentalListResponse lista paginada de rentas.
type RentalListResponse struct {
	Items []RentalResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
