package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest entrada del formulario de orden de compra.
// Las líneas llegan como lines.0.commodity_code, lines.0.quantity, ...
type CreatePurchaseOrderRequest struct {
	RentalID   string                     `form:"rental_id" json:"rental_id" validate:"omitempty,uuid"`
	Vendor     string                     `form:"vendor" json:"vendor" validate:"required,min=2,max=200"`
	DistrictID string                     `form:"district_id" json:"district_id" validate:"required"`
	Lines      []PurchaseOrderLineRequest `form:"lines" json:"lines" validate:"required,min=1,max=50,dive"`
}

// PurchaseOrderLineRequest línea del formulario. Cantidad y precio llegan como texto decimal.
type PurchaseOrderLineRequest struct {
	CommodityCode string `form:"commodity_code" json:"commodity_code" validate:"required,max=20"`
	Description   string `form:"description" json:"description" validate:"required,max=300"`
	Quantity      string `form:"quantity" json:"quantity" validate:"required"`
	UnitPrice     string `form:"unit_price" json:"unit_price" validate:"required"`
}

func (l PurchaseOrderLineRequest) blank() bool {
	return strings.TrimSpace(l.CommodityCode) == "" &&
		strings.TrimSpace(l.Description) == "" &&
		strings.TrimSpace(l.Quantity) == "" &&
		strings.TrimSpace(l.UnitPrice) == ""
}

// CompactLines descarta las filas del formulario que quedaron completamente vacías.
func (r *CreatePurchaseOrderRequest) CompactLines() {
	lines := make([]PurchaseOrderLineRequest, 0, len(r.Lines))
	for _, l := range r.Lines {
		if !l.blank() {
			lines = append(lines, l)
		}
	}
	r.Lines = lines
}

// PurchaseOrderLineResponse línea de salida.
type PurchaseOrderLineResponse struct {
	LineNo        int             `json:"line_no"`
	CommodityCode string          `json:"commodity_code"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Number     string                      `json:"number"`
	RentalID   string                      `json:"rental_id,omitempty"`
	Vendor     string                      `json:"vendor"`
	DistrictID string                      `json:"district_id"`
	Status     string                      `json:"status"`
	Total      decimal.Decimal             `json:"total"`
	Lines      []PurchaseOrderLineResponse `json:"lines,omitempty"`
	CreatedBy  string                      `json:"created_by"`
	DecidedBy  string                      `json:"decided_by,omitempty"`
	DecidedAt  *time.Time                  `json:"decided_at,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
