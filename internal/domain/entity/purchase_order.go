package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderPending  = "pending"
	PurchaseOrderApproved = "approved"
	PurchaseOrderRejected = "rejected"
)

// PurchaseOrder orden de compra (cabecera). La crea Coordinación de Rentas y la decide Finanzas.
type PurchaseOrder struct {
	ID         string
	Number     string // PO-YYYYMMDD-xxxxxx
	RentalID   *string
	Vendor     string
	DistrictID string
	Status     string
	Lines      []PurchaseOrderLine
	Total      decimal.Decimal
	CreatedBy  string
	DecidedBy  *string
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine línea de la orden de compra.
type PurchaseOrderLine struct {
	ID              string
	PurchaseOrderID string
	LineNo          int
	CommodityCode   string
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	LineTotal       decimal.Decimal
}

// RecalculateTotals recalcula LineTotal de cada línea y el Total de la orden (2 decimales).
func (po *PurchaseOrder) RecalculateTotals() {
	total := decimal.Zero
	for i := range po.Lines {
		l := &po.Lines[i]
		l.LineNo = i + 1
		l.LineTotal = l.Quantity.Mul(l.UnitPrice).Round(2)
		total = total.Add(l.LineTotal)
	}
	po.Total = total.Round(2)
}

// IsPending informa si la orden aún espera decisión de Finanzas.
func (po *PurchaseOrder) IsPending() bool {
	return po.Status == PurchaseOrderPending
}
