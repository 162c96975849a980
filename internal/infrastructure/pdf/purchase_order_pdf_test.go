package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentalops/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	casos := map[string]string{
		"0":        "0,00",
		"25":       "25,00",
		"1655.5":   "1.655,50",
		"1000000":  "1.000.000,00",
		"-1234.56": "-1.234,56",
		"99.999":   "100,00",
	}
	for in, want := range casos {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestQRPayload(t *testing.T) {
	po := &entity.PurchaseOrder{ID: "po1", Number: "PO-20260301-ABCDEF", Total: decimal.NewFromInt(10), Status: "approved"}
	assert.Equal(t, "PO:PO-20260301-ABCDEF|ID:po1|TOTAL:10.00|ESTADO:approved", QRPayload(po))
}

func TestGeneratePurchaseOrderPDF(t *testing.T) {
	decidedBy := "u-fin"
	decidedAt := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	po := &entity.PurchaseOrder{
		ID: "po1", Number: "PO-20260301-ABCDEF", Vendor: "Equipos Andinos", DistrictID: "d1",
		Status: entity.PurchaseOrderApproved, DecidedBy: &decidedBy, DecidedAt: &decidedAt,
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Lines: []entity.PurchaseOrderLine{
			{CommodityCode: "7210", Description: "Grúa 50t", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(300)},
		},
	}
	po.RecalculateTotals()

	out, err := NewMarotoPDFGenerator("Rentas S.A.").GeneratePurchaseOrderPDF(po, &entity.District{ID: "d1", Code: "CEN", Name: "Centro"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}
