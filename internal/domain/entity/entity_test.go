package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rentalops/internal/domain/entity"
)

func TestRentalRequest_DiasInclusivos(t *testing.T) {
	r := &entity.RentalRequest{
		StartDate: time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, r.Days(), "1 al 3 de marzo son 3 días")

	r.EndDate = r.StartDate
	assert.Equal(t, 1, r.Days(), "renta de un solo día")
}

func TestRentalRequest_TotalEstimado(t *testing.T) {
	r := &entity.RentalRequest{
		Quantity:  2,
		DailyRate: decimal.RequireFromString("150.505"),
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	// 150.505 × 2 × 5 = 1505.05
	assert.True(t, decimal.RequireFromString("1505.05").Equal(r.EstimatedTotal()), r.EstimatedTotal().String())
}

func TestRentalRequest_CanBeOrdered(t *testing.T) {
	r := &entity.RentalRequest{Status: entity.RentalStatusSubmitted}
	assert.True(t, r.CanBeOrdered())
	r.Status = entity.RentalStatusOrdered
	assert.False(t, r.CanBeOrdered())
}

func TestPurchaseOrder_RecalculateTotals(t *testing.T) {
	po := &entity.PurchaseOrder{
		Status: entity.PurchaseOrderPending,
		Lines: []entity.PurchaseOrderLine{
			{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("10.333")},
			{Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.NewFromInt(100)},
		},
	}
	po.RecalculateTotals()

	assert.Equal(t, 1, po.Lines[0].LineNo)
	assert.Equal(t, 2, po.Lines[1].LineNo)
	assert.Equal(t, "31", po.Lines[0].LineTotal.String())
	assert.Equal(t, "150", po.Lines[1].LineTotal.String())
	assert.Equal(t, "181", po.Total.String())
	assert.True(t, po.IsPending())
}

func TestUser_IsActive(t *testing.T) {
	var nilUser *entity.User
	assert.False(t, nilUser.IsActive())
	assert.True(t, (&entity.User{Status: entity.UserStatusActive}).IsActive())
	assert.False(t, (&entity.User{Status: entity.UserStatusSuspended}).IsActive())
}
