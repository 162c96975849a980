package repository

import (
	"context"

	"github.com/jhoicas/rentalops/internal/domain/entity"
)

// PurchaseOrderFilter filtros del listado de órdenes de compra.
type PurchaseOrderFilter struct {
	Status string
	Limit  int
	Offset int
}

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder.
// Create persiste cabecera y líneas; GetByID devuelve la orden con sus líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, filter PurchaseOrderFilter) ([]*entity.PurchaseOrder, error)
	UpdateDecision(ctx context.Context, po *entity.PurchaseOrder) error
}
