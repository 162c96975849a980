package purchasing

import (
	"context"

	"github.com/jhoicas/rentalops/internal/domain/entity"
	"github.com/jhoicas/rentalops/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción. Los repositorios recibidos
// comparten la transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(orders repository.PurchaseOrderRepository, rentals repository.RentalRepository) error) error
}

// PDFGenerator genera el PDF imprimible de una orden de compra.
type PDFGenerator interface {
	GeneratePurchaseOrderPDF(po *entity.PurchaseOrder, district *entity.District) ([]byte, error)
}
