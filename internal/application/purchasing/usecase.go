// Package purchasing contiene los casos de uso de órdenes de compra:
// alta por Coordinación de Rentas y aprobación por Finanzas.
package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain"
	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/internal/domain/entity"
	"github.com/jhoicas/rentalops/internal/domain/repository"
	"github.com/jhoicas/rentalops/pkg/validator"
)

// PurchaseOrderUseCase orquesta el ciclo de vida de una orden de compra.
type PurchaseOrderUseCase struct {
	tx        TxRunner
	orders    repository.PurchaseOrderRepository
	rentals   repository.RentalRepository
	districts repository.DistrictRepository
	codes     repository.CommodityCodeRepository
	pdf       PDFGenerator
	now       func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	tx TxRunner,
	orders repository.PurchaseOrderRepository,
	rentals repository.RentalRepository,
	districts repository.DistrictRepository,
	codes repository.CommodityCodeRepository,
	pdf PDFGenerator,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		tx:        tx,
		orders:    orders,
		rentals:   rentals,
		districts: districts,
		codes:     codes,
		pdf:       pdf,
		now:       time.Now,
	}
}

// Create registra una orden en estado pending. Si referencia una renta,
// la renta pasa a "ordered" en la misma transacción.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, session *access.Session, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := requireSection(session, access.SectionRC); err != nil {
		return nil, err
	}
	in.CompactLines()
	if err := validator.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	district, err := uc.districts.GetByID(ctx, in.DistrictID)
	if err != nil {
		return nil, fmt.Errorf("consultar distrito: %w", err)
	}
	if district == nil || !district.Active {
		return nil, fmt.Errorf("%w: distrito inexistente", domain.ErrInvalidInput)
	}

	var rentalID *string
	if in.RentalID != "" {
		rental, err := uc.rentals.GetByID(ctx, in.RentalID)
		if err != nil {
			return nil, err
		}
		if rental == nil {
			return nil, fmt.Errorf("%w: la renta indicada no existe", domain.ErrInvalidInput)
		}
		if !rental.CanBeOrdered() {
			return nil, fmt.Errorf("%w: la renta %s ya no admite orden de compra", domain.ErrInvalidTransition, rental.Number)
		}
		rentalID = &rental.ID
	}

	now := uc.now()
	id := uuid.New()
	po := &entity.PurchaseOrder{
		ID:         id.String(),
		Number:     fmt.Sprintf("PO-%s-%s", now.Format("20060102"), strings.ToUpper(id.String()[:6])),
		RentalID:   rentalID,
		Vendor:     strings.TrimSpace(in.Vendor),
		DistrictID: district.ID,
		Status:     entity.PurchaseOrderPending,
		CreatedBy:  session.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	seen := make(map[string]bool, len(in.Lines))
	for i, l := range in.Lines {
		code := strings.TrimSpace(l.CommodityCode)
		if !seen[code] {
			cc, err := uc.codes.GetByCode(ctx, code)
			if err != nil {
				return nil, fmt.Errorf("consultar código de commodity: %w", err)
			}
			if cc == nil || !cc.Active {
				return nil, fmt.Errorf("%w: línea %d: código de commodity %q inexistente", domain.ErrInvalidInput, i+1, code)
			}
			seen[code] = true
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(l.Quantity))
		if err != nil || !qty.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: cantidad inválida", domain.ErrInvalidInput, i+1)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(l.UnitPrice))
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: precio unitario inválido", domain.ErrInvalidInput, i+1)
		}
		po.Lines = append(po.Lines, entity.PurchaseOrderLine{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			CommodityCode:   code,
			Description:     strings.TrimSpace(l.Description),
			Quantity:        qty,
			UnitPrice:       price.Round(2),
		})
	}
	po.RecalculateTotals()

	err = uc.tx.RunPurchasing(ctx, func(orders repository.PurchaseOrderRepository, rentals repository.RentalRepository) error {
		if err := orders.Create(ctx, po); err != nil {
			return err
		}
		if po.RentalID != nil {
			return rentals.UpdateStatus(ctx, *po.RentalID, entity.RentalStatusOrdered)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// GetByID obtiene la orden con sus líneas. Devuelve ErrNotFound si no existe.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// List lista órdenes (sin líneas) con filtro de estado y paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, filter repository.PurchaseOrderFilter) (*dto.PurchaseOrderListResponse, error) {
	filter.Limit, filter.Offset = dto.NormalizePage(filter.Limit, filter.Offset)
	list, err := uc.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *ToPurchaseOrderResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Approve aprueba una orden pendiente (solo Finanzas).
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, session *access.Session, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.decide(ctx, session, id, entity.PurchaseOrderApproved)
}

// Reject rechaza una orden pendiente (solo Finanzas).
func (uc *PurchaseOrderUseCase) Reject(ctx context.Context, session *access.Session, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.decide(ctx, session, id, entity.PurchaseOrderRejected)
}

func (uc *PurchaseOrderUseCase) decide(ctx context.Context, session *access.Session, id, status string) (*dto.PurchaseOrderResponse, error) {
	if err := requireSection(session, access.SectionFIN); err != nil {
		return nil, err
	}
	po, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !po.IsPending() {
		return nil, domain.ErrInvalidTransition
	}
	now := uc.now()
	decidedBy := session.UserID
	po.Status = status
	po.DecidedBy = &decidedBy
	po.DecidedAt = &now
	po.UpdatedAt = now
	if err := uc.orders.UpdateDecision(ctx, po); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// RenderPDF genera el PDF de la orden. Devuelve el contenido y un nombre de archivo sugerido.
func (uc *PurchaseOrderUseCase) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	po, err := uc.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	district, err := uc.districts.GetByID(ctx, po.DistrictID)
	if err != nil {
		return nil, "", fmt.Errorf("consultar distrito: %w", err)
	}
	if district == nil {
		district = &entity.District{ID: po.DistrictID, Name: po.DistrictID}
	}
	content, err := uc.pdf.GeneratePurchaseOrderPDF(po, district)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return content, po.Number + ".pdf", nil
}

func (uc *PurchaseOrderUseCase) find(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

func requireSection(session *access.Session, key string) error {
	sec, _ := access.Default().SectionByKey(key)
	if !session.Present() {
		return domain.ErrUnauthorized
	}
	if !sec.Allowed.Contains(session.Role) {
		return domain.ErrForbidden
	}
	return nil
}

// ToPurchaseOrderResponse convierte la entidad al DTO de salida.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	out := &dto.PurchaseOrderResponse{
		ID:         po.ID,
		Number:     po.Number,
		Vendor:     po.Vendor,
		DistrictID: po.DistrictID,
		Status:     po.Status,
		Total:      po.Total,
		CreatedBy:  po.CreatedBy,
		DecidedAt:  po.DecidedAt,
		CreatedAt:  po.CreatedAt,
	}
	if po.RentalID != nil {
		out.RentalID = *po.RentalID
	}
	if po.DecidedBy != nil {
		out.DecidedBy = *po.DecidedBy
	}
	for _, l := range po.Lines {
		out.Lines = append(out.Lines, dto.PurchaseOrderLineResponse{
			LineNo:        l.LineNo,
			CommodityCode: l.CommodityCode,
			Description:   l.Description,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			LineTotal:     l.LineTotal,
		})
	}
	return out
}
