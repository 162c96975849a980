// Package rental contiene los casos de uso de solicitudes de renta de equipo.
package rental

import (
	"context"
	"errors"
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

// RentalUseCase alta, consulta y cancelación de solicitudes de renta.
type RentalUseCase struct {
	repo      repository.RentalRepository
	districts repository.DistrictRepository
	codes     repository.CommodityCodeRepository
	now       func() time.Time
}

// NewRentalUseCase construye el caso de uso.
func NewRentalUseCase(repo repository.RentalRepository, districts repository.DistrictRepository, codes repository.CommodityCodeRepository) *RentalUseCase {
	return &RentalUseCase{repo: repo, districts: districts, codes: codes, now: time.Now}
}

// Create valida y registra una solicitud de renta.
// Solo los roles de la sección de Especialistas pueden crearla.
func (uc *RentalUseCase) Create(ctx context.Context, session *access.Session, in dto.CreateRentalRequest) (*dto.RentalResponse, error) {
	if err := requireSection(session, access.SectionES); err != nil {
		return nil, err
	}
	if err := validator.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	start, _ := time.Parse(dto.DateLayout, in.StartDate)
	end, _ := time.Parse(dto.DateLayout, in.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: la fecha de fin es anterior a la de inicio", domain.ErrInvalidInput)
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(in.DailyRate))
	if err != nil || rate.IsNegative() {
		return nil, fmt.Errorf("%w: tarifa diaria inválida", domain.ErrInvalidInput)
	}

	district, err := uc.districts.GetByID(ctx, in.DistrictID)
	if err != nil {
		return nil, fmt.Errorf("consultar distrito: %w", err)
	}
	if district == nil || !district.Active {
		return nil, fmt.Errorf("%w: distrito inexistente", domain.ErrInvalidInput)
	}
	code, err := uc.codes.GetByCode(ctx, in.CommodityCode)
	if err != nil {
		return nil, fmt.Errorf("consultar código de commodity: %w", err)
	}
	if code == nil || !code.Active {
		return nil, fmt.Errorf("%w: código de commodity inexistente", domain.ErrInvalidInput)
	}

	now := uc.now()
	id := uuid.New()
	rental := &entity.RentalRequest{
		ID:            id.String(),
		Number:        documentNumber("RR", now, id),
		DistrictID:    district.ID,
		CommodityCode: code.Code,
		Equipment:     strings.TrimSpace(in.Equipment),
		Quantity:      in.Quantity,
		StartDate:     start,
		EndDate:       end,
		DailyRate:     rate.Round(2),
		Status:        entity.RentalStatusSubmitted,
		Notes:         strings.TrimSpace(in.Notes),
		RequestedBy:   session.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, rental); err != nil {
		return nil, err
	}
	return ToRentalResponse(rental), nil
}

// GetByID obtiene una solicitud por ID. Devuelve ErrNotFound si no existe.
func (uc *RentalUseCase) GetByID(ctx context.Context, id string) (*dto.RentalResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return ToRentalResponse(r), nil
}

// List lista solicitudes con filtros y paginación.
func (uc *RentalUseCase) List(ctx context.Context, filter repository.RentalFilter) (*dto.RentalListResponse, error) {
	filter.Limit, filter.Offset = dto.NormalizePage(filter.Limit, filter.Offset)
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RentalResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *ToRentalResponse(r))
	}
	return &dto.RentalListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Cancel cancela una solicitud propia que aún no tiene orden de compra.
func (uc *RentalUseCase) Cancel(ctx context.Context, session *access.Session, id string) error {
	if err := requireSection(session, access.SectionES); err != nil {
		return err
	}
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if r.RequestedBy != session.UserID {
		return domain.ErrForbidden
	}
	if r.Status != entity.RentalStatusSubmitted {
		return domain.ErrInvalidTransition
	}
	return uc.repo.UpdateStatus(ctx, id, entity.RentalStatusCancelled)
}

// requireSection exige una sesión cuyo rol pertenezca a la sección indicada.
func requireSection(session *access.Session, key string) error {
	sec, ok := access.Default().SectionByKey(key)
	if !ok {
		return errors.New("sección desconocida: " + key)
	}
	if !session.Present() {
		return domain.ErrUnauthorized
	}
	if !sec.Allowed.Contains(session.Role) {
		return domain.ErrForbidden
	}
	return nil
}

// documentNumber arma números legibles del tipo RR-20260301-1A2B3C.
func documentNumber(prefix string, t time.Time, id uuid.UUID) string {
	return fmt.Sprintf("%s-%s-%s", prefix, t.Format("20060102"), strings.ToUpper(id.String()[:6]))
}

// ToRentalResponse convierte la entidad al DTO de salida.
func ToRentalResponse(r *entity.RentalRequest) *dto.RentalResponse {
	if r == nil {
		return nil
	}
	return &dto.RentalResponse{
		ID:             r.ID,
		Number:         r.Number,
		DistrictID:     r.DistrictID,
		CommodityCode:  r.CommodityCode,
		Equipment:      r.Equipment,
		Quantity:       r.Quantity,
		StartDate:      r.StartDate.Format(dto.DateLayout),
		EndDate:        r.EndDate.Format(dto.DateLayout),
		Days:           r.Days(),
		DailyRate:      r.DailyRate,
		EstimatedTotal: r.EstimatedTotal(),
		Status:         r.Status,
		Notes:          r.Notes,
		RequestedBy:    r.RequestedBy,
		CreatedAt:      r.CreatedAt,
	}
}
