package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rentalops/internal/domain"
	"github.com/jhoicas/rentalops/internal/domain/entity"
	"github.com/jhoicas/rentalops/internal/domain/repository"
)

var _ repository.RentalRepository = (*RentalRepo)(nil)

const rentalColumns = `id, number, district_id, commodity_code, equipment, quantity, start_date, end_date,
	daily_rate, status, COALESCE(notes, ''), requested_by, created_at, updated_at`

// RentalRepo implementación de RentalRepository (usable con pool o tx).
type RentalRepo struct {
	q Querier
}

// NewRentalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

// Create persiste una solicitud de renta.
func (r *RentalRepo) Create(ctx context.Context, rental *entity.RentalRequest) error {
	query := `
		INSERT INTO rental_requests (id, number, district_id, commodity_code, equipment, quantity,
			start_date, end_date, daily_rate, status, notes, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		rental.ID, rental.Number, rental.DistrictID, rental.CommodityCode, rental.Equipment, rental.Quantity,
		rental.StartDate, rental.EndDate, rental.DailyRate, rental.Status, nullIfEmpty(rental.Notes),
		rental.RequestedBy, rental.CreatedAt, rental.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("rental number already exists: %w", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: distrito o código de commodity inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert rental request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud. Devuelve (nil, nil) si no existe.
func (r *RentalRepo) GetByID(ctx context.Context, id string) (*entity.RentalRequest, error) {
	rental, err := scanRental(r.q.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rental_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental request: %w", err)
	}
	return rental, nil
}

// List lista solicitudes, más recientes primero.
func (r *RentalRepo) List(ctx context.Context, filter repository.RentalFilter) ([]*entity.RentalRequest, error) {
	var w whereBuilder
	if filter.RequestedBy != "" {
		w.add("requested_by = $%d", filter.RequestedBy)
	}
	if filter.DistrictID != "" {
		w.add("district_id = $%d", filter.DistrictID)
	}
	if filter.Status != "" {
		w.add("status = $%d", filter.Status)
	}
	query := `SELECT ` + rentalColumns + ` FROM rental_requests` + w.clause() +
		` ORDER BY created_at DESC` + w.page(filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list rental requests: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.RentalRequest, 0)
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rental request: %w", err)
		}
		list = append(list, rental)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado. Devuelve ErrNotFound si no afectó filas.
func (r *RentalRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE rental_requests SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update rental status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRental(row pgx.Row) (*entity.RentalRequest, error) {
	var x entity.RentalRequest
	err := row.Scan(
		&x.ID, &x.Number, &x.DistrictID, &x.CommodityCode, &x.Equipment, &x.Quantity, &x.StartDate, &x.EndDate,
		&x.DailyRate, &x.Status, &x.Notes, &x.RequestedBy, &x.CreatedAt, &x.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &x, nil
}
