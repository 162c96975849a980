package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rentalops/internal/domain/entity"
	"github.com/jhoicas/rentalops/internal/domain/repository"
)

var (
	_ repository.DistrictRepository      = (*DistrictRepo)(nil)
	_ repository.CommodityCodeRepository = (*CommodityCodeRepo)(nil)
)

// DistrictRepo lectura de distritos.
type DistrictRepo struct {
	q Querier
}

// NewDistrictRepository construye el adaptador.
func NewDistrictRepository(q Querier) *DistrictRepo {
	return &DistrictRepo{q: q}
}

// ListActive lista los distritos activos ordenados por nombre.
func (r *DistrictRepo) ListActive(ctx context.Context) ([]*entity.District, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, code, name, COALESCE(region, ''), active
		FROM districts WHERE active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.District, 0)
	for rows.Next() {
		var d entity.District
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Region, &d.Active); err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// GetByID obtiene un distrito. Devuelve (nil, nil) si no existe.
func (r *DistrictRepo) GetByID(ctx context.Context, id string) (*entity.District, error) {
	var d entity.District
	err := r.q.QueryRow(ctx, `
		SELECT id, code, name, COALESCE(region, ''), active
		FROM districts WHERE id = $1`, id).Scan(&d.ID, &d.Code, &d.Name, &d.Region, &d.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get district: %w", err)
	}
	return &d, nil
}

// CommodityCodeRepo lectura de códigos de commodity.
type CommodityCodeRepo struct {
	q Querier
}

// NewCommodityCodeRepository construye el adaptador.
func NewCommodityCodeRepository(q Querier) *CommodityCodeRepo {
	return &CommodityCodeRepo{q: q}
}

// ListActive lista los códigos activos ordenados por código.
func (r *CommodityCodeRepo) ListActive(ctx context.Context) ([]*entity.CommodityCode, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, description, COALESCE(category, ''), active
		FROM commodity_codes WHERE active = TRUE ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list commodity codes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CommodityCode, 0)
	for rows.Next() {
		var c entity.CommodityCode
		if err := rows.Scan(&c.Code, &c.Description, &c.Category, &c.Active); err != nil {
			return nil, fmt.Errorf("scan commodity code: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetByCode obtiene un código. Devuelve (nil, nil) si no existe.
func (r *CommodityCodeRepo) GetByCode(ctx context.Context, code string) (*entity.CommodityCode, error) {
	var c entity.CommodityCode
	err := r.q.QueryRow(ctx, `
		SELECT code, description, COALESCE(category, ''), active
		FROM commodity_codes WHERE code = $1`, code).Scan(&c.Code, &c.Description, &c.Category, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commodity code: %w", err)
	}
	return &c, nil
}
