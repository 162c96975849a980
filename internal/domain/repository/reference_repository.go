package repository

import (
	"context"

	"github.com/jhoicas/rentalops/internal/domain/entity"
)

// DistrictRepository lectura de distritos (datos de referencia, solo lectura).
type DistrictRepository interface {
	ListActive(ctx context.Context) ([]*entity.District, error)
	GetByID(ctx context.Context, id string) (*entity.District, error)
}

// CommodityCodeRepository lectura de códigos de commodity (solo lectura).
type CommodityCodeRepository interface {
	ListActive(ctx context.Context) ([]*entity.CommodityCode, error)
	GetByCode(ctx context.Context, code string) (*entity.CommodityCode, error)
}
