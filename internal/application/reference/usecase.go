// Package reference expone los datos de referencia (distritos y códigos de
// commodity) con los que se llenan los formularios.
package reference

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain/repository"
)

// ReferenceUseCase lecturas de datos de referencia (solo lectura).
type ReferenceUseCase struct {
	districts repository.DistrictRepository
	codes     repository.CommodityCodeRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(districts repository.DistrictRepository, codes repository.CommodityCodeRepository) *ReferenceUseCase {
	return &ReferenceUseCase{districts: districts, codes: codes}
}

// ListDistricts distritos activos ordenados por nombre.
func (uc *ReferenceUseCase) ListDistricts(ctx context.Context) ([]dto.DistrictResponse, error) {
	list, err := uc.districts.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar distritos: %w", err)
	}
	out := make([]dto.DistrictResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DistrictResponse{ID: d.ID, Code: d.Code, Name: d.Name, Region: d.Region})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListCommodityCodes códigos activos ordenados por código.
func (uc *ReferenceUseCase) ListCommodityCodes(ctx context.Context) ([]dto.CommodityCodeResponse, error) {
	list, err := uc.codes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar códigos de commodity: %w", err)
	}
	out := make([]dto.CommodityCodeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CommodityCodeResponse{Code: c.Code, Description: c.Description, Category: c.Category})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
