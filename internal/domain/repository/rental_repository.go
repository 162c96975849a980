package repository

import (
	"context"

	"github.com/jhoicas/rentalops/internal/domain/entity"
)

// RentalFilter filtros del listado de solicitudes de renta. Campos vacíos no filtran.
type RentalFilter struct {
	RequestedBy string
	DistrictID  string
	Status      string
	Limit       int
	Offset      int
}

// RentalRepository define el puerto de persistencia para RentalRequest.
type RentalRepository interface {
	Create(ctx context.Context, rental *entity.RentalRequest) error
	GetByID(ctx context.Context, id string) (*entity.RentalRequest, error)
	List(ctx context.Context, filter RentalFilter) ([]*entity.RentalRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
