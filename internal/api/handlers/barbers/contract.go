package barbers

import (
	"context"

	"github.com/dkoval/barbershop-booking/internal/service/catalog/models"
)

type CatalogService interface {
	CreateBarber(ctx context.Context, req *models.CreateBarberRequest) (*models.BarberResponse, error)
	GetBarber(ctx context.Context, id int64) (*models.BarberResponse, error)
	ListBarbers(ctx context.Context, activeOnly bool) (*models.BarberListResponse, error)
	UpdateBarber(ctx context.Context, id int64, req *models.UpdateBarberRequest) (*models.BarberResponse, error)
	DeactivateBarber(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
