package services

import (
	"context"

	"github.com/dkoval/barbershop-booking/internal/service/catalog/models"
)

type CatalogService interface {
	CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	GetService(ctx context.Context, id int64) (*models.ServiceResponse, error)
	ListServices(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error)
	UpdateService(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
	DeactivateService(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
