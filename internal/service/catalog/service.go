package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkoval/barbershop-booking/internal/domain"
	barberRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/barber"
	serviceRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/service"
	"github.com/dkoval/barbershop-booking/internal/service/catalog/models"
)

// Service сервис каталога барбершопа: барберы и услуги
type Service struct {
	barberRepo  BarberRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(barberRepo BarberRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		barberRepo:  barberRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Барберы

// CreateBarber создает нового барбера
func (s *Service) CreateBarber(ctx context.Context, req *models.CreateBarberRequest) (*models.BarberResponse, error) {
	s.logger.Info("CreateBarber: creating barber name=%s", req.Name)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	barber := &domain.Barber{
		Name:      strings.TrimSpace(req.Name),
		Specialty: req.Specialty,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		IsActive:  true,
	}

	created, err := s.barberRepo.Create(ctx, barber)
	if err != nil {
		s.logger.Error("CreateBarber: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBarber - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBarber: successfully created barber id=%d", created.ID)
	return models.FromDomainBarber(created), nil
}

// GetBarber получает барбера по ID
func (s *Service) GetBarber(ctx context.Context, id int64) (*models.BarberResponse, error) {
	barber, err := s.barberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("GetBarber: barber id=%d not found", id)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetBarber: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetBarber - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBarber(barber), nil
}

// ListBarbers получает список барберов
// При activeOnly=true возвращаются только активные барберы
func (s *Service) ListBarbers(ctx context.Context, activeOnly bool) (*models.BarberListResponse, error) {
	barbers, err := s.barberRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListBarbers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBarbers - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBarbers: fetched %d barbers (activeOnly=%v)", len(barbers), activeOnly)
	return models.FromDomainBarberList(barbers), nil
}

// UpdateBarber частично обновляет барбера
func (s *Service) UpdateBarber(ctx context.Context, id int64, req *models.UpdateBarberRequest) (*models.BarberResponse, error) {
	s.logger.Info("UpdateBarber: updating barber id=%d", id)

	barber, err := s.barberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("UpdateBarber: barber id=%d not found", id)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("UpdateBarber: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateBarber - repository error: %v", ErrInternal, err)
	}

	// Применяем только переданные поля
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Specialty != nil {
		barber.Specialty = req.Specialty
	}
	if req.Bio != nil {
		barber.Bio = req.Bio
	}
	if req.PhotoURL != nil {
		barber.PhotoURL = req.PhotoURL
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	updated, err := s.barberRepo.Update(ctx, id, barber)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("UpdateBarber: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateBarber - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBarber: successfully updated barber id=%d", id)
	return models.FromDomainBarber(updated), nil
}

// DeactivateBarber деактивирует барбера (мягкое удаление)
// Существующие бронирования барбера не затрагиваются
func (s *Service) DeactivateBarber(ctx context.Context, id int64) error {
	s.logger.Info("DeactivateBarber: deactivating barber id=%d", id)

	if err := s.barberRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("DeactivateBarber: barber id=%d not found", id)
			return ErrBarberNotFound
		}
		s.logger.Error("DeactivateBarber: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeactivateBarber - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateBarber: successfully deactivated barber id=%d", id)
	return nil
}

// Услуги

// CreateService создает новую услугу
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service name=%s", req.Name)

	if err := validateServiceFields(req.Name, req.Price, req.DurationMinutes); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// ListServices получает список услуг
// При activeOnly=true возвращаются только активные услуги
func (s *Service) ListServices(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services (activeOnly=%v)", len(services), activeOnly)
	return models.FromDomainServiceList(services), nil
}

// UpdateService частично обновляет услугу
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: updating service id=%d", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	// Применяем только переданные поля
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
		}
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	updated, err := s.serviceRepo.Update(ctx, id, svc)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// DeactivateService деактивирует услугу (мягкое удаление)
func (s *Service) DeactivateService(ctx context.Context, id int64) error {
	s.logger.Info("DeactivateService: deactivating service id=%d", id)

	if err := s.serviceRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("DeactivateService: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("DeactivateService: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeactivateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateService: successfully deactivated service id=%d", id)
	return nil
}

// validateServiceFields проверяет обязательные поля услуги
func validateServiceFields(name string, price float64, durationMinutes int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}
