package models

import (
	"time"

	"github.com/dkoval/barbershop-booking/internal/domain"
)

// Request модели

// CreateBarberRequest запрос на создание барбера
type CreateBarberRequest struct {
	Name      string  `json:"name"`
	Specialty *string `json:"specialty,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
}

// UpdateBarberRequest запрос на обновление барбера
type UpdateBarberRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// UpdateServiceRequest запрос на обновление услуги
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

// Response модели

// BarberResponse ответ с данными барбера
type BarberResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Specialty *string   `json:"specialty,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	PhotoURL  *string   `json:"photoUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BarberListResponse ответ со списком барберов
type BarberListResponse struct {
	Barbers []BarberResponse `json:"barbers"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainBarber конвертирует domain модель в DTO
func FromDomainBarber(b *domain.Barber) *BarberResponse {
	if b == nil {
		return nil
	}

	return &BarberResponse{
		ID:        b.ID,
		Name:      b.Name,
		Specialty: b.Specialty,
		Bio:       b.Bio,
		PhotoURL:  b.PhotoURL,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBarberList конвертирует список domain моделей в DTO
func FromDomainBarberList(barbers []*domain.Barber) *BarberListResponse {
	resp := &BarberListResponse{
		Barbers: make([]BarberResponse, 0, len(barbers)),
	}
	for _, b := range barbers {
		if br := FromDomainBarber(b); br != nil {
			resp.Barbers = append(resp.Barbers, *br)
		}
	}
	return resp
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		if sr := FromDomainService(s); sr != nil {
			resp.Services = append(resp.Services, *sr)
		}
	}
	return resp
}
