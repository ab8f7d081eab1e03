package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/apperror"
	"github.com/maghsala/maghsala-api/pkg/money"
)

// CatalogService handles the laundry's priced service catalog
type CatalogService struct {
	serviceRepo  repository.ServiceRepository
	categoryRepo repository.ServiceCategoryRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository, categoryRepo repository.ServiceCategoryRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, categoryRepo: categoryRepo}
}

// CreateServiceInput represents the create service input
type CreateServiceInput struct {
	LaundryID  uuid.UUID
	CategoryID *uuid.UUID
	Name       string
	NameAr     *string
	Price      float64
	Unit       string
}

// CreateService creates a new catalog service
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Service name is required")
	}
	if !money.IsValidAmount(input.Price) {
		return nil, apperror.NewBadRequestError("Service price must be a non-negative amount")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, input.LaundryID, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Service category")
		}
	}

	unit := input.Unit
	if unit == "" {
		unit = "piece"
	}

	svc := &entity.Service{
		LaundryID:  input.LaundryID,
		CategoryID: input.CategoryID,
		Name:       input.Name,
		NameAr:     input.NameAr,
		Price:      money.Round2(input.Price),
		Unit:       unit,
		IsActive:   true,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a catalog service by ID
func (s *CatalogService) GetService(ctx context.Context, laundryID, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// ListServices lists catalog services
func (s *CatalogService) ListServices(ctx context.Context, laundryID uuid.UUID, activeOnly bool) ([]entity.Service, error) {
	return s.serviceRepo.List(ctx, laundryID, activeOnly)
}

// UpdateServiceInput represents the update service input
type UpdateServiceInput struct {
	CategoryID *uuid.UUID
	Name       *string
	NameAr     *string
	Price      *float64
	Unit       *string
	IsActive   *bool
}

// UpdateService updates a catalog service
func (s *CatalogService) UpdateService(ctx context.Context, laundryID, id uuid.UUID, input *UpdateServiceInput) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}

	if input.Name != nil && *input.Name != "" {
		svc.Name = *input.Name
	}
	if input.NameAr != nil {
		svc.NameAr = input.NameAr
	}
	if input.Price != nil {
		if !money.IsValidAmount(*input.Price) {
			return nil, apperror.NewBadRequestError("Service price must be a non-negative amount")
		}
		svc.Price = money.Round2(*input.Price)
	}
	if input.Unit != nil && *input.Unit != "" {
		svc.Unit = *input.Unit
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, laundryID, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Service category")
		}
		svc.CategoryID = input.CategoryID
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService soft-deletes a catalog service
func (s *CatalogService) DeleteService(ctx context.Context, laundryID, id uuid.UUID) error {
	svc, err := s.serviceRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return apperror.NewNotFoundError("Service")
	}
	return s.serviceRepo.Delete(ctx, laundryID, id)
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	LaundryID uuid.UUID
	Name      string
	NameAr    *string
	SortOrder int
}

// CreateCategory creates a new service category
func (s *CatalogService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.ServiceCategory, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category := &entity.ServiceCategory{
		LaundryID: input.LaundryID,
		Name:      input.Name,
		NameAr:    input.NameAr,
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists service categories
func (s *CatalogService) ListCategories(ctx context.Context, laundryID uuid.UUID) ([]entity.ServiceCategory, error) {
	return s.categoryRepo.List(ctx, laundryID)
}

// DeleteCategory soft-deletes a service category
func (s *CatalogService) DeleteCategory(ctx context.Context, laundryID, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Service category")
	}
	return s.categoryRepo.Delete(ctx, laundryID, id)
}
