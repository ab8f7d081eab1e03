package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
)

// ServiceRepository defines the interface for catalog service data operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.Service, error)
	GetByIDs(ctx context.Context, laundryID uuid.UUID, ids []uuid.UUID) ([]entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, laundryID, id uuid.UUID) error
	// List returns catalog services, optionally restricted to active ones.
	List(ctx context.Context, laundryID uuid.UUID, activeOnly bool) ([]entity.Service, error)
}

// ServiceCategoryRepository defines the interface for service category data operations
type ServiceCategoryRepository interface {
	Create(ctx context.Context, category *entity.ServiceCategory) error
	GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.ServiceCategory, error)
	Update(ctx context.Context, category *entity.ServiceCategory) error
	Delete(ctx context.Context, laundryID, id uuid.UUID) error
	List(ctx context.Context, laundryID uuid.UUID) ([]entity.ServiceCategory, error)
}
