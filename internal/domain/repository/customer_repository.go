package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, laundryID uuid.UUID, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, laundryID, id uuid.UUID) error
	// List returns customers with page-based pagination, filtered by name or phone search.
	List(ctx context.Context, laundryID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// IncrementStats bumps the order counter and lifetime spend after a sale.
	IncrementStats(ctx context.Context, laundryID, id uuid.UUID, amount float64) error
}
