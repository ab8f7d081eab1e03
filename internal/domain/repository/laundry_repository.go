package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/pkg/pagination"
)

// LaundryRepository defines the interface for laundry (tenant) data operations
type LaundryRepository interface {
	// Create creates a new laundry
	Create(ctx context.Context, laundry *entity.Laundry) error

	// GetByID retrieves a laundry by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Laundry, error)

	// GetBySlug retrieves a laundry by slug (subdomain identifier)
	GetBySlug(ctx context.Context, slug string) (*entity.Laundry, error)

	// Update updates an existing laundry
	Update(ctx context.Context, laundry *entity.Laundry) error

	// UpdateSettings replaces the laundry settings document
	UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.LaundrySettings) error

	// Delete soft-deletes a laundry
	Delete(ctx context.Context, id uuid.UUID) error

	// SlugExists checks if a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListAll retrieves all laundries (for super admin use)
	ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Laundry, int64, error)

	// Count returns the total number of laundries
	Count(ctx context.Context) (int64, error)
}
