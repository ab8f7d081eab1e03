package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
)

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, laundryID, id uuid.UUID) error
	List(ctx context.Context, laundryID uuid.UUID) ([]entity.Branch, error)
	CountByLaundry(ctx context.Context, laundryID uuid.UUID) (int64, error)
}
