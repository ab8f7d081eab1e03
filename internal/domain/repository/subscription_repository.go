package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
)

// PlanRepository defines the interface for subscription plan operations
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	GetByName(ctx context.Context, name string) (*entity.Plan, error)
	List(ctx context.Context) ([]entity.Plan, error)
}

// SubscriptionRepository defines the interface for subscription operations
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	// GetActiveByLaundry returns the laundry's current subscription with its
	// plan preloaded, or nil when none exists.
	GetActiveByLaundry(ctx context.Context, laundryID uuid.UUID) (*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
	ListByLaundry(ctx context.Context, laundryID uuid.UUID) ([]entity.Subscription, error)
}
