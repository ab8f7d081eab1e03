package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/apperror"
)

// SubscriptionService handles plan subscriptions and their limits
type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	planRepo repository.PlanRepository
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subRepo repository.SubscriptionRepository, planRepo repository.PlanRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, planRepo: planRepo}
}

// ListPlans lists all available plans
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]entity.Plan, error) {
	return s.planRepo.List(ctx)
}

// GetActiveSubscription returns the laundry's current subscription
func (s *SubscriptionService) GetActiveSubscription(ctx context.Context, laundryID uuid.UUID) (*entity.Subscription, error) {
	sub, err := s.subRepo.GetActiveByLaundry(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperror.NewNotFoundError("Subscription")
	}
	return sub, nil
}

// Subscribe puts a laundry on a plan for the given number of months. Any
// current subscription is cancelled first.
func (s *SubscriptionService) Subscribe(ctx context.Context, laundryID, planID uuid.UUID, months int) (*entity.Subscription, error) {
	if months < 1 {
		return nil, apperror.NewBadRequestError("Subscription length must be at least one month")
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Plan")
	}

	if current, err := s.subRepo.GetActiveByLaundry(ctx, laundryID); err == nil && current != nil {
		current.Status = enum.SubscriptionStatusCancelled
		if err := s.subRepo.Update(ctx, current); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	sub := &entity.Subscription{
		LaundryID: laundryID,
		PlanID:    plan.ID,
		Status:    enum.SubscriptionStatusActive,
		StartsAt:  now,
		ExpiresAt: now.AddDate(0, months, 0),
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	sub.Plan = *plan
	return sub, nil
}

// CheckBranchLimit verifies the laundry may add another branch
func (s *SubscriptionService) CheckBranchLimit(ctx context.Context, laundryID uuid.UUID, currentCount int64) error {
	plan, err := s.activePlan(ctx, laundryID)
	if err != nil {
		return err
	}
	if currentCount >= int64(plan.MaxBranches) {
		return apperror.ErrBranchLimitReached
	}
	return nil
}

// CheckUserLimit verifies the laundry may add another staff member
func (s *SubscriptionService) CheckUserLimit(ctx context.Context, laundryID uuid.UUID, currentCount int64) error {
	plan, err := s.activePlan(ctx, laundryID)
	if err != nil {
		return err
	}
	if currentCount >= int64(plan.MaxUsers) {
		return apperror.ErrUserLimitReached
	}
	return nil
}

func (s *SubscriptionService) activePlan(ctx context.Context, laundryID uuid.UUID) (*entity.Plan, error) {
	sub, err := s.subRepo.GetActiveByLaundry(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	if sub == nil || !sub.IsActive(time.Now()) {
		return nil, apperror.ErrSubscriptionExpired
	}
	return &sub.Plan, nil
}
