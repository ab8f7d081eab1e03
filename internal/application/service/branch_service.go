package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/apperror"
)

// BranchService handles branch operations
type BranchService struct {
	branchRepo repository.BranchRepository
	subSvc     *SubscriptionService
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository, subSvc *SubscriptionService) *BranchService {
	return &BranchService{branchRepo: branchRepo, subSvc: subSvc}
}

// CreateBranchInput represents the create branch input
type CreateBranchInput struct {
	LaundryID uuid.UUID
	Name      string
	Address   string
	Phone     string
}

// CreateBranch creates a new branch, subject to the plan's branch limit
func (s *BranchService) CreateBranch(ctx context.Context, input *CreateBranchInput) (*entity.Branch, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Branch name is required")
	}

	count, err := s.branchRepo.CountByLaundry(ctx, input.LaundryID)
	if err != nil {
		return nil, err
	}
	if err := s.subSvc.CheckBranchLimit(ctx, input.LaundryID, count); err != nil {
		return nil, err
	}

	branch := &entity.Branch{
		LaundryID: input.LaundryID,
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		IsActive:  true,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// GetBranch retrieves a branch by ID
func (s *BranchService) GetBranch(ctx context.Context, laundryID, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// ListBranches lists all branches of a laundry
func (s *BranchService) ListBranches(ctx context.Context, laundryID uuid.UUID) ([]entity.Branch, error) {
	return s.branchRepo.List(ctx, laundryID)
}

// UpdateBranchInput represents the update branch input
type UpdateBranchInput struct {
	Name     *string
	Address  *string
	Phone    *string
	IsActive *bool
}

// UpdateBranch updates a branch
func (s *BranchService) UpdateBranch(ctx context.Context, laundryID, id uuid.UUID, input *UpdateBranchInput) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.Name != nil && *input.Name != "" {
		branch.Name = *input.Name
	}
	if input.Address != nil {
		branch.Address = *input.Address
	}
	if input.Phone != nil {
		branch.Phone = *input.Phone
	}
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch soft-deletes a branch
func (s *BranchService) DeleteBranch(ctx context.Context, laundryID, id uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	return s.branchRepo.Delete(ctx, laundryID, id)
}
