package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/apperror"
	"github.com/maghsala/maghsala-api/pkg/pagination"
	"github.com/maghsala/maghsala-api/pkg/utils"
)

// UserService handles staff management within a laundry
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	subSvc   *SubscriptionService
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, subSvc *SubscriptionService) *UserService {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo, subSvc: subSvc}
}

// CreateStaffInput represents the create staff input
type CreateStaffInput struct {
	LaundryID uuid.UUID
	BranchID  *uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     *string
	RoleName  string
}

// CreateStaff provisions a staff account for a laundry, subject to the
// plan's user limit.
func (s *UserService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	count, err := s.userRepo.CountByLaundry(ctx, input.LaundryID)
	if err != nil {
		return nil, err
	}
	if err := s.subSvc.CheckUserLimit(ctx, input.LaundryID, count); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	laundryID := input.LaundryID
	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  hashedPassword,
		LaundryID: &laundryID,
		BranchID:  input.BranchID,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	roleName := input.RoleName
	if roleName == "" {
		roleName = "cashier"
	}
	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil || role == nil {
		return nil, apperror.NewBadRequestError("Unknown role " + roleName)
	}
	if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return nil, err
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// GetStaff retrieves a staff member, scoped to the laundry
func (s *UserService) GetStaff(ctx context.Context, laundryID, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.LaundryID == nil || *user.LaundryID != laundryID {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListStaff lists a laundry's staff with pagination
func (s *UserService) ListStaff(ctx context.Context, laundryID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, laundryID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// UpdateStaffInput represents the update staff input
type UpdateStaffInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	BranchID  *uuid.UUID
	IsActive  *bool
	RoleName  *string
}

// UpdateStaff updates a staff member
func (s *UserService) UpdateStaff(ctx context.Context, laundryID, id uuid.UUID, input *UpdateStaffInput) (*entity.User, error) {
	user, err := s.GetStaff(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil && *input.FirstName != "" {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil && *input.LastName != "" {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.BranchID != nil {
		user.BranchID = input.BranchID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if input.RoleName != nil && *input.RoleName != user.RoleName() {
		newRole, err := s.roleRepo.GetByName(ctx, *input.RoleName)
		if err != nil || newRole == nil {
			return nil, apperror.NewBadRequestError("Unknown role " + *input.RoleName)
		}
		for _, r := range user.Roles {
			_ = s.userRepo.RemoveRole(ctx, user.ID, r.ID)
		}
		if err := s.userRepo.AssignRole(ctx, user.ID, newRole.ID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// DeleteStaff soft-deletes a staff member
func (s *UserService) DeleteStaff(ctx context.Context, laundryID, id uuid.UUID) error {
	user, err := s.GetStaff(ctx, laundryID, id)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}
