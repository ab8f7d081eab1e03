package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	domainRepo "github.com/maghsala/maghsala-api/internal/domain/repository"
	"gorm.io/gorm"
)

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, laundryID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		Delete(&entity.Branch{}).Error
}

func (r *branchRepository) List(ctx context.Context, laundryID uuid.UUID) ([]entity.Branch, error) {
	var branches []entity.Branch
	err := r.db.WithContext(ctx).
		Where("laundry_id = ?", laundryID).
		Order("created_at ASC").
		Find(&branches).Error
	return branches, err
}

func (r *branchRepository) CountByLaundry(ctx context.Context, laundryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Branch{}).
		Where("laundry_id = ?", laundryID).
		Count(&count).Error
	return count, err
}
