package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	domainRepo "github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/pagination"
	"gorm.io/gorm"
)

type laundryRepository struct {
	db *gorm.DB
}

// NewLaundryRepository creates a new laundry repository
func NewLaundryRepository(db *gorm.DB) domainRepo.LaundryRepository {
	return &laundryRepository{db: db}
}

func (r *laundryRepository) Create(ctx context.Context, laundry *entity.Laundry) error {
	return r.db.WithContext(ctx).Create(laundry).Error
}

func (r *laundryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Laundry, error) {
	var laundry entity.Laundry
	err := r.db.WithContext(ctx).First(&laundry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &laundry, nil
}

func (r *laundryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Laundry, error) {
	var laundry entity.Laundry
	err := r.db.WithContext(ctx).First(&laundry, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &laundry, nil
}

func (r *laundryRepository) Update(ctx context.Context, laundry *entity.Laundry) error {
	return r.db.WithContext(ctx).Save(laundry).Error
}

func (r *laundryRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.LaundrySettings) error {
	return r.db.WithContext(ctx).
		Model(&entity.Laundry{}).
		Where("id = ?", id).
		Update("settings", settings).Error
}

func (r *laundryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Laundry{}, "id = ?", id).Error
}

func (r *laundryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Laundry{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *laundryRepository) ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Laundry, int64, error) {
	var laundries []entity.Laundry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Laundry{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&laundries).Error

	return laundries, total, err
}

func (r *laundryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Laundry{}).Count(&count).Error
	return count, err
}
