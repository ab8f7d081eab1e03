package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	domainRepo "github.com/maghsala/maghsala-api/internal/domain/repository"
	"gorm.io/gorm"
)

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new catalog service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) GetByIDs(ctx context.Context, laundryID uuid.UUID, ids []uuid.UUID) ([]entity.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var services []entity.Service
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND id IN ?", laundryID, ids).
		Find(&services).Error
	return services, err
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, laundryID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		Delete(&entity.Service{}).Error
}

func (r *serviceRepository) List(ctx context.Context, laundryID uuid.UUID, activeOnly bool) ([]entity.Service, error) {
	var services []entity.Service
	query := r.db.WithContext(ctx).Where("laundry_id = ?", laundryID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&services).Error
	return services, err
}

type serviceCategoryRepository struct {
	db *gorm.DB
}

// NewServiceCategoryRepository creates a new service category repository
func NewServiceCategoryRepository(db *gorm.DB) domainRepo.ServiceCategoryRepository {
	return &serviceCategoryRepository{db: db}
}

func (r *serviceCategoryRepository) Create(ctx context.Context, category *entity.ServiceCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *serviceCategoryRepository) GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.ServiceCategory, error) {
	var category entity.ServiceCategory
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *serviceCategoryRepository) Update(ctx context.Context, category *entity.ServiceCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *serviceCategoryRepository) Delete(ctx context.Context, laundryID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		Delete(&entity.ServiceCategory{}).Error
}

func (r *serviceCategoryRepository) List(ctx context.Context, laundryID uuid.UUID) ([]entity.ServiceCategory, error) {
	var categories []entity.ServiceCategory
	err := r.db.WithContext(ctx).
		Where("laundry_id = ?", laundryID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}
