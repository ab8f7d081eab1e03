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

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByPhone(ctx context.Context, laundryID uuid.UUID, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND phone = ?", laundryID, phone).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, laundryID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		Delete(&entity.Customer{}).Error
}

func (r *customerRepository) List(ctx context.Context, laundryID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("laundry_id = ?", laundryID)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) IncrementStats(ctx context.Context, laundryID, id uuid.UUID, amount float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		Updates(map[string]interface{}{
			"total_orders": gorm.Expr("total_orders + 1"),
			"total_spent":  gorm.Expr("total_spent + ?", amount),
		}).Error
}
