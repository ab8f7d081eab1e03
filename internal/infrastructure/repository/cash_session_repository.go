package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	domainRepo "github.com/maghsala/maghsala-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cashSessionRepository struct {
	db *gorm.DB
}

// NewCashSessionRepository creates a new cash session repository
func NewCashSessionRepository(db *gorm.DB) domainRepo.CashSessionRepository {
	return &cashSessionRepository{db: db}
}

func (r *cashSessionRepository) Create(ctx context.Context, session *entity.CashSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *cashSessionRepository) GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *cashSessionRepository) GetOpen(ctx context.Context, laundryID, branchID, userID uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND branch_id = ? AND user_id = ?", laundryID, branchID, userID).
		Where("status = ?", enum.SessionStatusOpen).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *cashSessionRepository) Update(ctx context.Context, session *entity.CashSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *cashSessionRepository) List(ctx context.Context, laundryID uuid.UUID, params *domainRepo.CashSessionFilterParams) ([]entity.CashSession, int64, error) {
	var sessions []entity.CashSession
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.CashSession{}).
		Where("laundry_id = ?", laundryID)

	if params.BranchID != nil {
		query = query.Where("branch_id = ?", *params.BranchID)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("opened_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("opened_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pg := params.Pagination
	pg.Validate()
	err := query.
		Order("opened_at DESC").
		Offset(pg.Offset()).
		Limit(pg.PerPage).
		Find(&sessions).Error

	return sessions, total, err
}
