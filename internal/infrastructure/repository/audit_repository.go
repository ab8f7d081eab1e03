package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	domainRepo "github.com/maghsala/maghsala-api/internal/domain/repository"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit log repository
func NewAuditRepository(db *gorm.DB) domainRepo.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditRepository) List(ctx context.Context, laundryID uuid.UUID, params *domainRepo.AuditFilterParams) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.AuditLog{}).
		Where("laundry_id = ?", laundryID)

	if params.BranchID != nil {
		query = query.Where("branch_id = ?", *params.BranchID)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.RiskLevel != nil {
		query = query.Where("risk_level = ?", *params.RiskLevel)
	}
	if params.Flagged != nil {
		query = query.Where("is_flagged = ?", *params.Flagged)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pg := params.Pagination
	pg.Validate()
	err := query.
		Order("created_at DESC").
		Offset(pg.Offset()).
		Limit(pg.PerPage).
		Find(&logs).Error

	return logs, total, err
}
