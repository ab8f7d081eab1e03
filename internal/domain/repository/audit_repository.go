package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/pkg/pagination"
)

// AuditRepository defines the interface for audit log operations
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, laundryID uuid.UUID, params *AuditFilterParams) ([]entity.AuditLog, int64, error)
}

// AuditFilterParams contains filtering parameters for audit queries
type AuditFilterParams struct {
	Pagination *pagination.PaginationParams
	BranchID   *uuid.UUID
	UserID     *uuid.UUID
	Action     string
	RiskLevel  *enum.RiskLevel
	Flagged    *bool
	StartDate  *time.Time
	EndDate    *time.Time
}
