package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/pkg/pagination"
)

// CashSessionRepository defines the interface for cash drawer session operations
type CashSessionRepository interface {
	// Create persists a new open session. The database enforces at most one
	// open session per (laundry, branch, cashier); a conflicting insert
	// returns a uniqueness violation.
	Create(ctx context.Context, session *entity.CashSession) error

	GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.CashSession, error)

	// GetOpen returns the cashier's open session at a branch, or nil when
	// no session is open.
	GetOpen(ctx context.Context, laundryID, branchID, userID uuid.UUID) (*entity.CashSession, error)

	Update(ctx context.Context, session *entity.CashSession) error

	// List returns sessions for back-office review, newest first.
	List(ctx context.Context, laundryID uuid.UUID, params *CashSessionFilterParams) ([]entity.CashSession, int64, error)
}

// CashSessionFilterParams contains filtering parameters for session queries
type CashSessionFilterParams struct {
	Pagination *pagination.PaginationParams
	BranchID   *uuid.UUID
	UserID     *uuid.UUID
	Status     *string
	StartDate  *time.Time
	EndDate    *time.Time
}
