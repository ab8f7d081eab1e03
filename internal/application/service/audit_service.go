package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/pagination"
)

// AuditService records and queries the back-office audit trail
type AuditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// AuditEntry describes a sensitive action to be recorded
type AuditEntry struct {
	LaundryID  uuid.UUID
	BranchID   *uuid.UUID
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	RiskLevel  enum.RiskLevel
	Details    entity.AuditDetails
	IPAddress  *string
}

// Record writes an audit entry. Failures are logged but never bubble up:
// the audited operation has already committed.
func (s *AuditService) Record(ctx context.Context, e *AuditEntry) {
	risk := e.RiskLevel
	if risk == "" {
		risk = enum.RiskLevelLow
	}

	logEntry := &entity.AuditLog{
		LaundryID:  e.LaundryID,
		BranchID:   e.BranchID,
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		RiskLevel:  risk,
		IsFlagged:  risk == enum.RiskLevelHigh,
		Details:    e.Details,
		IPAddress:  e.IPAddress,
	}

	if err := s.auditRepo.Create(ctx, logEntry); err != nil {
		log.Printf("audit: failed to record %s: %v", e.Action, err)
	}
}

// ListAuditLogs lists audit entries with filtering
func (s *AuditService) ListAuditLogs(ctx context.Context, laundryID uuid.UUID, params *repository.AuditFilterParams) (*pagination.PaginatedResult[entity.AuditLog], error) {
	logs, total, err := s.auditRepo.List(ctx, laundryID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(logs, pag), nil
}
