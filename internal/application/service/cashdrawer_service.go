package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/apperror"
	"github.com/maghsala/maghsala-api/pkg/money"
	"github.com/maghsala/maghsala-api/pkg/pagination"
)

// CashDrawerService handles cashier shift sessions and reconciliation
type CashDrawerService struct {
	sessionRepo repository.CashSessionRepository
	invoiceRepo repository.InvoiceRepository
	auditSvc    *AuditService
}

// NewCashDrawerService creates a new cash drawer service
func NewCashDrawerService(
	sessionRepo repository.CashSessionRepository,
	invoiceRepo repository.InvoiceRepository,
	auditSvc *AuditService,
) *CashDrawerService {
	return &CashDrawerService{
		sessionRepo: sessionRepo,
		invoiceRepo: invoiceRepo,
		auditSvc:    auditSvc,
	}
}

// ExpectedBreakdown is the per-method sum of paid invoices in a shift window.
// Figures are sales only; the opening float is tracked separately on the
// session. Total is the grand total over every matched invoice including
// "other"; only cash, card and transfer reconcile against the drawer.
type ExpectedBreakdown struct {
	Cash     float64 `json:"cash"`
	Card     float64 `json:"card"`
	Transfer float64 `json:"transfer"`
	Other    float64 `json:"other"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// VarianceBreakdown is counted minus expected, per method.
type VarianceBreakdown struct {
	Cash     float64 `json:"cash"`
	Card     float64 `json:"card"`
	Transfer float64 `json:"transfer"`
	Total    float64 `json:"total"`
}

// CountedAmounts are the cashier's physical end-of-shift counts.
type CountedAmounts struct {
	Cash     float64 `json:"cash"`
	Card     float64 `json:"card"`
	Transfer float64 `json:"transfer"`
}

// Total sums the three counted figures.
func (c CountedAmounts) Total() float64 {
	return money.Sum2(c.Cash, c.Card, c.Transfer)
}

// Valid reports whether every counted figure is a usable amount.
func (c CountedAmounts) Valid() bool {
	return money.IsValidAmount(c.Cash) && money.IsValidAmount(c.Card) && money.IsValidAmount(c.Transfer)
}

// ComputeExpectedFromInvoices buckets paid invoices by normalized payment
// method. Pure function over its inputs; cancelled and unpaid invoices must
// be filtered out by the caller's query.
func ComputeExpectedFromInvoices(invoices []entity.Invoice) ExpectedBreakdown {
	var b ExpectedBreakdown
	for _, inv := range invoices {
		method := enum.PaymentMethodOther
		if inv.PaymentMethod != nil {
			method = enum.NormalizePaymentMethod(string(*inv.PaymentMethod))
		}

		switch method {
		case enum.PaymentMethodCash:
			b.Cash += inv.Total
		case enum.PaymentMethodCard:
			b.Card += inv.Total
		case enum.PaymentMethodTransfer:
			b.Transfer += inv.Total
		default:
			b.Other += inv.Total
		}
		b.Count++
	}

	b.Cash = money.Round2(b.Cash)
	b.Card = money.Round2(b.Card)
	b.Transfer = money.Round2(b.Transfer)
	b.Other = money.Round2(b.Other)
	b.Total = money.Sum2(b.Cash, b.Card, b.Transfer, b.Other)
	return b
}

// ComputeExpected returns the expected takings for a cashier's window.
func (s *CashDrawerService) ComputeExpected(ctx context.Context, laundryID, branchID, cashierID uuid.UUID, from, to time.Time) (*ExpectedBreakdown, error) {
	invoices, err := s.invoiceRepo.ListPaidInWindow(ctx, laundryID, branchID, cashierID, from, to)
	if err != nil {
		return nil, err
	}
	b := ComputeExpectedFromInvoices(invoices)
	return &b, nil
}

// OpenShiftInput represents the open shift input
type OpenShiftInput struct {
	LaundryID   uuid.UUID
	BranchID    uuid.UUID
	UserID      uuid.UUID
	OpeningCash float64
	Notes       *string
}

// OpenShift starts a new drawer session for a cashier at a branch. At most
// one session per (laundry, branch, cashier) may be open; the check here is
// backed by a partial unique index so concurrent opens cannot both succeed.
func (s *CashDrawerService) OpenShift(ctx context.Context, input *OpenShiftInput) (*entity.CashSession, error) {
	if !money.IsValidAmount(input.OpeningCash) {
		return nil, apperror.NewBadRequestError("Opening cash must be a non-negative amount")
	}

	existing, err := s.sessionRepo.GetOpen(ctx, input.LaundryID, input.BranchID, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrSessionAlreadyOpen
	}

	session := &entity.CashSession{
		LaundryID:   input.LaundryID,
		BranchID:    input.BranchID,
		UserID:      input.UserID,
		Status:      enum.SessionStatusOpen,
		OpeningCash: money.Round2(input.OpeningCash),
		OpenNotes:   input.Notes,
		OpenedAt:    time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// CountedTotals echoes the cashier's counts back with their sum.
type CountedTotals struct {
	Cash     float64 `json:"cash"`
	Card     float64 `json:"card"`
	Transfer float64 `json:"transfer"`
	Total    float64 `json:"total"`
}

// CloseShiftResult bundles the closed session with its reconciliation.
type CloseShiftResult struct {
	Session  *entity.CashSession `json:"session"`
	Expected ExpectedBreakdown   `json:"expected"`
	Counted  CountedTotals       `json:"counted"`
	Variance VarianceBreakdown   `json:"variance"`
}

// CloseShift reconciles and closes the cashier's open session. Counted cash
// is measured against the opening float plus cash takings; card and transfer
// against their takings alone. Closed sessions are never reopened.
func (s *CashDrawerService) CloseShift(ctx context.Context, laundryID, branchID, userID uuid.UUID, counted CountedAmounts, notes *string) (*CloseShiftResult, error) {
	if !counted.Valid() {
		return nil, apperror.NewBadRequestError("Counted amounts must be non-negative")
	}

	session, err := s.sessionRepo.GetOpen(ctx, laundryID, branchID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrNoOpenSession
	}

	now := time.Now()
	expected, err := s.ComputeExpected(ctx, laundryID, branchID, userID, session.OpenedAt, now)
	if err != nil {
		return nil, err
	}

	variance := VarianceBreakdown{
		Cash:     money.Round2(counted.Cash - (session.OpeningCash + expected.Cash)),
		Card:     money.Round2(counted.Card - expected.Card),
		Transfer: money.Round2(counted.Transfer - expected.Transfer),
	}
	variance.Total = money.Sum2(variance.Cash, variance.Card, variance.Transfer)

	session.Status = enum.SessionStatusClosed
	session.ClosedAt = &now
	session.CloseNotes = notes
	session.CountedCash = ptr(money.Round2(counted.Cash))
	session.CountedCard = ptr(money.Round2(counted.Card))
	session.CountedTransfer = ptr(money.Round2(counted.Transfer))
	session.ExpectedCash = ptr(expected.Cash)
	session.ExpectedCard = ptr(expected.Card)
	session.ExpectedTransfer = ptr(expected.Transfer)
	session.ExpectedOther = ptr(expected.Other)
	session.ExpectedTotal = ptr(expected.Total)
	session.VarianceCash = ptr(variance.Cash)
	session.VarianceCard = ptr(variance.Card)
	session.VarianceTransfer = ptr(variance.Transfer)
	session.VarianceTotal = ptr(variance.Total)
	session.InvoiceCount = ptr(expected.Count)

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	risk := enum.RiskLevelLow
	if variance.Total != 0 {
		risk = enum.RiskLevelMedium
	}
	s.auditSvc.Record(ctx, &AuditEntry{
		LaundryID:  laundryID,
		BranchID:   &branchID,
		UserID:     userID,
		Action:     "cash_session.closed",
		EntityType: "cash_session",
		EntityID:   &session.ID,
		RiskLevel:  risk,
		Details: entity.AuditDetails{
			"opening_cash":   session.OpeningCash,
			"expected_total": expected.Total,
			"counted_total":  counted.Total(),
			"variance_total": variance.Total,
		},
	})

	return &CloseShiftResult{
		Session:  session,
		Expected: *expected,
		Counted: CountedTotals{
			Cash:     money.Round2(counted.Cash),
			Card:     money.Round2(counted.Card),
			Transfer: money.Round2(counted.Transfer),
			Total:    counted.Total(),
		},
		Variance: variance,
	}, nil
}

// GetCurrentSession returns the cashier's open session, if any
func (s *CashDrawerService) GetCurrentSession(ctx context.Context, laundryID, branchID, userID uuid.UUID) (*entity.CashSession, error) {
	session, err := s.sessionRepo.GetOpen(ctx, laundryID, branchID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Open cash session")
	}
	return session, nil
}

// ListSessions lists sessions for back-office review
func (s *CashDrawerService) ListSessions(ctx context.Context, laundryID uuid.UUID, params *repository.CashSessionFilterParams) (*pagination.PaginatedResult[entity.CashSession], error) {
	sessions, total, err := s.sessionRepo.List(ctx, laundryID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}

func ptr[T any](v T) *T {
	return &v
}
