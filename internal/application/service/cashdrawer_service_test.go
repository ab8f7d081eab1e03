package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/apperror"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.CashSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.CashSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.CashSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, laundryID, id uuid.UUID) (*entity.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok || s.LaundryID != laundryID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) GetOpen(_ context.Context, laundryID, branchID, userID uuid.UUID) (*entity.CashSession, error) {
	for _, s := range r.sessions {
		if s.LaundryID == laundryID && s.BranchID == branchID && s.UserID == userID && s.Status == enum.SessionStatusOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *entity.CashSession) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) List(_ context.Context, laundryID uuid.UUID, _ *repository.CashSessionFilterParams) ([]entity.CashSession, int64, error) {
	var out []entity.CashSession
	for _, s := range r.sessions {
		if s.LaundryID == laundryID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

type fakeInvoiceWindowRepo struct {
	repository.InvoiceRepository
	invoices []entity.Invoice
}

func (r *fakeInvoiceWindowRepo) ListPaidInWindow(_ context.Context, laundryID, branchID, cashierID uuid.UUID, from, to time.Time) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if inv.LaundryID != laundryID || inv.BranchID != branchID || inv.CreatedByID != cashierID {
			continue
		}
		if inv.PaymentStatus != enum.PaymentStatusPaid {
			continue
		}
		if inv.CreatedAt.Before(from) || inv.CreatedAt.After(to) {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

type fakeAuditRepo struct {
	entries []entity.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	r.entries = append(r.entries, *l)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _ uuid.UUID, _ *repository.AuditFilterParams) ([]entity.AuditLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

func paidInvoice(laundryID, branchID, cashierID uuid.UUID, total float64, method enum.PaymentMethod, paidAt time.Time) entity.Invoice {
	m := method
	return entity.Invoice{
		ID:            uuid.New(),
		LaundryID:     laundryID,
		BranchID:      branchID,
		CreatedByID:   cashierID,
		Total:         total,
		PaymentStatus: enum.PaymentStatusPaid,
		PaymentMethod: &m,
		PaidAt:        &paidAt,
		CreatedAt:     paidAt,
	}
}

func newDrawerFixture() (*CashDrawerService, *fakeSessionRepo, *fakeInvoiceWindowRepo) {
	sessionRepo := newFakeSessionRepo()
	invoiceRepo := &fakeInvoiceWindowRepo{}
	auditSvc := NewAuditService(&fakeAuditRepo{})
	return NewCashDrawerService(sessionRepo, invoiceRepo, auditSvc), sessionRepo, invoiceRepo
}

func TestComputeExpectedAllCashConservation(t *testing.T) {
	invoices := []entity.Invoice{}
	cash := enum.PaymentMethodCash
	for _, total := range []float64{10.50, 22.25, 99.99, 0.01} {
		m := cash
		invoices = append(invoices, entity.Invoice{Total: total, PaymentMethod: &m})
	}

	b := ComputeExpectedFromInvoices(invoices)

	assert.Equal(t, b.Cash, b.Total)
	assert.Zero(t, b.Card)
	assert.Zero(t, b.Transfer)
	assert.Zero(t, b.Other)
	assert.Equal(t, 4, b.Count)
	assert.InDelta(t, 132.75, b.Cash, 1e-9)
}

func TestComputeExpectedNormalizesMethods(t *testing.T) {
	methods := []string{"CASH", " card ", "Transfer", "wallet", ""}
	var invoices []entity.Invoice
	for _, raw := range methods {
		m := enum.PaymentMethod(raw)
		invoices = append(invoices, entity.Invoice{Total: 10, PaymentMethod: &m})
	}
	invoices = append(invoices, entity.Invoice{Total: 10}) // nil method

	b := ComputeExpectedFromInvoices(invoices)

	assert.Equal(t, 10.0, b.Cash)
	assert.Equal(t, 10.0, b.Card)
	assert.Equal(t, 10.0, b.Transfer)
	assert.Equal(t, 30.0, b.Other) // wallet, empty and nil all land in other
	assert.Equal(t, 60.0, b.Total) // grand total spans every bucket
}

func TestComputeExpectedTotalIncludesOther(t *testing.T) {
	cash := enum.PaymentMethodCash
	wallet := enum.PaymentMethod("wallet")
	invoices := []entity.Invoice{
		{Total: 100, PaymentMethod: &cash},
		{Total: 50, PaymentMethod: &wallet},
	}

	b := ComputeExpectedFromInvoices(invoices)

	assert.Equal(t, 100.0, b.Cash)
	assert.Equal(t, 50.0, b.Other)
	assert.Equal(t, 150.0, b.Total)
	assert.Equal(t, 2, b.Count)
}

func TestOpenShiftRejectsBadOpeningCash(t *testing.T) {
	svc, _, _ := newDrawerFixture()

	for _, bad := range []float64{-1, -0.01} {
		_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
			LaundryID:   uuid.New(),
			BranchID:    uuid.New(),
			UserID:      uuid.New(),
			OpeningCash: bad,
		})
		assert.Error(t, err)
	}
}

func TestOpenShiftConflictLeavesOriginalUnmodified(t *testing.T) {
	svc, sessionRepo, _ := newDrawerFixture()
	laundryID, branchID, userID := uuid.New(), uuid.New(), uuid.New()

	first, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: branchID, UserID: userID, OpeningCash: 150,
	})
	require.NoError(t, err)

	_, err = svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: branchID, UserID: userID, OpeningCash: 999,
	})
	require.Error(t, err)

	stored, err := sessionRepo.GetByID(context.Background(), laundryID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, enum.SessionStatusOpen, stored.Status)
	assert.Equal(t, 150.0, stored.OpeningCash)
	assert.Nil(t, stored.ClosedAt)
}

func TestOpenShiftSameCashierDifferentBranch(t *testing.T) {
	svc, _, _ := newDrawerFixture()
	laundryID, userID := uuid.New(), uuid.New()

	_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: uuid.New(), UserID: userID, OpeningCash: 100,
	})
	require.NoError(t, err)

	// A different branch is a different drawer.
	_, err = svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: uuid.New(), UserID: userID, OpeningCash: 100,
	})
	assert.NoError(t, err)
}

func TestCloseShiftCardSaleBalanced(t *testing.T) {
	laundryID, branchID, userID := uuid.New(), uuid.New(), uuid.New()
	svc, _, invoiceRepo := newDrawerFixture()

	_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: branchID, UserID: userID, OpeningCash: 200,
	})
	require.NoError(t, err)

	invoiceRepo.invoices = append(invoiceRepo.invoices,
		paidInvoice(laundryID, branchID, userID, 100, enum.PaymentMethodCard, time.Now()))

	result, err := svc.CloseShift(context.Background(), laundryID, branchID, userID,
		CountedAmounts{Cash: 200, Card: 100, Transfer: 0}, nil)
	require.NoError(t, err)

	assert.Equal(t, ExpectedBreakdown{Cash: 0, Card: 100, Transfer: 0, Other: 0, Total: 100, Count: 1}, result.Expected)
	assert.Zero(t, result.Variance.Cash)
	assert.Zero(t, result.Variance.Card)
	assert.Zero(t, result.Variance.Transfer)
	assert.Zero(t, result.Variance.Total)
	assert.Equal(t, enum.SessionStatusClosed, result.Session.Status)
	require.NotNil(t, result.Session.ClosedAt)
}

func TestCloseShiftCardShortfall(t *testing.T) {
	laundryID, branchID, userID := uuid.New(), uuid.New(), uuid.New()
	svc, _, invoiceRepo := newDrawerFixture()

	_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: branchID, UserID: userID, OpeningCash: 200,
	})
	require.NoError(t, err)

	invoiceRepo.invoices = append(invoiceRepo.invoices,
		paidInvoice(laundryID, branchID, userID, 100, enum.PaymentMethodCard, time.Now()))

	result, err := svc.CloseShift(context.Background(), laundryID, branchID, userID,
		CountedAmounts{Cash: 200, Card: 90, Transfer: 0}, nil)
	require.NoError(t, err)

	assert.Equal(t, -10.00, result.Variance.Card)
	assert.Equal(t, -10.00, result.Variance.Total)
	require.NotNil(t, result.Session.VarianceCard)
	assert.Equal(t, -10.00, *result.Session.VarianceCard)
}

func TestCloseShiftPersistsReconciliation(t *testing.T) {
	laundryID, branchID, userID := uuid.New(), uuid.New(), uuid.New()
	svc, sessionRepo, invoiceRepo := newDrawerFixture()

	opened, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: branchID, UserID: userID, OpeningCash: 100,
	})
	require.NoError(t, err)

	now := time.Now()
	invoiceRepo.invoices = append(invoiceRepo.invoices,
		paidInvoice(laundryID, branchID, userID, 60, enum.PaymentMethodCash, now),
		paidInvoice(laundryID, branchID, userID, 40, enum.PaymentMethodCard, now),
	)

	result, err := svc.CloseShift(context.Background(), laundryID, branchID, userID,
		CountedAmounts{Cash: 155, Card: 40, Transfer: 0}, nil)
	require.NoError(t, err)

	assert.Equal(t, CountedTotals{Cash: 155, Card: 40, Transfer: 0, Total: 195}, result.Counted)

	stored, err := sessionRepo.GetByID(context.Background(), laundryID, opened.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.ExpectedTotal)
	assert.Equal(t, 100.0, *stored.ExpectedTotal)
	require.NotNil(t, stored.VarianceTotal)
	assert.Equal(t, -5.0, *stored.VarianceTotal)
	require.NotNil(t, stored.InvoiceCount)
	assert.Equal(t, 2, *stored.InvoiceCount)
}

func TestCloseShiftCountedEqualsExpected(t *testing.T) {
	laundryID, branchID, userID := uuid.New(), uuid.New(), uuid.New()
	svc, _, invoiceRepo := newDrawerFixture()

	_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: branchID, UserID: userID, OpeningCash: 100,
	})
	require.NoError(t, err)

	now := time.Now()
	invoiceRepo.invoices = append(invoiceRepo.invoices,
		paidInvoice(laundryID, branchID, userID, 55.25, enum.PaymentMethodCash, now),
		paidInvoice(laundryID, branchID, userID, 44.75, enum.PaymentMethodCard, now),
		paidInvoice(laundryID, branchID, userID, 30.00, enum.PaymentMethodTransfer, now),
	)

	result, err := svc.CloseShift(context.Background(), laundryID, branchID, userID,
		CountedAmounts{Cash: 155.25, Card: 44.75, Transfer: 30.00}, nil)
	require.NoError(t, err)

	assert.Zero(t, result.Variance.Cash)
	assert.Zero(t, result.Variance.Card)
	assert.Zero(t, result.Variance.Transfer)
	assert.Zero(t, result.Variance.Total)
}

func TestCloseShiftExcludesOtherCashiersSales(t *testing.T) {
	laundryID, branchID, userID := uuid.New(), uuid.New(), uuid.New()
	svc, _, invoiceRepo := newDrawerFixture()

	_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: branchID, UserID: userID, OpeningCash: 0,
	})
	require.NoError(t, err)

	now := time.Now()
	invoiceRepo.invoices = append(invoiceRepo.invoices,
		paidInvoice(laundryID, branchID, userID, 40, enum.PaymentMethodCash, now),
		paidInvoice(laundryID, branchID, uuid.New(), 500, enum.PaymentMethodCash, now),
		paidInvoice(laundryID, uuid.New(), userID, 300, enum.PaymentMethodCash, now),
	)

	result, err := svc.CloseShift(context.Background(), laundryID, branchID, userID,
		CountedAmounts{Cash: 40}, nil)
	require.NoError(t, err)

	assert.Equal(t, 40.0, result.Expected.Cash)
	assert.Equal(t, 1, result.Expected.Count)
	assert.Zero(t, result.Variance.Total)
}

func TestCloseShiftWithoutOpenSession(t *testing.T) {
	svc, _, _ := newDrawerFixture()

	_, err := svc.CloseShift(context.Background(), uuid.New(), uuid.New(), uuid.New(),
		CountedAmounts{Cash: 10}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCloseShiftRejectsNegativeCounts(t *testing.T) {
	laundryID, branchID, userID := uuid.New(), uuid.New(), uuid.New()
	svc, _, _ := newDrawerFixture()

	_, err := svc.OpenShift(context.Background(), &OpenShiftInput{
		LaundryID: laundryID, BranchID: branchID, UserID: userID, OpeningCash: 50,
	})
	require.NoError(t, err)

	_, err = svc.CloseShift(context.Background(), laundryID, branchID, userID,
		CountedAmounts{Cash: -5}, nil)
	assert.Error(t, err)
}
