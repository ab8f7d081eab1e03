package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/apperror"
	"github.com/maghsala/maghsala-api/pkg/money"
)

// ReportService produces back-office sales reports
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
	reportRepo  repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository, reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{invoiceRepo: invoiceRepo, reportRepo: reportRepo}
}

// SalesSummary is the headline report for a window.
type SalesSummary struct {
	From         time.Time                      `json:"from"`
	To           time.Time                      `json:"to"`
	TotalRevenue float64                        `json:"total_revenue"`
	ByMethod     map[enum.PaymentMethod]float64 `json:"by_method"`
	Daily        []repository.DailyTotalResult  `json:"daily"`
}

// GetSalesSummary aggregates paid invoices over a window
func (s *ReportService) GetSalesSummary(ctx context.Context, laundryID uuid.UUID, branchID *uuid.UUID, from, to time.Time) (*SalesSummary, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("Report window end precedes start")
	}

	total, err := s.reportRepo.GetTotalRevenue(ctx, laundryID, from, to)
	if err != nil {
		return nil, err
	}

	byMethod, err := s.reportRepo.GetPaymentMethodBreakdown(ctx, laundryID, branchID, from, to)
	if err != nil {
		return nil, err
	}
	for method, amount := range byMethod {
		byMethod[method] = money.Round2(amount)
	}

	daily, err := s.invoiceRepo.DailyTotals(ctx, laundryID, branchID, from, to)
	if err != nil {
		return nil, err
	}

	return &SalesSummary{
		From:         from,
		To:           to,
		TotalRevenue: money.Round2(total),
		ByMethod:     byMethod,
		Daily:        daily,
	}, nil
}

// GetTopServices returns best-selling catalog services in a window
func (s *ReportService) GetTopServices(ctx context.Context, laundryID uuid.UUID, from, to time.Time, limit int) ([]repository.TopServiceResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.reportRepo.GetTopServices(ctx, laundryID, from, to, limit)
}

// GetTopCustomers returns the highest-spending customers
func (s *ReportService) GetTopCustomers(ctx context.Context, laundryID uuid.UUID, limit int) ([]repository.TopCustomerResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.reportRepo.GetTopCustomers(ctx, laundryID, limit)
}
