package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, laundryID uuid.UUID, number string) (*entity.Invoice, error)
	// GetWithDetails loads the invoice with its items and customer preloaded.
	GetWithDetails(ctx context.Context, laundryID, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, laundryID, id uuid.UUID) error
	List(ctx context.Context, laundryID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	UpdateStatus(ctx context.Context, laundryID, id uuid.UUID, status enum.InvoiceStatus) error
	// NextSequence returns the next per-laundry invoice sequence number,
	// atomically, so concurrent sales never collide.
	NextSequence(ctx context.Context, laundryID uuid.UUID) (int64, error)
	// ListPaidInWindow returns paid invoices created at a branch within
	// [from, to] inclusive, scoped to the cashier who recorded them.
	// Cancelled invoices are excluded.
	ListPaidInWindow(ctx context.Context, laundryID, branchID, cashierID uuid.UUID, from, to time.Time) ([]entity.Invoice, error)
	// DailyTotals aggregates revenue and invoice counts per day for reports.
	DailyTotals(ctx context.Context, laundryID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]DailyTotalResult, error)
	// CountByStatus returns the number of invoices in each status.
	CountByStatus(ctx context.Context, laundryID uuid.UUID, branchID *uuid.UUID) (map[enum.InvoiceStatus]int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.InvoiceStatus
	PaymentStatus *enum.PaymentStatus
	BranchID      *uuid.UUID
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// DailyTotalResult represents aggregated sales for a single day
type DailyTotalResult struct {
	Date         time.Time
	Revenue      float64
	TaxCollected float64
	InvoiceCount int
}

// TopServiceResult represents a catalog service's sales performance
type TopServiceResult struct {
	ServiceID   uuid.UUID
	ServiceName string
	Quantity    float64
	Revenue     float64
}

// TopCustomerResult represents a customer's spending data
type TopCustomerResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	TotalSpent   float64
	InvoiceCount int
}

// ReportRepository defines interface for analytics/aggregation queries
type ReportRepository interface {
	// GetTopServices returns top selling services by revenue in a window
	GetTopServices(ctx context.Context, laundryID uuid.UUID, from, to time.Time, limit int) ([]TopServiceResult, error)

	// GetTopCustomers returns top customers by total spending
	GetTopCustomers(ctx context.Context, laundryID uuid.UUID, limit int) ([]TopCustomerResult, error)

	// GetTotalRevenue returns total revenue from paid invoices in a window
	GetTotalRevenue(ctx context.Context, laundryID uuid.UUID, from, to time.Time) (float64, error)

	// GetPaymentMethodBreakdown returns paid totals per payment method in a window
	GetPaymentMethodBreakdown(ctx context.Context, laundryID uuid.UUID, branchID *uuid.UUID, from, to time.Time) (map[enum.PaymentMethod]float64, error)
}
