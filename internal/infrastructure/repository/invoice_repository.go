package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	domainRepo "github.com/maghsala/maghsala-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, laundryID, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, laundryID uuid.UUID, number string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("laundry_id = ? AND invoice_number = ?", laundryID, number).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetWithDetails(ctx context.Context, laundryID, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Where("laundry_id = ? AND id = ?", laundryID, id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, laundryID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		Delete(&entity.Invoice{}).Error
}

func (r *invoiceRepository) List(ctx context.Context, laundryID uuid.UUID, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Where("laundry_id = ?", laundryID)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"invoice_number ILIKE ? OR EXISTS (SELECT 1 FROM customers c WHERE c.id = invoices.customer_id AND (c.name ILIKE ? OR c.phone ILIKE ?))",
			pattern, pattern, pattern,
		)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.BranchID != nil {
		query = query.Where("branch_id = ?", *params.BranchID)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
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

	orderBy := "created_at"
	switch params.SortBy {
	case "total", "invoice_number", "created_at":
		orderBy = params.SortBy
	}
	direction := "DESC"
	if params.SortOrder == "asc" {
		direction = "ASC"
	}

	pg := params.Pagination
	pg.Validate()
	err := query.
		Preload("Items").
		Preload("Customer").
		Order(fmt.Sprintf("%s %s", orderBy, direction)).
		Offset(pg.Offset()).
		Limit(pg.PerPage).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, laundryID, id uuid.UUID, status enum.InvoiceStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Where("laundry_id = ? AND id = ?", laundryID, id).
		Update("status", status).Error
}

// NextSequence bumps the per-laundry counter in a single upsert so two
// cashiers creating invoices at the same moment get distinct numbers.
func (r *invoiceRepository) NextSequence(ctx context.Context, laundryID uuid.UUID) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO invoice_sequences (laundry_id, last_value)
		VALUES (?, 1)
		ON CONFLICT (laundry_id)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`, laundryID).
		Scan(&next).Error
	return next, err
}

func (r *invoiceRepository) ListPaidInWindow(ctx context.Context, laundryID, branchID, cashierID uuid.UUID, from, to time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND branch_id = ? AND created_by_id = ?", laundryID, branchID, cashierID).
		Where("payment_status = ?", enum.PaymentStatusPaid).
		Where("status <> ?", enum.InvoiceStatusCancelled).
		Where("created_at BETWEEN ? AND ?", from, to).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) DailyTotals(ctx context.Context, laundryID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]domainRepo.DailyTotalResult, error) {
	var results []domainRepo.DailyTotalResult

	query := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Select("DATE(created_at) AS date, COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(tax_amount), 0) AS tax_collected, COUNT(*) AS invoice_count").
		Where("laundry_id = ?", laundryID).
		Where("payment_status = ?", enum.PaymentStatusPaid).
		Where("status <> ?", enum.InvoiceStatusCancelled).
		Where("created_at BETWEEN ? AND ?", from, to)

	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	err := query.
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&results).Error
	return results, err
}

func (r *invoiceRepository) CountByStatus(ctx context.Context, laundryID uuid.UUID, branchID *uuid.UUID) (map[enum.InvoiceStatus]int64, error) {
	var rows []struct {
		Status enum.InvoiceStatus
		Count  int64
	}

	query := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Select("status, COUNT(*) AS count").
		Where("laundry_id = ?", laundryID)

	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[enum.InvoiceStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
