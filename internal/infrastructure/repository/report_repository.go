package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	domainRepo "github.com/maghsala/maghsala-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetTopServices(ctx context.Context, laundryID uuid.UUID, from, to time.Time, limit int) ([]domainRepo.TopServiceResult, error) {
	var results []domainRepo.TopServiceResult
	err := r.db.WithContext(ctx).
		Model(&entity.InvoiceItem{}).
		Select("invoice_items.service_id, invoice_items.name AS service_name, COALESCE(SUM(invoice_items.quantity), 0) AS quantity, COALESCE(SUM(invoice_items.line_total), 0) AS revenue").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.laundry_id = ?", laundryID).
		Where("invoices.payment_status = ?", enum.PaymentStatusPaid).
		Where("invoices.status <> ?", enum.InvoiceStatusCancelled).
		Where("invoices.created_at BETWEEN ? AND ?", from, to).
		Where("invoice_items.service_id IS NOT NULL").
		Group("invoice_items.service_id, invoice_items.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetTopCustomers(ctx context.Context, laundryID uuid.UUID, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult
	err := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Select("id AS customer_id, name AS customer_name, total_spent, total_orders AS invoice_count").
		Where("laundry_id = ?", laundryID).
		Order("total_spent DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetTotalRevenue(ctx context.Context, laundryID uuid.UUID, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("laundry_id = ?", laundryID).
		Where("payment_status = ?", enum.PaymentStatusPaid).
		Where("status <> ?", enum.InvoiceStatusCancelled).
		Where("created_at BETWEEN ? AND ?", from, to).
		Scan(&total).Error
	return total, err
}

func (r *reportRepository) GetPaymentMethodBreakdown(ctx context.Context, laundryID uuid.UUID, branchID *uuid.UUID, from, to time.Time) (map[enum.PaymentMethod]float64, error) {
	type row struct {
		Method string
		Total  float64
	}
	var rows []row

	query := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Select("COALESCE(payment_method, 'other') AS method, COALESCE(SUM(total), 0) AS total").
		Where("laundry_id = ?", laundryID).
		Where("payment_status = ?", enum.PaymentStatusPaid).
		Where("status <> ?", enum.InvoiceStatusCancelled).
		Where("created_at BETWEEN ? AND ?", from, to)

	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	if err := query.Group("method").Scan(&rows).Error; err != nil {
		return nil, err
	}

	breakdown := make(map[enum.PaymentMethod]float64, len(rows))
	for _, row := range rows {
		breakdown[enum.NormalizePaymentMethod(row.Method)] += row.Total
	}
	return breakdown, nil
}
