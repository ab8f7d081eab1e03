package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/internal/domain/zatca"
	"github.com/maghsala/maghsala-api/pkg/apperror"
	"github.com/maghsala/maghsala-api/pkg/money"
	"github.com/maghsala/maghsala-api/pkg/pagination"
	"github.com/maghsala/maghsala-api/pkg/utils"
)

// Discounts above this percentage are flagged high risk in the audit trail.
const highRiskDiscountPercent = 20.0

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	serviceRepo  repository.ServiceRepository
	customerRepo repository.CustomerRepository
	laundryRepo  repository.LaundryRepository
	auditSvc     *AuditService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	serviceRepo repository.ServiceRepository,
	customerRepo repository.CustomerRepository,
	laundryRepo repository.LaundryRepository,
	auditSvc *AuditService,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		laundryRepo:  laundryRepo,
		auditSvc:     auditSvc,
	}
}

// InvoiceItemInput represents a service line in a new invoice
type InvoiceItemInput struct {
	ServiceID uuid.UUID
	Quantity  float64
	Notes     *string
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	LaundryID       uuid.UUID
	BranchID        uuid.UUID
	CreatedByID     uuid.UUID
	CustomerID      *uuid.UUID
	Items           []InvoiceItemInput
	DiscountPercent float64
	DeliveryFee     float64
	Notes           *string
}

// InvoiceTotals is the monetary breakdown computed for an invoice.
type InvoiceTotals struct {
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	Total          float64
}

// ComputeTotals derives the invoice breakdown. The discount applies to the
// item subtotal only; the delivery fee is added after discounting and VAT is
// charged on the discounted-plus-delivery amount.
func ComputeTotals(subtotal, discountPercent, deliveryFee, taxRate float64) InvoiceTotals {
	discountAmount := money.Round2(subtotal * discountPercent / 100)
	taxable := money.Round2(subtotal - discountAmount + deliveryFee)
	taxAmount := money.Round2(taxable * taxRate / 100)
	return InvoiceTotals{
		Subtotal:       money.Round2(subtotal),
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          money.Round2(taxable + taxAmount),
	}
}

// CreateInvoice creates a new invoice with its items
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Invoice requires at least one item")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, apperror.NewBadRequestError("Discount percent must be between 0 and 100")
	}
	if !money.IsValidAmount(input.DeliveryFee) {
		return nil, apperror.NewBadRequestError("Invalid delivery fee")
	}

	laundry, err := s.laundryRepo.GetByID(ctx, input.LaundryID)
	if err != nil {
		return nil, err
	}
	if laundry == nil {
		return nil, apperror.NewNotFoundError("Laundry")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, input.LaundryID, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Batch fetch all services in one query (prevents N+1)
	serviceIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		serviceIDs[i] = item.ServiceID
	}

	services, err := s.serviceRepo.GetByIDs(ctx, input.LaundryID, serviceIDs)
	if err != nil {
		return nil, err
	}

	serviceMap := make(map[uuid.UUID]*entity.Service, len(services))
	for i := range services {
		serviceMap[services[i].ID] = &services[i]
	}

	var subtotal float64
	items := make([]entity.InvoiceItem, 0, len(input.Items))
	for _, item := range input.Items {
		svc, exists := serviceMap[item.ServiceID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Service %s", item.ServiceID))
		}
		if !svc.IsActive {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Service %q is not active", svc.Name))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}

		lineTotal := money.Round2(svc.Price * item.Quantity)
		subtotal += lineTotal

		svcID := svc.ID
		items = append(items, entity.InvoiceItem{
			ServiceID: &svcID,
			Name:      svc.Name,
			Quantity:  item.Quantity,
			UnitPrice: svc.Price,
			LineTotal: lineTotal,
			Notes:     item.Notes,
		})
	}

	taxRate := laundry.Settings.TaxRate
	totals := ComputeTotals(subtotal, input.DiscountPercent, input.DeliveryFee, taxRate)

	seq, err := s.invoiceRepo.NextSequence(ctx, input.LaundryID)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		LaundryID:       input.LaundryID,
		BranchID:        input.BranchID,
		CustomerID:      input.CustomerID,
		CreatedByID:     input.CreatedByID,
		InvoiceNumber:   utils.FormatInvoiceNumber(laundry.Settings.InvoicePrefix, seq),
		Status:          enum.InvoiceStatusPending,
		Subtotal:        totals.Subtotal,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  totals.DiscountAmount,
		DeliveryFee:     money.Round2(input.DeliveryFee),
		TaxRate:         taxRate,
		TaxAmount:       totals.TaxAmount,
		Total:           totals.Total,
		PaymentStatus:   enum.PaymentStatusUnpaid,
		Notes:           input.Notes,
		Items:           items,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	created, err := s.invoiceRepo.GetWithDetails(ctx, input.LaundryID, invoice.ID)
	if err != nil {
		return nil, err
	}
	s.attachFiscalData(created, laundry)
	return created, nil
}

// GetInvoice retrieves an invoice by ID with its fiscal QR data attached
func (s *InvoiceService) GetInvoice(ctx context.Context, laundryID, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	laundry, err := s.laundryRepo.GetByID(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	s.attachFiscalData(invoice, laundry)
	return invoice, nil
}

// attachFiscalData computes the QR tag data from the laundry's seller
// profile. Tag data is derived on every read, never stored.
func (s *InvoiceService) attachFiscalData(invoice *entity.Invoice, laundry *entity.Laundry) {
	if invoice == nil || laundry == nil {
		return
	}
	data := zatca.Encode(invoice.FiscalData(), laundry.Settings.SellerProfile())
	invoice.Zatca = &data
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, laundryID uuid.UUID, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, laundryID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceStatus moves an invoice through its workflow states
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, laundryID, id uuid.UUID, status enum.InvoiceStatus) (*entity.Invoice, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid invoice status")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.IsCancelled() {
		return nil, apperror.ErrInvoiceCancelled
	}

	invoice.Status = status
	now := time.Now()
	switch status {
	case enum.InvoiceStatusDelivered:
		invoice.DeliveredAt = &now
		if invoice.DeliveryStatus != enum.DeliveryStatusNone {
			invoice.DeliveryStatus = enum.DeliveryStatusDelivered
		}
	case enum.InvoiceStatusReady:
		if invoice.DeliveryStatus != enum.DeliveryStatusNone {
			invoice.DeliveryStatus = enum.DeliveryStatusReady
		}
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ApplyDiscount changes an invoice's discount and recomputes all totals.
// Discount changes are audit-logged; above the high-risk threshold the
// entry is escalated for back-office review.
func (s *InvoiceService) ApplyDiscount(ctx context.Context, laundryID, id, actorID uuid.UUID, discountPercent float64) (*entity.Invoice, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return nil, apperror.NewBadRequestError("Discount percent must be between 0 and 100")
	}

	invoice, err := s.invoiceRepo.GetWithDetails(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.IsCancelled() {
		return nil, apperror.ErrInvoiceCancelled
	}
	if invoice.PaymentStatus == enum.PaymentStatusPaid {
		return nil, apperror.ErrInvoiceAlreadyPaid
	}

	previous := invoice.DiscountPercent
	totals := ComputeTotals(invoice.Subtotal, discountPercent, invoice.DeliveryFee, invoice.TaxRate)
	invoice.DiscountPercent = discountPercent
	invoice.DiscountAmount = totals.DiscountAmount
	invoice.TaxAmount = totals.TaxAmount
	invoice.Total = totals.Total

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	// The discount changed the total, so the fiscal tag must be rebuilt.
	laundry, err := s.laundryRepo.GetByID(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	s.attachFiscalData(invoice, laundry)

	risk := enum.RiskLevelMedium
	if discountPercent > highRiskDiscountPercent {
		risk = enum.RiskLevelHigh
	}
	s.auditSvc.Record(ctx, &AuditEntry{
		LaundryID:  laundryID,
		BranchID:   &invoice.BranchID,
		UserID:     actorID,
		Action:     "invoice.discount_changed",
		EntityType: "invoice",
		EntityID:   &invoice.ID,
		RiskLevel:  risk,
		Details: entity.AuditDetails{
			"invoice_number":   invoice.InvoiceNumber,
			"previous_percent": previous,
			"new_percent":      discountPercent,
			"new_total":        invoice.Total,
		},
	})

	return invoice, nil
}

// RecordPayment marks an invoice as paid with the given method
func (s *InvoiceService) RecordPayment(ctx context.Context, laundryID, id uuid.UUID, method enum.PaymentMethod) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.IsCancelled() {
		return nil, apperror.ErrInvoiceCancelled
	}
	if invoice.PaymentStatus == enum.PaymentStatusPaid {
		return nil, apperror.ErrInvoiceAlreadyPaid
	}

	now := time.Now()
	invoice.PaymentStatus = enum.PaymentStatusPaid
	invoice.PaymentMethod = &method
	invoice.PaidAt = &now
	if invoice.Status == enum.InvoiceStatusPending {
		invoice.Status = enum.InvoiceStatusPaid
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	if invoice.CustomerID != nil {
		// Best effort; the sale already succeeded.
		_ = s.customerRepo.IncrementStats(ctx, laundryID, *invoice.CustomerID, invoice.Total)
	}

	return invoice, nil
}

// CancelInvoice voids an invoice. Cancellations are always high risk in
// the audit trail.
func (s *InvoiceService) CancelInvoice(ctx context.Context, laundryID, id, actorID uuid.UUID, reason string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, laundryID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.IsCancelled() {
		return nil, apperror.ErrInvoiceCancelled
	}

	now := time.Now()
	invoice.Status = enum.InvoiceStatusCancelled
	invoice.CancelledAt = &now

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, &AuditEntry{
		LaundryID:  laundryID,
		BranchID:   &invoice.BranchID,
		UserID:     actorID,
		Action:     "invoice.cancelled",
		EntityType: "invoice",
		EntityID:   &invoice.ID,
		RiskLevel:  enum.RiskLevelHigh,
		Details: entity.AuditDetails{
			"invoice_number": invoice.InvoiceNumber,
			"total":          invoice.Total,
			"reason":         reason,
		},
	})

	return invoice, nil
}

// InvoiceStats is the dashboard snapshot for the POS home screen.
type InvoiceStats struct {
	ByStatus      map[enum.InvoiceStatus]int64 `json:"by_status"`
	TodayRevenue  float64                      `json:"today_revenue"`
	TodayInvoices int                          `json:"today_invoices"`
}

// GetStats returns invoice counts per status plus today's paid totals.
func (s *InvoiceService) GetStats(ctx context.Context, laundryID uuid.UUID, branchID *uuid.UUID) (*InvoiceStats, error) {
	byStatus, err := s.invoiceRepo.CountByStatus(ctx, laundryID, branchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daily, err := s.invoiceRepo.DailyTotals(ctx, laundryID, branchID, midnight, now)
	if err != nil {
		return nil, err
	}

	stats := &InvoiceStats{ByStatus: byStatus}
	for _, day := range daily {
		stats.TodayRevenue += day.Revenue
		stats.TodayInvoices += day.InvoiceCount
	}
	stats.TodayRevenue = money.Round2(stats.TodayRevenue)

	return stats, nil
}
