package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name            string
		subtotal        float64
		discountPercent float64
		deliveryFee     float64
		taxRate         float64
		want            InvoiceTotals
	}{
		{
			name:     "no discount no delivery",
			subtotal: 100, taxRate: 15,
			want: InvoiceTotals{Subtotal: 100, DiscountAmount: 0, TaxAmount: 15, Total: 115},
		},
		{
			name:     "discount applies to items only",
			subtotal: 100, discountPercent: 10, deliveryFee: 20, taxRate: 15,
			// discount 10 on items, delivery added after, VAT on 110
			want: InvoiceTotals{Subtotal: 100, DiscountAmount: 10, TaxAmount: 16.50, Total: 126.50},
		},
		{
			name:     "half-up rounding at the cent",
			subtotal: 33.33, discountPercent: 5, taxRate: 15,
			// discount 1.6665 -> 1.67, taxable 31.66, tax 4.749 -> 4.75
			want: InvoiceTotals{Subtotal: 33.33, DiscountAmount: 1.67, TaxAmount: 4.75, Total: 36.41},
		},
		{
			name:     "full discount leaves delivery taxable",
			subtotal: 50, discountPercent: 100, deliveryFee: 10, taxRate: 15,
			want: InvoiceTotals{Subtotal: 50, DiscountAmount: 50, TaxAmount: 1.50, Total: 11.50},
		},
		{
			name:     "zero tax rate",
			subtotal: 80, discountPercent: 25, taxRate: 0,
			want: InvoiceTotals{Subtotal: 80, DiscountAmount: 20, TaxAmount: 0, Total: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.subtotal, tt.discountPercent, tt.deliveryFee, tt.taxRate)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- fakes for the create/discount/cancel flows ---

type fakeLaundryRepo struct {
	repository.LaundryRepository
	laundry *entity.Laundry
}

func (r *fakeLaundryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Laundry, error) {
	if r.laundry != nil && r.laundry.ID == id {
		return r.laundry, nil
	}
	return nil, nil
}

type fakeCatalogRepo struct {
	repository.ServiceRepository
	services []entity.Service
}

func (r *fakeCatalogRepo) GetByIDs(_ context.Context, laundryID uuid.UUID, ids []uuid.UUID) ([]entity.Service, error) {
	var out []entity.Service
	for _, svc := range r.services {
		if svc.LaundryID != laundryID {
			continue
		}
		for _, id := range ids {
			if svc.ID == id {
				out = append(out, svc)
				break
			}
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	customers map[uuid.UUID]*entity.Customer
	bumped    map[uuid.UUID]float64
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, _, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCustomerRepo) IncrementStats(_ context.Context, _, id uuid.UUID, amount float64) error {
	if r.bumped == nil {
		r.bumped = make(map[uuid.UUID]float64)
	}
	r.bumped[id] += amount
	return nil
}

type fakeInvoiceRepo struct {
	repository.InvoiceRepository
	invoices map[uuid.UUID]*entity.Invoice
	seq      int64
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.ZatcaUUID == uuid.Nil {
		inv.ZatcaUUID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, laundryID, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.LaundryID != laundryID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetWithDetails(ctx context.Context, laundryID, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, laundryID, id)
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) NextSequence(_ context.Context, _ uuid.UUID) (int64, error) {
	r.seq++
	return r.seq, nil
}

func newInvoiceFixture(t *testing.T) (*InvoiceService, *fakeInvoiceRepo, *fakeCustomerRepo, *entity.Laundry, entity.Service, *fakeAuditRepo) {
	t.Helper()

	laundry := &entity.Laundry{
		ID:   uuid.New(),
		Name: "Clean & Shine",
		Settings: entity.LaundrySettings{
			DisplayName:   "مغسلة النظافة",
			TaxNumber:     "300012345600003",
			TaxRate:       15,
			InvoicePrefix: "INV-",
		},
	}
	svc := entity.Service{
		ID:        uuid.New(),
		LaundryID: laundry.ID,
		Name:      "Thobe wash & iron",
		Price:     12.50,
		Unit:      "piece",
		IsActive:  true,
	}

	invoiceRepo := newFakeInvoiceRepo()
	customerRepo := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	auditRepo := &fakeAuditRepo{}
	service := NewInvoiceService(
		invoiceRepo,
		&fakeCatalogRepo{services: []entity.Service{svc}},
		customerRepo,
		&fakeLaundryRepo{laundry: laundry},
		NewAuditService(auditRepo),
	)
	return service, invoiceRepo, customerRepo, laundry, svc, auditRepo
}

func TestCreateInvoice(t *testing.T) {
	service, _, _, laundry, catalogSvc, _ := newInvoiceFixture(t)

	inv, err := service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LaundryID:   laundry.ID,
		BranchID:    uuid.New(),
		CreatedByID: uuid.New(),
		Items: []InvoiceItemInput{
			{ServiceID: catalogSvc.ID, Quantity: 4},
		},
		DeliveryFee: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-001", inv.InvoiceNumber)
	assert.Equal(t, enum.InvoiceStatusPending, inv.Status)
	assert.Equal(t, 50.0, inv.Subtotal)
	assert.Equal(t, 10.0, inv.DeliveryFee)
	assert.Equal(t, 9.0, inv.TaxAmount) // 15% of 60
	assert.Equal(t, 69.0, inv.Total)
	assert.Equal(t, enum.PaymentStatusUnpaid, inv.PaymentStatus)
	assert.NotEqual(t, uuid.Nil, inv.ZatcaUUID)

	require.NotNil(t, inv.Zatca)
	assert.NotEmpty(t, inv.Zatca.TLVBase64)
	assert.Equal(t, "مغسلة النظافة", inv.Zatca.SellerName)
	assert.Len(t, inv.Zatca.Fingerprint, 64)
}

func TestCreateInvoiceSequentialNumbers(t *testing.T) {
	service, _, _, laundry, catalogSvc, _ := newInvoiceFixture(t)

	input := &CreateInvoiceInput{
		LaundryID:   laundry.ID,
		BranchID:    uuid.New(),
		CreatedByID: uuid.New(),
		Items:       []InvoiceItemInput{{ServiceID: catalogSvc.ID, Quantity: 1}},
	}

	first, err := service.CreateInvoice(context.Background(), input)
	require.NoError(t, err)
	second, err := service.CreateInvoice(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "INV-001", first.InvoiceNumber)
	assert.Equal(t, "INV-002", second.InvoiceNumber)
}

func TestCreateInvoiceRejectsUnknownService(t *testing.T) {
	service, _, _, laundry, _, _ := newInvoiceFixture(t)

	_, err := service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LaundryID:   laundry.ID,
		BranchID:    uuid.New(),
		CreatedByID: uuid.New(),
		Items:       []InvoiceItemInput{{ServiceID: uuid.New(), Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestCreateInvoiceRejectsEmptyItems(t *testing.T) {
	service, _, _, laundry, _, _ := newInvoiceFixture(t)

	_, err := service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LaundryID:   laundry.ID,
		BranchID:    uuid.New(),
		CreatedByID: uuid.New(),
	})
	assert.Error(t, err)
}

func TestApplyDiscountAuditRiskLevels(t *testing.T) {
	service, _, _, laundry, catalogSvc, auditRepo := newInvoiceFixture(t)

	inv, err := service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LaundryID:   laundry.ID,
		BranchID:    uuid.New(),
		CreatedByID: uuid.New(),
		Items:       []InvoiceItemInput{{ServiceID: catalogSvc.ID, Quantity: 8}}, // 100.00
	})
	require.NoError(t, err)

	actor := uuid.New()

	updated, err := service.ApplyDiscount(context.Background(), laundry.ID, inv.ID, actor, 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, updated.DiscountAmount)
	assert.Equal(t, 103.50, updated.Total) // 90 + 15% VAT
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, enum.RiskLevelMedium, auditRepo.entries[0].RiskLevel)

	_, err = service.ApplyDiscount(context.Background(), laundry.ID, inv.ID, actor, 35)
	require.NoError(t, err)
	require.Len(t, auditRepo.entries, 2)
	assert.Equal(t, enum.RiskLevelHigh, auditRepo.entries[1].RiskLevel)
	assert.Equal(t, "invoice.discount_changed", auditRepo.entries[1].Action)
}

func TestApplyDiscountRefreshesFiscalTag(t *testing.T) {
	service, _, _, laundry, catalogSvc, _ := newInvoiceFixture(t)

	inv, err := service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LaundryID:   laundry.ID,
		BranchID:    uuid.New(),
		CreatedByID: uuid.New(),
		Items:       []InvoiceItemInput{{ServiceID: catalogSvc.ID, Quantity: 8}},
	})
	require.NoError(t, err)
	require.NotNil(t, inv.Zatca)
	before := inv.Zatca.Fingerprint

	updated, err := service.ApplyDiscount(context.Background(), laundry.ID, inv.ID, uuid.New(), 10)
	require.NoError(t, err)

	// The tag must carry the discounted total, not the original one.
	require.NotNil(t, updated.Zatca)
	assert.Equal(t, "مغسلة النظافة", updated.Zatca.SellerName)
	assert.NotEqual(t, before, updated.Zatca.Fingerprint)
}

func TestRecordPaymentBumpsCustomerStats(t *testing.T) {
	service, _, customerRepo, laundry, catalogSvc, _ := newInvoiceFixture(t)

	customerID := uuid.New()
	customerRepo.customers[customerID] = &entity.Customer{ID: customerID, Name: "Ahmed"}

	inv, err := service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LaundryID:   laundry.ID,
		BranchID:    uuid.New(),
		CreatedByID: uuid.New(),
		CustomerID:  &customerID,
		Items:       []InvoiceItemInput{{ServiceID: catalogSvc.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	paid, err := service.RecordPayment(context.Background(), laundry.ID, inv.ID, enum.PaymentMethodCash)
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, paid.Total, customerRepo.bumped[customerID])

	// Paying twice is rejected.
	_, err = service.RecordPayment(context.Background(), laundry.ID, inv.ID, enum.PaymentMethodCash)
	assert.Error(t, err)
}

func TestCancelInvoiceIsHighRiskAndFinal(t *testing.T) {
	service, _, _, laundry, catalogSvc, auditRepo := newInvoiceFixture(t)

	inv, err := service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		LaundryID:   laundry.ID,
		BranchID:    uuid.New(),
		CreatedByID: uuid.New(),
		Items:       []InvoiceItemInput{{ServiceID: catalogSvc.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	actor := uuid.New()
	cancelled, err := service.CancelInvoice(context.Background(), laundry.ID, inv.ID, actor, "customer changed mind")
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, enum.RiskLevelHigh, auditRepo.entries[0].RiskLevel)
	assert.Equal(t, "invoice.cancelled", auditRepo.entries[0].Action)

	// Cancelled invoices reject further mutation.
	_, err = service.CancelInvoice(context.Background(), laundry.ID, inv.ID, actor, "again")
	assert.Error(t, err)
	_, err = service.RecordPayment(context.Background(), laundry.ID, inv.ID, enum.PaymentMethodCash)
	assert.Error(t, err)
	_, err = service.ApplyDiscount(context.Background(), laundry.ID, inv.ID, actor, 5)
	assert.Error(t, err)
}
