package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/zatca"
)

// Invoice is a simplified tax invoice for a laundry order.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	LaundryID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"laundry_id"`
	BranchID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"branch_id"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CreatedByID   uuid.UUID          `gorm:"type:uuid;not null" json:"created_by_id"`
	InvoiceNumber string             `gorm:"size:50;not null;uniqueIndex:idx_invoices_laundry_number,priority:2" json:"invoice_number"`
	Status        enum.InvoiceStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	// Monetary breakdown. The discount applies to item lines only; the
	// delivery fee is added afterwards and VAT is computed on the result.
	Subtotal        float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountPercent float64 `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	DiscountAmount  float64 `gorm:"type:decimal(12,2);default:0" json:"discount_amount"`
	DeliveryFee     float64 `gorm:"type:decimal(12,2);default:0" json:"delivery_fee"`
	TaxRate         float64 `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	TaxAmount       float64 `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	Total           float64 `gorm:"type:decimal(12,2);not null" json:"total"`

	PaymentStatus  enum.PaymentStatus  `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`
	PaymentMethod  *enum.PaymentMethod `gorm:"size:20" json:"payment_method,omitempty"`
	DeliveryStatus enum.DeliveryStatus `gorm:"size:20;not null;default:'none'" json:"delivery_status"`

	ZatcaUUID   uuid.UUID  `gorm:"type:uuid;not null" json:"zatca_uuid"`
	Notes       *string    `gorm:"type:text" json:"notes,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Computed per request from laundry settings, never persisted.
	Zatca *zatca.TagData `gorm:"-" json:"zatca,omitempty"`

	// Relationships
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Customer  *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch    Branch        `gorm:"foreignKey:BranchID" json:"-"`
	CreatedBy User          `gorm:"foreignKey:CreatedByID" json:"-"`
}

// BeforeCreate generates UUIDs before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.ZatcaUUID == uuid.Nil {
		i.ZatcaUUID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// FiscalData maps the persisted invoice onto the tag encoder's input.
func (i *Invoice) FiscalData() zatca.InvoiceData {
	return zatca.InvoiceData{
		Number:   i.InvoiceNumber,
		ID:       i.ZatcaUUID.String(),
		IssuedAt: i.CreatedAt,
		Total:    i.Total,
		VATTotal: i.TaxAmount,
	}
}

// IsCancelled reports whether the invoice has been voided.
func (i *Invoice) IsCancelled() bool {
	return i.Status == enum.InvoiceStatusCancelled
}

// InvoiceItem is a single service line on an invoice.
type InvoiceItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ServiceID *uuid.UUID `gorm:"type:uuid" json:"service_id,omitempty"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Quantity  float64    `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice float64    `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal float64    `gorm:"type:decimal(12,2);not null" json:"line_total"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
