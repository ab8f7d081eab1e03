package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maghsala/maghsala-api/internal/domain/zatca"
)

// Laundry is a tenant in the multitenant system: one laundry business with
// its branches, staff, customers and invoices.
type Laundry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Slug      string          `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  LaundrySettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Owner    User     `gorm:"foreignKey:OwnerID" json:"-"`
	Branches []Branch `gorm:"foreignKey:LaundryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new laundry
func (l *Laundry) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Laundry model
func (Laundry) TableName() string {
	return "laundries"
}

// LaundrySettings holds per-laundry configuration. DisplayName and TaxNumber
// form the seller fiscal profile printed and QR-encoded on every invoice.
type LaundrySettings struct {
	// Fiscal identity
	DisplayName string `json:"laundry_name,omitempty"`
	TaxNumber   string `json:"tax_number,omitempty"`

	// Localization
	Currency string `json:"currency,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Locale   string `json:"locale,omitempty"`

	// Business configuration
	TaxRate       float64 `json:"tax_rate,omitempty"`
	InvoicePrefix string  `json:"invoice_prefix,omitempty"`

	// Receipt footer and contact lines
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Footer  string `json:"receipt_footer,omitempty"`
}

// Scan implements the sql.Scanner interface for LaundrySettings
func (s *LaundrySettings) Scan(value interface{}) error {
	if value == nil {
		*s = LaundrySettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LaundrySettings: unsupported type")
	}

	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for LaundrySettings
func (s LaundrySettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// SellerProfile resolves the typed fiscal identity handed to the tag encoder.
// Missing values degrade to empty strings; the encoder tolerates that.
func (s LaundrySettings) SellerProfile() zatca.SellerProfile {
	return zatca.SellerProfile{
		Name:      s.DisplayName,
		VATNumber: s.TaxNumber,
	}
}

// DefaultLaundrySettings returns settings for newly registered laundries.
func DefaultLaundrySettings(name string) LaundrySettings {
	return LaundrySettings{
		DisplayName:   name,
		Currency:      "SAR",
		Timezone:      "Asia/Riyadh",
		Locale:        "ar-SA",
		TaxRate:       15.0,
		InvoicePrefix: "INV-",
	}
}
