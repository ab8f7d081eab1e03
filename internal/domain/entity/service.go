package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCategory groups catalog services (washing, ironing, dry cleaning).
type ServiceCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LaundryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"laundry_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	NameAr    *string        `gorm:"size:255" json:"name_ar,omitempty"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the ServiceCategory model
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// BeforeCreate generates a UUID before creating a new category
func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Service is a priced catalog item that invoices line up against.
type Service struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LaundryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"laundry_id"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	NameAr     *string        `gorm:"size:255" json:"name_ar,omitempty"`
	Price      float64        `gorm:"type:decimal(12,2);not null" json:"price"`
	Unit       string         `gorm:"size:50;default:'piece'" json:"unit"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *ServiceCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}
