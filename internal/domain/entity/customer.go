package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer of a laundry
type Customer struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LaundryID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"laundry_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Phone       string         `gorm:"size:50;not null;index" json:"phone"`
	Email       *string        `gorm:"size:255" json:"email,omitempty"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	IsVIP       bool           `gorm:"column:is_vip;default:false" json:"is_vip"`
	TotalOrders int            `gorm:"default:0" json:"total_orders"`
	TotalSpent  float64        `gorm:"type:decimal(12,2);default:0" json:"total_spent"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
