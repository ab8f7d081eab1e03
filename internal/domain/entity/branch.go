package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is a physical location of a laundry. Cash sessions and invoices
// always belong to exactly one branch.
type Branch struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LaundryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"laundry_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"size:500" json:"address,omitempty"`
	Phone     string         `gorm:"size:50" json:"phone,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Laundry Laundry `gorm:"foreignKey:LaundryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new branch
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
