package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maghsala/maghsala-api/internal/domain/enum"
)

// Plan is a subscription tier limiting how many branches and users a
// laundry can register.
type Plan struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"size:100;not null;unique" json:"name"`
	MonthlyPrice float64   `gorm:"type:decimal(12,2);not null" json:"monthly_price"`
	MaxBranches  int       `gorm:"not null" json:"max_branches"`
	MaxUsers     int       `gorm:"not null" json:"max_users"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new plan
func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Plan model
func (Plan) TableName() string {
	return "plans"
}

// Subscription links a laundry to its active plan.
type Subscription struct {
	ID        uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	LaundryID uuid.UUID               `gorm:"type:uuid;not null;index" json:"laundry_id"`
	PlanID    uuid.UUID               `gorm:"type:uuid;not null" json:"plan_id"`
	Status    enum.SubscriptionStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	StartsAt  time.Time               `gorm:"not null" json:"starts_at"`
	ExpiresAt time.Time               `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	DeletedAt gorm.DeletedAt          `gorm:"index" json:"-"`

	// Relationships
	Plan Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// BeforeCreate generates a UUID before creating a new subscription
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsActive reports whether the subscription is usable at the given time.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == enum.SubscriptionStatusActive && now.Before(s.ExpiresAt)
}
