package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maghsala/maghsala-api/internal/domain/enum"
)

// CashSession is one cashier's drawer shift at a branch. A partial unique
// index keeps at most one open session per (laundry, branch, cashier); see
// the migration in infrastructure/database.
type CashSession struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	LaundryID uuid.UUID          `gorm:"type:uuid;not null;index" json:"laundry_id"`
	BranchID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Status    enum.SessionStatus `gorm:"size:20;not null;default:'open'" json:"status"`

	OpeningCash float64 `gorm:"type:decimal(12,2);not null" json:"opening_cash"`
	OpenNotes   *string `gorm:"type:text" json:"open_notes,omitempty"`

	CountedCash     *float64 `gorm:"type:decimal(12,2)" json:"counted_cash,omitempty"`
	CountedCard     *float64 `gorm:"type:decimal(12,2)" json:"counted_card,omitempty"`
	CountedTransfer *float64 `gorm:"type:decimal(12,2)" json:"counted_transfer,omitempty"`

	ExpectedCash     *float64 `gorm:"type:decimal(12,2)" json:"expected_cash,omitempty"`
	ExpectedCard     *float64 `gorm:"type:decimal(12,2)" json:"expected_card,omitempty"`
	ExpectedTransfer *float64 `gorm:"type:decimal(12,2)" json:"expected_transfer,omitempty"`
	ExpectedOther    *float64 `gorm:"type:decimal(12,2)" json:"expected_other,omitempty"`
	ExpectedTotal    *float64 `gorm:"type:decimal(12,2)" json:"expected_total,omitempty"`
	InvoiceCount     *int     `json:"invoice_count,omitempty"`

	VarianceCash     *float64 `gorm:"type:decimal(12,2)" json:"variance_cash,omitempty"`
	VarianceCard     *float64 `gorm:"type:decimal(12,2)" json:"variance_card,omitempty"`
	VarianceTransfer *float64 `gorm:"type:decimal(12,2)" json:"variance_transfer,omitempty"`
	VarianceTotal    *float64 `gorm:"type:decimal(12,2)" json:"variance_total,omitempty"`

	CloseNotes *string    `gorm:"type:text" json:"close_notes,omitempty"`
	OpenedAt   time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Branch Branch `gorm:"foreignKey:BranchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new cash session
func (s *CashSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashSession model
func (CashSession) TableName() string {
	return "cash_sessions"
}

// IsOpen reports whether the session is still accepting sales.
func (s *CashSession) IsOpen() bool {
	return s.Status == enum.SessionStatusOpen
}
