package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maghsala/maghsala-api/internal/domain/enum"
)

// AuditDetails is a free-form jsonb payload attached to an audit entry.
type AuditDetails map[string]interface{}

// Scan implements the sql.Scanner interface for AuditDetails
func (d *AuditDetails) Scan(value interface{}) error {
	if value == nil {
		*d = AuditDetails{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan AuditDetails: unsupported type")
	}

	return json.Unmarshal(bytes, d)
}

// Value implements the driver.Valuer interface for AuditDetails
func (d AuditDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// AuditLog records a sensitive action (cancellation, discount change,
// session close) for back-office review.
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LaundryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"laundry_id"`
	BranchID   *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	EntityType string         `gorm:"size:50;not null" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"type:uuid" json:"entity_id,omitempty"`
	RiskLevel  enum.RiskLevel `gorm:"size:20;not null;default:'low';index" json:"risk_level"`
	IsFlagged  bool           `gorm:"default:false;index" json:"is_flagged"`
	Details    AuditDetails   `gorm:"type:jsonb;serializer:json" json:"details,omitempty"`
	IPAddress  *string        `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new audit log entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
