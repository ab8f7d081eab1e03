package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/pkg/apperror"
	"github.com/maghsala/maghsala-api/pkg/money"
)

// LaundryService handles laundry (tenant) operations
type LaundryService struct {
	laundryRepo repository.LaundryRepository
	auditSvc    *AuditService
}

// NewLaundryService creates a new laundry service
func NewLaundryService(laundryRepo repository.LaundryRepository, auditSvc *AuditService) *LaundryService {
	return &LaundryService{laundryRepo: laundryRepo, auditSvc: auditSvc}
}

// GetLaundry retrieves a laundry by ID
func (s *LaundryService) GetLaundry(ctx context.Context, id uuid.UUID) (*entity.Laundry, error) {
	laundry, err := s.laundryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if laundry == nil {
		return nil, apperror.NewNotFoundError("Laundry")
	}
	return laundry, nil
}

// UpdateSettingsInput represents the settings update input. Nil fields are
// left untouched.
type UpdateSettingsInput struct {
	DisplayName   *string
	TaxNumber     *string
	Currency      *string
	Timezone      *string
	Locale        *string
	TaxRate       *float64
	InvoicePrefix *string
	Address       *string
	Phone         *string
	Footer        *string
}

// UpdateSettings merges the input into the laundry's settings document.
// Changes to the fiscal identity (display name, tax number) are audit-logged
// since they alter what every future receipt QR encodes.
func (s *LaundryService) UpdateSettings(ctx context.Context, laundryID, actorID uuid.UUID, input *UpdateSettingsInput) (*entity.Laundry, error) {
	laundry, err := s.laundryRepo.GetByID(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	if laundry == nil {
		return nil, apperror.NewNotFoundError("Laundry")
	}

	settings := laundry.Settings
	fiscalChanged := false

	if input.DisplayName != nil && *input.DisplayName != settings.DisplayName {
		settings.DisplayName = *input.DisplayName
		fiscalChanged = true
	}
	if input.TaxNumber != nil && *input.TaxNumber != settings.TaxNumber {
		settings.TaxNumber = *input.TaxNumber
		fiscalChanged = true
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.Locale != nil {
		settings.Locale = *input.Locale
	}
	if input.TaxRate != nil {
		if !money.IsValidAmount(*input.TaxRate) || *input.TaxRate > 100 {
			return nil, apperror.NewBadRequestError("Tax rate must be between 0 and 100")
		}
		settings.TaxRate = *input.TaxRate
	}
	if input.InvoicePrefix != nil {
		settings.InvoicePrefix = *input.InvoicePrefix
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.Footer != nil {
		settings.Footer = *input.Footer
	}

	if err := s.laundryRepo.UpdateSettings(ctx, laundryID, settings); err != nil {
		return nil, err
	}
	laundry.Settings = settings

	if fiscalChanged {
		s.auditSvc.Record(ctx, &AuditEntry{
			LaundryID:  laundryID,
			UserID:     actorID,
			Action:     "laundry.fiscal_identity_changed",
			EntityType: "laundry",
			EntityID:   &laundry.ID,
			Details: entity.AuditDetails{
				"laundry_name": settings.DisplayName,
				"tax_number":   settings.TaxNumber,
			},
		})
	}

	return laundry, nil
}

// UpdateLaundryInput represents the laundry profile update input
type UpdateLaundryInput struct {
	Name *string
}

// UpdateLaundry updates the laundry profile
func (s *LaundryService) UpdateLaundry(ctx context.Context, id uuid.UUID, input *UpdateLaundryInput) (*entity.Laundry, error) {
	laundry, err := s.laundryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if laundry == nil {
		return nil, apperror.NewNotFoundError("Laundry")
	}

	if input.Name != nil && *input.Name != "" {
		laundry.Name = *input.Name
	}

	if err := s.laundryRepo.Update(ctx, laundry); err != nil {
		return nil, err
	}
	return laundry, nil
}
