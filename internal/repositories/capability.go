package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/rfp-evaluator/internal/models"
)

var (
	// ErrCapabilityNotConfigured means no capability profile exists yet.
	ErrCapabilityNotConfigured = errors.New("company capability is not configured")
	// ErrCapabilityAmbiguous means more than one capability profile row exists.
	ErrCapabilityAmbiguous = errors.New("more than one company capability is configured")
)

type CapabilityRepository interface {
	// Load returns the single capability profile after validating it.
	Load() (*models.CompanyCapability, error)
	// Save replaces the capability profile, creating it when absent.
	Save(capability *models.CompanyCapability) (*models.CompanyCapability, error)
}

type capabilityRepository struct {
	db *gorm.DB
}

func NewCapabilityRepository(db *gorm.DB) CapabilityRepository {
	return &capabilityRepository{db: db}
}

// Load implements CapabilityRepository.
func (r *capabilityRepository) Load() (*models.CompanyCapability, error) {
	var caps []models.CompanyCapability
	if err := r.db.Order("updated_at DESC").Limit(2).Find(&caps).Error; err != nil {
		return nil, fmt.Errorf("failed to load company capability: %w", err)
	}

	switch len(caps) {
	case 0:
		return nil, ErrCapabilityNotConfigured
	case 1:
	default:
		return nil, ErrCapabilityAmbiguous
	}

	capability := caps[0]
	if err := capability.Validate(); err != nil {
		return nil, err
	}

	return &capability, nil
}

// Save implements CapabilityRepository.
func (r *capabilityRepository) Save(capability *models.CompanyCapability) (*models.CompanyCapability, error) {
	if err := capability.Validate(); err != nil {
		return nil, err
	}
	capability.TechKeywords = capability.TechKeywords.Clean()
	capability.UpdatedAt = time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.CompanyCapability
		if err := tx.Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load company capability: %w", err)
		}

		if len(existing) == 0 {
			capability.ID = uuid.New()
			if err := tx.Create(capability).Error; err != nil {
				return fmt.Errorf("failed to create company capability: %w", err)
			}
			return nil
		}

		// Collapse any duplicates left behind by manual edits into one row.
		capability.ID = existing[0].ID
		if len(existing) > 1 {
			if err := tx.Where("id <> ?", capability.ID).Delete(&models.CompanyCapability{}).Error; err != nil {
				return fmt.Errorf("failed to remove duplicate capabilities: %w", err)
			}
		}

		if err := tx.Save(capability).Error; err != nil {
			return fmt.Errorf("failed to update company capability: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return capability, nil
}
