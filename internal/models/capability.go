package models

import (
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

// CompanyCapability is the evaluating organization's capability profile.
// Exactly one row is expected; the repository enforces that on load.
type CompanyCapability struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TechKeywords     StringList `gorm:"type:jsonb;not null;default:'[]'" json:"tech_keywords" mapstructure:"tech_keywords"`
	MinBudget        int64      `gorm:"not null" json:"min_budget" mapstructure:"min_budget"`
	MaxBudget        int64      `gorm:"not null" json:"max_budget" mapstructure:"max_budget"`
	MinTimelineWeeks int64      `gorm:"not null" json:"min_timeline_weeks" mapstructure:"min_timeline_weeks"`
	MaxTimelineWeeks int64      `gorm:"not null" json:"max_timeline_weeks" mapstructure:"max_timeline_weeks"`
	MaxTeamSize      int64      `gorm:"not null" json:"max_team_size" mapstructure:"max_team_size"`

	// Informational; not used by the scorers.
	ExpectedEMDInINR              *int64 `gorm:"column:expected_emd_in_inr" json:"expected_emd_in_inr,omitempty" mapstructure:"expected_emd_in_inr"`
	ExpectedTimelineWeeks         *int64 `json:"expected_timeline_weeks,omitempty" mapstructure:"expected_timeline_weeks"`
	ExpectedNoOfDaysForAnalysis   *int64 `json:"expected_no_of_days_for_analysis,omitempty" mapstructure:"expected_no_of_days_for_analysis"`
	ExpectedNoOfDaysForSubmission *int64 `json:"expected_no_of_days_for_submission,omitempty" mapstructure:"expected_no_of_days_for_submission"`

	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CompanyCapability) TableName() string {
	return "company_capabilities"
}

// Profile converts the row into the value consumed by the scorers.
func (c *CompanyCapability) Profile() scoring.Profile {
	return scoring.Profile{
		TechKeywords:     []string(c.TechKeywords),
		MinBudget:        c.MinBudget,
		MaxBudget:        c.MaxBudget,
		MinTimelineWeeks: c.MinTimelineWeeks,
		MaxTimelineWeeks: c.MaxTimelineWeeks,
		MaxTeamSize:      c.MaxTeamSize,
	}
}

func (c *CompanyCapability) Validate() error {
	return c.Profile().Validate()
}
