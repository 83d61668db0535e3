package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

func TestLoadScoringPolicyFromEnv(t *testing.T) {
	t.Setenv("SCORING_WEIGHT_TECHNICAL", "0.25")
	t.Setenv("SCORING_WEIGHT_BUDGET", "0.45")
	t.Setenv("SCORING_ACCEPT_AT", "85")
	t.Setenv("SCORING_MIN_CAPACITY", "not-a-number")

	cfg := Load()

	if cfg.Scoring.Weights.Technical != 0.25 || cfg.Scoring.Weights.Budget != 0.45 {
		t.Fatalf("unexpected weights: %+v", cfg.Scoring.Weights)
	}
	if cfg.Scoring.AcceptAt != 85 {
		t.Fatalf("expected accept threshold 85, got %v", cfg.Scoring.AcceptAt)
	}
	if cfg.Scoring.MinCapacity != scoring.DefaultPolicy().MinCapacity {
		t.Fatalf("expected default min capacity for malformed value, got %v", cfg.Scoring.MinCapacity)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsUnbalancedWeights(t *testing.T) {
	t.Setenv("SCORING_WEIGHT_BUDGET", "0.9")

	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected weights that do not sum to 1 to be rejected")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Worker.PollInterval.String() != "10s" {
		t.Fatalf("expected default poll interval 10s, got %s", cfg.Worker.PollInterval)
	}
	if cfg.Storage.MaxFileSize != 10485760 {
		t.Fatalf("expected default max file size, got %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Scoring != scoring.DefaultPolicy() {
		t.Fatalf("expected default scoring policy, got %+v", cfg.Scoring)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadCapabilityFileYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "capability.yaml", `
tech_keywords:
  - Python
  - " react "
  - python
min_budget: 500000
max_budget: 2000000
min_timeline_weeks: 4
max_timeline_weeks: 12
max_team_size: 10
expected_emd_in_inr: 25000
`)

	capability, err := LoadCapabilityFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(capability.TechKeywords) != 2 || capability.TechKeywords[0] != "python" || capability.TechKeywords[1] != "react" {
		t.Fatalf("unexpected tech keywords: %v", capability.TechKeywords)
	}
	if capability.MaxBudget != 2000000 || capability.MaxTeamSize != 10 {
		t.Fatalf("unexpected capability: %+v", capability)
	}
	if capability.ExpectedEMDInINR == nil || *capability.ExpectedEMDInINR != 25000 {
		t.Fatalf("expected emd to be decoded, got %v", capability.ExpectedEMDInINR)
	}
}

func TestLoadCapabilityFileNestedJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "capability.json", `{
  "capability": {
    "tech_keywords": ["go"],
    "min_budget": 1,
    "max_budget": 2,
    "min_timeline_weeks": 1,
    "max_timeline_weeks": 2,
    "max_team_size": 3
  }
}`)

	capability, err := LoadCapabilityFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capability.MaxTeamSize != 3 {
		t.Fatalf("expected nested section to be decoded, got %+v", capability)
	}
}

func TestLoadCapabilityFileInvalid(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "capability.yaml", `
min_budget: 900
max_budget: 100
max_team_size: 5
`)

	_, err := LoadCapabilityFile(path)
	if !errors.Is(err, scoring.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}

	if _, err := LoadCapabilityFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
