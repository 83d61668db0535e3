package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"alfredoptarigan/rfp-evaluator/internal/models"
)

const capabilitySection = "capability"

// LoadCapabilityFile reads a capability profile from a YAML, JSON or TOML file.
// The profile may sit at the top level or under a "capability" key.
func LoadCapabilityFile(path string) (*models.CompanyCapability, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("capability file path is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading capability file %q: %w", path, err)
	}

	if sub := v.Sub(capabilitySection); sub != nil {
		v = sub
	}

	var capability models.CompanyCapability
	if err := v.Unmarshal(&capability); err != nil {
		return nil, fmt.Errorf("decoding capability file %q: %w", path, err)
	}

	capability.TechKeywords = capability.TechKeywords.Clean()
	if err := capability.Validate(); err != nil {
		return nil, fmt.Errorf("capability file %q: %w", path, err)
	}

	return &capability, nil
}
