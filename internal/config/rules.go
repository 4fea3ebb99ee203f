package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/forecast-summary/internal/synthesis"
)

// LoadRules reads a YAML rules document over the default rules. Keys absent
// from the document keep their defaults; a sky_buckets list replaces the
// default buckets whole. An empty path returns the defaults.
func LoadRules(path string) (synthesis.Rules, error) {
	rules := synthesis.DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return synthesis.Rules{}, fmt.Errorf("read RULES_FILE: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return synthesis.Rules{}, fmt.Errorf("decode RULES_FILE: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return synthesis.Rules{}, fmt.Errorf("invalid RULES_FILE: %w", err)
	}
	return rules, nil
}
