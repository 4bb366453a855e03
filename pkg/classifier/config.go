package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk form of a rule table. Keeping it a document of its
// own (rather than a bare list) leaves room for future knobs without breaking
// existing files.
type Config struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// DefaultConfig returns a Config holding the built-in rule table.
func DefaultConfig() *Config {
	return &Config{Rules: DefaultRules()}
}

// LoadConfig reads a rule table from a YAML or JSON file. The file's rule
// list replaces the default table wholesale; an empty list falls back to the
// defaults so a bare file is equivalent to no file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	config := &Config{}

	// JSON is a YAML subset, so one decoder covers both formats.
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if len(config.Rules) == 0 {
		return DefaultConfig(), nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes the rule table to a file, JSON when the name ends in
// .json and YAML otherwise.
func SaveConfig(config *Config, filename string) error {
	var data []byte
	var err error

	if strings.HasSuffix(filename, ".json") {
		data, err = json.MarshalIndent(config, "", "  ")
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	return os.WriteFile(filename, data, 0644)
}

// Validate checks every rule for a non-empty pattern and a known severity.
func (c *Config) Validate() error {
	for i, rule := range c.Rules {
		if rule.Pattern == "" {
			return fmt.Errorf("rule %d: pattern must not be empty", i)
		}
		if !rule.Severity.IsValid() {
			return fmt.Errorf("rule %d (%q): unknown severity %q", i, rule.Pattern, rule.Severity)
		}
	}
	return nil
}
