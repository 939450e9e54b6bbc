package exercise

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate = validator.New()

// ConflictEquivalentConfig configures conflict-equivalence sheet
// generation.
type ConflictEquivalentConfig struct {
	// NumSchedules is the number of schedules on the sheet, including
	// the seed schedule.
	NumSchedules int `yaml:"num_schedules" validate:"required,min=1"`
	// NumTransactions is the number of transactions in each schedule.
	NumTransactions int `yaml:"num_transactions" validate:"required,min=2"`
	// NumOperations is the number of conflicting operation pairs, i.e.
	// precedence-graph edges.
	NumOperations int `yaml:"num_operations" validate:"required,min=1"`
	// MustRead forces a read of each written item before the write.
	MustRead bool `yaml:"must_read"`
	// MustWrite forces a write-back of each read item.
	MustWrite bool `yaml:"must_write"`
	// Serializable restricts generation to acyclic precedence graphs.
	Serializable bool `yaml:"serializable"`
}

// DefaultConflictEquivalentConfig returns the stock exercise parameters.
func DefaultConflictEquivalentConfig() ConflictEquivalentConfig {
	return ConflictEquivalentConfig{
		NumSchedules:    4,
		NumTransactions: 4,
		NumOperations:   4,
		MustRead:        true,
		MustWrite:       false,
		Serializable:    false,
	}
}

// Validate checks the config against its struct tags.
func (c ConflictEquivalentConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid exercise config: %w", err)
	}
	return nil
}

// LoadConflictEquivalentConfig reads a YAML config file, filling
// unspecified fields from the defaults.
func LoadConflictEquivalentConfig(path string) (ConflictEquivalentConfig, error) {
	cfg := DefaultConflictEquivalentConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
