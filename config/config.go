package config

import (
	"fmt"

	"github.com/visionlab/patchkit/errors"
	"github.com/visionlab/patchkit/logger"
	"github.com/visionlab/patchkit/pipeline"
	"github.com/visionlab/patchkit/validation"
)

// ExtractionConfig carries the extraction settings an application hands to
// descriptor.New and the inference backend factory.
type ExtractionConfig struct {
	// BatchSize is the maximum number of patches per inference batch.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size" validate:"gt=0"`
	// QueueSize bounds the batch queue; 0 means unbounded for the run.
	QueueSize int `yaml:"queue_size" mapstructure:"queue_size" validate:"gte=0"`
	// Provider names the inference backend factory to use.
	Provider string `yaml:"provider" mapstructure:"provider" validate:"required"`
	// ModelPath is an opaque handle passed to the backend factory.
	ModelPath string `yaml:"model_path" mapstructure:"model_path"`
	// Quantize selects uint8 descriptor output.
	Quantize bool `yaml:"quantize" mapstructure:"quantize"`
}

// ApplyDefaults applies default values to extraction configuration.
func (c *ExtractionConfig) ApplyDefaults() {
	if c.BatchSize == 0 {
		c.BatchSize = pipeline.DefaultBatchSize
	}
	if c.Provider == "" {
		c.Provider = "geodesc"
	}
}

// Pipeline returns the batching slice of these settings.
func (c ExtractionConfig) Pipeline() pipeline.Config {
	return pipeline.Config{BatchSize: c.BatchSize, QueueSize: c.QueueSize}
}

// ProviderConfig returns the opaque settings handed to the backend factory.
func (c ExtractionConfig) ProviderConfig() map[string]any {
	return map[string]any{"model_path": c.ModelPath}
}

// Config is the root configuration for a patchkit application.
type Config struct {
	Name        string           `yaml:"name" mapstructure:"name"`
	Environment string           `yaml:"environment" mapstructure:"environment"`
	Debug       bool             `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config    `yaml:"logging" mapstructure:"logging"`
	Extraction  ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
}

// ApplyDefaults applies default values to the whole configuration.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Extraction.ApplyDefaults()
}

// Validate validates the whole configuration.
func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.MissingField("name")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return errors.InvalidConfiguration("environment",
			fmt.Sprintf("must be one of %v (got: %s)", validEnvs, c.Environment))
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.Validation(err.Error())
	}
	if err := validation.Validate(c.Extraction); err != nil {
		return err
	}
	return nil
}
