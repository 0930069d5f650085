package config

import (
	"time"

	"github.com/skillsenselab/browserkit/errors"
	"github.com/skillsenselab/browserkit/logger"
)

// ServiceConfig contains the essential configuration fields every service needs.
// Projects extend this by embedding it in their own config structs.
//
// Example:
//
//	type CLIConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Container config.ContainerConfig `yaml:"container" mapstructure:"container"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig returns the base ServiceConfig.
// When embedded in a larger config struct, this method is promoted
// so the embedding struct automatically satisfies the Config interface.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Override this in embedding structs and call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
// Override this in embedding structs and call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig("logging", err.Error())
	}
	return nil
}

// CacheConfig configures the container's bounded resolution cache.
type CacheConfig struct {
	// MaxSize is the maximum number of cached resolutions. 0 falls back
	// to the default capacity.
	MaxSize int `yaml:"max_size" mapstructure:"max_size" validate:"gte=0"`
	// TTLMs is the per-entry time-to-live in milliseconds. 0 disables expiry.
	TTLMs int `yaml:"ttl_ms" mapstructure:"ttl_ms" validate:"gte=0"`
	// Enabled toggles resolution caching entirely.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// ContainerConfig configures the service container.
type ContainerConfig struct {
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`
	// CleanupInterval is how often the background sweep purges expired
	// cache entries.
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval" validate:"gte=0"`
}

// ApplyDefaults applies default values to container configuration.
func (c *ContainerConfig) ApplyDefaults() {
	if c.Cache.MaxSize == 0 {
		c.Cache.MaxSize = 100
		c.Cache.Enabled = true
	}
	if c.Cache.TTLMs == 0 {
		c.Cache.TTLMs = int((30 * time.Minute).Milliseconds())
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = 5 * time.Minute
	}
}

// Validate validates container configuration.
func (c *ContainerConfig) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return errors.InvalidConfig("container", err.Error())
	}
	return nil
}
