package config

import (
	"fmt"
)

// JWTConfig holds configuration for service token generation and validation.
// An empty secret disables token checks on the API.
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// Enabled reports whether a signing secret is configured.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// normalize validates the configuration.
func (c JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// RequireSecret returns an error unless a usable secret is configured.
func (c JWTConfig) RequireSecret() error {
	if !c.Enabled() {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	return c.normalize()
}
