package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/sync-engine/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (a trailing "/" matches by prefix)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// NewConfig builds the limiter configuration from service settings.
func NewConfig(settings config.RateLimitConfig) *Config {
	if !settings.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    settings.DefaultLimit,
		DefaultWindow:   settings.DefaultWindow,
		CleanupInterval: settings.CleanupInterval,
		Whitelist:       ipSet(settings.Whitelist),
		Blacklist:       ipSet(settings.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Writes to the database
		{Path: "/sync-score", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},

		// CPU only, but bodies can be large
		{Path: "/profiles", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},

		// Reads are handled by the default limit; /health and /metrics are unlimited
	}
}

// ipSet turns a list of addresses into a lookup set, ignoring blanks.
func ipSet(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
