package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Leads    LeadsConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	PoolMin  int
	PoolMax  int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// LeadsConfig holds the external lead-ingestion endpoints, one per lead
// category, plus the phone number surfaced when online submission is
// unavailable. Fallbacks between categories are resolved here at load
// time, never at the call site.
type LeadsConfig struct {
	EstimatorEndpoint  string
	CommercialEndpoint string
	ContactEndpoint    string
	CalculatorEndpoint string
	ContactPhone       string
}

// AuthConfig holds the hosted auth provider connection and the portal
// session token settings.
type AuthConfig struct {
	ProviderURL    string
	ProviderAPIKey string
	SessionSecret  string
	SessionTTL     time.Duration
	OAuthProviders []string
	OAuthRedirect  string
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults for development
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "website_v4")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("CONTACT_PHONE", "(555) 210-4411")
	v.SetDefault("AUTH_SESSION_TTL", "24h")
	v.SetDefault("AUTH_OAUTH_PROVIDERS", "google")
	v.SetDefault("AUTH_OAUTH_REDIRECT", "http://localhost:3000/auth/callback")

	// Bind environment variables
	v.AutomaticEnv()

	// Build configuration
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
		},
		CORS: CORSConfig{
			Origins: parseList(v.GetString("CORS_ORIGINS")),
		},
		Leads: LeadsConfig{
			EstimatorEndpoint:  v.GetString("LEAD_ESTIMATOR_ENDPOINT"),
			CommercialEndpoint: v.GetString("LEAD_COMMERCIAL_ENDPOINT"),
			ContactEndpoint:    v.GetString("LEAD_CONTACT_ENDPOINT"),
			CalculatorEndpoint: v.GetString("LEAD_CALCULATOR_ENDPOINT"),
			ContactPhone:       v.GetString("CONTACT_PHONE"),
		},
		Auth: AuthConfig{
			ProviderURL:    v.GetString("AUTH_PROVIDER_URL"),
			ProviderAPIKey: v.GetString("AUTH_PROVIDER_API_KEY"),
			SessionSecret:  v.GetString("AUTH_SESSION_SECRET"),
			SessionTTL:     v.GetDuration("AUTH_SESSION_TTL"),
			OAuthProviders: parseList(v.GetString("AUTH_OAUTH_PROVIDERS")),
			OAuthRedirect:  v.GetString("AUTH_OAUTH_REDIRECT"),
		},
	}

	// Resolve endpoint fallbacks once, up front. Commercial-agreement
	// leads fall back to the estimator endpoint; calculator leads fall
	// back to the contact endpoint. A category with no endpoint after
	// fallback stays empty and is reported to callers as unconfigured.
	cfg.Leads.resolveFallbacks()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (l *LeadsConfig) resolveFallbacks() {
	if l.CommercialEndpoint == "" {
		l.CommercialEndpoint = l.EstimatorEndpoint
	}
	if l.CalculatorEndpoint == "" {
		l.CalculatorEndpoint = l.ContactEndpoint
	}
}

// EndpointFor returns the ingestion endpoint for a lead category.
// An empty string means the category is unconfigured.
func (l *LeadsConfig) EndpointFor(category string) string {
	switch category {
	case "estimator":
		return l.EstimatorEndpoint
	case "commercial":
		return l.CommercialEndpoint
	case "contact":
		return l.ContactEndpoint
	case "calculator":
		return l.CalculatorEndpoint
	default:
		return ""
	}
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	// Validate database config
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if c.Database.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}

	// Validate CORS config
	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	// Lead endpoints are optional (unconfigured categories degrade to a
	// call-us fallback), but the fallback phone number must exist.
	if c.Leads.ContactPhone == "" {
		return fmt.Errorf("CONTACT_PHONE is required")
	}

	// The session secret is only required when a provider is configured;
	// the lead and calculator surface works without the portals.
	if c.Auth.ProviderURL != "" {
		if c.Auth.SessionSecret == "" {
			return fmt.Errorf("AUTH_SESSION_SECRET is required when AUTH_PROVIDER_URL is set")
		}
		if c.Auth.SessionTTL <= 0 {
			return fmt.Errorf("AUTH_SESSION_TTL must be positive")
		}
	}

	return nil
}

// parseList splits a comma-separated string into a slice.
func parseList(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
