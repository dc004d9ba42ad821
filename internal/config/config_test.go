package config

import (
	"os"
	"testing"
)

func TestLoad_WithDefaults(t *testing.T) {
	// Clear all environment variables
	clearConfigEnvVars()

	// Set only required env var (password has no default)
	os.Setenv("DB_PASSWORD", "testpass")
	defer os.Unsetenv("DB_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Expected env development, got %s", cfg.Server.Env)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected host localhost, got %s", cfg.Database.Host)
	}
	if cfg.Database.Name != "website_v4" {
		t.Errorf("Expected db name website_v4, got %s", cfg.Database.Name)
	}
	if cfg.Database.PoolMin != 2 {
		t.Errorf("Expected pool min 2, got %d", cfg.Database.PoolMin)
	}
	if cfg.Database.PoolMax != 10 {
		t.Errorf("Expected pool max 10, got %d", cfg.Database.PoolMax)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
	if cfg.Leads.ContactPhone == "" {
		t.Error("Expected a default contact phone")
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("ENV", "production")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_NAME", "leadsdb")
	os.Setenv("DB_USER", "svc")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("LEAD_ESTIMATOR_ENDPOINT", "https://ingest.example.com/estimator")
	os.Setenv("LEAD_CONTACT_ENDPOINT", "https://ingest.example.com/contact")
	os.Setenv("CONTACT_PHONE", "(800) 555-0101")
	defer clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "production" {
		t.Errorf("Expected env production, got %s", cfg.Server.Env)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected host db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Leads.EstimatorEndpoint != "https://ingest.example.com/estimator" {
		t.Errorf("Unexpected estimator endpoint: %s", cfg.Leads.EstimatorEndpoint)
	}
	if cfg.Leads.ContactPhone != "(800) 555-0101" {
		t.Errorf("Unexpected contact phone: %s", cfg.Leads.ContactPhone)
	}
}

func TestLoad_EndpointFallbacks(t *testing.T) {
	clearConfigEnvVars()
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("LEAD_ESTIMATOR_ENDPOINT", "https://ingest.example.com/estimator")
	os.Setenv("LEAD_CONTACT_ENDPOINT", "https://ingest.example.com/contact")
	defer clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Commercial falls back to estimator, calculator falls back to contact
	if cfg.Leads.CommercialEndpoint != "https://ingest.example.com/estimator" {
		t.Errorf("Expected commercial to fall back to estimator endpoint, got %s", cfg.Leads.CommercialEndpoint)
	}
	if cfg.Leads.CalculatorEndpoint != "https://ingest.example.com/contact" {
		t.Errorf("Expected calculator to fall back to contact endpoint, got %s", cfg.Leads.CalculatorEndpoint)
	}
}

func TestLoad_ExplicitEndpointsWinOverFallbacks(t *testing.T) {
	clearConfigEnvVars()
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("LEAD_ESTIMATOR_ENDPOINT", "https://ingest.example.com/estimator")
	os.Setenv("LEAD_COMMERCIAL_ENDPOINT", "https://ingest.example.com/commercial")
	defer clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Leads.CommercialEndpoint != "https://ingest.example.com/commercial" {
		t.Errorf("Expected explicit commercial endpoint to win, got %s", cfg.Leads.CommercialEndpoint)
	}
}

func TestEndpointFor(t *testing.T) {
	leads := LeadsConfig{
		EstimatorEndpoint:  "https://a",
		CommercialEndpoint: "https://b",
		ContactEndpoint:    "https://c",
		CalculatorEndpoint: "https://d",
	}

	tests := []struct {
		category string
		want     string
	}{
		{"estimator", "https://a"},
		{"commercial", "https://b"},
		{"contact", "https://c"},
		{"calculator", "https://d"},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := leads.EndpointFor(tt.category); got != tt.want {
			t.Errorf("EndpointFor(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestLoad_MissingPassword(t *testing.T) {
	clearConfigEnvVars()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when DB_PASSWORD is missing")
	}
}

func TestLoad_AuthRequiresSecret(t *testing.T) {
	clearConfigEnvVars()
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("AUTH_PROVIDER_URL", "https://auth.example.com")
	defer clearConfigEnvVars()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when AUTH_PROVIDER_URL is set without AUTH_SESSION_SECRET")
	}
}

func TestValidate_InvalidPoolSizes(t *testing.T) {
	tests := []struct {
		name    string
		poolMin int
		poolMax int
		wantErr bool
	}{
		{"negative min", -1, 10, true},
		{"zero max", 2, 0, true},
		{"min greater than max", 10, 5, true},
		{"valid sizes", 2, 10, false},
		{"equal min and max", 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database.PoolMin = tt.poolMin
			cfg.Database.PoolMax = tt.poolMax

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty string", "", 0},
		{"single value", "http://localhost:3000", 1},
		{"multiple values", "a,b,c", 3},
		{"values with spaces", " a , b ", 2},
		{"trailing comma", "a,b,", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseList(tt.input)
			if len(got) != tt.want {
				t.Errorf("parseList(%q) returned %d items, want %d", tt.input, len(got), tt.want)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Env: "test"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			Name:     "website_v4",
			User:     "postgres",
			Password: "secret",
			PoolMin:  2,
			PoolMax:  10,
		},
		CORS:  CORSConfig{Origins: []string{"http://localhost:3000"}},
		Leads: LeadsConfig{ContactPhone: "(555) 210-4411"},
	}
}

func clearConfigEnvVars() {
	vars := []string{
		"PORT", "ENV",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_POOL_MIN", "DB_POOL_MAX",
		"CORS_ORIGINS",
		"LEAD_ESTIMATOR_ENDPOINT", "LEAD_COMMERCIAL_ENDPOINT",
		"LEAD_CONTACT_ENDPOINT", "LEAD_CALCULATOR_ENDPOINT",
		"CONTACT_PHONE",
		"AUTH_PROVIDER_URL", "AUTH_PROVIDER_API_KEY",
		"AUTH_SESSION_SECRET", "AUTH_SESSION_TTL",
		"AUTH_OAUTH_PROVIDERS", "AUTH_OAUTH_REDIRECT",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
