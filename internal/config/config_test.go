package config

import (
	"reflect"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/") // no leading slash + trailing slash -> "/api/v1"

	// App
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("SEED_PATH", "seed.json")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DEFAULT_PAGE_SIZE", "25")
	t.Setenv("MAX_PAGE_SIZE", "50")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_SERVICE_NAME", "jobboard-test")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8088" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.ReadTimeout != 2*time.Second || cfg.WriteTimeout != 3*time.Second {
		t.Fatalf("timeouts = %v / %v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q, want normalized release", cfg.GinMode)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if !cfg.LogPretty || !cfg.SwaggerEnabled {
		t.Fatalf("boolean parsing broke: pretty=%v swagger=%v", cfg.LogPretty, cfg.SwaggerEnabled)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("APIBasePath = %q, want /api/v1", cfg.APIBasePath)
	}
	if cfg.DBPath != "db.sqlite" || cfg.SeedPath != "seed.json" {
		t.Fatalf("paths = %q / %q", cfg.DBPath, cfg.SeedPath)
	}
	if cfg.BcryptCost != 12 || cfg.DefaultPageSize != 25 || cfg.MaxPageSize != 50 {
		t.Fatalf("app knobs = %d / %d / %d", cfg.BcryptCost, cfg.DefaultPageSize, cfg.MaxPageSize)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate fallback = %v / %d", cfg.RateRPS, cfg.RateBurst)
	}
	if want := []string{"https://a.com", "http://b"}; !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Fatalf("CORS origins = %#v, want %#v", cfg.CORS.AllowedOrigins, want)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security = %+v", cfg.Security)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.ServiceName != "jobboard-test" || cfg.OTEL.SampleRatio != 0.25 {
		t.Fatalf("otel = %+v", cfg.OTEL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("defaults = %q / %q / %q", cfg.Port, cfg.GinMode, cfg.LogLevel)
	}
	if cfg.APIBasePath != "/api" {
		t.Fatalf("APIBasePath default = %q", cfg.APIBasePath)
	}
	if cfg.DBPath != "jobboard.db" || cfg.BcryptCost != 10 {
		t.Fatalf("app defaults = %q / %d", cfg.DBPath, cfg.BcryptCost)
	}
	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
		t.Fatalf("page defaults = %d / %d", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Fatalf("CORS default should be empty, got %#v", cfg.CORS.AllowedOrigins)
	}
}

// --- validation failures ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero timeout", "READ_TIMEOUT", "0s"},
		{"bad header bytes", "MAX_HEADER_BYTES", "-1"},
		{"bcrypt too low", "BCRYPT_COST", "3"},
		{"bcrypt too high", "BCRYPT_COST", "32"},
		{"page size zero", "DEFAULT_PAGE_SIZE", "0"},
		{"max below default", "MAX_PAGE_SIZE", "5"},
		{"negative rps", "RATE_RPS", "-1"},
		{"zero burst", "RATE_BURST", "0"},
		{"sample ratio out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("Load should fail when %s=%s", tc.key, tc.val)
			}
		})
	}
}

// --- helpers ---

func Test_normalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api":    "/api",
		"/api/":   "/api",
		"api/v1/": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func Test_splitCSV(t *testing.T) {
	if got := splitCSV(""); got != nil {
		t.Fatalf("splitCSV empty = %#v", got)
	}
	want := []string{"a", "b", "c"}
	if got := splitCSV(" a ,b,, c "); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV = %#v, want %#v", got, want)
	}
}
