// Package config loads the news API configuration from environment
// variables.
//
// Every key has a default. Values that are set but cannot be parsed are
// reported instead of silently falling back, and Load joins every problem
// into a single error so a misconfigured deployment fails with the full list.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              string        // PORT, just the number
	ReadTimeout       time.Duration // READ_TIMEOUT
	ReadHeaderTimeout time.Duration // READ_HEADER_TIMEOUT
	WriteTimeout      time.Duration // WRITE_TIMEOUT
	IdleTimeout       time.Duration // IDLE_TIMEOUT
	ShutdownTimeout   time.Duration // SHUTDOWN_TIMEOUT, grace period for in-flight requests
	MaxHeaderBytes    int           // MAX_HEADER_BYTES
	MaxBodyBytes      int64         // MAX_BODY_BYTES, request body cap
	GinMode           string        // GIN_MODE: debug|release|test
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level  string // LOG_LEVEL: debug|info|warn|error|fatal|panic
	Pretty bool   // LOG_PRETTY, console output for development
}

// APIConfig holds settings of the public routes.
type APIConfig struct {
	BasePath       string        // API_BASE_PATH
	SwaggerEnabled bool          // SWAGGER_ENABLED
	IdempotencyTTL time.Duration // IDEMPOTENCY_TTL, lifetime of a claimed Idempotency-Key
}

// StoreConfig holds SQLite and seeding settings.
type StoreConfig struct {
	Path        string // DB_PATH
	SeedOnStart bool   // SEED_ON_START, reset the store when the server starts
	SeedDataset string // SEED_DATASET: test|development
}

// RateConfig holds the per-client token bucket. RPS 0 disables limiting.
type RateConfig struct {
	RPS   float64 // RATE_RPS
	Burst int     // RATE_BURST
}

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string // CORS_ALLOWED_ORIGINS, comma separated; empty allows all
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool          // ENABLE_HSTS
	HSTSMaxAge time.Duration // HSTS_MAX_AGE
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-news-api")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
	Environment string  // DEPLOYMENT_ENVIRONMENT (e.g. "staging"); omitted when empty
}

// Config holds all configuration values for the application.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	API      APIConfig
	Store    StoreConfig
	Rate     RateConfig
	CORS     CORSConfig
	Security SecurityConfig
	OTEL     OTELConfig
}

// Seed datasets accepted by SEED_DATASET.
var seedDatasets = []string{"test", "development"}

var logLevels = []string{"debug", "info", "warn", "error", "fatal", "panic"}

// MustLoad loads the configuration and panics if it is invalid.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result.
func Load() (Config, error) {
	var e envReader
	cfg := Config{
		Server: ServerConfig{
			Port:              e.str("PORT", "8080"),
			ReadTimeout:       e.dur("READ_TIMEOUT", 15*time.Second),
			ReadHeaderTimeout: e.dur("READ_HEADER_TIMEOUT", 10*time.Second),
			WriteTimeout:      e.dur("WRITE_TIMEOUT", 20*time.Second),
			IdleTimeout:       e.dur("IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout:   e.dur("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxHeaderBytes:    e.int("MAX_HEADER_BYTES", 1<<20),
			MaxBodyBytes:      int64(e.int("MAX_BODY_BYTES", 1<<20)),
			GinMode:           strings.ToLower(e.str("GIN_MODE", "release")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(e.str("LOG_LEVEL", "info")),
			Pretty: e.bool("LOG_PRETTY", false),
		},
		API: APIConfig{
			BasePath:       normalizeBasePath(e.str("API_BASE_PATH", "/api")),
			SwaggerEnabled: e.bool("SWAGGER_ENABLED", false),
			IdempotencyTTL: e.dur("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		Store: StoreConfig{
			Path:        e.str("DB_PATH", "news.db"),
			SeedOnStart: e.bool("SEED_ON_START", false),
			SeedDataset: strings.ToLower(e.str("SEED_DATASET", "development")),
		},
		Rate: RateConfig{
			RPS:   e.float("RATE_RPS", 20),
			Burst: e.int("RATE_BURST", 40),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(e.str("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: e.bool("ENABLE_HSTS", false),
			HSTSMaxAge: e.dur("HSTS_MAX_AGE", 180*24*time.Hour),
		},
		OTEL: OTELConfig{
			Enabled:     e.bool("OTEL_ENABLED", false),
			Endpoint:    e.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    e.bool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: e.str("OTEL_SERVICE_NAME", "go-news-api"),
			SampleRatio: e.float("OTEL_TRACES_SAMPLER_ARG", 1.0),
			Environment: e.str("DEPLOYMENT_ENVIRONMENT", ""),
		},
	}

	if cfg.Log.Level == "warning" {
		cfg.Log.Level = "warn"
	}
	switch cfg.Server.GinMode {
	case "debug", "release", "test":
	default:
		cfg.Server.GinMode = "release"
	}

	return cfg, errors.Join(errors.Join(e.errs...), cfg.Validate())
}

// Validate reports every out-of-range value in cfg.
func (cfg Config) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	s := cfg.Server
	check(strings.TrimSpace(s.Port) != "", "PORT must not be empty")
	check(s.ReadTimeout > 0 && s.ReadHeaderTimeout > 0 && s.WriteTimeout > 0 && s.IdleTimeout > 0 && s.ShutdownTimeout > 0,
		"timeouts must be positive durations")
	check(s.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")
	check(s.MaxBodyBytes > 0, "MAX_BODY_BYTES must be > 0")

	check(oneOf(cfg.Log.Level, logLevels), "LOG_LEVEL must be one of: "+strings.Join(logLevels, ", "))

	check(cfg.API.IdempotencyTTL > 0, "IDEMPOTENCY_TTL must be > 0")

	check(strings.TrimSpace(cfg.Store.Path) != "", "DB_PATH must not be empty")
	check(oneOf(cfg.Store.SeedDataset, seedDatasets), "SEED_DATASET must be one of: "+strings.Join(seedDatasets, ", "))

	check(cfg.Rate.RPS >= 0, "RATE_RPS must be >= 0")
	check(cfg.Rate.Burst >= 1, "RATE_BURST must be >= 1")

	check(cfg.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(cfg.OTEL.SampleRatio >= 0 && cfg.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")

	return errors.Join(errs...)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// envReader reads typed values and remembers the keys it could not parse.
type envReader struct {
	errs []error
}

func (e *envReader) lookup(k string) (string, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (e *envReader) invalid(k, v, want string) {
	e.errs = append(e.errs, fmt.Errorf("%s=%q is not a valid %s", k, v, want))
}

func (e *envReader) str(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func (e *envReader) float(k string, def float64) float64 {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.invalid(k, v, "number")
		return def
	}
	return f
}

func (e *envReader) int(k string, def int) int {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		e.invalid(k, v, "integer")
		return def
	}
	return i
}

func (e *envReader) bool(k string, def bool) bool {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	e.invalid(k, v, "boolean")
	return def
}

func (e *envReader) dur(k string, def time.Duration) time.Duration {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.invalid(k, v, "duration")
		return def
	}
	return d
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
