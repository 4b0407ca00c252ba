package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	Environment       string
	LogLevel          string
	OTLPEndpoint      string
	OTLPInsecure      bool
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	ImageGenBaseURL   string
	ImageGenAPIKey    string
	ImageGenTimeout   time.Duration
	JWTSecret         string
	SupabaseURL       string
	SupabaseKey       string
	SupabaseBucket    string
	SessionIdle       time.Duration
	SessionSweepEvery time.Duration
}

// LoadConfig reads an optional .env file plus the environment, applies defaults,
// and validates basic constraints. Variables already set win over .env values.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		Environment:       envDefault("ENVIRONMENT", "local"),
		LogLevel:          envDefault("LOG_LEVEL", "info"),
		OTLPEndpoint:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:      envDefault("OTEL_EXPORTER_OTLP_INSECURE", "1") != "0",
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		ImageGenBaseURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("IMAGEGEN_BASE_URL")), "/"),
		ImageGenAPIKey:    strings.TrimSpace(os.Getenv("IMAGEGEN_API_KEY")),
		ImageGenTimeout:   60 * time.Second,
		JWTSecret:         strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
		SupabaseURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		SupabaseKey:       strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_KEY")),
		SupabaseBucket:    envDefault("SUPABASE_BUCKET", "design-uploads"),
		SessionIdle:       30 * time.Minute,
		SessionSweepEvery: time.Minute,
	}
	if seconds, ok, err := positiveInt("IMAGEGEN_TIMEOUT_SECONDS"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.ImageGenTimeout = time.Duration(seconds) * time.Second
	}
	if minutes, ok, err := positiveInt("SESSION_IDLE_MINUTES"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.SessionIdle = time.Duration(minutes) * time.Minute
	}
	if cfg.SessionSweepEvery > cfg.SessionIdle {
		cfg.SessionSweepEvery = cfg.SessionIdle
	}
	if (cfg.SupabaseURL == "") != (cfg.SupabaseKey == "") {
		return Config{}, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set together")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func positiveInt(key string) (int, bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, true, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
