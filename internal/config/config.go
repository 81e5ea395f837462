package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/toko-pricing/internal/common"
	"github.com/noah-isme/toko-pricing/internal/obs"
	"github.com/noah-isme/toko-pricing/internal/pricing"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv                 string
	LogFormat              string
	LogLevel               string
	VATPercent             int
	DefaultDiscountPercent int
	MetricsNamespace       string
	QuoteBuckets           []float64
	OTelExporter           string
	OTelEndpoint           string
	OTelSamplingRatio      float64
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:           valueOrDefault(k.String("APP_ENV"), "development"),
		LogFormat:        valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:         valueOrDefault(k.String("LOG_LEVEL"), "info"),
		MetricsNamespace: valueOrDefault(k.String("METRICS_NAMESPACE"), "toko_pricing"),
		QuoteBuckets:     obs.ParseBucketsCSV(k.String("PRICING_QUOTE_BUCKETS_MS")),
		OTelExporter:     valueOrDefault(k.String("OTEL_EXPORTER"), "none"),
		OTelEndpoint:     strings.TrimSpace(k.String("OTEL_EXPORTER_OTLP_ENDPOINT")),
	}

	var err error
	if cfg.VATPercent, err = percentFromEnv(k, "PRICING_VAT_PERCENT"); err != nil {
		return nil, err
	}
	if cfg.DefaultDiscountPercent, err = percentFromEnv(k, "PRICING_DEFAULT_DISCOUNT_PERCENT"); err != nil {
		return nil, err
	}
	if cfg.OTelSamplingRatio, err = parseRatio(k.String("OTEL_SAMPLING_RATIO"), 1); err != nil {
		return nil, err
	}

	return cfg, nil
}

func percentFromEnv(k *koanf.Koanf, key string) (int, error) {
	p, err := common.ParseIntDefault(k.String(key), 0)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if err := pricing.ValidatePercent(key, p); err != nil {
		return 0, err
	}
	return p, nil
}

func parseRatio(value string, fallback float64) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	ratio, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || ratio < 0 || ratio > 1 {
		return 0, fmt.Errorf("OTEL_SAMPLING_RATIO must be a number between 0 and 1, got %q", value)
	}
	return ratio, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
