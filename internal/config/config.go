package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/sports-reconciler/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string        `validate:"oneof=dev stage prod"`
	ServiceName        string        `validate:"required"`
	ServiceVersion     string        `validate:"required"`
	HTTPAddr           string        `validate:"required"`
	ReadTimeout        time.Duration `validate:"gt=0"`
	WriteTimeout       time.Duration `validate:"gt=0"`
	CORSAllowedOrigins []string      `validate:"min=1,dive,required"`
	LogLevel           logging.Level
	SwaggerEnabled     bool

	CacheEnabled       bool
	CacheTTL           time.Duration `validate:"gt=0"`
	CacheSweepInterval time.Duration `validate:"gt=0"`
	CacheMaxEntries    int           `validate:"gt=0"`

	LiveGraceWindowMinutes int `validate:"gte=0"`
	ReconcileMaxWorkers    int `validate:"gte=1,lte=256"`
	StrictGameDates        bool

	DBEnabled               bool
	DBURL                   string `validate:"required_if=DBEnabled true"`
	DBDisablePreparedBinary bool
	DBBreakerEnabled        bool
	DBBreakerFailures       int           `validate:"gte=1"`
	DBBreakerOpenTimeout    time.Duration `validate:"gt=0"`

	UptraceEnabled bool
	UptraceDSN     string `validate:"required_if=UptraceEnabled true"`

	PyroscopeEnabled       bool
	PyroscopeServerAddress string        `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName       string        `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeUploadRate    time.Duration `validate:"gt=0"`
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            strings.TrimSpace(getEnv("APP_SERVICE_NAME", "sports-reconciler")),
		ServiceVersion:         strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:               getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", "")),
		UptraceDSN:             strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeServerAddress: strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.SwaggerEnabled, err = getEnvAsBool("APP_SWAGGER_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}
	if cfg.CacheSweepInterval, err = getEnvAsDuration("CACHE_SWEEP_INTERVAL", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.CacheMaxEntries, err = getEnvAsInt("CACHE_MAX_ENTRIES", 10000); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_MAX_ENTRIES: %w", err)
	}

	if cfg.LiveGraceWindowMinutes, err = getEnvAsInt("LIVE_GRACE_WINDOW_MINUTES", 15); err != nil {
		return Config{}, fmt.Errorf("parse LIVE_GRACE_WINDOW_MINUTES: %w", err)
	}
	if cfg.ReconcileMaxWorkers, err = getEnvAsInt("RECONCILE_MAX_WORKERS", 8); err != nil {
		return Config{}, fmt.Errorf("parse RECONCILE_MAX_WORKERS: %w", err)
	}
	if cfg.StrictGameDates, err = getEnvAsBool("STRICT_GAME_DATES", "false"); err != nil {
		return Config{}, err
	}

	if cfg.DBEnabled, err = getEnvAsBool("DB_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true"); err != nil {
		return Config{}, err
	}
	if cfg.DBBreakerEnabled, err = getEnvAsBool("DB_CIRCUIT_BREAKER_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.DBBreakerFailures, err = getEnvAsInt("DB_CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5); err != nil {
		return Config{}, fmt.Errorf("parse DB_CIRCUIT_BREAKER_FAILURE_THRESHOLD: %w", err)
	}
	if cfg.DBBreakerOpenTimeout, err = getEnvAsDuration("DB_CIRCUIT_BREAKER_OPEN_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var configValidator = validator.New()

// validateConfig reports the first failing field by its env var name.
func validateConfig(cfg Config) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return fmt.Errorf("validate config: %w", err)
	}

	first := validationErrs[0]
	name := envNameByField[first.StructField()]
	if name == "" {
		name = first.StructField()
	}
	if first.Param() != "" {
		return fmt.Errorf("invalid %s: failed %s=%s", name, first.Tag(), first.Param())
	}
	return fmt.Errorf("invalid %s: failed %s", name, first.Tag())
}

var envNameByField = map[string]string{
	"AppEnv":                 "APP_ENV",
	"ServiceName":            "APP_SERVICE_NAME",
	"ServiceVersion":         "APP_SERVICE_VERSION",
	"HTTPAddr":               "APP_HTTP_ADDR",
	"ReadTimeout":            "APP_READ_TIMEOUT",
	"WriteTimeout":           "APP_WRITE_TIMEOUT",
	"CORSAllowedOrigins":     "CORS_ALLOWED_ORIGINS",
	"CacheTTL":               "CACHE_TTL",
	"CacheSweepInterval":     "CACHE_SWEEP_INTERVAL",
	"CacheMaxEntries":        "CACHE_MAX_ENTRIES",
	"LiveGraceWindowMinutes": "LIVE_GRACE_WINDOW_MINUTES",
	"ReconcileMaxWorkers":    "RECONCILE_MAX_WORKERS",
	"DBURL":                  "DB_URL",
	"DBBreakerFailures":      "DB_CIRCUIT_BREAKER_FAILURE_THRESHOLD",
	"DBBreakerOpenTimeout":   "DB_CIRCUIT_BREAKER_OPEN_TIMEOUT",
	"UptraceDSN":             "UPTRACE_DSN",
	"PyroscopeServerAddress": "PYROSCOPE_SERVER_ADDRESS",
	"PyroscopeAppName":       "PYROSCOPE_APP_NAME",
	"PyroscopeUploadRate":    "PYROSCOPE_UPLOAD_RATE",
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
