package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/live-match/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	StorageDriver              string
	DBURL                      string
	DBDisablePreparedBinary    bool
	DBCircuitEnabled           bool
	DBCircuitFailureCount      int
	DBCircuitOpenTimeout       time.Duration
	DBCircuitHalfOpenMaxReq    int
	CacheEnabled               bool
	CacheTTL                   time.Duration
	SeedFile                   string
	CORSAllowedOrigins         []string
	InternalJobToken           string
	OverdueSweepEnabled        bool
	OverdueSweepInterval       time.Duration
	SweepWorkers               int
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

// Load reads the process environment. Every malformed or missing key is
// reported together rather than stopping at the first.
func Load() (Config, error) {
	env := &envReader{}

	cfg := Config{
		AppEnv:         env.oneOf("APP_ENV", EnvDev, EnvDev, EnvStage, EnvProd),
		ServiceName:    env.str("APP_SERVICE_NAME", "live-match-api"),
		ServiceVersion: env.str("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       env.str("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    env.positiveDuration("APP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:   env.positiveDuration("APP_WRITE_TIMEOUT", 15*time.Second),
		LogLevel:       parseLogLevel(env.str("APP_LOG_LEVEL", "info")),

		StorageDriver:           env.oneOf("STORAGE_DRIVER", StorageMemory, StorageMemory, StoragePostgres),
		DBURL:                   env.str("DB_URL", ""),
		DBDisablePreparedBinary: env.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", true),
		DBCircuitEnabled:        env.boolean("DB_CIRCUIT_ENABLED", true),
		DBCircuitFailureCount:   env.atLeast("DB_CIRCUIT_FAILURE_COUNT", 5, 1),
		DBCircuitOpenTimeout:    env.positiveDuration("DB_CIRCUIT_OPEN_TIMEOUT", 15*time.Second),
		DBCircuitHalfOpenMaxReq: env.atLeast("DB_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1),
		CacheEnabled:            env.boolean("CACHE_ENABLED", true),
		CacheTTL:                env.positiveDuration("CACHE_TTL", time.Minute),
		SeedFile:                env.str("SEED_FILE", ""),

		CORSAllowedOrigins:   env.list("CORS_ALLOWED_ORIGINS", "*"),
		InternalJobToken:     env.str("INTERNAL_JOB_TOKEN", ""),
		OverdueSweepEnabled:  env.boolean("OVERDUE_SWEEP_ENABLED", true),
		OverdueSweepInterval: env.positiveDuration("OVERDUE_SWEEP_INTERVAL", 15*time.Second),
		SweepWorkers:         env.atLeast("SWEEP_WORKERS", 4, 1),

		PprofEnabled:               env.boolean("PPROF_ENABLED", false),
		PprofAddr:                  env.str("PPROF_ADDR", ":6060"),
		UptraceEnabled:             env.boolean("UPTRACE_ENABLED", false),
		UptraceDSN:                 env.str("UPTRACE_DSN", uptraceDSNFromOTLPHeaders(env.str("OTEL_EXPORTER_OTLP_HEADERS", ""))),
		PyroscopeEnabled:           env.boolean("PYROSCOPE_ENABLED", false),
		PyroscopeServerAddress:     env.str("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAuthToken:         env.str("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     env.str("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: env.str("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        env.positiveDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second),
	}
	cfg.PyroscopeAppName = env.str("PYROSCOPE_APP_NAME", cfg.ServiceName)

	env.require(cfg.StorageDriver != StoragePostgres || cfg.DBURL != "", "DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	env.require(cfg.AppEnv != EnvProd || cfg.InternalJobToken != "", "INTERNAL_JOB_TOKEN is required when APP_ENV=%s", EnvProd)
	env.require(len(cfg.CORSAllowedOrigins) > 0, "CORS_ALLOWED_ORIGINS cannot be empty")
	env.require(!cfg.UptraceEnabled || cfg.UptraceDSN != "", "UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	env.require(!cfg.PyroscopeEnabled || cfg.PyroscopeServerAddress != "", "PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")

	if err := env.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(v) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// uptraceDSNFromOTLPHeaders picks uptrace-dsn out of an OTLP header list such
// as `x-a=1,uptrace-dsn="https://..."`.
func uptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(item, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}

var errInvalidConfig = errors.New("invalid config")

func wrapProblems(problems []error) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", errInvalidConfig, errors.Join(problems...))
}
