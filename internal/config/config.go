package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	APIKey      string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string
	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string `validate:"dive,ip"`

	DBUser     string `validate:"required"`
	DBPassword string
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBName     string `validate:"required"`
	DBMaxConns int    `validate:"min=1"`

	// FinalizeMaxBatchWrites caps the mutations a single finalization may stage.
	FinalizeMaxBatchWrites int `validate:"min=1"`
	// FinalizeMinPlayers below which a game is only marked processed.
	FinalizeMinPlayers int `validate:"min=0"`
	// FinalizeMaxAttempts caps recomputations after concurrent player updates.
	FinalizeMaxAttempts int `validate:"min=1"`

	MaintenanceTimezone     string        `validate:"required"`
	MaintenanceMaxDuration  time.Duration `validate:"gt=0"`
	MaintenanceSafetyMargin time.Duration `validate:"gte=0,ltfield=MaintenanceMaxDuration"`
	MaintenancePageSize     int           `validate:"min=1,max=500"`

	WorkerCount     int `validate:"min=1"`
	WorkerQueueSize int `validate:"min=1"`

	EventMaxRetries int           `validate:"min=0"`
	EventRetryDelay time.Duration `validate:"gte=0"`
	DeadLetterPath  string        `validate:"required"`

	SettingsCacheTTL    time.Duration `validate:"gt=0"`
	SoftDeletePerMinute int           `validate:"min=1"`
	ShutdownTimeout     time.Duration `validate:"gt=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvAsInt("PORT", DefaultPort),
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		DBUser:     getEnv("DB_USER", DefaultDBUser),
		DBPassword: getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:     getEnv("DB_HOST", DefaultDBHost),
		DBPort:     getEnv("DB_PORT", DefaultDBPort),
		DBName:     getEnv("DB_NAME", DefaultDBName),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		FinalizeMaxBatchWrites: getEnvAsInt("FINALIZE_MAX_BATCH_WRITES", DefaultFinalizeMaxBatchWrites),
		FinalizeMinPlayers:     getEnvAsInt("FINALIZE_MIN_PLAYERS", DefaultFinalizeMinPlayers),
		FinalizeMaxAttempts:    getEnvAsInt("FINALIZE_MAX_ATTEMPTS", DefaultFinalizeMaxAttempts),

		MaintenanceTimezone:     getEnv("MAINTENANCE_TIMEZONE", DefaultMaintenanceTimezone),
		MaintenanceMaxDuration:  getEnvAsDuration("MAINTENANCE_MAX_DURATION", DefaultMaintenanceMaxDuration),
		MaintenanceSafetyMargin: getEnvAsDuration("MAINTENANCE_SAFETY_MARGIN", DefaultMaintenanceSafetyMargin),
		MaintenancePageSize:     getEnvAsInt("MAINTENANCE_PAGE_SIZE", DefaultMaintenancePageSize),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		EventMaxRetries: getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay: getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		DeadLetterPath:  getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),

		SettingsCacheTTL:    getEnvAsDuration("SETTINGS_CACHE_TTL", DefaultSettingsCacheTTL),
		SoftDeletePerMinute: getEnvAsInt("SOFT_DELETE_RATE_PER_MINUTE", DefaultSoftDeletePerMinute),
		ShutdownTimeout:     getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the maintenance timezone exists.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.LoadLocation(c.MaintenanceTimezone); err != nil {
		return fmt.Errorf("invalid MAINTENANCE_TIMEZONE %q: %w", c.MaintenanceTimezone, err)
	}
	return nil
}

// Location returns the maintenance scheduling timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.MaintenanceTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty items
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnvAsDuration parses a duration variable such as "30s", falling back to the default
func getEnvAsDuration(key, defaultValue string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}
