package logger

import (
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json", "text"
	ServiceName string
	Version     string
	Environment string // "dev", "staging", "prod"
	AddSource   bool   // Include source file/line in logs
}

// ForEnvironment returns the preset for env. Production logs JSON at info
// level; every other environment logs text with source locations.
func ForEnvironment(env, serviceName, version string) Config {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	if version == "" {
		version = DefaultVersion
	}
	cfg := Config{
		Level:       LogLevelDebug,
		Format:      LogFormatText,
		ServiceName: serviceName,
		Version:     version,
		Environment: env,
		AddSource:   true,
	}
	if IsProduction(env) {
		cfg.Level = LogLevelInfo
		cfg.Format = LogFormatJSON
		cfg.AddSource = false
	}
	return cfg
}

// IsProduction reports whether env names the production deployment
func IsProduction(env string) bool {
	switch strings.ToLower(env) {
	case EnvironmentProduction, "production":
		return true
	}
	return false
}

// Override replaces the level and format with the non-empty values given
func (c Config) Override(level, format string) Config {
	if level != "" {
		c.Level = level
	}
	if format != "" {
		c.Format = format
	}
	return c
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == LogFormatJSON
}

// BaseAttributes returns common attributes to add to all logs
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
