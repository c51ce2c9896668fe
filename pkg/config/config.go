// Package config loads flipstack settings from defaults, an optional YAML
// file and FLIPSTACK_ environment variables, in increasing priority.
package config

import (
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flipstack/pkg/core/admission"
	errs "github.com/matzehuels/flipstack/pkg/errors"
)

// Config is the complete runtime configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Admission AdmissionConfig `koanf:"admission"`
	Server    ServerConfig    `koanf:"server"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// LogConfig controls the logger. An empty File logs to stderr; otherwise
// output goes to a rotating file.
type LogConfig struct {
	Level      string `koanf:"level"`
	File       string `koanf:"file"`
	MaxSize    int    `koanf:"max_size"` // megabytes
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"` // days
	Compress   bool   `koanf:"compress"`
}

// AdmissionConfig holds the stack size ceilings of the admission guard.
type AdmissionConfig struct {
	UnsignedCeiling int `koanf:"unsigned_ceiling"`
	SignedCeiling   int `koanf:"signed_ceiling"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// MetricsConfig configures the Prometheus endpoint of the HTTP API.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
}

// Guard returns the admission guard described by c.
func (c *Config) Guard() admission.Guard {
	return admission.Guard{
		UnsignedCeiling: c.Admission.UnsignedCeiling,
		SignedCeiling:   c.Admission.SignedCeiling,
	}
}

// LogLevel returns the parsed log level. Call after Validate.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate checks every section and reports all problems at once as an
// INVALID_CONFIG error.
func (c *Config) Validate() error {
	var problems []string

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, "log.level must be one of: debug, info, warn, error, fatal; got "+quote(c.Log.Level))
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		problems = append(problems, "log rotation limits must be non-negative")
	}

	if err := c.Guard().Validate(); err != nil {
		problems = append(problems, "admission: "+errs.UserMessage(err))
	}

	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		problems = append(problems, "server.addr must be host:port, got "+quote(c.Server.Addr))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}

	if c.Metrics.Enabled {
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			problems = append(problems, "metrics.path must start with /, got "+quote(c.Metrics.Path))
		}
		if c.Metrics.Namespace == "" {
			problems = append(problems, "metrics.namespace is required")
		}
	}

	if len(problems) > 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "%s", strings.Join(problems, "; "))
	}
	return nil
}

func quote(s string) string { return `"` + s + `"` }
