package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/matzehuels/flipstack/pkg/core/admission"
	errs "github.com/matzehuels/flipstack/pkg/errors"
)

const (
	// EnvPrefix prefixes every environment override, e.g.
	// FLIPSTACK_ADMISSION_SIGNED_CEILING=7.
	EnvPrefix = "FLIPSTACK_"

	// ConfigEnvVar names a config file when no explicit path is given.
	ConfigEnvVar = "FLIPSTACK_CONFIG"
)

// Loader merges configuration sources into a [Config].
type Loader struct {
	k           *koanf.Koanf
	explicit    string
	configPaths []string
	envPrefix   string
	source      string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFile sets a config file that must exist.
func WithFile(path string) LoaderOption {
	return func(l *Loader) {
		l.explicit = path
	}
}

// WithConfigPaths replaces the optional search paths.
func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.configPaths = paths
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// NewLoader creates a loader that searches ./flipstack.yaml and the user
// config directory.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k:           koanf.New("."),
		configPaths: defaultPaths(),
		envPrefix:   EnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func defaultPaths() []string {
	paths := []string{"flipstack.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "flipstack", "config.yaml"))
	}
	return paths
}

// Defaults returns the default values keyed by their dotted path.
func Defaults() map[string]any {
	return map[string]any{
		"log.level":       "info",
		"log.file":        "",
		"log.max_size":    10,
		"log.max_backups": 3,
		"log.max_age":     28,
		"log.compress":    false,

		"admission.unsigned_ceiling": admission.DefaultUnsignedCeiling,
		"admission.signed_ceiling":   admission.DefaultSignedCeiling,

		"server.addr":             "127.0.0.1:8080",
		"server.read_timeout":     10 * time.Second,
		"server.write_timeout":    30 * time.Second,
		"server.shutdown_timeout": 5 * time.Second,

		"metrics.enabled":   true,
		"metrics.path":      "/metrics",
		"metrics.namespace": "flipstack",
	}
}

// Load merges defaults, the config file and the environment, then
// validates the result.
func (l *Loader) Load() (*Config, error) {
	if err := l.k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "load defaults")
	}
	if err := l.loadFile(); err != nil {
		return nil, err
	}
	if err := l.loadEnv(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "load environment")
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Source returns the config file that was loaded, or "" if none.
func (l *Loader) Source() string { return l.source }

func (l *Loader) loadFile() error {
	path := l.explicit
	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return l.parseFile(path)
	}

	// search paths are optional
	for _, p := range l.configPaths {
		if _, err := os.Stat(p); err == nil {
			return l.parseFile(p)
		}
	}
	return nil
}

func (l *Loader) parseFile(path string) error {
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	l.source = path
	return nil
}

// loadEnv maps FLIPSTACK_SECTION_FIELD_NAME to section.field_name: the
// first underscore separates the section, the rest belong to the field.
func (l *Loader) loadEnv() error {
	return l.k.Load(env.ProviderWithValue(l.envPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, l.envPrefix))
		if key == "config" {
			return "", nil
		}
		return strings.Replace(key, "_", ".", 1), value
	}), nil)
}

// Load is NewLoader(opts...).Load().
func Load(opts ...LoaderOption) (*Config, error) {
	return NewLoader(opts...).Load()
}
