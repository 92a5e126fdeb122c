// FILE: config.go
package glint

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"sync/atomic"

	"github.com/lixenwraith/config"
)

// Config holds the process-wide logging options. Routing options are read by
// the background worker on every fan-out; threshold options are pushed into
// the producer-side atomics when the config is applied.
type Config struct {
	// Routing
	LogToStderr     bool  `toml:"log_to_stderr"`      // stderr replaces sink routing
	AlsoLogToStderr bool  `toml:"also_log_to_stderr"` // stderr in addition to sinks
	StderrThreshold int64 `toml:"stderr_threshold"`   // records at or above also go to stderr

	// Filtering
	MinLogLevel int64 `toml:"min_log_level"` // drop records below this value
	Verbosity   int64 `toml:"verbosity"`     // ceiling for Verbose logs

	// Default file sink
	LogDir  string `toml:"log_dir"`  // directory for the default file sink
	LogLink string `toml:"log_link"` // extra symlink directory, empty disables

	// Capture limits
	MaxMessageSize int64 `toml:"max_message_size"` // printf-capture bound, bytes
}

var defaultConfig = Config{
	StderrThreshold: int64(ERROR.Value),
	MaxMessageSize:  defaultMaxMessageSize,
}

// DefaultConfig returns a copy of the default configuration. The log
// directory defaults from the environment: GLINT_LOG_DIR, then TEST_TMPDIR,
// then empty (current directory).
func DefaultConfig() *Config {
	cfg := defaultConfig
	cfg.LogDir = defaultLogDir()
	return &cfg
}

func defaultLogDir() string {
	if env := os.Getenv("GLINT_LOG_DIR"); env != "" {
		return env
	}
	if env := os.Getenv("TEST_TMPDIR"); env != "" {
		return env
	}
	return ""
}

var currentCfg atomic.Pointer[Config]

func init() {
	currentCfg.Store(DefaultConfig())
}

func currentConfig() *Config {
	return currentCfg.Load()
}

// ApplyConfig validates and installs cfg process-wide. Call before
// Initialize; the max message size in particular only takes effect before
// the first capture.
func ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	installed := cfg.Clone()
	currentCfg.Store(installed)
	minLevel.Store(int32(installed.MinLogLevel))
	verbosity.Store(int32(installed.Verbosity))
	if installed.MaxMessageSize != maxMessageSize.Load() {
		SetMaxMessageSize(installed.MaxMessageSize)
	}
	return nil
}

// ApplyOverride applies "key=value" overrides on top of the current
// configuration and installs the result.
func ApplyOverride(overrides ...string) error {
	cfg := currentConfig().Clone()

	var errs []error
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return ApplyConfig(cfg)
}

// NewConfigFromFile loads configuration from a TOML file under the [glint]
// table and returns a validated Config. A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()
	if err := loader.RegisterStruct("glint.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}
	if err := extractConfig(loader, "glint.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// extractConfig copies loader values into cfg guided by the toml tags.
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		tomlTag := t.Field(i).Tag.Get("toml")
		if tomlTag == "" {
			continue
		}
		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}
		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", t.Field(i).Name, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}
	return nil
}

// applyConfigField maps one string override onto the Config.
func applyConfigField(cfg *Config, key, value string) error {
	parseBool := func(target *bool) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
		}
		*target = v
		return nil
	}
	// Levels accept numeric values or catalog names.
	parseLevelValue := func(target *int64) error {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			*target = v
			return nil
		}
		if l, ok := ParseLevel(value); ok {
			*target = int64(l.Value)
			return nil
		}
		return fmtErrorf("invalid level value for %s: '%s'", key, value)
	}

	switch key {
	case "log_to_stderr":
		return parseBool(&cfg.LogToStderr)
	case "also_log_to_stderr":
		return parseBool(&cfg.AlsoLogToStderr)
	case "stderr_threshold":
		return parseLevelValue(&cfg.StderrThreshold)
	case "min_log_level":
		return parseLevelValue(&cfg.MinLogLevel)
	case "verbosity":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid verbosity '%s': %w", value, err)
		}
		cfg.Verbosity = v
	case "log_dir":
		cfg.LogDir = value
	case "log_link":
		cfg.LogLink = value
	case "max_message_size":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid max_message_size '%s': %w", value, err)
		}
		cfg.MaxMessageSize = v
	default:
		return fmtErrorf("unknown config key: %s", key)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Verbosity < 0 {
		return fmtErrorf("verbosity cannot be negative: %d", c.Verbosity)
	}
	if c.MaxMessageSize <= int64(len(truncationMarker)) {
		return fmtErrorf("max_message_size must exceed truncation marker length %d: %d",
			len(truncationMarker), c.MaxMessageSize)
	}
	return nil
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	copied := *c
	return &copied
}
