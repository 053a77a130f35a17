package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
)

// Setting keys.
const (
	KeyBaseDir   = "lookup.base_dir"
	KeyDelimiter = "lookup.delimiter"
	KeyMemoize   = "resolver.memoize"
	KeyTimeout   = "resolver.timeout"
	KeyTracing   = "observability.tracing"
	KeyMetrics   = "observability.metrics"
	KeyLogLevel  = "log.level"
)

// Settings are the engine settings read from a configuration document.
type Settings struct {
	// BaseDir is where relative lookup paths are resolved. Empty means the
	// working directory.
	BaseDir string
	// Delimiter is used by lookups that do not set their own.
	Delimiter string
	Memoize   bool
	// Timeout bounds each resolution. Zero means no deadline.
	Timeout time.Duration
	// Tracing and Metrics record through the global OTel providers. The
	// abacus CLI installs SDK providers that log to stderr; embedders
	// install their own.
	Tracing  bool
	Metrics  bool
	LogLevel slog.Level
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Delimiter: ",",
		Memoize:   true,
		LogLevel:  slog.LevelWarn,
	}
}

// LoadSettings extracts Settings from cfg, starting from DefaultSettings.
// It rejects a delimiter that is not one character, a negative timeout and
// an unknown log level.
func LoadSettings(cfg Config) (Settings, error) {
	s := DefaultSettings()
	s.BaseDir = cfg.String(KeyBaseDir, s.BaseDir)
	s.Delimiter = cfg.String(KeyDelimiter, s.Delimiter)
	s.Memoize = cfg.Bool(KeyMemoize, s.Memoize)
	s.Timeout = cfg.Duration(KeyTimeout, s.Timeout)
	s.Tracing = cfg.Bool(KeyTracing, s.Tracing)
	s.Metrics = cfg.Bool(KeyMetrics, s.Metrics)

	if utf8.RuneCountInString(s.Delimiter) != 1 {
		return Settings{}, fmt.Errorf("%s: %w: %q", KeyDelimiter, abserrors.ErrInvalidDelimiter, s.Delimiter)
	}
	if s.Timeout < 0 {
		return Settings{}, fmt.Errorf("%s: negative duration %s", KeyTimeout, s.Timeout)
	}

	level, err := ParseLevel(cfg.String(KeyLogLevel, "warn"))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	s.LogLevel = level
	return s, nil
}

// ParseLevel parses debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
