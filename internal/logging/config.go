package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "GHCBCTL_LOG_LEVEL"
	EnvLogTimestamp = "GHCBCTL_LOG_TIMESTAMP"
	EnvLogNoColor   = "GHCBCTL_LOG_NOCOLOR"
	EnvLogFormat    = "GHCBCTL_LOG_FORMAT"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Format selects the output encoding of the global logger.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Options is the resolved logging configuration.
type Options struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Format    Format
}

var (
	configureOnce sync.Once
	resolved      Options
)

func ConfigureRuntime() Options {
	return Configure(ProfileRuntime)
}

func ConfigureTests() Options {
	return Configure(ProfileTest)
}

// Configure resolves the options once, applies the global level and
// installs the global logger. The first caller's profile wins; later
// calls see the already resolved options.
func Configure(profile Profile) Options {
	configureOnce.Do(func() {
		cfg := defaultOptions(profile)
		applyEnvOverrides(&cfg)
		zerolog.SetGlobalLevel(cfg.Level)
		log.Logger = NewLogger(cfg)
		resolved = cfg
	})
	return resolved
}

// NewLogger builds a logger from opts without touching globals.
func NewLogger(opts Options) zerolog.Logger {
	var out io.Writer = os.Stdout
	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		}
	}
	builder := zerolog.New(out).With()
	if opts.Timestamp {
		builder = builder.Timestamp()
	}
	return builder.Logger().Level(opts.Level)
}

func defaultOptions(profile Profile) Options {
	switch profile {
	case ProfileTest:
		return Options{Level: zerolog.DebugLevel, Timestamp: false, Format: FormatConsole}
	default:
		return Options{Level: zerolog.InfoLevel, Timestamp: true, Format: FormatConsole}
	}
}

func applyEnvOverrides(cfg *Options) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
	if f, ok := parseFormat(os.Getenv(EnvLogFormat)); ok {
		cfg.Format = f
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none", "inactive":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseFormat(raw string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "console", "pretty":
		return FormatConsole, true
	case "json":
		return FormatJSON, true
	default:
		return FormatConsole, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
