package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/evenhub-control/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App         app.Config
	Logging     Logging
	ProfilePath string
	Flags       map[string]string
	Args        []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig          = "EVENHUB_CONTROL_CONFIG"
	envHeadless        = "EVENHUB_CONTROL_HEADLESS"
	envConnectTimeout  = "EVENHUB_CONTROL_CONNECT_TIMEOUT"
	envReadyDelay      = "EVENHUB_CONTROL_READY_DELAY"
	envBatteryInterval = "EVENHUB_CONTROL_BATTERY_INTERVAL"
	envWidth           = "EVENHUB_CONTROL_WIDTH"
	envHeight          = "EVENHUB_CONTROL_HEIGHT"
	envTrace           = "EVENHUB_CONTROL_TRACE"
	envLogFile         = "EVENHUB_CONTROL_LOG_FILE"
)

const (
	defaultReadyDelay      = 300 * time.Millisecond
	defaultBatteryInterval = 30 * time.Second
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("evenhub-control", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	profilePath := fs.String("config", envOrDefault(env, envConfig, ""), "path to a TOML device profile")
	headless := fs.Bool("headless", envOrBool(env, envHeadless, false), "print status and log lines instead of starting the terminal UI")
	connectTimeout := fs.Duration("connect-timeout", envOrDuration(env, envConnectTimeout, 0), "how long to wait for the bridge (0 waits indefinitely)")
	readyDelay := fs.Duration("ready-delay", envOrDuration(env, envReadyDelay, defaultReadyDelay), "delay before the simulated bridge becomes ready")
	batteryInterval := fs.Duration("battery-interval", envOrDuration(env, envBatteryInterval, defaultBatteryInterval), "simulated battery drain interval (0 disables drain)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	profile, faults, err := LoadProfile(*profilePath)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Headless:        *headless,
			ConnectTimeout:  *connectTimeout,
			ReadyDelay:      *readyDelay,
			BatteryInterval: *batteryInterval,
			Width:           *width,
			Height:          *height,
			Profile:         profile,
			Faults:          faults,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		ProfilePath: *profilePath,
		Flags: map[string]string{
			"config":          *profilePath,
			"headless":        strconv.FormatBool(*headless),
			"connectTimeout":  connectTimeout.String(),
			"readyDelay":      readyDelay.String(),
			"batteryInterval": batteryInterval.String(),
			"width":           strconv.Itoa(*width),
			"height":          strconv.Itoa(*height),
			"trace":           strconv.FormatBool(*trace),
			"logFile":         *logFile,
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects negative sizes and durations and out-of-range battery
// levels.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	for name, d := range map[string]time.Duration{
		"connect-timeout":  a.ConnectTimeout,
		"ready-delay":      a.ReadyDelay,
		"battery-interval": a.BatteryInterval,
	} {
		if d < 0 {
			return fmt.Errorf("%s must be >= 0 (got %s)", name, d)
		}
	}
	if b := a.Profile.Battery; b < 0 || b > 100 {
		return fmt.Errorf("device battery must be within 0..100 (got %d)", b)
	}
	return nil
}
