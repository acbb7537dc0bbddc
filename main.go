package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/evenhub-control/internal/app"
	"github.com/atomicstack/evenhub-control/internal/bridge"
	"github.com/atomicstack/evenhub-control/internal/config"
	"github.com/atomicstack/evenhub-control/internal/logging"
	"github.com/atomicstack/evenhub-control/internal/logging/events"
	"golang.org/x/term"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitConfig      = 2
	exitUnavailable = 3
)

func main() {
	runtimeCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(exitConfig)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := collectTTYDetails()
	if !runtimeCfg.App.Headless && !interactive(tty) {
		runtimeCfg.App.Headless = true
	}
	events.App.Start(startupTracePayload(runtimeCfg, tty))

	os.Exit(exitCode(app.Run(runtimeCfg.App)))
}

// exitCode reports err on stderr and the log file and maps it to a status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	logging.Error(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if bridge.IsFatal(err) {
		return exitUnavailable
	}
	return exitError
}

// interactive reports whether both stdin and stdout are terminals, which the
// full-screen shell needs.
func interactive(tty ttyDetails) bool {
	var in, out bool
	for _, p := range tty.Probes {
		switch p.Name {
		case "stdin":
			in = p.IsTerminal
		case "stdout":
			out = p.IsTerminal
		}
	}
	return in && out
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"session":  logging.Session(),
		"profile":  cfg.ProfilePath,
		"headless": cfg.App.Headless,
		"device": map[string]interface{}{
			"model":   cfg.App.Profile.Model,
			"serial":  cfg.App.Profile.Serial,
			"paired":  cfg.App.Profile.Paired,
			"battery": cfg.App.Profile.Battery,
		},
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	payload["tty"] = tty
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
