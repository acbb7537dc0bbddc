package app

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atomicstack/evenhub-control/internal/logging/events"
	"github.com/atomicstack/evenhub-control/internal/orchestrator"
	"github.com/atomicstack/evenhub-control/internal/sim"
	"github.com/atomicstack/evenhub-control/internal/sink"
	"github.com/atomicstack/evenhub-control/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Headless        bool
	ConnectTimeout  time.Duration
	ReadyDelay      time.Duration
	BatteryInterval time.Duration
	Width           int
	Height          int
	Profile         sim.Profile
	Faults          sim.Faults
	// Output receives headless status and log lines; nil means stdout.
	Output io.Writer
}

// Run bootstraps the simulated host and drives the orchestrator against it,
// either behind the Bubble Tea shell or writing plain lines to stdout.
func Run(cfg Config) error {
	host := sim.New(sim.Options{
		Profile:         cfg.Profile,
		Faults:          cfg.Faults,
		ReadyDelay:      cfg.ReadyDelay,
		BatteryInterval: cfg.BatteryInterval,
	})
	defer host.Close()

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		w := cfg.Output
		if w == nil {
			w = os.Stdout
		}
		out := sink.NewWriter(w)
		return runOrchestrator(ctx, cfg, host, out, out)
	}
	return runProgram(cfg, host)
}

func runProgram(cfg Config, host *sim.Host) error {
	model := ui.NewModel(host, cfg.Width, cfg.Height)
	program := tea.NewProgram(model, tea.WithAltScreen())
	status, log := ui.Sinks(program)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		err := runOrchestrator(ctx, cfg, host, status, log)
		if err != nil && ctx.Err() == nil {
			program.Send(ui.FatalMsg{Err: err})
		}
		done <- err
	}()

	_, err := program.Run()
	cancel()
	runErr := <-done
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	if err != nil {
		return err
	}
	return runErr
}

func runOrchestrator(ctx context.Context, cfg Config, host *sim.Host, status sink.Status, log sink.Log) error {
	o := orchestrator.New(orchestrator.Config{ConnectTimeout: cfg.ConnectTimeout}, host, status, log)
	err := o.Run(ctx)
	events.App.Exit(err)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
