package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/evenhub-control/internal/bridge"
	"github.com/atomicstack/evenhub-control/internal/layout"
	"github.com/atomicstack/evenhub-control/internal/logging/events"
	"github.com/atomicstack/evenhub-control/internal/router"
	"github.com/atomicstack/evenhub-control/internal/sink"
)

// Top-level phases shown on the status sink.
const (
	StatusInitializing = "Initializing bridge..."
	StatusReady        = "Bridge ready!"
	StatusFailed       = "Bridge init failed"
	StatusRunning      = "App running, check glasses display"
)

// Config controls one orchestration session.
type Config struct {
	// ConnectTimeout bounds the bridge wait; zero waits until ctx ends.
	ConnectTimeout time.Duration
	Actions        router.Actions
	OnDisconnect   func(bridge.DeviceStatus)
}

// Orchestrator sequences bridge start-up and then routes events.
type Orchestrator struct {
	cfg       Config
	connector bridge.Connector
	status    sink.Status
	log       sink.Log
}

// New returns an orchestrator for connector reporting to the given sinks.
func New(cfg Config, connector bridge.Connector, status sink.Status, log sink.Log) *Orchestrator {
	if status == nil {
		status = sink.Discard
	}
	if log == nil {
		log = sink.Discard
	}
	if len(cfg.Actions) == 0 {
		cfg.Actions = router.DefaultActions()
	}
	return &Orchestrator{cfg: cfg, connector: connector, status: status, log: log}
}

// Run connects, sets up the glasses UI and routes events until ctx ends. Only
// an unavailable bridge is returned as an error.
func (o *Orchestrator) Run(ctx context.Context) error {
	r, err := o.Start(ctx)
	if err != nil {
		return err
	}
	return r.Run(ctx)
}

// Start performs every step up to and including event subscription and
// returns the subscribed router.
func (o *Orchestrator) Start(ctx context.Context) (*router.Router, error) {
	o.setStatus(StatusInitializing)
	b, err := bridge.Connect(ctx, o.connector, o.cfg.ConnectTimeout)
	if err != nil {
		o.setStatus(StatusFailed)
		o.log.Append(fmt.Sprintf("Error: %v", err))
		return nil, err
	}
	o.setStatus(StatusReady)
	o.log.Append("Bridge initialized successfully")

	o.logUserInfo(ctx, b)
	o.logDeviceInfo(ctx, b)
	o.submitPage(ctx, b)

	r := router.New(b, o.log,
		router.WithActions(o.cfg.Actions),
		router.WithDisconnectHook(o.cfg.OnDisconnect),
	)
	if err := r.Subscribe(); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	o.setStatus(StatusRunning)
	o.log.Append("Setup complete. Listening for events...")
	return r, nil
}

func (o *Orchestrator) setStatus(msg string) {
	events.App.Phase(msg)
	o.status.SetStatus(msg)
}

func (o *Orchestrator) logUserInfo(ctx context.Context, b bridge.Bridge) {
	user, err := b.UserInfo(ctx)
	events.Bridge.Query("getUserInfo", err)
	if err != nil {
		o.log.Append(fmt.Sprintf("getUserInfo error: %v", bridge.Fail("getUserInfo", bridge.ErrQueryFailed, err)))
		return
	}
	o.log.Append(fmt.Sprintf("User: %s (uid: %d, country: %s)", user.Name, user.UID, user.Country))
}

func (o *Orchestrator) logDeviceInfo(ctx context.Context, b bridge.Bridge) {
	device, err := b.DeviceInfo(ctx)
	events.Bridge.Query("getDeviceInfo", err)
	switch {
	case err != nil:
		o.log.Append(fmt.Sprintf("getDeviceInfo error: %v", bridge.Fail("getDeviceInfo", bridge.ErrQueryFailed, err)))
	case device == nil:
		o.log.Append("No device connected")
	default:
		o.log.Append(fmt.Sprintf("Device: model=%s, sn=%s", device.Model, device.SerialNumber))
		o.log.Append(fmt.Sprintf("  connected=%t, battery=%d%%", device.Status.IsConnected(), device.Status.BatteryLevel))
	}
}

// submitPage sends the start-up page once. Failure is logged and the session
// continues with whatever the glasses already show.
func (o *Orchestrator) submitPage(ctx context.Context, b bridge.Bridge) {
	page := layout.StartupPage(o.cfg.Actions.Labels())
	events.Page.Submit(page.ContainerTotalNum())
	result, err := b.CreateStartUpPage(ctx, page)
	events.Page.Result(int(result), err)
	if err != nil {
		o.log.Append(fmt.Sprintf("createStartUpPage error: %v", bridge.Fail("createStartUpPage", bridge.ErrSubmissionFailed, err)))
		return
	}
	o.log.Append(fmt.Sprintf("createStartUpPage result: %d (0=success)", result))
}
