package router

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/atomicstack/evenhub-control/internal/bridge"
	"github.com/atomicstack/evenhub-control/internal/layout"
	"github.com/atomicstack/evenhub-control/internal/logging/events"
	"github.com/atomicstack/evenhub-control/internal/sink"
	"github.com/atomicstack/evenhub-control/internal/updater"
	"golang.org/x/sync/errgroup"
)

// ErrSubscribed is returned when a router subscribes a second time.
var ErrSubscribed = errors.New("router already subscribed")

// TextUpdater replaces text container content.
type TextUpdater interface {
	UpdateText(ctx context.Context, id int, name, content string) error
}

// Target names the text container that list clicks write to.
type Target struct {
	ID   int
	Name string
}

type hubHandler func(context.Context, bridge.HubEvent)

// Router consumes the status and hub channels of one bridge and dispatches
// each delivery to the handler for its category.
type Router struct {
	bridge       bridge.Bridge
	log          sink.Log
	updater      TextUpdater
	actions      Actions
	target       Target
	onDisconnect func(bridge.DeviceStatus)

	handlers map[reflect.Type]hubHandler

	mu     sync.Mutex
	status *bridge.Subscription[bridge.DeviceStatus]
	hub    *bridge.Subscription[bridge.HubEvent]
}

// Option customises a Router.
type Option func(*Router)

// WithActions replaces the list action table.
func WithActions(a Actions) Option {
	return func(r *Router) { r.actions = a }
}

// WithUpdater replaces the text updater.
func WithUpdater(u TextUpdater) Option {
	return func(r *Router) { r.updater = u }
}

// WithTarget changes the container that receives click content.
func WithTarget(t Target) Option {
	return func(r *Router) { r.target = t }
}

// WithDisconnectHook registers fn to run once per Disconnected delivery.
func WithDisconnectHook(fn func(bridge.DeviceStatus)) Option {
	return func(r *Router) { r.onDisconnect = fn }
}

// New builds a router for b. Log lines go to log.
func New(b bridge.Bridge, log sink.Log, opts ...Option) *Router {
	if log == nil {
		log = sink.Discard
	}
	r := &Router{
		bridge:  b,
		log:     log,
		actions: DefaultActions(),
		target:  Target{ID: layout.InfoTextID, Name: layout.InfoTextName},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.updater == nil {
		r.updater = updater.New(b, log)
	}
	r.registerHandlers()
	return r
}

// Actions returns the router's action table.
func (r *Router) Actions() Actions {
	return r.actions
}

func (r *Router) registerHandlers() {
	r.handlers = map[reflect.Type]hubHandler{
		reflect.TypeOf(bridge.ListEvent{}):  r.handleListEvent,
		reflect.TypeOf(bridge.TextEvent{}):  r.handleTextEvent,
		reflect.TypeOf(bridge.SysEvent{}):   r.handleSysEvent,
		reflect.TypeOf(bridge.AudioEvent{}): r.handleAudioEvent,
	}
}

func (r *Router) handlerFor(ev bridge.HubEvent) (hubHandler, bridge.HubEvent) {
	if ev == nil {
		return nil, nil
	}
	t := reflect.TypeOf(ev)
	if handler, ok := r.handlers[t]; ok {
		return handler, ev
	}
	if t.Kind() == reflect.Ptr {
		v := reflect.ValueOf(ev)
		if v.IsNil() {
			return nil, nil
		}
		if handler, ok := r.handlers[t.Elem()]; ok {
			if inner, ok := v.Elem().Interface().(bridge.HubEvent); ok {
				return handler, inner
			}
		}
	}
	return nil, nil
}

// Subscribe attaches to the bridge's status and hub channels. It may be
// called once.
func (r *Router) Subscribe() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != nil || r.hub != nil {
		return ErrSubscribed
	}
	r.status = r.bridge.OnStatusChanged()
	events.Hub.Subscribe("status")
	r.hub = r.bridge.OnHubEvent()
	events.Hub.Subscribe("hub")
	return nil
}

// Run consumes both channels until ctx ends or both channels close. Status
// deliveries and hub events are handled concurrently with each other; hub
// events are handled one at a time in arrival order.
func (r *Router) Run(ctx context.Context) error {
	r.mu.Lock()
	subscribed := r.status != nil
	r.mu.Unlock()
	if !subscribed {
		if err := r.Subscribe(); err != nil {
			return err
		}
	}
	r.mu.Lock()
	status, hub := r.status, r.hub
	r.mu.Unlock()
	defer status.Close()
	defer hub.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consume(ctx, "status", status.Events(), r.HandleStatus)
	})
	g.Go(func() error {
		return consume(ctx, "hub", hub.Events(), func(ev bridge.HubEvent) {
			r.Handle(ctx, ev)
		})
	})
	return g.Wait()
}

func consume[T any](ctx context.Context, name string, ch <-chan T, handle func(T)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-ch:
			if !ok {
				events.Hub.Closed(name)
				return nil
			}
			handle(v)
		}
	}
}

// HandleStatus logs a status delivery and raises the disconnect signal when
// the glasses report Disconnected.
func (r *Router) HandleStatus(s bridge.DeviceStatus) {
	events.Status.Changed(s.ConnectType.String(), s.BatteryLevel, s.IsWearing)
	r.log.Append(fmt.Sprintf("Device status changed: connect=%s, battery=%d%%", s.ConnectType, s.BatteryLevel))
	if s.ConnectType != bridge.ConnectDisconnected {
		return
	}
	events.Status.Disconnected()
	r.log.Append("  Device disconnected!")
	if r.onDisconnect != nil {
		r.onDisconnect(s)
	}
}

// Handle dispatches one hub event to its category handler. It reports false
// for empty or unrecognised events, which are ignored.
func (r *Router) Handle(ctx context.Context, ev bridge.HubEvent) bool {
	handler, inner := r.handlerFor(ev)
	if handler == nil {
		kind := "empty"
		if ev != nil {
			kind = fmt.Sprintf("%T", ev)
		}
		events.Hub.Ignore(kind)
		return false
	}
	events.Hub.Receive(fmt.Sprintf("%T", inner))
	handler(ctx, inner)
	return true
}

func (r *Router) handleListEvent(ctx context.Context, ev bridge.HubEvent) {
	item := ev.(bridge.ListEvent)
	r.log.Append(fmt.Sprintf("List event: %q (index=%d, type=%s)",
		item.CurrentSelectItemName, item.CurrentSelectItemIndex, item.EventType))
	if item.EventType != bridge.EventClick {
		return
	}
	content := r.actions.Content(ctx, r.bridge, item.CurrentSelectItemIndex)
	// Failures are already logged by the updater.
	_ = r.updater.UpdateText(ctx, r.target.ID, r.target.Name, content)
}

func (r *Router) handleTextEvent(_ context.Context, ev bridge.HubEvent) {
	text := ev.(bridge.TextEvent)
	r.log.Append(fmt.Sprintf("Text event: container=%s, type=%s", text.ContainerName, text.EventType))
}

func (r *Router) handleSysEvent(_ context.Context, ev bridge.HubEvent) {
	sys := ev.(bridge.SysEvent)
	r.log.Append(fmt.Sprintf("System event: type=%s", sys.EventType))
	if sys.EventType == bridge.EventForegroundExit {
		r.log.Append("  App went to background")
	}
}

func (r *Router) handleAudioEvent(_ context.Context, ev bridge.HubEvent) {
	audio := ev.(bridge.AudioEvent)
	r.log.Append(fmt.Sprintf("Audio: %d bytes PCM", len(audio.PCM)))
}
