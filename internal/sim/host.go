package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/evenhub-control/internal/bridge"
	"github.com/atomicstack/evenhub-control/internal/layout"
	"github.com/atomicstack/evenhub-control/internal/logging/events"
)

// Profile describes the simulated user and glasses.
type Profile struct {
	Model   string
	Serial  string
	Battery int
	Wearing bool
	Paired  bool
	User    bridge.UserInfo
}

// Faults makes individual bridge operations fail.
type Faults struct {
	Connect    bool
	UserInfo   bool
	DeviceInfo bool
	Page       bool
	Update     bool
	PageResult int
}

// Options configures a Host.
type Options struct {
	Profile         Profile
	Faults          Faults
	ReadyDelay      time.Duration
	BatteryInterval time.Duration // 0 disables battery drain
}

// DefaultProfile is the profile used when no configuration overrides it.
func DefaultProfile() Profile {
	return Profile{
		Model:   "G2",
		Serial:  "G2-SIM-0001",
		Battery: 87,
		Wearing: true,
		Paired:  true,
		User:    bridge.UserInfo{Name: "Glasses Tester", UID: 1, Country: "US"},
	}
}

// ResultRejected is returned when a start-up page is submitted twice.
const ResultRejected bridge.ResultCode = 1

var (
	errInjected     = errors.New("injected fault")
	errNoPage       = errors.New("no start-up page")
	errUnknownText  = errors.New("unknown text container")
	errHostShutdown = errors.New("host shut down")
)

// Snapshot is a copy of what the glasses currently show.
type Snapshot struct {
	Ready     bool
	Page      *layout.Page
	Texts     map[int]string
	Selection int
	Status    bridge.DeviceStatus
	Profile   Profile
	Updates   int
}

// Host is an in-process device host. It implements bridge.Connector and the
// bridge.Bridge it hands out.
type Host struct {
	opts Options

	mu        sync.Mutex
	ready     bool
	shutdown  bool
	profile   Profile
	faults    Faults
	status    bridge.DeviceStatus
	page      *layout.Page
	texts     map[int]string
	selection int
	updates   []bridge.TextUpdate

	statusFeed feed[bridge.DeviceStatus]
	hubFeed    feed[bridge.HubEvent]
	changes    chan struct{}
	watcher    *batteryWatcher
	done       chan struct{}
}

// New creates a host that becomes ready ReadyDelay after Connect is called.
func New(opts Options) *Host {
	connect := bridge.ConnectConnected
	if !opts.Profile.Paired {
		connect = bridge.ConnectNone
	}
	return &Host{
		opts:    opts,
		profile: opts.Profile,
		faults:  opts.Faults,
		status: bridge.DeviceStatus{
			ConnectType:  connect,
			BatteryLevel: clampBattery(opts.Profile.Battery),
			IsWearing:    opts.Profile.Wearing,
		},
		texts:   make(map[int]string),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Connect waits for the host to become ready.
func (h *Host) Connect(ctx context.Context) (bridge.Bridge, error) {
	if h.opts.ReadyDelay > 0 {
		timer := time.NewTimer(h.opts.ReadyDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-h.done:
			return nil, errHostShutdown
		case <-timer.C:
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.shutdown {
		return nil, errHostShutdown
	}
	if h.faults.Connect {
		events.Sim.Fault("connect")
		return nil, fmt.Errorf("wait for bridge: %w", errInjected)
	}
	if !h.ready {
		h.ready = true
		if h.opts.BatteryInterval > 0 {
			h.watcher = newBatteryWatcher(h.opts.BatteryInterval, h.drainBattery)
		}
		h.notifyLocked()
	}
	return h, nil
}

// Close stops the battery watcher and ends every subscription.
func (h *Host) Close() {
	h.mu.Lock()
	if h.shutdown {
		h.mu.Unlock()
		return
	}
	h.shutdown = true
	close(h.done)
	w := h.watcher
	h.watcher = nil
	h.mu.Unlock()

	w.Stop()
	h.statusFeed.close()
	h.hubFeed.close()
}

// Changes signals, coalesced, whenever the displayed state changes.
func (h *Host) Changes() <-chan struct{} {
	return h.changes
}

// Snapshot copies the current display state.
func (h *Host) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	texts := make(map[int]string, len(h.texts))
	for id, content := range h.texts {
		texts[id] = content
	}
	snap := Snapshot{
		Ready:     h.ready,
		Texts:     texts,
		Selection: h.selection,
		Status:    h.status,
		Profile:   h.profile,
		Updates:   len(h.updates),
	}
	if h.page != nil {
		page := *h.page
		snap.Page = &page
	}
	return snap
}

// Updates returns every accepted text update in arrival order.
func (h *Host) Updates() []bridge.TextUpdate {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]bridge.TextUpdate(nil), h.updates...)
}

// SetFaults replaces the active fault set.
func (h *Host) SetFaults(f Faults) {
	h.mu.Lock()
	h.faults = f
	h.mu.Unlock()
}

func (h *Host) UserInfo(ctx context.Context) (bridge.UserInfo, error) {
	if err := ctx.Err(); err != nil {
		return bridge.UserInfo{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.faults.UserInfo {
		events.Sim.Fault("getUserInfo")
		return bridge.UserInfo{}, fmt.Errorf("user info: %w", errInjected)
	}
	return h.profile.User, nil
}

func (h *Host) DeviceInfo(ctx context.Context) (*bridge.DeviceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.faults.DeviceInfo {
		events.Sim.Fault("getDeviceInfo")
		return nil, fmt.Errorf("device info: %w", errInjected)
	}
	if !h.profile.Paired {
		return nil, nil
	}
	return &bridge.DeviceInfo{
		Model:        h.profile.Model,
		SerialNumber: h.profile.Serial,
		Status:       h.status,
	}, nil
}

func (h *Host) CreateStartUpPage(ctx context.Context, page layout.Page) (bridge.ResultCode, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.faults.Page {
		events.Sim.Fault("createStartUpPage")
		return 0, fmt.Errorf("create page: %w", errInjected)
	}
	if h.faults.PageResult != 0 {
		return bridge.ResultCode(h.faults.PageResult), nil
	}
	if h.page != nil {
		return ResultRejected, nil
	}
	h.page = &page
	for _, t := range page.TextContainers() {
		h.texts[t.ID] = t.Content
	}
	h.selection = 0
	h.notifyLocked()
	return bridge.ResultSuccess, nil
}

func (h *Host) UpdateText(ctx context.Context, update bridge.TextUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.faults.Update {
		events.Sim.Fault("textContainerUpgrade")
		return fmt.Errorf("update text: %w", errInjected)
	}
	if h.page == nil {
		return errNoPage
	}
	if _, ok := h.page.Text(update.ContainerID, update.ContainerName); !ok {
		return fmt.Errorf("%w: %d/%s", errUnknownText, update.ContainerID, update.ContainerName)
	}
	h.texts[update.ContainerID] = update.Content
	h.updates = append(h.updates, update)
	h.notifyLocked()
	return nil
}

func (h *Host) OnStatusChanged() *bridge.Subscription[bridge.DeviceStatus] {
	return h.statusFeed.subscribe()
}

func (h *Host) OnHubEvent() *bridge.Subscription[bridge.HubEvent] {
	return h.hubFeed.subscribe()
}

// notifyLocked posts a coalesced change signal. Callers hold h.mu.
func (h *Host) notifyLocked() {
	select {
	case h.changes <- struct{}{}:
	default:
	}
}

func (h *Host) drainBattery() bool {
	h.mu.Lock()
	if h.shutdown {
		h.mu.Unlock()
		return false
	}
	if !h.status.IsConnected() || !h.status.IsWearing || h.status.BatteryLevel == 0 {
		h.mu.Unlock()
		return true
	}
	h.status.BatteryLevel--
	status := h.status
	h.notifyLocked()
	h.mu.Unlock()

	events.Sim.Battery(status.BatteryLevel)
	h.statusFeed.publish(status)
	return true
}

func clampBattery(level int) int {
	switch {
	case level < 0:
		return 0
	case level > 100:
		return 100
	}
	return level
}
