package router

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/evenhub-control/internal/bridge"
	"github.com/atomicstack/evenhub-control/internal/layout"
	"github.com/atomicstack/evenhub-control/internal/sim"
	"github.com/atomicstack/evenhub-control/internal/sink"
	"github.com/atomicstack/evenhub-control/internal/testutil"
)

type recordedUpdate struct {
	id      int
	name    string
	content string
}

// recordingUpdater captures update calls and can fail on demand.
type recordingUpdater struct {
	mu      sync.Mutex
	calls   []recordedUpdate
	failFor map[string]bool
}

func (u *recordingUpdater) UpdateText(_ context.Context, id int, name, content string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls = append(u.calls, recordedUpdate{id: id, name: name, content: content})
	if u.failFor[content] {
		return bridge.Fail("textContainerUpgrade", bridge.ErrUpdateFailed, context.Canceled)
	}
	return nil
}

func (u *recordingUpdater) updates() []recordedUpdate {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]recordedUpdate(nil), u.calls...)
}

func newHost(t *testing.T) *sim.Host {
	t.Helper()
	h := sim.New(sim.Options{Profile: sim.DefaultProfile()})
	t.Cleanup(h.Close)
	if _, err := h.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := h.CreateStartUpPage(context.Background(), layout.StartupPage(DefaultActions().Labels())); err != nil {
		t.Fatalf("create page: %v", err)
	}
	return h
}

func click(index int) bridge.ListEvent {
	return bridge.ListEvent{
		ContainerID:            layout.MainListID,
		ContainerName:          layout.MainListName,
		CurrentSelectItemName:  "item",
		CurrentSelectItemIndex: index,
		EventType:              bridge.EventClick,
	}
}

func TestClickIndexZeroWritesWelcome(t *testing.T) {
	h := newHost(t)
	u := &recordingUpdater{}
	r := New(h, nil, WithUpdater(u))
	r.Handle(context.Background(), click(0))
	calls := u.updates()
	if len(calls) != 1 {
		t.Fatalf("expected one update, got %d", len(calls))
	}
	if calls[0].content != HelloText || calls[0].id != 2 || calls[0].name != layout.InfoTextName {
		t.Fatalf("unexpected update %#v", calls[0])
	}
}

func TestClickIndexOneFormatsDeviceInfo(t *testing.T) {
	h := newHost(t)
	u := &recordingUpdater{}
	r := New(h, nil, WithUpdater(u))
	r.Handle(context.Background(), click(1))
	want := "Model: G2\nSN: G2-SIM-0001\nBattery: 87%\nWearing: true"
	if calls := u.updates(); len(calls) != 1 || calls[0].content != want {
		t.Fatalf("expected %q, got %#v", want, calls)
	}
}

func TestClickIndexOneFallsBackWhenQueryFails(t *testing.T) {
	h := newHost(t)
	h.SetFaults(sim.Faults{DeviceInfo: true})
	u := &recordingUpdater{}
	r := New(h, nil, WithUpdater(u))
	r.Handle(context.Background(), click(1))
	if calls := u.updates(); len(calls) != 1 || calls[0].content != DeviceInfoErrorText {
		t.Fatalf("expected fallback update, got %#v", calls)
	}
}

func TestClickIndexOneWithoutDevice(t *testing.T) {
	profile := sim.DefaultProfile()
	profile.Paired = false
	h := sim.New(sim.Options{Profile: profile})
	t.Cleanup(h.Close)
	u := &recordingUpdater{}
	r := New(h, nil, WithUpdater(u))
	r.Handle(context.Background(), click(1))
	if calls := u.updates(); len(calls) != 1 || calls[0].content != DeviceInfoMissingText {
		t.Fatalf("expected no-device update, got %#v", calls)
	}
}

func TestClickIndexTwoAndUnknownIndex(t *testing.T) {
	h := newHost(t)
	u := &recordingUpdater{}
	r := New(h, nil, WithUpdater(u))
	r.Handle(context.Background(), click(2))
	r.Handle(context.Background(), click(99))
	calls := u.updates()
	if len(calls) != 2 {
		t.Fatalf("expected two updates, got %d", len(calls))
	}
	if calls[0].content != AudioTestText {
		t.Fatalf("expected audio placeholder, got %q", calls[0].content)
	}
	if !strings.Contains(calls[1].content, "99") {
		t.Fatalf("expected generic content mentioning 99, got %q", calls[1].content)
	}
}

func TestNonClickListEventsDoNotMutate(t *testing.T) {
	h := newHost(t)
	u := &recordingUpdater{}
	var rec sink.Recorder
	r := New(h, &rec, WithUpdater(u))
	ev := click(0)
	ev.EventType = bridge.EventScrollBottom
	if !r.Handle(context.Background(), ev) {
		t.Fatalf("expected list event to be handled")
	}
	if len(u.updates()) != 0 {
		t.Fatalf("scroll must not update text")
	}
	if lines := rec.Lines(); len(lines) != 1 || !strings.HasPrefix(lines[0], "List event:") {
		t.Fatalf("expected list event to be logged, got %#v", lines)
	}
}

func TestHandleInvokesOnlyMatchingHandler(t *testing.T) {
	h := newHost(t)
	cases := []struct {
		name   string
		event  bridge.HubEvent
		prefix string
	}{
		{"list", bridge.ListEvent{EventType: bridge.EventScrollTop}, "List event:"},
		{"text", bridge.TextEvent{ContainerName: "info-text", EventType: bridge.EventDoubleClick}, "Text event: container=info-text"},
		{"sys", bridge.SysEvent{EventType: bridge.EventForegroundEnter}, "System event: type=foregroundEnter"},
		{"audio", bridge.AudioEvent{PCM: make([]byte, 320)}, "Audio: 320 bytes PCM"},
		{"pointer", &bridge.AudioEvent{PCM: make([]byte, 4)}, "Audio: 4 bytes PCM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rec sink.Recorder
			u := &recordingUpdater{}
			r := New(h, &rec, WithUpdater(u))
			if !r.Handle(context.Background(), tc.event) {
				t.Fatalf("expected event to be handled")
			}
			lines := rec.Lines()
			if len(lines) != 1 || !strings.HasPrefix(lines[0], tc.prefix) {
				t.Fatalf("expected single line starting %q, got %#v", tc.prefix, lines)
			}
			if len(u.updates()) != 0 {
				t.Fatalf("no update expected for %s", tc.name)
			}
		})
	}
}

func TestForegroundExitIsDistinguished(t *testing.T) {
	var rec sink.Recorder
	r := New(newHost(t), &rec)
	r.Handle(context.Background(), bridge.SysEvent{EventType: bridge.EventForegroundExit})
	lines := rec.Lines()
	if len(lines) != 2 || lines[1] != "  App went to background" {
		t.Fatalf("unexpected lines %#v", lines)
	}
}

func TestEmptyEventsAreIgnored(t *testing.T) {
	var rec sink.Recorder
	r := New(newHost(t), &rec)
	var nilList *bridge.ListEvent
	if r.Handle(context.Background(), nil) || r.Handle(context.Background(), nilList) {
		t.Fatalf("empty events must be ignored")
	}
	if len(rec.Lines()) != 0 {
		t.Fatalf("ignored events must not log, got %#v", rec.Lines())
	}
}

func TestUpdateFailureDoesNotBlockNextEvent(t *testing.T) {
	h := newHost(t)
	u := &recordingUpdater{failFor: map[string]bool{HelloText: true}}
	var rec sink.Recorder
	r := New(h, &rec, WithUpdater(u))
	r.Handle(context.Background(), click(0))
	r.Handle(context.Background(), bridge.SysEvent{EventType: bridge.EventForegroundEnter})
	r.Handle(context.Background(), click(2))
	if calls := u.updates(); len(calls) != 2 || calls[1].content != AudioTestText {
		t.Fatalf("expected later click to update, got %#v", calls)
	}
	found := false
	for _, line := range rec.Lines() {
		if strings.HasPrefix(line, "System event:") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected system event after failed update, got %#v", rec.Lines())
	}
}

func TestDisconnectSignalFiresOncePerDelivery(t *testing.T) {
	var rec sink.Recorder
	fired := 0
	r := New(newHost(t), &rec, WithDisconnectHook(func(bridge.DeviceStatus) { fired++ }))
	r.HandleStatus(bridge.DeviceStatus{ConnectType: bridge.ConnectConnected, BatteryLevel: 50})
	if fired != 0 {
		t.Fatalf("connected delivery must not signal disconnect")
	}
	r.HandleStatus(bridge.DeviceStatus{ConnectType: bridge.ConnectDisconnected, BatteryLevel: 50})
	r.HandleStatus(bridge.DeviceStatus{ConnectType: bridge.ConnectDisconnected, BatteryLevel: 49})
	if fired != 2 {
		t.Fatalf("expected one signal per disconnected delivery, got %d", fired)
	}
	lines := rec.Lines()
	if lines[0] != "Device status changed: connect=connected, battery=50%" {
		t.Fatalf("unexpected status line %q", lines[0])
	}
	if lines[2] != "  Device disconnected!" {
		t.Fatalf("expected disconnect line, got %q", lines[2])
	}
}

func TestActionContentIsStableForSameState(t *testing.T) {
	h := newHost(t)
	actions := DefaultActions()
	for index := 0; index < 4; index++ {
		first := actions.Content(context.Background(), h, index)
		second := actions.Content(context.Background(), h, index)
		if first != second {
			t.Fatalf("index %d: %q != %q", index, first, second)
		}
	}
}

func TestCustomActionsExtendTable(t *testing.T) {
	h := newHost(t)
	u := &recordingUpdater{}
	actions := append(DefaultActions(), Action{
		Label:   "Battery",
		Content: func(context.Context, bridge.Bridge) string { return "battery action" },
	})
	r := New(h, nil, WithUpdater(u), WithActions(actions))
	r.Handle(context.Background(), click(3))
	if calls := u.updates(); len(calls) != 1 || calls[0].content != "battery action" {
		t.Fatalf("expected custom action content, got %#v", calls)
	}
	if labels := r.Actions().Labels(); len(labels) != 4 || labels[3] != "Battery" {
		t.Fatalf("unexpected labels %v", labels)
	}
}

func TestRunRoutesBothChannels(t *testing.T) {
	h := newHost(t)
	var rec sink.Recorder
	disconnected := make(chan struct{}, 1)
	r := New(h, &rec, WithDisconnectHook(func(bridge.DeviceStatus) { disconnected <- struct{}{} }))
	if err := r.Subscribe(); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := r.Subscribe(); err != ErrSubscribed {
		t.Fatalf("expected ErrSubscribed, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	h.Click()
	h.ToggleConnection()

	select {
	case <-disconnected:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for disconnect")
	}
	testutil.Eventually(t, time.Second, "click update", func() bool {
		return h.Snapshot().Texts[layout.InfoTextID] == HelloText
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("run did not stop after cancel")
	}
}

func TestRunEndsWhenChannelsClose(t *testing.T) {
	h := newHost(t)
	r := New(h, nil)
	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()
	// Run subscribes asynchronously; wait for both channels to attach.
	testutil.Eventually(t, time.Second, "router to subscribe", func() bool {
		return h.EmitStatus(bridge.DeviceStatus{}) > 0 && h.Emit(nil) > 0
	})
	h.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("run did not stop after host closed")
	}
}
