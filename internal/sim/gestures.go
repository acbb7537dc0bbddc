package sim

import (
	"github.com/atomicstack/evenhub-control/internal/bridge"
	"github.com/atomicstack/evenhub-control/internal/layout"
	"github.com/atomicstack/evenhub-control/internal/logging/events"
)

// Scroll moves the list selection by delta and reports the move as a list
// event. It is a no-op before a page with a list exists.
func (h *Host) Scroll(delta int) bool {
	h.mu.Lock()
	list, ok := h.listLocked()
	if !ok || len(list.Items.Names) == 0 {
		h.mu.Unlock()
		return false
	}
	next := h.selection + delta
	if next < 0 {
		next = 0
	}
	if next >= len(list.Items.Names) {
		next = len(list.Items.Names) - 1
	}
	h.selection = next
	h.notifyLocked()
	h.mu.Unlock()

	kind := bridge.EventScrollBottom
	if delta < 0 {
		kind = bridge.EventScrollTop
	}
	events.Sim.Gesture("scroll", map[string]interface{}{"delta": delta, "index": next})
	h.hubFeed.publish(listEvent(list, next, kind))
	return true
}

// Click confirms the current list selection.
func (h *Host) Click() bool {
	h.mu.Lock()
	list, ok := h.listLocked()
	index := h.selection
	h.mu.Unlock()
	if !ok || len(list.Items.Names) == 0 {
		return false
	}
	events.Sim.Gesture("click", map[string]interface{}{"index": index})
	h.hubFeed.publish(listEvent(list, index, bridge.EventClick))
	return true
}

// DoubleClickText reports a double click on the first text container.
func (h *Host) DoubleClickText() bool {
	h.mu.Lock()
	var texts []layout.TextContainer
	if h.page != nil {
		texts = h.page.TextContainers()
	}
	h.mu.Unlock()
	if len(texts) == 0 {
		return false
	}
	events.Sim.Gesture("double-click", map[string]interface{}{"container": texts[0].Name})
	h.hubFeed.publish(bridge.TextEvent{
		ContainerID:   texts[0].ID,
		ContainerName: texts[0].Name,
		EventType:     bridge.EventDoubleClick,
	})
	return true
}

// Foreground reports the app entering or leaving the foreground.
func (h *Host) Foreground(enter bool) {
	kind := bridge.EventForegroundExit
	if enter {
		kind = bridge.EventForegroundEnter
	}
	events.Sim.Gesture("foreground", map[string]interface{}{"enter": enter})
	h.hubFeed.publish(bridge.SysEvent{EventType: kind})
}

// Audio delivers one chunk of microphone PCM.
func (h *Host) Audio(pcm []byte) {
	events.Sim.Gesture("audio", map[string]interface{}{"bytes": len(pcm)})
	h.hubFeed.publish(bridge.AudioEvent{PCM: append([]byte(nil), pcm...)})
}

// ToggleWearing flips the wearing sensor and publishes the new status.
func (h *Host) ToggleWearing() bridge.DeviceStatus {
	return h.mutateStatus(func(s *bridge.DeviceStatus) {
		s.IsWearing = !s.IsWearing
	})
}

// ToggleConnection drops or restores the glasses link.
func (h *Host) ToggleConnection() bridge.DeviceStatus {
	return h.mutateStatus(func(s *bridge.DeviceStatus) {
		if s.ConnectType == bridge.ConnectConnected {
			s.ConnectType = bridge.ConnectDisconnected
		} else {
			s.ConnectType = bridge.ConnectConnected
		}
	})
}

// SetBattery sets the battery level and publishes the new status.
func (h *Host) SetBattery(level int) bridge.DeviceStatus {
	return h.mutateStatus(func(s *bridge.DeviceStatus) {
		s.BatteryLevel = clampBattery(level)
	})
}

func (h *Host) mutateStatus(fn func(*bridge.DeviceStatus)) bridge.DeviceStatus {
	h.mu.Lock()
	fn(&h.status)
	status := h.status
	h.notifyLocked()
	h.mu.Unlock()

	events.Sim.Gesture("status", map[string]interface{}{
		"connect": status.ConnectType.String(),
		"battery": status.BatteryLevel,
		"wearing": status.IsWearing,
	})
	h.statusFeed.publish(status)
	return status
}

func (h *Host) listLocked() (layout.ListContainer, bool) {
	if h.page == nil {
		return layout.ListContainer{}, false
	}
	for _, l := range h.page.ListContainers() {
		if l.CaptureEvents {
			return l, true
		}
	}
	return layout.ListContainer{}, false
}

func listEvent(list layout.ListContainer, index int, kind bridge.EventType) bridge.ListEvent {
	return bridge.ListEvent{
		ContainerID:            list.ID,
		ContainerName:          list.Name,
		CurrentSelectItemName:  list.Items.Names[index],
		CurrentSelectItemIndex: index,
		EventType:              kind,
	}
}

// Emit publishes a raw hub event, nil included, as the device would send it.
func (h *Host) Emit(ev bridge.HubEvent) int {
	return h.hubFeed.publish(ev)
}

// EmitStatus publishes a raw status delivery without changing host state.
func (h *Host) EmitStatus(status bridge.DeviceStatus) int {
	return h.statusFeed.publish(status)
}
