package bridge

import "fmt"

// EventType is the gesture or lifecycle kind carried by a hub event.
type EventType int

const (
	EventClick EventType = iota
	EventScrollTop
	EventScrollBottom
	EventDoubleClick
	EventForegroundEnter
	EventForegroundExit
	EventAbnormalExit
)

var eventTypeNames = [...]string{
	EventClick:           "click",
	EventScrollTop:       "scrollTop",
	EventScrollBottom:    "scrollBottom",
	EventDoubleClick:     "doubleClick",
	EventForegroundEnter: "foregroundEnter",
	EventForegroundExit:  "foregroundExit",
	EventAbnormalExit:    "abnormalExit",
}

func (e EventType) String() string {
	if e >= 0 && int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return fmt.Sprintf("EventType(%d)", int(e))
}

// HubEvent is one delivery on the hub channel. It is one of ListEvent,
// TextEvent, SysEvent or AudioEvent; a nil HubEvent carries nothing.
type HubEvent interface {
	hubEvent()
}

// ListEvent reports list navigation or selection.
type ListEvent struct {
	ContainerID            int // 0 when the host omits it
	ContainerName          string
	CurrentSelectItemName  string
	CurrentSelectItemIndex int
	EventType              EventType
}

// TextEvent reports a gesture on a text container.
type TextEvent struct {
	ContainerID   int
	ContainerName string
	EventType     EventType
}

// SysEvent reports an application lifecycle change.
type SysEvent struct {
	EventType EventType
}

// AudioEvent carries a chunk of microphone PCM.
type AudioEvent struct {
	PCM []byte
}

func (ListEvent) hubEvent()  {}
func (TextEvent) hubEvent()  {}
func (SysEvent) hubEvent()   {}
func (AudioEvent) hubEvent() {}
