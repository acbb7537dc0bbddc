package bridge

import (
	"context"
	"fmt"

	"github.com/atomicstack/evenhub-control/internal/layout"
)

// ConnectType reports the link state between the phone and the glasses.
type ConnectType int

const (
	ConnectNone ConnectType = iota
	ConnectConnecting
	ConnectConnected
	ConnectDisconnected
	ConnectFailed
)

func (c ConnectType) String() string {
	switch c {
	case ConnectNone:
		return "none"
	case ConnectConnecting:
		return "connecting"
	case ConnectConnected:
		return "connected"
	case ConnectDisconnected:
		return "disconnected"
	case ConnectFailed:
		return "connectionFailed"
	}
	return fmt.Sprintf("ConnectType(%d)", int(c))
}

// DeviceStatus is a snapshot of the glasses state.
type DeviceStatus struct {
	ConnectType  ConnectType
	BatteryLevel int
	IsWearing    bool
}

// IsConnected reports whether the glasses are linked.
func (s DeviceStatus) IsConnected() bool {
	return s.ConnectType == ConnectConnected
}

// UserInfo describes the signed-in user.
type UserInfo struct {
	Name    string
	UID     int
	Country string
}

// DeviceInfo describes the paired glasses.
type DeviceInfo struct {
	Model        string
	SerialNumber string
	Status       DeviceStatus
}

// ResultCode is returned by page submission; zero means success.
type ResultCode int

const ResultSuccess ResultCode = 0

// TextUpdate replaces the content of a previously declared text container.
// The bridge decides whether ContainerID and ContainerName identify one.
type TextUpdate struct {
	ContainerID   int
	ContainerName string
	Content       string
}

// Bridge is the capability handle to the device host. Implementations must be
// safe for concurrent use.
type Bridge interface {
	UserInfo(ctx context.Context) (UserInfo, error)
	// DeviceInfo returns nil without error when no glasses are paired.
	DeviceInfo(ctx context.Context) (*DeviceInfo, error)
	CreateStartUpPage(ctx context.Context, page layout.Page) (ResultCode, error)
	UpdateText(ctx context.Context, update TextUpdate) error
	OnStatusChanged() *Subscription[DeviceStatus]
	OnHubEvent() *Subscription[HubEvent]
}

// Connector waits for the device host to expose a ready bridge.
type Connector interface {
	Connect(ctx context.Context) (Bridge, error)
}
