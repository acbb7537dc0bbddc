package bridge

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/evenhub-control/internal/logging/events"
)

// Connect waits once for the host to expose a ready bridge. A zero timeout
// waits until ctx ends. Every failure is reported as ErrBridgeUnavailable.
func Connect(ctx context.Context, c Connector, timeout time.Duration) (Bridge, error) {
	if c == nil {
		return nil, Fail("connect", ErrBridgeUnavailable, errors.New("no connector"))
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	events.Bridge.Wait(timeout)
	started := time.Now()
	b, err := c.Connect(ctx)
	if err == nil && b == nil {
		err = errors.New("host returned no bridge")
	}
	if err != nil {
		events.Bridge.Unavailable(err)
		return nil, Fail("connect", ErrBridgeUnavailable, err)
	}
	events.Bridge.Ready(time.Since(started))
	return b, nil
}
