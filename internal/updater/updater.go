package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/evenhub-control/internal/bridge"
	"github.com/atomicstack/evenhub-control/internal/logging/events"
	"github.com/atomicstack/evenhub-control/internal/sink"
	"github.com/muesli/reflow/truncate"
)

const previewWidth = 40

// Updater replaces the content of live text containers. Calls are not queued;
// concurrent updates reach the bridge in whatever order it observes them.
type Updater struct {
	bridge bridge.Bridge
	log    sink.Log
}

// New returns an Updater writing through b and reporting to log.
func New(b bridge.Bridge, log sink.Log) *Updater {
	if log == nil {
		log = sink.Discard
	}
	return &Updater{bridge: b, log: log}
}

// UpdateText sends content to the container identified by id and name. The
// outcome is always logged; the returned error is an ErrUpdateFailed that
// callers may inspect but must not propagate.
func (u *Updater) UpdateText(ctx context.Context, id int, name, content string) error {
	events.Update.Send(id, name, len(content))
	err := u.bridge.UpdateText(ctx, bridge.TextUpdate{
		ContainerID:   id,
		ContainerName: name,
		Content:       content,
	})
	if err != nil {
		events.Update.Error(id, name, err)
		u.log.Append(fmt.Sprintf("textContainerUpgrade error: %v", err))
		return bridge.Fail("textContainerUpgrade", bridge.ErrUpdateFailed, err)
	}
	u.log.Append(fmt.Sprintf("Updated text to: %q", Preview(content)))
	return nil
}

// Preview flattens content onto one line and cuts it to the log preview width.
func Preview(content string) string {
	flat := strings.ReplaceAll(content, "\n", " ")
	return truncate.String(flat, previewWidth) + "..."
}
