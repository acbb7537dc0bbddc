package events

import "github.com/atomicstack/evenhub-control/internal/logging"

type HubTracer struct{}

type StatusTracer struct{}

type UpdateTracer struct{}

var (
	Hub    = HubTracer{}
	Status = StatusTracer{}
	Update = UpdateTracer{}
)

func (HubTracer) Subscribe(channel string) {
	logging.Trace("hub.subscribe", map[string]interface{}{"channel": channel})
}

func (HubTracer) Receive(kind string) {
	logging.Trace("hub.receive", map[string]interface{}{"kind": kind})
}

func (HubTracer) Ignore(kind string) {
	logging.Trace("hub.ignore", map[string]interface{}{"kind": kind})
}

func (HubTracer) Action(index int, label string) {
	logging.Trace("hub.action", map[string]interface{}{"index": index, "label": label})
}

func (HubTracer) Closed(channel string) {
	logging.Trace("hub.closed", map[string]interface{}{"channel": channel})
}

func (StatusTracer) Changed(connect string, battery int, wearing bool) {
	logging.Trace("status.changed", map[string]interface{}{
		"connect": connect,
		"battery": battery,
		"wearing": wearing,
	})
}

func (StatusTracer) Disconnected() {
	logging.Trace("status.disconnected", nil)
}

func (UpdateTracer) Send(id int, name string, size int) {
	logging.Trace("update.send", map[string]interface{}{"id": id, "name": name, "bytes": size})
}

func (UpdateTracer) Error(id int, name string, err error) {
	logging.Trace("update.error", map[string]interface{}{"id": id, "name": name, "error": errString(err)})
}
