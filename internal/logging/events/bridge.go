package events

import (
	"time"

	"github.com/atomicstack/evenhub-control/internal/logging"
)

type BridgeTracer struct{}

type PageTracer struct{}

var (
	Bridge = BridgeTracer{}
	Page   = PageTracer{}
)

func (BridgeTracer) Wait(timeout time.Duration) {
	logging.Trace("bridge.wait", map[string]interface{}{"timeout": timeout.String()})
}

func (BridgeTracer) Ready(elapsed time.Duration) {
	logging.Trace("bridge.ready", map[string]interface{}{"elapsed": elapsed.String()})
}

func (BridgeTracer) Unavailable(err error) {
	logging.Trace("bridge.unavailable", map[string]interface{}{"error": errString(err)})
}

func (BridgeTracer) Query(op string, err error) {
	payload := map[string]interface{}{"op": op}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("bridge.query", payload)
}

func (PageTracer) Submit(total int) {
	logging.Trace("page.submit", map[string]interface{}{"containers": total})
}

func (PageTracer) Result(code int, err error) {
	payload := map[string]interface{}{"result": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("page.result", payload)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
