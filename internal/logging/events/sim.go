package events

import "github.com/atomicstack/evenhub-control/internal/logging"

type SimTracer struct{}

var Sim = SimTracer{}

func (SimTracer) Gesture(name string, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["gesture"] = name
	logging.Trace("sim.gesture", payload)
}

func (SimTracer) Battery(level int) {
	logging.Trace("sim.battery", map[string]interface{}{"level": level})
}

func (SimTracer) Fault(op string) {
	logging.Trace("sim.fault", map[string]interface{}{"op": op})
}
