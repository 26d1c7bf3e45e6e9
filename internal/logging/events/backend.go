package events

import "github.com/atomicstack/pipeline-loader/internal/logging"

type BackendTracer struct{}

var Backend = BackendTracer{}

func (BackendTracer) Submit(kind, target string, seq int) {
	logging.Trace("backend.submit", map[string]interface{}{"kind": kind, "target": target, "seq": seq})
}

func (BackendTracer) Result(kind, target string, seq int, err error) {
	payload := map[string]interface{}{"kind": kind, "target": target, "seq": seq}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.result", payload)
}

func (BackendTracer) Stale(kind, target string, seq int) {
	logging.Trace("backend.stale", map[string]interface{}{"kind": kind, "target": target, "seq": seq})
}
