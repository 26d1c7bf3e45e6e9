package events

import "github.com/atomicstack/pipeline-loader/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) Presets(names []string) {
	logging.Trace("app.presets", map[string]interface{}{"presets": names})
}

func (AppTracer) Seeded(path string) {
	logging.Trace("app.seeded", map[string]interface{}{"db": path})
}
