package events

import "github.com/atomicstack/pipeline-loader/internal/logging"

type TabTracer struct{}

type TreeTracer struct{}

type HistoryTracer struct{}

type PublishTracer struct{}

type historyReason string

const (
	HistoryBack    historyReason = "back"
	HistoryForward historyReason = "forward"
)

var (
	Tab     = TabTracer{}
	Tree    = TreeTracer{}
	History = HistoryTracer{}
	Publish = PublishTracer{}
)

func (TabTracer) Changed(preset string, programmatic, replaying bool) {
	logging.Trace("tab.changed", map[string]interface{}{
		"preset":       preset,
		"programmatic": programmatic,
		"replaying":    replaying,
	})
}

func (TreeTracer) Selected(preset, item string) {
	logging.Trace("tree.selected", map[string]interface{}{"preset": preset, "item": item})
}

func (TreeTracer) Refresh(preset string) {
	logging.Trace("tree.refresh", map[string]interface{}{"preset": preset})
}

func (TreeTracer) Loaded(preset string, count int) {
	logging.Trace("tree.loaded", map[string]interface{}{"preset": preset, "count": count})
}

func (HistoryTracer) Record(preset, item string, index, length int) {
	logging.Trace("history.record", map[string]interface{}{
		"preset": preset,
		"item":   item,
		"index":  index,
		"length": length,
	})
}

func (HistoryTracer) Navigate(reason historyReason, preset, item string, index int) {
	logging.Trace("history.navigate", map[string]interface{}{
		"reason": string(reason),
		"preset": preset,
		"item":   item,
		"index":  index,
	})
}

func (HistoryTracer) Home(preset, item string, exact bool) {
	logging.Trace("history.home", map[string]interface{}{"preset": preset, "item": item, "exact": exact})
}

func (PublishTracer) Load(entity string, folders int) {
	logging.Trace("publish.load", map[string]interface{}{"entity": entity, "folders": folders})
}

func (PublishTracer) Loaded(entity string, count int) {
	logging.Trace("publish.loaded", map[string]interface{}{"entity": entity, "count": count})
}

func (PublishTracer) Details(publish string) {
	logging.Trace("publish.details", map[string]interface{}{"publish": publish})
}
