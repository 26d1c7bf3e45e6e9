package events

import "github.com/atomicstack/pipeline-loader/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Focus(pane string) {
	logging.Trace("ui.focus", map[string]interface{}{"pane": pane})
}

func (UITracer) Cursor(pane string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"pane": pane, "cursor": cursor})
}

func (UITracer) Info(visible bool) {
	logging.Trace("ui.info", map[string]interface{}{"visible": visible})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Types(ids []int64) {
	logging.Trace("filter.types", map[string]interface{}{"types": ids})
}

func (FilterTracer) Cleared(pane string) {
	logging.Trace("filter.clear", map[string]interface{}{"pane": pane})
}

func (FilterTracer) WordBackspace(pane, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"pane": pane, "filter": filter})
}

func (FilterTracer) Cursor(pane string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"pane": pane, "cursor": pos})
}

func (FilterTracer) Append(pane, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"pane": pane, "filter": filter})
}

func (FilterTracer) Backspace(pane, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"pane": pane, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
