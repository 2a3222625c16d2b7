package events

import "github.com/atomicstack/storefront-account/internal/logging"

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (ActionTracer) Error(action string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"action": action, "error": err.Error()})
}

func (ActionTracer) Success(action, info string) {
	logging.Trace("action.success", map[string]interface{}{"action": action, "info": info})
}

func (FilterTracer) Open(section string) {
	logging.Trace("filter.open", map[string]interface{}{"section": section})
}

func (FilterTracer) Cleared(section string) {
	logging.Trace("filter.clear", map[string]interface{}{"section": section})
}

func (FilterTracer) Update(section, query string, matches int) {
	logging.Trace("filter.update", map[string]interface{}{"section": section, "query": query, "matches": matches})
}

func (CommandTracer) Queue(id, label, entity string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label, "entity": entity})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Busy(id, label, entity string) {
	logging.Trace("command.busy", map[string]interface{}{"id": id, "label": label, "entity": entity})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
