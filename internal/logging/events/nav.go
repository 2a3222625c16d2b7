package events

import "github.com/atomicstack/storefront-account/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Select(from, to string) {
	logging.Trace("nav.select", map[string]interface{}{"from": from, "to": to})
}

// Denied records a navigation attempt to a section hidden from the role.
func (NavTracer) Denied(section, role string) {
	logging.Trace("nav.denied", map[string]interface{}{"section": section, "role": role})
}

func (NavTracer) Sidebar(open bool) {
	logging.Trace("nav.sidebar", map[string]interface{}{"open": open})
}

func (NavTracer) Fallback(section string) {
	logging.Trace("nav.fallback", map[string]interface{}{"section": section})
}
