package events

import "github.com/atomicstack/storefront-account/internal/logging"

type BackendTracer struct{}

var Backend = BackendTracer{}

func (BackendTracer) Applied(kind string) {
	logging.Trace("backend.applied", map[string]interface{}{"kind": kind})
}

func (BackendTracer) Failed(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("backend.failed", map[string]interface{}{"kind": kind, "error": err.Error()})
}

func (BackendTracer) Stale(kind string, reason string) {
	logging.Trace("backend.stale", map[string]interface{}{"kind": kind, "reason": reason})
}
