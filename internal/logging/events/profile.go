package events

import "github.com/atomicstack/storefront-account/internal/logging"

type ProfileTracer struct{}

var Profile = ProfileTracer{}

func (ProfileTracer) BeginEdit() {
	logging.Trace("profile.edit.begin", nil)
}

func (ProfileTracer) Update(field string) {
	logging.Trace("profile.edit.update", map[string]interface{}{"field": field})
}

func (ProfileTracer) Submit() {
	logging.Trace("profile.edit.submit", nil)
}

func (ProfileTracer) Invalid(fields map[string]string) {
	logging.Trace("profile.edit.invalid", map[string]interface{}{"fields": fields})
}

func (ProfileTracer) Commit(email string) {
	logging.Trace("profile.edit.commit", map[string]interface{}{"email": email})
}

func (ProfileTracer) Cancel(reason string) {
	logging.Trace("profile.edit.cancel", map[string]interface{}{"reason": reason})
}

func (ProfileTracer) Stale(submitted, current int) {
	logging.Trace("profile.save.stale", map[string]interface{}{"submitted": submitted, "current": current})
}
