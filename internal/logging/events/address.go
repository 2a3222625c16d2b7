package events

import "github.com/atomicstack/storefront-account/internal/logging"

type AddressTracer struct{}

var Address = AddressTracer{}

func (AddressTracer) DeletePrompt(id int) {
	logging.Trace("address.delete.prompt", map[string]interface{}{"id": id})
}

func (AddressTracer) DeleteConfirm(id int) {
	logging.Trace("address.delete.confirm", map[string]interface{}{"id": id})
}

func (AddressTracer) DeleteCancel(id int) {
	logging.Trace("address.delete.cancel", map[string]interface{}{"id": id})
}

func (AddressTracer) Deleted(id int, wasDefault bool, remaining int) {
	logging.Trace("address.deleted", map[string]interface{}{
		"id":         id,
		"wasDefault": wasDefault,
		"remaining":  remaining,
	})
}
