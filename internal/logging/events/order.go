package events

import "github.com/atomicstack/storefront-account/internal/logging"

type OrderTracer struct{}

type InvoiceTracer struct{}

var (
	Order   = OrderTracer{}
	Invoice = InvoiceTracer{}
)

func (OrderTracer) Open(id string) {
	logging.Trace("order.open", map[string]interface{}{"id": id})
}

func (OrderTracer) Close(id string) {
	logging.Trace("order.close", map[string]interface{}{"id": id})
}

func (InvoiceTracer) Download(id string, size int, path string) {
	logging.Trace("invoice.download", map[string]interface{}{"id": id, "bytes": size, "path": path})
}
