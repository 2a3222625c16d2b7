package dispatcher

import (
	"time"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/backend"
	"github.com/atomicstack/storefront-account/internal/logging/events"
	"github.com/atomicstack/storefront-account/internal/state"
)

type Result struct {
	UserUpdated      bool
	RoleUpdated      bool
	OrdersUpdated    bool
	InvoicesUpdated  bool
	AddressesUpdated bool
	// Stale is set when the event was dropped because a local mutation of
	// the same kind was pending or landed after the fetch started.
	Stale bool
}

// Any reports whether the event changed a store.
func (r Result) Any() bool {
	return r.UserUpdated || r.RoleUpdated || r.OrdersUpdated || r.InvoicesUpdated || r.AddressesUpdated
}

type Dispatcher struct {
	session   state.SessionStore
	editor    state.ProfileEditor
	orders    state.OrderStore
	invoices  state.InvoiceStore
	addresses state.AddressStore

	pending map[backend.Kind]int
	settled map[backend.Kind]time.Time
}

func New(session state.SessionStore, editor state.ProfileEditor, orders state.OrderStore, invoices state.InvoiceStore, addresses state.AddressStore) *Dispatcher {
	return &Dispatcher{
		session:   session,
		editor:    editor,
		orders:    orders,
		invoices:  invoices,
		addresses: addresses,
		pending:   make(map[backend.Kind]int),
		settled:   make(map[backend.Kind]time.Time),
	}
}

// BeginMutation marks a local change of kind as in flight. Events of that
// kind are dropped until the matching EndMutation.
func (d *Dispatcher) BeginMutation(kind backend.Kind) {
	d.pending[kind]++
}

// EndMutation records that a local change of kind was applied at at. Events
// whose fetch started before at are dropped as stale.
func (d *Dispatcher) EndMutation(kind backend.Kind, at time.Time) {
	if d.pending[kind] > 0 {
		d.pending[kind]--
	}
	if at.After(d.settled[kind]) {
		d.settled[kind] = at
	}
}

func (d *Dispatcher) stale(evt backend.Event) (bool, string) {
	if d.pending[evt.Kind] > 0 {
		return true, "mutation in flight"
	}
	if settled, ok := d.settled[evt.Kind]; ok && !evt.FetchedAt.IsZero() && evt.FetchedAt.Before(settled) {
		return true, "fetched before last mutation"
	}
	return false, ""
}

// Handle applies a backend event to the stores. Failed fetches and stale
// events leave state unchanged.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	if stale, reason := d.stale(evt); stale {
		events.Backend.Stale(evt.Kind.String(), reason)
		res.Stale = true
		return res
	}
	switch evt.Kind {
	case backend.KindUser:
		if user, ok := evt.Data.(account.User); ok {
			if user.ID != "" {
				d.session.SetUserID(user.ID)
			}
			d.editor.SetCommitted(user.PersonalDetails)
			res.UserUpdated = true
		}
	case backend.KindRole:
		if role, ok := evt.Data.(account.Role); ok {
			d.session.SetRole(role)
			res.RoleUpdated = true
		}
	case backend.KindOrders:
		if orders, ok := evt.Data.([]account.Order); ok {
			d.orders.SetEntries(orders)
			res.OrdersUpdated = true
		}
	case backend.KindInvoices:
		if invoices, ok := evt.Data.([]account.Invoice); ok {
			d.invoices.SetEntries(invoices)
			res.InvoicesUpdated = true
		}
	case backend.KindAddresses:
		if addresses, ok := evt.Data.([]account.Address); ok {
			d.addresses.SetEntries(addresses)
			res.AddressesUpdated = true
		}
	}
	return res
}
