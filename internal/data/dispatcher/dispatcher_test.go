package dispatcher

import (
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/backend"
	"github.com/atomicstack/storefront-account/internal/state"
)

type stores struct {
	session   state.SessionStore
	editor    state.ProfileEditor
	orders    state.OrderStore
	invoices  state.InvoiceStore
	addresses state.AddressStore
}

func newStores() (stores, *Dispatcher) {
	s := stores{
		session:   state.NewSessionStore("", account.RoleCustomer),
		editor:    state.NewProfileEditor(account.PersonalDetails{}),
		orders:    state.NewOrderStore(nil),
		invoices:  state.NewInvoiceStore(nil),
		addresses: state.NewAddressStore(nil),
	}
	return s, New(s.session, s.editor, s.orders, s.invoices, s.addresses)
}

func TestHandleUserUpdatesSessionAndEditor(t *testing.T) {
	s, d := newStores()
	user := account.User{ID: "user-1", PersonalDetails: account.PersonalDetails{FirstName: "John"}}
	res := d.Handle(backend.Event{Kind: backend.KindUser, Data: user})
	if !res.UserUpdated || !res.Any() {
		t.Fatalf("expected user update, got %#v", res)
	}
	if s.session.UserID() != "user-1" || s.editor.Committed().FirstName != "John" {
		t.Fatalf("unexpected state %q/%q", s.session.UserID(), s.editor.Committed().FirstName)
	}
}

func TestHandleRole(t *testing.T) {
	s, d := newStores()
	d.Handle(backend.Event{Kind: backend.KindRole, Data: account.RoleSalesManager})
	if s.session.Role() != account.RoleSalesManager {
		t.Fatalf("expected role update, got %q", s.session.Role())
	}
}

func TestHandleLists(t *testing.T) {
	s, d := newStores()
	d.Handle(backend.Event{Kind: backend.KindOrders, Data: []account.Order{{ID: "A"}}})
	d.Handle(backend.Event{Kind: backend.KindInvoices, Data: []account.Invoice{{ID: "I"}}})
	res := d.Handle(backend.Event{Kind: backend.KindAddresses, Data: []account.Address{{ID: 1}, {ID: 2}}})
	if !res.AddressesUpdated {
		t.Fatalf("expected address update")
	}
	if len(s.orders.Entries()) != 1 || len(s.invoices.Entries()) != 1 || s.addresses.Len() != 2 {
		t.Fatalf("unexpected store sizes")
	}
}

func TestHandleErrorLeavesState(t *testing.T) {
	s, d := newStores()
	s.addresses.SetEntries([]account.Address{{ID: 1}})
	res := d.Handle(backend.Event{Kind: backend.KindAddresses, Err: errors.New("timeout")})
	if res.Any() {
		t.Fatalf("expected no update on error")
	}
	if s.addresses.Len() != 1 {
		t.Fatalf("expected addresses unchanged")
	}
}

func TestHandleMismatchedPayload(t *testing.T) {
	_, d := newStores()
	if d.Handle(backend.Event{Kind: backend.KindOrders, Data: "nope"}).Any() {
		t.Fatalf("expected mismatched payload to be ignored")
	}
}

func TestAddressPollDroppedWhileDeleteInFlight(t *testing.T) {
	s, d := newStores()
	s.addresses.SetEntries([]account.Address{{ID: 1, IsDefault: true}, {ID: 2}})
	d.BeginMutation(backend.KindAddresses)
	fetched := time.Now()
	res := d.Handle(backend.Event{Kind: backend.KindAddresses, Data: []account.Address{{ID: 1, IsDefault: true}, {ID: 2}}, FetchedAt: fetched})
	if !res.Stale || res.Any() {
		t.Fatalf("expected in-flight poll to be dropped, got %#v", res)
	}
	s.addresses.Delete(1)
	d.EndMutation(backend.KindAddresses, fetched.Add(time.Millisecond))

	res = d.Handle(backend.Event{Kind: backend.KindAddresses, Data: []account.Address{{ID: 1, IsDefault: true}, {ID: 2}}, FetchedAt: fetched})
	if !res.Stale {
		t.Fatalf("expected poll fetched before the delete landed to be dropped")
	}
	if _, ok := s.addresses.Find(1); ok {
		t.Fatalf("deleted address reappeared")
	}

	res = d.Handle(backend.Event{Kind: backend.KindAddresses, Data: []account.Address{{ID: 2}}, FetchedAt: fetched.Add(time.Second)})
	if res.Stale || !res.AddressesUpdated {
		t.Fatalf("expected fresh poll to apply, got %#v", res)
	}
}

func TestMutationOnlyHoldsItsKind(t *testing.T) {
	s, d := newStores()
	d.BeginMutation(backend.KindUser)
	res := d.Handle(backend.Event{Kind: backend.KindOrders, Data: []account.Order{{ID: "A"}}, FetchedAt: time.Now()})
	if res.Stale || !res.OrdersUpdated {
		t.Fatalf("expected orders to apply during a profile save, got %#v", res)
	}
	if len(s.orders.Entries()) != 1 {
		t.Fatalf("expected one order")
	}
	if !d.Handle(backend.Event{Kind: backend.KindUser, Data: account.User{ID: "u"}}).Stale {
		t.Fatalf("expected user poll to be held")
	}
	d.EndMutation(backend.KindUser, time.Now())
	if d.Handle(backend.Event{Kind: backend.KindUser, Data: account.User{ID: "u"}}).Stale {
		t.Fatalf("expected an unstamped user event to apply once the save settled")
	}
}
