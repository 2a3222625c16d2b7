package state

import "github.com/atomicstack/storefront-account/internal/account"

// OrderStore holds the read-only order list as reported by the order
// service, newest first.
type OrderStore interface {
	Entries() []account.Order
	SetEntries([]account.Order)
	Find(id string) (account.Order, bool)
}

type orderStore struct {
	entries []account.Order
}

func NewOrderStore(seed []account.Order) OrderStore {
	s := &orderStore{}
	s.SetEntries(seed)
	return s
}

func (s *orderStore) Entries() []account.Order {
	return cloneOrders(s.entries)
}

func (s *orderStore) SetEntries(entries []account.Order) {
	s.entries = cloneOrders(entries)
}

func (s *orderStore) Find(id string) (account.Order, bool) {
	order, ok := account.FindOrder(s.entries, id)
	if !ok {
		return account.Order{}, false
	}
	return cloneOrders([]account.Order{order})[0], true
}

// InvoiceStore holds the read-only invoice list.
type InvoiceStore interface {
	Entries() []account.Invoice
	SetEntries([]account.Invoice)
	Find(id string) (account.Invoice, bool)
}

type invoiceStore struct {
	entries []account.Invoice
}

func NewInvoiceStore(seed []account.Invoice) InvoiceStore {
	s := &invoiceStore{}
	s.SetEntries(seed)
	return s
}

func (s *invoiceStore) Entries() []account.Invoice {
	return cloneInvoices(s.entries)
}

func (s *invoiceStore) SetEntries(entries []account.Invoice) {
	s.entries = cloneInvoices(entries)
}

func (s *invoiceStore) Find(id string) (account.Invoice, bool) {
	for _, inv := range s.entries {
		if inv.ID == id {
			return inv, true
		}
	}
	return account.Invoice{}, false
}

func cloneOrders(entries []account.Order) []account.Order {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]account.Order, len(entries))
	for i, order := range entries {
		dup[i] = order
		if len(order.Items) > 0 {
			dup[i].Items = append([]account.OrderItem(nil), order.Items...)
		}
	}
	return dup
}

func cloneInvoices(entries []account.Invoice) []account.Invoice {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]account.Invoice, len(entries))
	copy(dup, entries)
	return dup
}
