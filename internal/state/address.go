package state

import "github.com/atomicstack/storefront-account/internal/account"

// AddressStore owns the saved shipping addresses in insertion order.
type AddressStore interface {
	List() []account.Address
	SetEntries([]account.Address)
	// Delete removes the address with the given id. It reports whether an
	// entry was removed; deleting a missing id is a no-op.
	Delete(id int) bool
	Find(id int) (account.Address, bool)
	Default() (account.Address, bool)
	Len() int
}

type addressStore struct {
	entries []account.Address
}

func NewAddressStore(seed []account.Address) AddressStore {
	s := &addressStore{}
	s.SetEntries(seed)
	return s
}

func (s *addressStore) List() []account.Address {
	return cloneAddresses(s.entries)
}

// SetEntries replaces the collection. If more than one entry claims to be the
// default, only the first keeps the flag.
func (s *addressStore) SetEntries(entries []account.Address) {
	dup := cloneAddresses(entries)
	seenDefault := false
	for i := range dup {
		if !dup[i].IsDefault {
			continue
		}
		if seenDefault {
			dup[i].IsDefault = false
			continue
		}
		seenDefault = true
	}
	s.entries = dup
}

// Delete never promotes another address to default.
func (s *addressStore) Delete(id int) bool {
	for i, entry := range s.entries {
		if entry.ID != id {
			continue
		}
		next := make([]account.Address, 0, len(s.entries)-1)
		next = append(next, s.entries[:i]...)
		next = append(next, s.entries[i+1:]...)
		s.entries = next
		return true
	}
	return false
}

func (s *addressStore) Find(id int) (account.Address, bool) {
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return account.Address{}, false
}

func (s *addressStore) Default() (account.Address, bool) {
	return account.DefaultAddress(s.entries)
}

func (s *addressStore) Len() int {
	return len(s.entries)
}

func cloneAddresses(entries []account.Address) []account.Address {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]account.Address, len(entries))
	copy(dup, entries)
	return dup
}
