package menu

import (
	"strings"

	"github.com/atomicstack/storefront-account/internal/account"
)

// SectionID identifies one of the mutually exclusive account sub-views.
type SectionID string

const (
	SectionDashboard SectionID = "dashboard"
	SectionOrders    SectionID = "orders"
	SectionInvoices  SectionID = "invoices"
	SectionPersonal  SectionID = "personal"
	SectionAddresses SectionID = "addresses"
	SectionSettings  SectionID = "settings"
)

// DefaultSection is active when nothing else has been chosen.
const DefaultSection = SectionDashboard

// Section describes a sidebar entry.
type Section struct {
	ID    SectionID
	Label string
	Icon  string
	// CustomerOnly entries are hidden from management roles.
	CustomerOnly bool
}

// VisibleTo reports whether the section is navigable for the role.
func (s Section) VisibleTo(role account.Role) bool {
	if s.CustomerOnly && role.IsManagement() {
		return false
	}
	return true
}

// Registry is the fixed, ordered set of account sections.
type Registry struct {
	sections []Section
	index    map[SectionID]int
}

// BuildRegistry constructs the registry in sidebar order.
func BuildRegistry() *Registry {
	sections := []Section{
		// vvv sidebar order vvv
		{ID: SectionDashboard, Label: "Dashboard", Icon: "dashboard", CustomerOnly: true},
		{ID: SectionOrders, Label: "Order History", Icon: "orders", CustomerOnly: true},
		{ID: SectionInvoices, Label: "Invoices", Icon: "invoices", CustomerOnly: true},
		{ID: SectionPersonal, Label: "Personal Details", Icon: "personal"},
		{ID: SectionAddresses, Label: "Addresses", Icon: "addresses", CustomerOnly: true},
		{ID: SectionSettings, Label: "Settings", Icon: "settings"},
		// ^^^ sidebar order ^^^
	}
	index := make(map[SectionID]int, len(sections))
	for i, s := range sections {
		index[s.ID] = i
	}
	return &Registry{sections: sections, index: index}
}

// Sections returns every registered section in declared order.
func (r *Registry) Sections() []Section {
	dup := make([]Section, len(r.sections))
	copy(dup, r.sections)
	return dup
}

// Find locates a section by id.
func (r *Registry) Find(id SectionID) (Section, bool) {
	idx, ok := r.index[id]
	if !ok {
		return Section{}, false
	}
	return r.sections[idx], true
}

// VisibleSections filters the registry by role, preserving declared order.
// It is evaluated on every call so role changes apply immediately.
func (r *Registry) VisibleSections(role account.Role) []Section {
	visible := make([]Section, 0, len(r.sections))
	for _, s := range r.sections {
		if s.VisibleTo(role) {
			visible = append(visible, s)
		}
	}
	return visible
}

// ParseSectionID normalises user input such as "Invoices " into a SectionID.
// The result is not guaranteed to be registered.
func ParseSectionID(raw string) SectionID {
	return SectionID(strings.ToLower(strings.TrimSpace(raw)))
}
