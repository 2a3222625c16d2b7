package menu

import (
	"testing"

	"github.com/atomicstack/storefront-account/internal/account"
)

func sectionIDs(sections []Section) []SectionID {
	ids := make([]SectionID, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func equalIDs(a, b []SectionID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVisibleSectionsForCustomerKeepsDeclaredOrder(t *testing.T) {
	reg := BuildRegistry()
	got := sectionIDs(reg.VisibleSections(account.RoleCustomer))
	want := []SectionID{SectionDashboard, SectionOrders, SectionInvoices, SectionPersonal, SectionAddresses, SectionSettings}
	if !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestVisibleSectionsHidesCustomerSectionsFromManagement(t *testing.T) {
	reg := BuildRegistry()
	for _, role := range []account.Role{account.RoleProductManager, account.RoleSalesManager, account.RoleSupportAgent, account.RoleSupportAdmin} {
		got := sectionIDs(reg.VisibleSections(role))
		want := []SectionID{SectionPersonal, SectionSettings}
		if !equalIDs(got, want) {
			t.Fatalf("role %s: expected %v, got %v", role, want, got)
		}
	}
}

func TestVisibleSectionsUnknownRoleIsTreatedAsCustomer(t *testing.T) {
	reg := BuildRegistry()
	if got := len(reg.VisibleSections("")); got != 6 {
		t.Fatalf("expected all 6 sections for empty role, got %d", got)
	}
}

func TestFindSection(t *testing.T) {
	reg := BuildRegistry()
	section, ok := reg.Find(SectionInvoices)
	if !ok {
		t.Fatalf("expected invoices to be registered")
	}
	if section.Label != "Invoices" || section.Icon != "invoices" {
		t.Fatalf("unexpected section %#v", section)
	}
	if _, ok := reg.Find("wishlist"); ok {
		t.Fatalf("expected wishlist to be unregistered")
	}
}

func TestSectionsReturnsCopy(t *testing.T) {
	reg := BuildRegistry()
	sections := reg.Sections()
	sections[0].Label = "mutated"
	if again := reg.Sections(); again[0].Label != "Dashboard" {
		t.Fatalf("expected registry to be immutable, got %q", again[0].Label)
	}
}

func TestIconLookup(t *testing.T) {
	reg := BuildRegistry()
	for _, s := range reg.Sections() {
		if Icon(s.Icon) == "" {
			t.Fatalf("expected glyph for %s", s.Icon)
		}
	}
	if got := Icon("wishlist"); got != "" {
		t.Fatalf("expected empty glyph for unknown key, got %q", got)
	}
}

func TestParseSectionID(t *testing.T) {
	if got := ParseSectionID("  Invoices "); got != SectionInvoices {
		t.Fatalf("expected invoices, got %q", got)
	}
}
