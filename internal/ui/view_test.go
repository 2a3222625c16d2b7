package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/storefront-account/internal/controller"
)

func TestDashboardView(t *testing.T) {
	h, _ := newTestHarness(t, "")
	view := h.View()
	for _, want := range []string{
		"My Account → Dashboard",
		"Welcome back, John!",
		"Total Orders",
		"Delivered",
		"Saved Addresses",
		"[o] View Order History",
		"[p] Edit Profile",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view =\n%s", want, view)
		}
	}
}

func TestSectionViews(t *testing.T) {
	cases := []struct {
		key  string
		want []string
	}{
		{"2", []string{"Order History", "In Transit", "$129.99"}},
		{"3", []string{"Invoices (3)", "INV-2024-003", "enter download"}},
		{"4", []string{"Personal Details", "john.doe@example.com", "+1 (555) 123-4567", "e edit"}},
		{"5", []string{"Default: Home, 123 Fashion Avenue", "Home (Default)", "Brooklyn, NY 11201", "d delete"}},
		{"6", []string{controller.SettingsPlaceholder}},
	}
	for _, tc := range cases {
		h, _ := newTestHarness(t, "")
		h.Keys(tc.key)
		view := h.View()
		for _, want := range tc.want {
			if !strings.Contains(view, want) {
				t.Fatalf("section %s: expected %q in view =\n%s", tc.key, want, view)
			}
		}
	}
}

func TestEmptyListViews(t *testing.T) {
	m := NewModel(Options{Width: 120, Height: 40})
	m.navigate("orders")
	if view := m.View(); !strings.Contains(view, "No orders yet") {
		t.Fatalf("expected empty orders message, view =\n%s", view)
	}
	m.navigate("addresses")
	view := m.View()
	if !strings.Contains(view, "No saved addresses") || !strings.Contains(view, noDefaultAddress) {
		t.Fatalf("expected empty addresses messages, view =\n%s", view)
	}
}

func TestFooterHint(t *testing.T) {
	h, _ := newTestHarness(t, "", withFooter())
	if view := h.View(); !strings.Contains(view, footerHint) {
		t.Fatalf("expected footer hint, view =\n%s", view)
	}
}

func TestUnregisteredSectionRendersDashboard(t *testing.T) {
	m, _ := newTestModel(t, "")
	m.ctrl.SetActiveSection("wishlist")
	view := m.View()
	if !strings.Contains(view, "My Account → Dashboard") || !strings.Contains(view, "Welcome back, John!") {
		t.Fatalf("expected dashboard fallback, view =\n%s", view)
	}
}

func TestViewFitsHeight(t *testing.T) {
	m, _ := newTestModel(t, "", withSize(80, 8))
	m.navigate("orders")
	lines := strings.Split(m.View(), "\n")
	if len(lines) > 8 {
		t.Fatalf("expected at most 8 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 5, "hell…"},
		{"hello", 1, "h"},
		{"hello", 0, "hello"},
	}
	for _, tc := range cases {
		if got := truncateText(tc.text, tc.width); got != tc.want {
			t.Fatalf("truncateText(%q, %d): expected %q, got %q", tc.text, tc.width, tc.want, got)
		}
	}
}

func TestLimitHeight(t *testing.T) {
	lines := []styledLine{{text: "a"}, {text: "b"}, {text: "c"}, {text: "d"}}
	got := limitHeight(lines, 3, 10)
	if len(got) != 3 || got[2].text != "…" {
		t.Fatalf("expected 3 lines ending in ellipsis, got %#v", got)
	}
	if got := limitHeight(lines, 0, 10); len(got) != 4 {
		t.Fatalf("expected unbounded height to keep all lines")
	}
}

func TestMaxVisibleItems(t *testing.T) {
	m, _ := newTestModel(t, "", withSize(120, 20))
	if got := m.maxVisibleItems(); got != 11 {
		t.Fatalf("expected 11 rows, got %d", got)
	}
	m.showFooter = true
	if got := m.maxVisibleItems(); got != 9 {
		t.Fatalf("expected 9 rows with footer, got %d", got)
	}
	m.height = 0
	if got := m.maxVisibleItems(); got != -1 {
		t.Fatalf("expected unbounded rows, got %d", got)
	}
}
