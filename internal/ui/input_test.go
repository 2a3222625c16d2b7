package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/storefront-account/internal/menu"
)

func TestFilterNarrowsOrders(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Keys("2", "/")
	m := h.Model()
	if m.Mode() != ModeFilter {
		t.Fatalf("expected filter mode")
	}
	if view := h.View(); !strings.Contains(view, "/ ") || !strings.Contains(view, "type to search") {
		t.Fatalf("expected empty filter prompt, view =\n%s", view)
	}
	h.Keys("transit")
	orders := m.lists[menu.SectionOrders]
	if len(orders.Items) != 1 || orders.Items[0].ID != "ORD-2024-002" {
		t.Fatalf("expected only the in-transit order, got %#v", orders.Items)
	}
	view := h.View()
	if strings.Contains(view, "ORD-2024-001") || !strings.Contains(view, "ORD-2024-002") {
		t.Fatalf("expected filtered rows, view =\n%s", view)
	}
	h.Keys("enter")
	if m.Mode() != ModeBrowse {
		t.Fatalf("expected enter to leave filter mode")
	}
	if order, open := m.ctrl.SelectedOrder(); !open || order.ID != "ORD-2024-002" {
		t.Fatalf("expected enter to open the matched order")
	}
	h.Keys("esc")
	if orders.Filter != "transit" {
		t.Fatalf("closing the order should keep the filter, got %q", orders.Filter)
	}
	h.Keys("esc")
	if orders.Filter != "" || len(orders.Items) != 3 {
		t.Fatalf("expected second esc to clear the filter")
	}
}

func TestFilterNoMatches(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Keys("5", "/", "zzz")
	if view := h.View(); !strings.Contains(view, `No matches for "zzz"`) {
		t.Fatalf("expected no-match message, view =\n%s", view)
	}
	h.Keys("esc")
	m := h.Model()
	if m.Mode() != ModeBrowse || m.lists[menu.SectionAddresses].Filter != "" {
		t.Fatalf("expected esc to clear and close the filter")
	}
}

func TestFilterEditingKeys(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Keys("3", "/", "paid", "space", "inv")
	l := h.Model().lists[menu.SectionInvoices]
	if l.Filter != "paid inv" {
		t.Fatalf("expected filter %q, got %q", "paid inv", l.Filter)
	}
	h.Keys("ctrl+w")
	if l.Filter != "paid " {
		t.Fatalf("expected word delete, got %q", l.Filter)
	}
	h.Keys("backspace")
	if l.Filter != "paid" {
		t.Fatalf("expected rune delete, got %q", l.Filter)
	}
	h.Keys("ctrl+u")
	if l.Filter != "" {
		t.Fatalf("expected ctrl+u to clear, got %q", l.Filter)
	}
	if h.Model().Mode() != ModeFilter {
		t.Fatalf("clearing should keep the prompt open")
	}
}

func TestFilterIgnoredWithoutList(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Keys("/")
	if h.Model().Mode() != ModeBrowse {
		t.Fatalf("expected / to be ignored on the dashboard")
	}
}

func TestFilterKeepsQuitKeyAsText(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Keys("2", "/", "q")
	if h.Quit() {
		t.Fatalf("q inside the filter must not quit")
	}
	if got := h.Model().lists[menu.SectionOrders].Filter; got != "q" {
		t.Fatalf("expected q in filter, got %q", got)
	}
}
