package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/logging"
	"github.com/atomicstack/storefront-account/internal/menu"
	"github.com/atomicstack/storefront-account/internal/testutil"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "ui-test")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create log dir: %v\n", err)
		os.Exit(1)
	}
	logging.Configure(filepath.Join(dir, "ui.log"))
	code := m.Run()
	logging.Close()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type modelOption func(*Options)

func withSize(width, height int) modelOption {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

func withDownloadDir(dir string) modelOption {
	return func(o *Options) { o.DownloadDir = dir }
}

func withVerbose() modelOption {
	return func(o *Options) { o.Verbose = true }
}

func withFooter() modelOption {
	return func(o *Options) { o.ShowFooter = true }
}

func newTestModel(t *testing.T, role account.Role, opts ...modelOption) (*Model, *testutil.Account) {
	t.Helper()
	acct := testutil.NewAccount(t, role)
	o := Options{
		Controller: acct.Controller,
		Dispatcher: acct.Dispatcher,
		Width:      120,
		Height:     40,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return NewModel(o), acct
}

func newTestHarness(t *testing.T, role account.Role, opts ...modelOption) (*Harness, *testutil.Account) {
	t.Helper()
	model, acct := newTestModel(t, role, opts...)
	return NewHarness(model), acct
}

func sidebarIDs(m *Model) []string {
	ids := make([]string, 0, len(m.sidebar.Items))
	for _, item := range m.sidebar.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestNewModelBuildsCustomerSidebar(t *testing.T) {
	m, _ := newTestModel(t, "")
	want := []string{"dashboard", "orders", "invoices", "personal", "addresses", "settings"}
	if diff := cmp.Diff(want, sidebarIDs(m)); diff != "" {
		t.Fatalf("unexpected sidebar (-want +got):\n%s", diff)
	}
	if m.ctrl.ActiveSection() != menu.SectionDashboard {
		t.Fatalf("expected dashboard active, got %s", m.ctrl.ActiveSection())
	}
	if m.Mode() != ModeBrowse || m.focus != FocusSidebar {
		t.Fatalf("expected browse mode with sidebar focus, got %v/%v", m.Mode(), m.focus)
	}
}

func TestNewModelMovesManagementRoleOffHiddenSection(t *testing.T) {
	m, _ := newTestModel(t, account.RoleSupportAdmin)
	if diff := cmp.Diff([]string{"personal", "settings"}, sidebarIDs(m)); diff != "" {
		t.Fatalf("unexpected sidebar (-want +got):\n%s", diff)
	}
	if m.ctrl.ActiveSection() != menu.SectionPersonal {
		t.Fatalf("expected personal active, got %s", m.ctrl.ActiveSection())
	}
	if m.sidebar.Cursor != 0 {
		t.Fatalf("expected sidebar cursor on personal, got %d", m.sidebar.Cursor)
	}
	if m.errMsg != "" {
		t.Fatalf("expected no error, got %q", m.errMsg)
	}
}

func TestNewModelBuildsContentLists(t *testing.T) {
	m, _ := newTestModel(t, "")
	orders := m.lists[menu.SectionOrders]
	if len(orders.Items) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders.Items))
	}
	if got := orders.Items[1].Label; got != "ORD-2024-002 2024-10-28 In Transit" {
		t.Fatalf("unexpected order label %q", got)
	}
	addresses := m.lists[menu.SectionAddresses]
	if len(addresses.Items) != 2 || addresses.Items[0].ID != "1" {
		t.Fatalf("unexpected address items %#v", addresses.Items)
	}
}

func TestNewModelDefaultsWithoutController(t *testing.T) {
	m := NewModel(Options{})
	if m.Controller() == nil || m.dispatcher == nil || m.bus == nil {
		t.Fatalf("expected collaborators to be filled in")
	}
	if m.compactWidth != defaultCompactWidth {
		t.Fatalf("expected compact width %d, got %d", defaultCompactWidth, m.compactWidth)
	}
	if view := m.View(); view == "" {
		t.Fatalf("expected a view for an empty account")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m, _ := newTestModel(t, "", withSize(100, 0))
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	if m.width != 100 {
		t.Fatalf("expected fixed width 100, got %d", m.width)
	}
	if m.height != 20 {
		t.Fatalf("expected height 20, got %d", m.height)
	}
}

func TestUnknownMessageIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, "")
	type unknown struct{}
	if handler := m.handlerFor(unknown{}); handler != nil {
		t.Fatalf("expected no handler for unknown message")
	}
	if _, cmd := m.Update(unknown{}); cmd != nil {
		t.Fatalf("expected no command for unknown message")
	}
}

func TestCtrlCQuitsFromAnyMode(t *testing.T) {
	h, _ := newTestHarness(t, "")
	h.Keys("4", "e")
	if h.Model().Mode() != ModeEdit {
		t.Fatalf("expected edit mode, got %v", h.Model().Mode())
	}
	h.Keys("ctrl+c")
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}
}
