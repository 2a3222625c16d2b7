package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/menu"
	uistate "github.com/atomicstack/storefront-account/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key := keyMsg.String(); key {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		if l := m.focusedList(); l != nil {
			l.MoveCursorPageUp(m.maxVisibleItems())
		}
	case "pgdown":
		if l := m.focusedList(); l != nil {
			l.MoveCursorPageDown(m.maxVisibleItems())
		}
	case "home":
		if l := m.focusedList(); l != nil {
			l.MoveCursorHome()
		}
	case "end":
		if l := m.focusedList(); l != nil {
			l.MoveCursorEnd()
		}
	case "tab", "shift+tab":
		m.toggleFocus()
	case "m":
		m.toggleSidebar()
	case "enter":
		return m.handleEnterKey()
	case "esc":
		m.handleEscapeKey()
	case "e":
		return m.startEdit()
	case "d":
		m.requestAddressDelete()
	case "/":
		m.openFilter()
	case "o":
		m.quickAction(menu.SectionOrders)
	case "p":
		m.quickAction(menu.SectionPersonal)
	default:
		if n, err := strconv.Atoi(key); err == nil {
			m.jumpTo(n)
		}
	}
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.sidebarFocused() {
		item, ok := m.sidebar.Current()
		if !ok {
			return nil
		}
		m.navigate(menu.SectionID(item.ID))
		m.focus = FocusContent
		return nil
	}
	switch m.ctrl.ActiveSection() {
	case menu.SectionOrders:
		if _, open := m.ctrl.SelectedOrder(); open {
			return nil
		}
		item, ok := m.lists[menu.SectionOrders].Current()
		if !ok {
			return nil
		}
		if err := m.ctrl.SelectOrder(item.ID); err != nil {
			m.errMsg = err.Error()
		}
	case menu.SectionInvoices:
		item, ok := m.lists[menu.SectionInvoices].Current()
		if !ok {
			return nil
		}
		return m.downloadInvoiceCmd(item.ID)
	case menu.SectionPersonal:
		return m.startEdit()
	}
	return nil
}

func (m *Model) handleEscapeKey() {
	m.errMsg = ""
	if _, open := m.ctrl.SelectedOrder(); open {
		m.ctrl.CloseOrder()
		return
	}
	if l := m.activeList(); l != nil && l.ClearFilter() {
		return
	}
	if m.isCompact() {
		if m.ctrl.SidebarOpen() {
			m.ctrl.ToggleMobileSidebar()
		}
		return
	}
	m.focus = FocusSidebar
}

// navigate routes a user selection through the controller and keeps the
// sidebar cursor on the active section.
func (m *Model) navigate(id menu.SectionID) bool {
	changed := m.ctrl.NavigateTo(id)
	if changed {
		m.errMsg = ""
		m.forceClearInfo()
	} else if !m.ctrl.CanNavigate(id) {
		if _, registered := m.ctrl.Registry().Find(id); registered {
			m.errMsg = fmt.Sprintf("%s is not available for your account", id)
		}
	}
	m.syncSidebarCursor()
	return changed
}

func (m *Model) toggleSidebar() {
	open := m.ctrl.ToggleMobileSidebar()
	if open {
		m.syncSidebarCursor()
		m.focus = FocusSidebar
	} else {
		m.focus = FocusContent
	}
}

func (m *Model) toggleFocus() {
	if m.isCompact() {
		m.toggleSidebar()
		return
	}
	if m.focus == FocusSidebar {
		m.focus = FocusContent
	} else {
		m.focus = FocusSidebar
	}
}

func (m *Model) jumpTo(n int) {
	visible := m.ctrl.VisibleSections()
	if n < 1 || n > len(visible) {
		return
	}
	m.navigate(visible[n-1].ID)
	m.focus = FocusContent
}

func (m *Model) quickAction(target menu.SectionID) {
	if m.ctrl.ActiveSection() != menu.SectionDashboard {
		return
	}
	for _, action := range m.ctrl.QuickActions() {
		if action.Target == target {
			m.navigate(target)
			m.focus = FocusContent
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	if m.sidebarFocused() {
		m.sidebar.MoveCursor(delta)
		return
	}
	if l := m.focusedList(); l != nil {
		l.MoveCursor(delta)
		l.EnsureCursorVisible(m.maxVisibleItems())
	}
}

// sidebarFocused reports whether movement keys drive the sidebar. In the
// compact layout this follows the sidebar flag.
func (m *Model) sidebarFocused() bool {
	if m.isCompact() {
		return m.ctrl.SidebarOpen()
	}
	return m.focus == FocusSidebar
}

func (m *Model) focusedList() *uistate.List {
	if m.sidebarFocused() {
		return m.sidebar
	}
	return m.activeList()
}

// activeList returns the list backing the active section, if it has one.
func (m *Model) activeList() *uistate.List {
	if _, open := m.ctrl.SelectedOrder(); open {
		return nil
	}
	return m.lists[m.ctrl.ActiveSection()]
}

func (m *Model) isCompact() bool {
	return m.width > 0 && m.width < m.compactWidth
}

func (m *Model) syncSidebar() {
	visible := m.ctrl.VisibleSections()
	items := make([]uistate.Item, 0, len(visible))
	for _, section := range visible {
		items = append(items, uistate.Item{ID: string(section.ID), Label: section.Label})
	}
	m.sidebar.SetItems(items)
	m.syncSidebarCursor()
}

func (m *Model) syncSidebarCursor() {
	if idx := m.sidebar.IndexOf(string(m.ctrl.ActiveSection())); idx >= 0 {
		m.sidebar.Cursor = idx
	}
}

// syncContentLists rebuilds the list sections from the stores. Labels carry
// the text the filter matches against.
func (m *Model) syncContentLists() {
	orders := m.ctrl.Orders().Entries()
	orderItems := make([]uistate.Item, 0, len(orders))
	for _, order := range orders {
		orderItems = append(orderItems, uistate.Item{
			ID:    order.ID,
			Label: strings.Join([]string{order.ID, order.Date.Format(account.DateLayout), order.Status.Label()}, " "),
		})
	}
	m.lists[menu.SectionOrders].SetItems(orderItems)

	invoices := m.ctrl.Invoices().Entries()
	invoiceItems := make([]uistate.Item, 0, len(invoices))
	for _, inv := range invoices {
		invoiceItems = append(invoiceItems, uistate.Item{
			ID:    inv.ID,
			Label: strings.Join([]string{inv.ID, inv.OrderID, inv.Status}, " "),
		})
	}
	m.lists[menu.SectionInvoices].SetItems(invoiceItems)

	addresses := m.ctrl.Addresses().List()
	addressItems := make([]uistate.Item, 0, len(addresses))
	for _, addr := range addresses {
		addressItems = append(addressItems, uistate.Item{
			ID:    strconv.Itoa(addr.ID),
			Label: strings.Join([]string{addr.Type, addr.Name, addr.Street, addr.City}, " "),
		})
	}
	m.lists[menu.SectionAddresses].SetItems(addressItems)
}

// resetMode leaves any form or modal, cancelling the flow it belongs to.
func (m *Model) resetMode() {
	switch m.mode {
	case ModeEdit:
		_ = m.ctrl.CancelEdit()
		m.closeForm()
	case ModeConfirm:
		m.ctrl.CancelAddressDelete()
	case ModePreview:
		m.preview = nil
	}
	m.mode = ModeBrowse
}
