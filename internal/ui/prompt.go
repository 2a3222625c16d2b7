package ui

import (
	"strconv"
	"strings"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	deletePromptTitle = "Delete Address"
	deletePromptText  = "Are you sure you want to delete this shipping address?"
	deletePromptHelp  = "y/enter delete  n/esc cancel"
)

// requestAddressDelete stages the highlighted address and opens the
// confirmation modal.
func (m *Model) requestAddressDelete() {
	if m.ctrl.ActiveSection() != menu.SectionAddresses {
		return
	}
	item, ok := m.lists[menu.SectionAddresses].Current()
	if !ok {
		return
	}
	id, err := strconv.Atoi(item.ID)
	if err != nil {
		return
	}
	if err := m.ctrl.RequestAddressDelete(id); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.mode = ModeConfirm
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeBrowse
		id, ok := m.ctrl.ConfirmAddressDelete()
		if !ok {
			return nil
		}
		return m.deleteAddressCmd(id)
	case "n", "N", "esc":
		m.ctrl.CancelAddressDelete()
		m.mode = ModeBrowse
	}
	return nil
}

// dropStalePrompt closes the modal when a refresh removed the address it was
// asking about.
func (m *Model) dropStalePrompt() {
	if m.mode != ModeConfirm {
		return
	}
	if _, ok := m.ctrl.PendingAddressDelete(); ok {
		return
	}
	m.ctrl.CancelAddressDelete()
	m.mode = ModeBrowse
}

func (m *Model) viewConfirmModal(addr account.Address, width int) string {
	lines := []string{
		styles.Error.Render(deletePromptTitle),
		"",
		deletePromptText,
		"",
		styles.Value.Render(addr.Name),
		styles.Value.Render(addr.Street),
		styles.Value.Render(addr.Locality()),
		"",
		styles.Footer.Render(deletePromptHelp),
	}
	modal := styles.Modal
	if width > 4 {
		return modal.Copy().MaxWidth(width).Render(strings.Join(lines, "\n"))
	}
	return modal.Render(strings.Join(lines, "\n"))
}
