package ui

import (
	"github.com/atomicstack/storefront-account/internal/backend"
	"github.com/atomicstack/storefront-account/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent records the fetch outcome, updates the stores and
// rebuilds the lists that depend on them.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		events.Backend.Failed(evt.Kind.String(), evt.Err)
		return
	}

	res := m.dispatcher.Handle(evt)
	if res.Any() {
		events.Backend.Applied(evt.Kind.String())
	}
	if res.RoleUpdated {
		m.syncSidebar()
		m.ensureActiveVisible()
	}
	if res.OrdersUpdated || res.InvoicesUpdated || res.AddressesUpdated {
		m.syncContentLists()
		m.dropStalePrompt()
	}

	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
}

// ensureActiveVisible moves off a section the refreshed role can no longer
// see.
func (m *Model) ensureActiveVisible() {
	active := m.ctrl.ActiveSection()
	if _, registered := m.ctrl.Registry().Find(active); !registered {
		return
	}
	if m.ctrl.CanNavigate(active) {
		return
	}
	visible := m.ctrl.VisibleSections()
	if len(visible) == 0 {
		return
	}
	if m.mode != ModeBrowse {
		m.resetMode()
	}
	m.navigate(visible[0].ID)
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
