package ui

import (
	"unicode"

	"github.com/atomicstack/storefront-account/internal/logging/events"
	uistate "github.com/atomicstack/storefront-account/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const filterPlaceholder = "(type to search)"

func (m *Model) openFilter() {
	l := m.activeList()
	if l == nil {
		return
	}
	m.mode = ModeFilter
	m.focus = FocusContent
	if m.isCompact() && m.ctrl.SidebarOpen() {
		m.ctrl.ToggleMobileSidebar()
	}
	events.Filter.Open(l.ID)
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	current := m.activeList()
	if current == nil {
		m.mode = ModeBrowse
		return nil
	}
	switch msg.String() {
	case "esc":
		if current.ClearFilter() {
			events.Filter.Cleared(current.ID)
		}
		m.mode = ModeBrowse
		return nil
	case "enter":
		m.mode = ModeBrowse
		return m.handleEnterKey()
	case "up":
		current.MoveCursor(-1)
		current.EnsureCursorVisible(m.maxVisibleItems())
		return nil
	case "down":
		current.MoveCursor(1)
		current.EnsureCursorVisible(m.maxVisibleItems())
		return nil
	case "ctrl+u":
		if current.ClearFilter() {
			events.Filter.Cleared(current.ID)
		}
		return nil
	case "ctrl+w":
		if current.DeleteFilterWordBackward() {
			m.noteFilterChange(current)
		}
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if current.DeleteFilterRuneBackward() {
			m.noteFilterChange(current)
		}
	case tea.KeyLeft:
		current.MoveFilterCursorRuneBackward()
	case tea.KeyRight:
		current.MoveFilterCursorRuneForward()
	case tea.KeySpace:
		if current.InsertFilterText(" ") {
			m.noteFilterChange(current)
		}
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		if current.InsertFilterText(string(msg.Runes)) {
			m.noteFilterChange(current)
		}
	}
	return nil
}

func (m *Model) noteFilterChange(l *uistate.List) {
	m.errMsg = ""
	m.forceClearInfo()
	events.Filter.Update(l.ID, l.Filter, len(l.Items))
	l.EnsureCursorVisible(m.maxVisibleItems())
}

// filterPrompt renders the filter line with the cursor drawn over the rune
// at the cursor position. It is empty when no filter is open or applied.
func (m *Model) filterPrompt() string {
	current := m.activeList()
	if current == nil || (m.mode != ModeFilter && current.Filter == "") {
		return ""
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if m.mode != ModeFilter {
		return prompt + render(styles.Filter, current.Filter)
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	text := current.Filter
	if text == "" {
		runes := []rune(filterPlaceholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := current.FilterCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	return m.filterCursor.View()
}
