package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const previewHelp = "↑/↓ scroll  esc close"

// invoicePreview shows a downloaded invoice in a scrollable viewport.
type invoicePreview struct {
	id string
	vp viewport.Model
}

func (m *Model) openPreview(id string, data []byte) {
	text := strings.TrimRight(string(data), "\n")
	width, height := m.previewSize(strings.Count(text, "\n") + 1)
	vp := viewport.New(width, height)
	vp.SetContent(text)
	m.preview = &invoicePreview{id: id, vp: vp}
	m.mode = ModePreview
}

// previewSize fits the viewport into the content pane, leaving room for the
// title and help rows.
func (m *Model) previewSize(lines int) (int, int) {
	width := m.contentWidth()
	if width <= 0 {
		width = 80
	}
	height := lines
	if m.height > 0 {
		if avail := m.height - 6; avail < height {
			height = avail
		}
	}
	if height < 3 {
		height = 3
	}
	return width, height
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	if m.preview == nil {
		m.mode = ModeBrowse
		return nil
	}
	switch msg.String() {
	case "esc", "q", "enter":
		m.preview = nil
		m.mode = ModeBrowse
		return nil
	}
	var cmd tea.Cmd
	m.preview.vp, cmd = m.preview.vp.Update(msg)
	return cmd
}

func (m *Model) previewLines() []styledLine {
	if m.preview == nil {
		return nil
	}
	lines := []styledLine{{text: "Invoice " + m.preview.id, style: styles.PreviewTitle}}
	for _, line := range strings.Split(m.preview.vp.View(), "\n") {
		lines = append(lines, styledLine{text: line, style: styles.PreviewBody})
	}
	lines = append(lines, styledLine{text: previewHelp, style: styles.Footer})
	return lines
}
