package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/controller"
	"github.com/atomicstack/storefront-account/internal/format/table"
	"github.com/atomicstack/storefront-account/internal/menu"
	"github.com/atomicstack/storefront-account/internal/state"
	uistate "github.com/atomicstack/storefront-account/internal/ui/state"
)

const (
	headerSeparator   = " → "
	compactMenuToggle = "☰ Menu (m)"
	footerHint        = "↑/↓ move  enter select  tab focus  / filter  m menu  q quit"
	noDefaultAddress  = "No default address"
	notProvided       = "Not provided"
)

var quickActionKeys = map[menu.SectionID]string{
	menu.SectionOrders:   "o",
	menu.SectionPersonal: "p",
}

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.isCompact() {
		body = renderLines(applyWidth(m.compactLines(), m.width))
	} else {
		side := renderLines(applyWidth(m.sidebarLines(), sidebarWidth-1))
		side = styles.Sidebar.Copy().Width(sidebarWidth).Render(side)
		content := styles.Content.Render(renderLines(applyWidth(m.contentLines(), m.contentWidth())))
		body = lipgloss.JoinHorizontal(lipgloss.Top, side, content)
	}

	lines := []styledLine{{text: m.headerText(), style: styles.Header}}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, styledLine{text: line, raw: true})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footerHint, style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (status + filter prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottom := applyWidth([]styledLine{
		m.statusLine(),
		{text: m.filterPrompt(), raw: true},
	}, m.width)
	lines = append(lines, bottom...)
	return renderLines(lines)
}

func (m *Model) headerText() string {
	section, ok := m.ctrl.Registry().Find(m.ctrl.ActiveSection())
	if !ok {
		section, _ = m.ctrl.Registry().Find(menu.SectionDashboard)
	}
	return appTitle + headerSeparator + section.Label
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.loading > 0:
		return styledLine{text: m.pendingLabel + "…", style: styles.Loading}
	}
	if warn, msg := m.hasBackendIssue(); warn {
		return styledLine{text: "Refresh failed: " + msg, style: styles.Muted}
	}
	return styledLine{}
}

func (m *Model) compactLines() []styledLine {
	if m.ctrl.SidebarOpen() {
		return m.sidebarLines()
	}
	lines := []styledLine{{text: compactMenuToggle, style: styles.Muted}, {}}
	return append(lines, m.contentLines()...)
}

func (m *Model) sidebarLines() []styledLine {
	focused := m.sidebarFocused()
	lines := make([]styledLine, 0, len(m.sidebar.Items))
	for idx, item := range m.sidebar.Items {
		label := item.Label
		if section, ok := m.ctrl.Registry().Find(menu.SectionID(item.ID)); ok {
			if icon := menu.Icon(section.Icon); icon != "" {
				label = icon + " " + label
			}
		}
		selected := idx == m.sidebar.Cursor && focused
		active := menu.SectionID(item.ID) == m.ctrl.ActiveSection()
		line := itemLine(label, selected)
		if active && !selected {
			line.style = styles.Title
		}
		lines = append(lines, line)
	}
	return lines
}

func (m *Model) contentWidth() int {
	if m.isCompact() {
		return m.width
	}
	if m.width <= 0 {
		return 0
	}
	w := m.width - sidebarWidth - 2
	if w < 10 {
		return 10
	}
	return w
}

// contentLines renders the controller's projection of the active section.
func (m *Model) contentLines() []styledLine {
	if m.mode == ModePreview && m.preview != nil {
		return m.previewLines()
	}
	switch view := m.ctrl.Render().(type) {
	case controller.DashboardView:
		return m.dashboardLines(view)
	case controller.OrdersView:
		if view.Selected != nil {
			return orderDetailLines(*view.Selected)
		}
		return m.ordersLines()
	case controller.InvoicesView:
		return m.invoicesLines(view)
	case controller.PersonalView:
		return m.personalLines(view)
	case controller.AddressesView:
		return m.addressesLines(view)
	case controller.SettingsView:
		return []styledLine{{text: "Settings", style: styles.Title}, {}, {text: view.Message, style: styles.Muted}}
	}
	return nil
}

func (m *Model) dashboardLines(view controller.DashboardView) []styledLine {
	lines := []styledLine{
		{text: fmt.Sprintf("Welcome back, %s!", view.Summary.FirstName), style: styles.Title},
		{},
	}
	rows := [][]string{
		{"Total Orders", fmt.Sprintf("%d", view.Summary.TotalOrders)},
		{"Last Order Status", view.Summary.LastOrderStatus},
		{"Saved Addresses", fmt.Sprintf("%d", view.Summary.SavedAddressCount)},
	}
	for _, row := range table.Format(rows, nil) {
		lines = append(lines, styledLine{text: row, style: styles.Value})
	}
	if len(view.QuickActions) > 0 {
		lines = append(lines, styledLine{}, styledLine{text: "Quick Actions", style: styles.Label})
		for _, action := range view.QuickActions {
			lines = append(lines, styledLine{text: fmt.Sprintf("  [%s] %s", quickActionKeys[action.Target], action.Label), style: styles.Item})
		}
	}
	return lines
}

func (m *Model) ordersLines() []styledLine {
	l := m.lists[menu.SectionOrders]
	lines := []styledLine{{text: "Order History", style: styles.Title}, {}}
	if len(l.Items) == 0 {
		return append(lines, emptyListLine(l, "No orders yet"))
	}
	visible, offset := l.Window(m.maxVisibleItems())
	rows := make([][]string, 0, len(visible))
	for _, item := range visible {
		order, _ := m.ctrl.Orders().Find(item.ID)
		rows = append(rows, []string{
			order.ID,
			order.Date.Format(account.DateLayout),
			order.Status.Label(),
			fmt.Sprintf("%d", order.ItemCount()),
			fmt.Sprintf("$%.2f", order.Total),
		})
	}
	align := []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight}
	return append(lines, m.tableLines([]string{"Order", "Date", "Status", "Items", "Total"}, rows, align, l, offset)...)
}

func orderDetailLines(order account.Order) []styledLine {
	status := styles.Status(string(order.Status)).Render(order.Status.Label())
	lines := []styledLine{
		{text: "Order " + order.ID, style: styles.Title},
		{},
	}
	rows := [][]string{
		{"Date", order.Date.Format(account.DateLayout)},
		{"Status", status},
		{"Total", fmt.Sprintf("$%.2f", order.Total)},
		{"Items", fmt.Sprintf("%d", order.ItemCount())},
	}
	for _, row := range table.Format(rows, nil) {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	if len(order.Items) > 0 {
		itemRows := make([][]string, 0, len(order.Items))
		for _, item := range order.Items {
			itemRows = append(itemRows, []string{item.Name, fmt.Sprintf("%d", item.Quantity), fmt.Sprintf("$%.2f", item.Price)})
		}
		lines = append(lines, styledLine{})
		align := []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignRight}
		for _, row := range table.WithHeader([]string{"Item", "Qty", "Price"}, itemRows, align) {
			lines = append(lines, styledLine{text: row, style: styles.Value})
		}
	}
	lines = append(lines,
		styledLine{},
		styledLine{text: "Refund eligible: " + yesNo(order.RefundEligible()), style: styles.Label},
		styledLine{text: "Cancel eligible: " + yesNo(order.CancelEligible()), style: styles.Label},
		styledLine{},
		styledLine{text: "esc back", style: styles.Footer},
	)
	return lines
}

func (m *Model) invoicesLines(view controller.InvoicesView) []styledLine {
	l := m.lists[menu.SectionInvoices]
	lines := []styledLine{{text: fmt.Sprintf("Invoices (%d)", view.Count), style: styles.Title}, {}}
	if len(l.Items) == 0 {
		return append(lines, emptyListLine(l, "No invoices yet"))
	}
	visible, offset := l.Window(m.maxVisibleItems())
	rows := make([][]string, 0, len(visible))
	for _, item := range visible {
		inv, _ := m.ctrl.Invoices().Find(item.ID)
		rows = append(rows, []string{
			inv.ID,
			inv.OrderID,
			inv.Date.Format(account.DateLayout),
			fmt.Sprintf("$%.2f", inv.Amount),
			inv.Status,
		})
	}
	align := []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignLeft}
	lines = append(lines, m.tableLines([]string{"Invoice", "Order", "Date", "Amount", "Status"}, rows, align, l, offset)...)
	return append(lines, styledLine{}, styledLine{text: "enter download", style: styles.Footer})
}

func (m *Model) personalLines(view controller.PersonalView) []styledLine {
	if view.Mode == state.ModeEditing && m.form != nil {
		return m.form.viewLines(m.bus.InFlight(profileEntity))
	}
	phone := view.Committed.Phone
	if phone == "" {
		phone = notProvided
	}
	rows := [][]string{
		{fieldLabels[state.FieldFirstName], view.Committed.FirstName},
		{fieldLabels[state.FieldLastName], view.Committed.LastName},
		{fieldLabels[state.FieldEmail], view.Committed.Email},
		{fieldLabels[state.FieldPhone], phone},
	}
	lines := []styledLine{{text: "Personal Details", style: styles.Title}, {}}
	for _, row := range table.Format(rows, nil) {
		lines = append(lines, styledLine{text: row, style: styles.Value})
	}
	return append(lines, styledLine{}, styledLine{text: "e edit", style: styles.Footer})
}

func (m *Model) addressesLines(view controller.AddressesView) []styledLine {
	l := m.lists[menu.SectionAddresses]
	lines := []styledLine{{text: "Addresses", style: styles.Title}}
	if view.Default != nil {
		lines = append(lines, styledLine{text: "Default: " + view.Default.Type + ", " + view.Default.Street, style: styles.Label})
	} else {
		lines = append(lines, styledLine{text: noDefaultAddress, style: styles.Muted})
	}
	lines = append(lines, styledLine{})
	if len(l.Items) == 0 {
		lines = append(lines, emptyListLine(l, "No saved addresses"))
	} else {
		visible, offset := l.Window(m.maxVisibleItems())
		rows := make([][]string, 0, len(visible))
		for _, item := range visible {
			id, _ := strconv.Atoi(item.ID)
			addr, _ := m.ctrl.Addresses().Find(id)
			kind := addr.Type
			if addr.IsDefault {
				kind += " (Default)"
			}
			rows = append(rows, []string{kind, addr.Name, addr.Street, addr.Locality()})
		}
		lines = append(lines, m.tableLines([]string{"Type", "Name", "Street", "City"}, rows, nil, l, offset)...)
	}
	if m.mode == ModeConfirm && view.PendingDelete != nil {
		lines = append(lines, styledLine{})
		for _, line := range strings.Split(m.viewConfirmModal(*view.PendingDelete, m.contentWidth()), "\n") {
			lines = append(lines, styledLine{text: line, raw: true})
		}
		return lines
	}
	return append(lines, styledLine{}, styledLine{text: "d delete", style: styles.Footer})
}

// tableLines lays out a list section as a table whose body rows carry the
// cursor indicator. offset is the list index of the first row.
func (m *Model) tableLines(header []string, rows [][]string, align []table.Alignment, l *uistate.List, offset int) []styledLine {
	formatted := table.WithHeader(header, rows, align)
	lines := make([]styledLine, 0, len(formatted))
	focused := !m.sidebarFocused()
	for i, row := range formatted {
		if i < 2 {
			lines = append(lines, styledLine{text: "  " + row, style: styles.Header})
			continue
		}
		idx := offset + i - 2
		lines = append(lines, itemLine(row, focused && idx == l.Cursor))
	}
	return lines
}

// itemLine builds a list row with the ▌ indicator.
func itemLine(label string, selected bool) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	return styledLine{
		text:          "▌ " + label,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func emptyListLine(l *uistate.List, empty string) styledLine {
	if l.Filter != "" {
		return styledLine{text: fmt.Sprintf("No matches for %q", l.Filter), style: styles.Info}
	}
	return styledLine{text: empty, style: styles.Muted}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if l := m.activeList(); l != nil {
		l.EnsureCursorVisible(m.maxVisibleItems())
	}
	if m.preview != nil {
		m.preview.vp.Width, m.preview.vp.Height = m.previewSize(m.preview.vp.TotalLineCount())
	}
	return nil
}

// maxVisibleItems is the number of list rows that fit under the section
// title and table header.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + status + filter prompt
	used += 6 // title, default line, blank, table header, rule, hint
	if m.isCompact() {
		used += 2
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if w := lipgloss.Width(text); w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
