package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/menu"
	"github.com/atomicstack/storefront-account/internal/state"
)

var fieldLabels = map[string]string{
	state.FieldFirstName: "First Name",
	state.FieldLastName:  "Last Name",
	state.FieldEmail:     "Email",
	state.FieldPhone:     "Phone",
}

const (
	personalFormTitle = "Edit Personal Details"
	personalFormHelp  = "tab next field  enter save  esc cancel"
	personalFormBusy  = "saving…"
	profileSavedInfo  = "Personal details updated successfully!"
)

// PersonalForm edits the four personal-details fields.
type PersonalForm struct {
	fields []string
	inputs []textinput.Model
	focus  int
	errors map[string]string
}

// NewPersonalForm builds a form prefilled with the draft.
func NewPersonalForm(draft account.PersonalDetails) *PersonalForm {
	values := map[string]string{
		state.FieldFirstName: draft.FirstName,
		state.FieldLastName:  draft.LastName,
		state.FieldEmail:     draft.Email,
		state.FieldPhone:     draft.Phone,
	}
	f := &PersonalForm{fields: append([]string(nil), state.Fields...)}
	for _, field := range f.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.SetValue(values[field])
		ti.CursorEnd()
		f.inputs = append(f.inputs, ti)
	}
	f.setFocus(0)
	return f
}

// Update applies a key press. It reports the field whose value changed, and
// whether the user asked to submit or cancel.
func (f *PersonalForm) Update(msg tea.KeyMsg) (cmd tea.Cmd, changed string, submit, cancel bool) {
	switch msg.String() {
	case "esc":
		return nil, "", false, true
	case "enter":
		return nil, "", true, false
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return nil, "", false, false
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return nil, "", false, false
	}
	before := f.inputs[f.focus].Value()
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.inputs[f.focus].Value() != before {
		changed = f.fields[f.focus]
	}
	return cmd, changed, false, false
}

func (f *PersonalForm) setFocus(idx int) {
	n := len(f.inputs)
	if n == 0 {
		return
	}
	idx = ((idx % n) + n) % n
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
}

// Focused returns the name of the field with focus.
func (f *PersonalForm) Focused() string {
	return f.fields[f.focus]
}

// Value returns the current text of a field.
func (f *PersonalForm) Value(field string) string {
	for i, name := range f.fields {
		if name == field {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// SetErrors replaces the per-field validation messages.
func (f *PersonalForm) SetErrors(fields map[string]string) {
	f.errors = fields
}

// Errors returns the per-field validation messages.
func (f *PersonalForm) Errors() map[string]string {
	return f.errors
}

func (f *PersonalForm) viewLines(saving bool) []styledLine {
	lines := []styledLine{{text: personalFormTitle, style: styles.Title}, {}}
	for i, field := range f.fields {
		marker := "  "
		labelStyle := styles.Label
		if i == f.focus {
			marker = "> "
			labelStyle = styles.FilterPrompt
		}
		label := marker + fieldLabels[field] + ":"
		lines = append(lines, styledLine{text: labelStyle.Render(label) + " " + f.inputs[i].View(), raw: true})
		if msg, ok := f.errors[field]; ok {
			lines = append(lines, styledLine{text: "    " + fieldLabels[field] + ": " + msg, style: styles.FieldError})
		}
	}
	help := personalFormHelp
	if saving {
		help = personalFormBusy
	}
	lines = append(lines, styledLine{}, styledLine{text: help, style: styles.Footer})
	return lines
}

func (m *Model) startEdit() tea.Cmd {
	if m.ctrl.ActiveSection() != menu.SectionPersonal {
		return nil
	}
	m.ctrl.BeginEdit()
	m.form = NewPersonalForm(m.ctrl.Editor().Draft())
	m.mode = ModeEdit
	m.focus = FocusContent
	m.errMsg = ""
	return nil
}

func (m *Model) closeForm() {
	m.form = nil
	if m.mode == ModeEdit {
		m.mode = ModeBrowse
	}
}

func (m *Model) handlePersonalForm(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.form == nil {
		m.mode = ModeBrowse
		return false, nil
	}
	if m.bus.InFlight(profileEntity) {
		return true, nil
	}
	cmd, changed, submit, cancel := m.form.Update(msg)
	if cancel {
		_ = m.ctrl.CancelEdit()
		m.closeForm()
		m.errMsg = ""
		return true, nil
	}
	if changed != "" {
		if err := m.ctrl.UpdateField(changed, m.form.Value(changed)); err != nil {
			m.errMsg = err.Error()
		}
	}
	if submit {
		return true, m.submitPersonalForm()
	}
	return true, cmd
}

// submitPersonalForm validates the draft on the event loop and hands the
// normalised record to the profile service.
func (m *Model) submitPersonalForm() tea.Cmd {
	save, err := m.ctrl.SubmitPersonalDetails()
	if err != nil {
		m.form.SetErrors(account.FieldErrors(err))
		m.errMsg = validationSummary(err)
		return nil
	}
	m.form.SetErrors(nil)
	m.errMsg = ""
	return m.saveProfileCmd(save)
}

func validationSummary(err error) string {
	fields := account.FieldErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}
	names := make([]string, 0, len(fields))
	for _, field := range state.Fields {
		if _, ok := fields[field]; ok {
			names = append(names, fieldLabels[field])
		}
	}
	return "please correct " + strings.Join(names, ", ")
}
