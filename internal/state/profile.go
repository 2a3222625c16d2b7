package state

import (
	"strings"

	"github.com/atomicstack/storefront-account/internal/account"
)

// EditorMode is the state of the personal-details editor.
type EditorMode int

const (
	ModeViewing EditorMode = iota
	ModeEditing
)

func (m EditorMode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "viewing"
}

// Personal-details field names accepted by UpdateField.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
)

// Fields lists the editable fields in form order.
var Fields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldPhone}

// ProfileEditor is the draft/commit state machine over the personal details.
// The committed record only ever changes as a whole.
type ProfileEditor interface {
	Mode() EditorMode
	Editing() bool
	Committed() account.PersonalDetails
	Draft() account.PersonalDetails
	BeginEdit()
	UpdateField(field, value string) error
	// Submit validates the draft without committing it. The editor stays in
	// editing mode whatever the outcome.
	Submit() (account.PersonalDetails, error)
	// Commit replaces the committed record and returns to viewing.
	Commit(details account.PersonalDetails) error
	// Session identifies the current edit session. It advances every time
	// BeginEdit opens a new draft.
	Session() int
	Cancel() error
	// SetCommitted replaces the committed record from an external refresh.
	// An open draft is left alone.
	SetCommitted(details account.PersonalDetails)
}

type profileEditor struct {
	mode      EditorMode
	session   int
	committed account.PersonalDetails
	draft     account.PersonalDetails
}

func NewProfileEditor(committed account.PersonalDetails) ProfileEditor {
	return &profileEditor{committed: committed}
}

func (p *profileEditor) Mode() EditorMode {
	return p.mode
}

func (p *profileEditor) Editing() bool {
	return p.mode == ModeEditing
}

func (p *profileEditor) Committed() account.PersonalDetails {
	return p.committed
}

// Draft returns the working copy, or the committed values while viewing.
func (p *profileEditor) Draft() account.PersonalDetails {
	if p.mode != ModeEditing {
		return p.committed
	}
	return p.draft
}

func (p *profileEditor) BeginEdit() {
	if p.mode == ModeEditing {
		return
	}
	p.draft = p.committed
	p.mode = ModeEditing
	p.session++
}

func (p *profileEditor) Session() int {
	return p.session
}

func (p *profileEditor) UpdateField(field, value string) error {
	if p.mode != ModeEditing {
		return account.ErrNotEditing
	}
	switch strings.TrimSpace(field) {
	case FieldFirstName:
		p.draft.FirstName = value
	case FieldLastName:
		p.draft.LastName = value
	case FieldEmail:
		p.draft.Email = value
	case FieldPhone:
		p.draft.Phone = value
	default:
		return account.ErrUnknownField
	}
	return nil
}

func (p *profileEditor) Submit() (account.PersonalDetails, error) {
	if p.mode != ModeEditing {
		return account.PersonalDetails{}, account.ErrNotEditing
	}
	details := p.draft.Normalize()
	if err := account.ValidatePersonalDetails(details); err != nil {
		return account.PersonalDetails{}, err
	}
	return details, nil
}

func (p *profileEditor) Commit(details account.PersonalDetails) error {
	if p.mode != ModeEditing {
		return account.ErrNotEditing
	}
	p.committed = details
	p.draft = account.PersonalDetails{}
	p.mode = ModeViewing
	return nil
}

func (p *profileEditor) Cancel() error {
	if p.mode != ModeEditing {
		return account.ErrNotEditing
	}
	p.draft = account.PersonalDetails{}
	p.mode = ModeViewing
	return nil
}

func (p *profileEditor) SetCommitted(details account.PersonalDetails) {
	p.committed = details
}
