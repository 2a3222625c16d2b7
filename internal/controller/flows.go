package controller

import (
	"context"

	"github.com/pkg/errors"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/logging/events"
	"github.com/atomicstack/storefront-account/internal/menu"
)

// BeginEdit opens the personal-details draft.
func (c *Controller) BeginEdit() {
	if c.editor.Editing() {
		return
	}
	c.editor.BeginEdit()
	events.Profile.BeginEdit()
}

// UpdateField changes one draft field.
func (c *Controller) UpdateField(field, value string) error {
	if err := c.editor.UpdateField(field, value); err != nil {
		return err
	}
	events.Profile.Update(field)
	return nil
}

// CancelEdit discards the draft.
func (c *Controller) CancelEdit() error {
	if err := c.editor.Cancel(); err != nil {
		return err
	}
	events.Profile.Cancel("user")
	return nil
}

// ProfileSave is a validated record on its way to the profile service,
// bound to the edit session it was submitted from.
type ProfileSave struct {
	Details account.PersonalDetails
	session int
}

// SubmitPersonalDetails validates the draft and returns the normalised record
// to persist. The editor stays in editing mode.
func (c *Controller) SubmitPersonalDetails() (ProfileSave, error) {
	events.Profile.Submit()
	details, err := c.editor.Submit()
	if err != nil {
		if fields := account.FieldErrors(err); len(fields) > 0 {
			events.Profile.Invalid(fields)
		}
		return ProfileSave{}, err
	}
	return ProfileSave{Details: details, session: c.editor.Session()}, nil
}

// PersistPersonalDetails sends a submitted record to the profile service. It
// touches no controller state and may run off the event loop.
func (c *Controller) PersistPersonalDetails(ctx context.Context, save ProfileSave) error {
	if c.source == nil {
		return nil
	}
	return c.source.UpdateUser(ctx, save.Details)
}

// ApplyPersonalDetailsSaved records the outcome of PersistPersonalDetails. A
// failure leaves the editor and draft untouched. On success the record
// becomes the committed one; the editor closes only if it is still in the
// session that submitted it with an unchanged draft, and reports that.
func (c *Controller) ApplyPersonalDetailsSaved(save ProfileSave, err error) (bool, error) {
	if err != nil {
		return false, errors.WithMessage(err, "update personal details")
	}
	if c.editor.Editing() && c.editor.Session() == save.session && c.editor.Draft().Normalize() == save.Details {
		if err := c.editor.Commit(save.Details); err != nil {
			return false, err
		}
		events.Profile.Commit(save.Details.Email)
		return true, nil
	}
	c.editor.SetCommitted(save.Details)
	events.Profile.Stale(save.session, c.editor.Session())
	return false, nil
}

// RequestAddressDelete stages an address for deletion pending confirmation.
func (c *Controller) RequestAddressDelete(id int) error {
	if !c.CanNavigate(menu.SectionAddresses) {
		return account.ErrUnauthorized
	}
	if _, ok := c.addresses.Find(id); !ok {
		return errors.WithMessagef(account.ErrAddressNotFound, "address %d", id)
	}
	c.pendingDelete = id
	c.hasPending = true
	events.Address.DeletePrompt(id)
	return nil
}

// PendingAddressDelete returns the address awaiting confirmation.
func (c *Controller) PendingAddressDelete() (account.Address, bool) {
	if !c.hasPending {
		return account.Address{}, false
	}
	return c.addresses.Find(c.pendingDelete)
}

// CancelAddressDelete drops the pending request.
func (c *Controller) CancelAddressDelete() {
	if !c.hasPending {
		return
	}
	events.Address.DeleteCancel(c.pendingDelete)
	c.hasPending = false
	c.pendingDelete = 0
}

// ConfirmAddressDelete clears the pending request and returns its id so the
// caller can perform the deletion.
func (c *Controller) ConfirmAddressDelete() (int, bool) {
	if !c.hasPending {
		return 0, false
	}
	id := c.pendingDelete
	c.hasPending = false
	c.pendingDelete = 0
	events.Address.DeleteConfirm(id)
	return id, true
}

// RemoveAddress deletes the address from the local store. The default flag is
// never reassigned. It reports whether anything was removed.
func (c *Controller) RemoveAddress(id int) bool {
	addr, found := c.addresses.Find(id)
	if !c.addresses.Delete(id) {
		return false
	}
	events.Address.Deleted(id, found && addr.IsDefault, c.addresses.Len())
	return true
}

// DeleteAddressRemote asks the address service to delete a confirmed
// address. It touches no controller state and may run off the event loop.
func (c *Controller) DeleteAddressRemote(ctx context.Context, id int) error {
	if c.source == nil {
		return nil
	}
	return c.source.DeleteAddress(ctx, id)
}

// ApplyAddressDeleted records the outcome of DeleteAddressRemote. Success
// removes the address locally. A not-found answer also removes the stale
// local entry and is returned so the caller can show it inline. Other
// failures leave the list unchanged.
func (c *Controller) ApplyAddressDeleted(id int, err error) error {
	if err != nil {
		if account.IsCode(err, account.CodeNotFound) {
			c.RemoveAddress(id)
		}
		return errors.WithMessagef(err, "delete address %d", id)
	}
	c.RemoveAddress(id)
	return nil
}
