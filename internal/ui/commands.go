package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/backend"
	"github.com/atomicstack/storefront-account/internal/controller"
	"github.com/atomicstack/storefront-account/internal/logging"
	"github.com/atomicstack/storefront-account/internal/logging/events"
	"github.com/atomicstack/storefront-account/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

type profileSavedMsg struct {
	save controller.ProfileSave
	err  error
}

type addressDeletedMsg struct {
	id  int
	err error
}

type invoiceDownloadedMsg struct {
	id   string
	data []byte
	path string
	err  error
}

// execute hands a request to the command bus and tracks it on the status
// line. A busy entity is reported instead of queued.
func (m *Model) execute(req command.Request) tea.Cmd {
	cmd, err := m.bus.Execute(req)
	if err != nil {
		m.errMsg = err.Error()
		events.Action.Error(req.Label, err)
		return nil
	}
	if cmd == nil {
		return nil
	}
	m.loading++
	m.pendingLabel = req.Label
	return cmd
}

func (m *Model) finishPending() {
	if m.loading > 0 {
		m.loading--
	}
	if m.loading == 0 {
		m.pendingLabel = ""
	}
}

// profileEntity is the bus entity of the personal-details save. While it is
// in flight the form is locked.
const profileEntity = "profile"

func (m *Model) saveProfileCmd(save controller.ProfileSave) tea.Cmd {
	ctrl := m.ctrl
	cmd := m.execute(command.Request{
		Label:  "Saving personal details",
		Entity: profileEntity,
		Run: func(ctx context.Context) tea.Msg {
			return profileSavedMsg{save: save, err: ctrl.PersistPersonalDetails(ctx, save)}
		},
	})
	if cmd != nil {
		m.dispatcher.BeginMutation(backend.KindUser)
	}
	return cmd
}

func (m *Model) handleProfileSavedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(profileSavedMsg)
	if !ok {
		return nil
	}
	m.finishPending()
	closed, err := m.ctrl.ApplyPersonalDetailsSaved(result.save, result.err)
	m.dispatcher.EndMutation(backend.KindUser, time.Now())
	if err != nil {
		m.errMsg = err.Error()
		if m.form != nil {
			m.form.SetErrors(account.FieldErrors(err))
		}
		events.Action.Error("profile.save", err)
		return nil
	}
	if closed {
		m.closeForm()
	}
	m.errMsg = ""
	m.setInfo(profileSavedInfo)
	events.Action.Success("profile.save", result.save.Details.Email)
	return nil
}

func (m *Model) deleteAddressCmd(id int) tea.Cmd {
	ctrl := m.ctrl
	cmd := m.execute(command.Request{
		Label:  fmt.Sprintf("Deleting address %d", id),
		Entity: fmt.Sprintf("address:%d", id),
		Run: func(ctx context.Context) tea.Msg {
			return addressDeletedMsg{id: id, err: ctrl.DeleteAddressRemote(ctx, id)}
		},
	})
	if cmd != nil {
		m.dispatcher.BeginMutation(backend.KindAddresses)
	}
	return cmd
}

func (m *Model) handleAddressDeletedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(addressDeletedMsg)
	if !ok {
		return nil
	}
	m.finishPending()
	err := m.ctrl.ApplyAddressDeleted(result.id, result.err)
	m.dispatcher.EndMutation(backend.KindAddresses, time.Now())
	m.syncContentLists()
	if err != nil {
		m.errMsg = err.Error()
		events.Action.Error("address.delete", err)
		return nil
	}
	if m.verbose {
		m.setInfo(fmt.Sprintf("Address %d deleted", result.id))
	}
	events.Action.Success("address.delete", fmt.Sprintf("%d", result.id))
	return nil
}

func (m *Model) downloadInvoiceCmd(id string) tea.Cmd {
	if err := m.ctrl.AuthorizeInvoiceDownload(id); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	ctrl := m.ctrl
	dir := m.downloadDir
	return m.execute(command.Request{
		Label:  "Downloading " + id,
		Entity: "invoice:" + id,
		Run: func(ctx context.Context) tea.Msg {
			data, err := ctrl.FetchInvoice(ctx, id)
			if err != nil {
				return invoiceDownloadedMsg{id: id, err: err}
			}
			path := ""
			if dir != "" {
				path, err = writeInvoice(dir, id, data)
			}
			return invoiceDownloadedMsg{id: id, data: data, path: path, err: err}
		},
	})
}

func writeInvoice(dir, id string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create download dir %s", dir)
	}
	path := filepath.Join(dir, filepath.Base(id)+".txt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "write invoice %s", path)
	}
	return path, nil
}

func (m *Model) handleInvoiceDownloadedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(invoiceDownloadedMsg)
	if !ok {
		return nil
	}
	m.finishPending()
	if result.err != nil {
		m.errMsg = result.err.Error()
		logging.Error(result.err)
		events.Action.Error("invoice.download", result.err)
		return nil
	}
	events.Invoice.Download(result.id, len(result.data), result.path)
	info := fmt.Sprintf("Downloaded %s (%d bytes)", result.id, len(result.data))
	if result.path != "" {
		info += " to " + result.path
	}
	m.errMsg = ""
	m.setInfo(info)
	m.openPreview(result.id, result.data)
	return nil
}
