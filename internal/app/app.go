package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	pkgerrors "github.com/pkg/errors"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/backend"
	"github.com/atomicstack/storefront-account/internal/controller"
	"github.com/atomicstack/storefront-account/internal/data/dispatcher"
	"github.com/atomicstack/storefront-account/internal/data/fixture"
	"github.com/atomicstack/storefront-account/internal/logging"
	"github.com/atomicstack/storefront-account/internal/logging/events"
	"github.com/atomicstack/storefront-account/internal/menu"
	"github.com/atomicstack/storefront-account/internal/state"
	"github.com/atomicstack/storefront-account/internal/ui"
	"github.com/atomicstack/storefront-account/internal/ui/command"
)

// Config describes user-provided application options.
type Config struct {
	DataPath       string
	Role           account.Role
	Section        menu.SectionID
	Width          int
	Height         int
	CompactWidth   int
	ShowFooter     bool
	Verbose        bool
	PollInterval   time.Duration
	CommandTimeout time.Duration
	DownloadDir    string
}

// Account is the wired state behind the console.
type Account struct {
	Source     *fixture.Source
	Controller *controller.Controller
	Dispatcher *dispatcher.Dispatcher
}

// Assemble opens the account fixture, wires the stores and controller and
// primes them with one fetch of every service. A failed fetch leaves its store
// empty; the watcher retries it.
func Assemble(ctx context.Context, cfg Config) (*Account, error) {
	src, err := fixture.Open(cfg.DataPath)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "open account data")
	}
	if cfg.Role != "" {
		src.SetRole(cfg.Role)
	}
	userID := src.UserID()
	session := state.NewSessionStore(userID, account.RoleCustomer)
	editor := state.NewProfileEditor(account.PersonalDetails{})
	orders := state.NewOrderStore(nil)
	invoices := state.NewInvoiceStore(nil)
	addresses := state.NewAddressStore(nil)
	ctrl := controller.New(controller.Deps{
		Registry:  menu.BuildRegistry(),
		Session:   session,
		Editor:    editor,
		Addresses: addresses,
		Orders:    orders,
		Invoices:  invoices,
		Source:    src,
	})
	disp := dispatcher.New(session, editor, orders, invoices, addresses)
	for _, evt := range backend.Snapshot(ctx, src, userID) {
		if evt.Err != nil {
			logging.Error(pkgerrors.WithMessagef(evt.Err, "initial %s fetch", evt.Kind))
			continue
		}
		disp.Handle(evt)
	}
	if cfg.Section != "" {
		ctrl.SetActiveSection(cfg.Section)
	}
	return &Account{Source: src, Controller: ctrl, Dispatcher: disp}, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	acct, err := Assemble(ctx, cfg)
	if err != nil {
		return err
	}
	watcher := backend.NewWatcher(acct.Source, acct.Source.UserID(), cfg.PollInterval)
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Controller:   acct.Controller,
		Dispatcher:   acct.Dispatcher,
		Bus:          command.New(ctx, cfg.CommandTimeout),
		Watcher:      watcher,
		Width:        cfg.Width,
		Height:       cfg.Height,
		CompactWidth: cfg.CompactWidth,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		DownloadDir:  cfg.DownloadDir,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	events.App.Stop("exit")
	return err
}
