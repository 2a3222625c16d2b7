package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/storefront-account/internal/backend"
	"github.com/atomicstack/storefront-account/internal/controller"
	"github.com/atomicstack/storefront-account/internal/data/dispatcher"
	"github.com/atomicstack/storefront-account/internal/menu"
	"github.com/atomicstack/storefront-account/internal/theme"
	"github.com/atomicstack/storefront-account/internal/ui/command"
	uistate "github.com/atomicstack/storefront-account/internal/ui/state"
)

// Mode is the input mode of the console.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeFilter
	ModeEdit
	ModeConfirm
	ModePreview
)

// Focus names the pane that receives movement keys.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusContent
)

const (
	defaultCompactWidth = 72
	sidebarWidth        = 24
	appTitle            = "My Account"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model. Only Controller is required; the remaining
// collaborators are derived from it when left nil.
type Options struct {
	Controller   *controller.Controller
	Dispatcher   *dispatcher.Dispatcher
	Bus          *command.Bus
	Watcher      *backend.Watcher
	Width        int
	Height       int
	CompactWidth int
	ShowFooter   bool
	Verbose      bool
	DownloadDir  string
}

// Model implements the Bubble Tea model for the account console.
type Model struct {
	ctrl       *controller.Controller
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus

	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string

	mode    Mode
	focus   Focus
	sidebar *uistate.List
	lists   map[menu.SectionID]*uistate.List
	form    *PersonalForm
	preview *invoicePreview

	filterCursor cursor.Model

	loading      int
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time

	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	compactWidth int
	showFooter   bool
	verbose      bool
	downloadDir  string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around the controller.
func NewModel(opts Options) *Model {
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = controller.New(controller.Deps{})
	}
	disp := opts.Dispatcher
	if disp == nil {
		disp = dispatcher.New(ctrl.Session(), ctrl.Editor(), ctrl.Orders(), ctrl.Invoices(), ctrl.Addresses())
	}
	bus := opts.Bus
	if bus == nil {
		bus = command.New(context.Background(), 0)
	}
	compact := opts.CompactWidth
	if compact <= 0 {
		compact = defaultCompactWidth
	}
	m := &Model{
		ctrl:         ctrl,
		dispatcher:   disp,
		bus:          bus,
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		mode:         ModeBrowse,
		focus:        FocusSidebar,
		sidebar:      uistate.NewList("sidebar", nil),
		lists: map[menu.SectionID]*uistate.List{
			menu.SectionOrders:    uistate.NewList(string(menu.SectionOrders), nil),
			menu.SectionInvoices:  uistate.NewList(string(menu.SectionInvoices), nil),
			menu.SectionAddresses: uistate.NewList(string(menu.SectionAddresses), nil),
		},
		compactWidth: compact,
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		downloadDir:  opts.DownloadDir,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	c.SetMode(cursor.CursorStatic)
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.syncSidebar()
	m.syncContentLists()
	m.ensureActiveVisible()
	m.registerHandlers()
	return m
}

// Controller exposes the underlying view-state machine.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Mode reports the current input mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, finishUpdate(cmds)
}

// handleActiveForm gives the open form or modal the first look at key
// presses. Result messages always fall through to their handlers.
func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	if key.Type == tea.KeyCtrlC {
		return true, tea.Quit
	}
	switch m.mode {
	case ModeEdit:
		return m.handlePersonalForm(key)
	case ModeConfirm:
		return true, m.handleConfirmKey(key)
	case ModePreview:
		return true, m.handlePreviewKey(key)
	case ModeFilter:
		return true, m.handleFilterKey(key)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
		reflect.TypeOf(profileSavedMsg{}):      m.handleProfileSavedMsg,
		reflect.TypeOf(addressDeletedMsg{}):    m.handleAddressDeletedMsg,
		reflect.TypeOf(invoiceDownloadedMsg{}): m.handleInvoiceDownloadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
