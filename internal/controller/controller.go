// Package controller implements the account view-state machine: which section
// is active, whether the compact sidebar is open, and the personal-details and
// address-deletion flows that run inside those sections.
package controller

import (
	"context"

	"github.com/pkg/errors"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/logging/events"
	"github.com/atomicstack/storefront-account/internal/menu"
	"github.com/atomicstack/storefront-account/internal/state"
)

// Deps carries the collaborators owned or consulted by the controller. Nil
// stores are replaced with empty ones.
type Deps struct {
	Registry  *menu.Registry
	Session   state.SessionStore
	Editor    state.ProfileEditor
	Addresses state.AddressStore
	Orders    state.OrderStore
	Invoices  state.InvoiceStore
	// Source is optional; service-backed operations fail without it.
	Source account.DataSource
}

// Controller is the AccountViewController. It is not safe for concurrent use;
// every call is expected to come from the UI event loop.
type Controller struct {
	registry  *menu.Registry
	session   state.SessionStore
	editor    state.ProfileEditor
	addresses state.AddressStore
	orders    state.OrderStore
	invoices  state.InvoiceStore
	source    account.DataSource

	active        menu.SectionID
	sidebarOpen   bool
	selectedOrder string
	pendingDelete int
	hasPending    bool
}

func New(deps Deps) *Controller {
	c := &Controller{
		registry:  deps.Registry,
		session:   deps.Session,
		editor:    deps.Editor,
		addresses: deps.Addresses,
		orders:    deps.Orders,
		invoices:  deps.Invoices,
		source:    deps.Source,
		active:    menu.DefaultSection,
	}
	if c.registry == nil {
		c.registry = menu.BuildRegistry()
	}
	if c.session == nil {
		c.session = state.NewSessionStore("", account.RoleCustomer)
	}
	if c.editor == nil {
		c.editor = state.NewProfileEditor(account.PersonalDetails{})
	}
	if c.addresses == nil {
		c.addresses = state.NewAddressStore(nil)
	}
	if c.orders == nil {
		c.orders = state.NewOrderStore(nil)
	}
	if c.invoices == nil {
		c.invoices = state.NewInvoiceStore(nil)
	}
	return c
}

func (c *Controller) Registry() *menu.Registry {
	return c.registry
}

func (c *Controller) Session() state.SessionStore {
	return c.session
}

func (c *Controller) Editor() state.ProfileEditor {
	return c.editor
}

func (c *Controller) Addresses() state.AddressStore {
	return c.addresses
}

func (c *Controller) Orders() state.OrderStore {
	return c.orders
}

func (c *Controller) Invoices() state.InvoiceStore {
	return c.invoices
}

// Role is read from the session on every call so external role changes apply
// without invalidation.
func (c *Controller) Role() account.Role {
	return c.session.Role()
}

// ActiveSection returns the stored section id, which may be unregistered.
func (c *Controller) ActiveSection() menu.SectionID {
	return c.active
}

// SidebarOpen reports whether the compact-layout sidebar is showing.
func (c *Controller) SidebarOpen() bool {
	return c.sidebarOpen
}

// VisibleSections is the navigable menu for the current role.
func (c *Controller) VisibleSections() []menu.Section {
	return c.registry.VisibleSections(c.Role())
}

// CanNavigate reports whether id is registered and visible to the role.
func (c *Controller) CanNavigate(id menu.SectionID) bool {
	section, ok := c.registry.Find(id)
	return ok && section.VisibleTo(c.Role())
}

// SetActiveSection switches the active section. A registered section hidden
// from the current role is ignored. An unregistered id is stored and renders
// as the dashboard. It reports whether the active section changed.
func (c *Controller) SetActiveSection(id menu.SectionID) bool {
	section, registered := c.registry.Find(id)
	if registered && !section.VisibleTo(c.Role()) {
		events.Nav.Denied(string(id), string(c.Role()))
		return false
	}
	if !registered {
		events.Nav.Fallback(string(id))
	}
	if id == c.active {
		return false
	}
	from := c.active
	c.leaveSection(from)
	c.active = id
	events.Nav.Select(string(from), string(id))
	return true
}

// NavigateTo is the combined user transition: it always closes the sidebar and
// then applies SetActiveSection.
func (c *Controller) NavigateTo(id menu.SectionID) bool {
	if c.sidebarOpen {
		c.sidebarOpen = false
		events.Nav.Sidebar(false)
	}
	return c.SetActiveSection(id)
}

// ToggleMobileSidebar flips the sidebar flag and returns the new value.
func (c *Controller) ToggleMobileSidebar() bool {
	c.sidebarOpen = !c.sidebarOpen
	events.Nav.Sidebar(c.sidebarOpen)
	return c.sidebarOpen
}

func (c *Controller) leaveSection(from menu.SectionID) {
	if from == menu.SectionPersonal && c.editor.Editing() {
		_ = c.editor.Cancel()
		events.Profile.Cancel("navigation")
	}
	if c.hasPending {
		events.Address.DeleteCancel(c.pendingDelete)
		c.hasPending = false
		c.pendingDelete = 0
	}
	c.selectedOrder = ""
}

// Render projects the active section. Unregistered ids fall back to the
// dashboard projection.
func (c *Controller) Render() View {
	switch c.active {
	case menu.SectionOrders:
		return c.ordersView()
	case menu.SectionInvoices:
		entries := c.invoices.Entries()
		return InvoicesView{Invoices: entries, Count: len(entries)}
	case menu.SectionPersonal:
		return PersonalView{Mode: c.editor.Mode(), Committed: c.editor.Committed(), Draft: c.editor.Draft()}
	case menu.SectionAddresses:
		return c.addressesView()
	case menu.SectionSettings:
		return SettingsView{Message: SettingsPlaceholder}
	default:
		return c.dashboardView()
	}
}

// Summary derives the dashboard aggregates from current state.
func (c *Controller) Summary() account.Summary {
	return account.Summarize(c.editor.Committed(), c.orders.Entries(), c.addresses.List())
}

// QuickActions lists the dashboard shortcuts the role may follow.
func (c *Controller) QuickActions() []QuickAction {
	actions := make([]QuickAction, 0, len(quickActions))
	for _, action := range quickActions {
		if c.CanNavigate(action.Target) {
			actions = append(actions, action)
		}
	}
	return actions
}

func (c *Controller) dashboardView() DashboardView {
	return DashboardView{Summary: c.Summary(), QuickActions: c.QuickActions()}
}

func (c *Controller) ordersView() OrdersView {
	view := OrdersView{Orders: c.orders.Entries()}
	if c.selectedOrder != "" {
		if order, ok := c.orders.Find(c.selectedOrder); ok {
			view.Selected = &order
		}
	}
	return view
}

func (c *Controller) addressesView() AddressesView {
	view := AddressesView{Addresses: c.addresses.List()}
	if def, ok := c.addresses.Default(); ok {
		view.Default = &def
	}
	if pending, ok := c.PendingAddressDelete(); ok {
		view.PendingDelete = &pending
	}
	return view
}

// SelectOrder opens the details of an order in the orders section.
func (c *Controller) SelectOrder(id string) error {
	if _, ok := c.orders.Find(id); !ok {
		return errors.WithMessagef(account.ErrOrderNotFound, "order %s", id)
	}
	c.selectedOrder = id
	events.Order.Open(id)
	return nil
}

// CloseOrder returns from order details to the list.
func (c *Controller) CloseOrder() {
	if c.selectedOrder == "" {
		return
	}
	events.Order.Close(c.selectedOrder)
	c.selectedOrder = ""
}

// SelectedOrder returns the order whose details are open.
func (c *Controller) SelectedOrder() (account.Order, bool) {
	if c.selectedOrder == "" {
		return account.Order{}, false
	}
	return c.orders.Find(c.selectedOrder)
}

// FetchInvoice downloads the rendered invoice from the invoice service. It
// touches no controller state and may run off the event loop; call
// AuthorizeInvoiceDownload on the loop first.
func (c *Controller) FetchInvoice(ctx context.Context, id string) ([]byte, error) {
	if c.source == nil {
		return nil, account.NewError(account.CodeInternal, "invoice service unavailable")
	}
	data, err := c.source.DownloadInvoice(ctx, id)
	if err != nil {
		return nil, errors.WithMessagef(err, "download invoice %s", id)
	}
	return data, nil
}

// AuthorizeInvoiceDownload checks that the role may see invoices and that id
// is a listed invoice.
func (c *Controller) AuthorizeInvoiceDownload(id string) error {
	if !c.CanNavigate(menu.SectionInvoices) {
		return account.ErrUnauthorized
	}
	if _, ok := c.invoices.Find(id); !ok {
		return errors.WithMessagef(account.ErrInvoiceNotFound, "invoice %s", id)
	}
	return nil
}
