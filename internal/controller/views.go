package controller

import (
	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/menu"
	"github.com/atomicstack/storefront-account/internal/state"
)

// SettingsPlaceholder is the body of the settings section.
const SettingsPlaceholder = "Advanced settings and preferences will be available here soon."

// View is the projection of one section, produced by Render.
type View interface {
	Section() menu.SectionID
}

// QuickAction is a dashboard shortcut into another section.
type QuickAction struct {
	Label  string
	Target menu.SectionID
}

var quickActions = []QuickAction{
	{Label: "View Order History", Target: menu.SectionOrders},
	{Label: "Edit Profile", Target: menu.SectionPersonal},
}

type DashboardView struct {
	Summary      account.Summary
	QuickActions []QuickAction
}

func (DashboardView) Section() menu.SectionID { return menu.SectionDashboard }

type OrdersView struct {
	Orders []account.Order
	// Selected is set while an order's details are open.
	Selected *account.Order
}

func (OrdersView) Section() menu.SectionID { return menu.SectionOrders }

type InvoicesView struct {
	Invoices []account.Invoice
	Count    int
}

func (InvoicesView) Section() menu.SectionID { return menu.SectionInvoices }

type PersonalView struct {
	Mode      state.EditorMode
	Committed account.PersonalDetails
	Draft     account.PersonalDetails
}

func (PersonalView) Section() menu.SectionID { return menu.SectionPersonal }

type AddressesView struct {
	Addresses []account.Address
	// Default is nil when no address carries the default flag.
	Default       *account.Address
	PendingDelete *account.Address
}

func (AddressesView) Section() menu.SectionID { return menu.SectionAddresses }

type SettingsView struct {
	Message string
}

func (SettingsView) Section() menu.SectionID { return menu.SectionSettings }
