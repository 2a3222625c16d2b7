package account

import "context"

// ProfileService owns the committed user record.
type ProfileService interface {
	GetUser(ctx context.Context) (User, error)
	// UpdateUser replaces all four personal-details fields at once.
	UpdateUser(ctx context.Context, details PersonalDetails) error
}

// OrderService lists orders newest-first.
type OrderService interface {
	ListOrders(ctx context.Context, userID string) ([]Order, error)
}

// InvoiceService lists and renders invoices.
type InvoiceService interface {
	ListInvoices(ctx context.Context, userID string) ([]Invoice, error)
	DownloadInvoice(ctx context.Context, id string) ([]byte, error)
}

// AddressService lists and removes saved addresses.
type AddressService interface {
	ListAddresses(ctx context.Context, userID string) ([]Address, error)
	DeleteAddress(ctx context.Context, id int) error
}

// RoleService reports the role of the current session.
type RoleService interface {
	CurrentRole(ctx context.Context) (Role, error)
}

// DataSource bundles every collaborator the account area talks to.
type DataSource interface {
	ProfileService
	OrderService
	InvoiceService
	AddressService
	RoleService
}
