// Package testutil holds helpers shared by package tests: golden file
// comparison and an account wired to the embedded fixture.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/backend"
	"github.com/atomicstack/storefront-account/internal/controller"
	"github.com/atomicstack/storefront-account/internal/data/dispatcher"
	"github.com/atomicstack/storefront-account/internal/data/fixture"
	"github.com/atomicstack/storefront-account/internal/menu"
	"github.com/atomicstack/storefront-account/internal/state"
)

// Account bundles a fixture source with a controller whose stores have been
// primed from it.
type Account struct {
	Source     *fixture.Source
	Controller *controller.Controller
	Dispatcher *dispatcher.Dispatcher
}

// NewAccount loads the embedded seed, applies role when it is non-empty and
// primes the stores with one snapshot.
func NewAccount(t *testing.T, role account.Role, opts ...fixture.Option) *Account {
	t.Helper()
	src := fixture.Default(opts...)
	if role != "" {
		src.SetRole(role)
	}
	return NewAccountFrom(t, src)
}

// NewAccountFrom wires fresh stores to src and primes them with one snapshot.
func NewAccountFrom(t *testing.T, src *fixture.Source) *Account {
	t.Helper()
	session := state.NewSessionStore(src.UserID(), account.RoleCustomer)
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
	d := dispatcher.New(session, editor, orders, invoices, addresses)
	for _, evt := range backend.Snapshot(context.Background(), src, src.UserID()) {
		require.NoError(t, evt.Err, "prime %s", evt.Kind)
		d.Handle(evt)
	}
	return &Account{Source: src, Controller: ctrl, Dispatcher: d}
}
