package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/logging"
	"github.com/atomicstack/storefront-account/internal/menu"
)

func configureLog(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "app.log"))
	t.Cleanup(func() {
		logging.Close()
		logging.Configure("")
	})
}

func TestAssemblePrimesFromEmbeddedSeed(t *testing.T) {
	configureLog(t)
	acct, err := Assemble(context.Background(), Config{Section: menu.SectionInvoices})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	ctrl := acct.Controller
	if ctrl.ActiveSection() != menu.SectionInvoices {
		t.Fatalf("expected invoices active, got %s", ctrl.ActiveSection())
	}
	if got := len(ctrl.Invoices().Entries()); got != 3 {
		t.Fatalf("expected 3 invoices, got %d", got)
	}
	if got := ctrl.Editor().Committed().Email; got != "john.doe@example.com" {
		t.Fatalf("unexpected committed email %q", got)
	}
	data, err := ctrl.FetchInvoice(context.Background(), "INV-2024-001")
	if err != nil || len(data) == 0 {
		t.Fatalf("expected controller to reach the invoice service, got %d bytes (%v)", len(data), err)
	}
}

func TestAssembleRoleOverride(t *testing.T) {
	configureLog(t)
	acct, err := Assemble(context.Background(), Config{Role: account.RoleSupportAdmin, Section: menu.SectionOrders})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if acct.Controller.Role() != account.RoleSupportAdmin {
		t.Fatalf("expected role override, got %q", acct.Controller.Role())
	}
	if acct.Controller.ActiveSection() == menu.SectionOrders {
		t.Fatalf("management role must not start on orders")
	}
}

func TestAssembleLoadsDataFile(t *testing.T) {
	configureLog(t)
	path := filepath.Join(t.TempDir(), "account.yaml")
	doc := `user:
  id: u-9
  role: customer
  firstName: Ada
  lastName: Lovelace
  email: ada@example.com
orders: []
invoices: []
addresses: []
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	acct, err := Assemble(context.Background(), Config{DataPath: path})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if got := acct.Controller.Session().UserID(); got != "u-9" {
		t.Fatalf("expected user u-9, got %q", got)
	}
	if got := acct.Controller.Summary().FirstName; got != "Ada" {
		t.Fatalf("expected Ada, got %q", got)
	}
}

func TestAssembleMissingDataFile(t *testing.T) {
	configureLog(t)
	if _, err := Assemble(context.Background(), Config{DataPath: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing data file")
	}
}
