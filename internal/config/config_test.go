package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/menu"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Section != menu.SectionDashboard {
		t.Fatalf("expected dashboard section, got %q", cfg.App.Section)
	}
	if cfg.App.CompactWidth != 72 {
		t.Fatalf("expected compact width 72, got %d", cfg.App.CompactWidth)
	}
	if cfg.App.PollInterval != 5*time.Second || cfg.App.CommandTimeout != 10*time.Second {
		t.Fatalf("unexpected durations %s/%s", cfg.App.PollInterval, cfg.App.CommandTimeout)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"STOREFRONT_ACCOUNT_ROLE=support_agent",
		"STOREFRONT_ACCOUNT_SECTION=orders",
		"STOREFRONT_ACCOUNT_WIDTH=100",
		"STOREFRONT_ACCOUNT_TRACE=true",
		"STOREFRONT_ACCOUNT_POLL=2s",
	}
	cfg, err := LoadArgs([]string{"-section", " Invoices ", "-width", "90"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Role != account.RoleSupportAgent {
		t.Fatalf("expected role from env, got %q", cfg.App.Role)
	}
	if cfg.App.Section != menu.SectionInvoices {
		t.Fatalf("expected flag section, got %q", cfg.App.Section)
	}
	if cfg.App.Width != 90 {
		t.Fatalf("expected flag width 90, got %d", cfg.App.Width)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from env")
	}
	if cfg.App.PollInterval != 2*time.Second {
		t.Fatalf("expected poll 2s, got %s", cfg.App.PollInterval)
	}
	if cfg.Flags["width"] != "90" || cfg.Flags["poll"] != "2s" {
		t.Fatalf("unexpected flags map %#v", cfg.Flags)
	}
}

func TestLoadArgsRejectsNegativeWidth(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
}

func TestLoadArgsIgnoresMalformedEnv(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"STOREFRONT_ACCOUNT_HEIGHT=tall", "STOREFRONT_ACCOUNT_POLL=soon", "garbage"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Height != 0 || cfg.App.PollInterval != 5*time.Second {
		t.Fatalf("expected fallbacks, got %d/%s", cfg.App.Height, cfg.App.PollInterval)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-section", "wishlist"}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown section to fail validation")
	}
	cfg, _ = LoadArgs([]string{"-poll", "0s"}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected zero poll interval to fail validation")
	}
}

func TestEnvFileFillsUnsetValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account.env")
	content := "STOREFRONT_ACCOUNT_ROLE=sales_manager\nSTOREFRONT_ACCOUNT_FOOTER=true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	env := []string{
		"STOREFRONT_ACCOUNT_ENV_FILE=" + path,
		"STOREFRONT_ACCOUNT_ROLE=customer",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Role != account.RoleCustomer {
		t.Fatalf("expected process env to win, got %q", cfg.App.Role)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer from env file")
	}
}

func TestEnvFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	if _, err := LoadArgs(nil, []string{"STOREFRONT_ACCOUNT_ENV_FILE=" + missing}); err == nil {
		t.Fatalf("expected explicit missing env file to fail")
	}
	merged, err := MergeDotenv([]string{"A=1"}, missing)
	if err != nil || len(merged) != 1 {
		t.Fatalf("expected implicit missing env file to be ignored, got %v/%v", merged, err)
	}
}
