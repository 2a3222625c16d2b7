// Package fixture provides an in-memory account.DataSource loaded from YAML.
// The embedded seed mirrors the storefront's demo account.
package fixture

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/format/table"
)

//go:embed seed.yaml
var seed []byte

// Document is the on-disk fixture layout.
type Document struct {
	User      account.User      `yaml:"user"`
	Orders    []account.Order   `yaml:"orders"`
	Invoices  []account.Invoice `yaml:"invoices"`
	Addresses []account.Address `yaml:"addresses"`
}

// Source serves a Document through the account service interfaces. It is
// safe for concurrent use.
type Source struct {
	mu      sync.RWMutex
	doc     Document
	latency time.Duration
}

var _ account.DataSource = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithLatency delays every call, honouring context cancellation.
func WithLatency(d time.Duration) Option {
	return func(s *Source) {
		s.latency = d
	}
}

// New wraps an already decoded document.
func New(doc Document, opts ...Option) *Source {
	s := &Source{doc: cloneDocument(doc)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse decodes a YAML document.
func Parse(data []byte, opts ...Option) (*Source, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode fixture")
	}
	if strings.TrimSpace(doc.User.ID) == "" {
		return nil, errors.New("decode fixture: user.id is required")
	}
	if doc.User.Role == "" {
		doc.User.Role = account.RoleCustomer
	}
	return New(doc, opts...), nil
}

// Load reads a YAML fixture file.
func Load(path string, opts ...Option) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read fixture %s", path)
	}
	src, err := Parse(data, opts...)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return src, nil
}

// Default returns a source backed by the embedded seed.
func Default(opts ...Option) *Source {
	src, err := Parse(seed, opts...)
	if err != nil {
		panic(fmt.Sprintf("embedded fixture: %v", err))
	}
	return src
}

// Open loads path, or the embedded seed when path is empty.
func Open(path string, opts ...Option) (*Source, error) {
	if strings.TrimSpace(path) == "" {
		return Default(opts...), nil
	}
	return Load(path, opts...)
}

// UserID returns the id of the fixture's signed-in user.
func (s *Source) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.User.ID
}

// SetRole changes the role reported by CurrentRole.
func (s *Source) SetRole(role account.Role) {
	s.mu.Lock()
	s.doc.User.Role = role
	s.mu.Unlock()
}

// Snapshot returns a copy of the current document.
func (s *Source) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDocument(s.doc)
}

func (s *Source) GetUser(ctx context.Context) (account.User, error) {
	if err := s.wait(ctx); err != nil {
		return account.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.User, nil
}

func (s *Source) UpdateUser(ctx context.Context, details account.PersonalDetails) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	details = details.Normalize()
	if err := account.ValidatePersonalDetails(details); err != nil {
		return err
	}
	s.mu.Lock()
	s.doc.User.PersonalDetails = details
	s.mu.Unlock()
	return nil
}

func (s *Source) CurrentRole(ctx context.Context) (account.Role, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.User.Role, nil
}

func (s *Source) ListOrders(ctx context.Context, userID string) ([]account.Order, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDocument(Document{Orders: s.doc.Orders}).Orders, nil
}

func (s *Source) ListInvoices(ctx context.Context, userID string) ([]account.Invoice, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]account.Invoice(nil), s.doc.Invoices...), nil
}

func (s *Source) ListAddresses(ctx context.Context, userID string) ([]account.Address, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]account.Address(nil), s.doc.Addresses...), nil
}

func (s *Source) DeleteAddress(ctx context.Context, id int) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, addr := range s.doc.Addresses {
		if addr.ID != id {
			continue
		}
		next := make([]account.Address, 0, len(s.doc.Addresses)-1)
		next = append(next, s.doc.Addresses[:i]...)
		next = append(next, s.doc.Addresses[i+1:]...)
		s.doc.Addresses = next
		return nil
	}
	return errors.WithMessagef(account.ErrAddressNotFound, "address %d", id)
}

// DownloadInvoice renders the invoice and its order lines as plain text.
func (s *Source) DownloadInvoice(ctx context.Context, id string) ([]byte, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.doc.Invoices {
		if inv.ID != id {
			continue
		}
		order, _ := account.FindOrder(s.doc.Orders, inv.OrderID)
		return renderInvoice(s.doc.User, inv, order), nil
	}
	return nil, errors.WithMessagef(account.ErrInvoiceNotFound, "invoice %s", id)
}

func (s *Source) checkUser(ctx context.Context, userID string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID != s.doc.User.ID {
		return errors.WithMessagef(account.ErrUserNotFound, "user %q", userID)
	}
	return nil
}

func (s *Source) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return account.WrapError(account.CodeTransient, "fixture unavailable", err)
	}
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return account.WrapError(account.CodeTransient, "fixture unavailable", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func renderInvoice(user account.User, inv account.Invoice, order account.Order) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "INVOICE %s\n", inv.ID)
	fmt.Fprintf(&b, "Order:  %s\n", inv.OrderID)
	fmt.Fprintf(&b, "Date:   %s\n", inv.Date.Format(account.DateLayout))
	fmt.Fprintf(&b, "Status: %s\n", inv.Status)
	fmt.Fprintf(&b, "Billed: %s %s <%s>\n\n", user.FirstName, user.LastName, user.Email)
	if len(order.Items) > 0 {
		rows := make([][]string, 0, len(order.Items))
		for _, item := range order.Items {
			rows = append(rows, []string{
				item.Name,
				fmt.Sprintf("%d", item.Quantity),
				fmt.Sprintf("$%.2f", item.Price),
			})
		}
		align := []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignRight}
		for _, line := range table.WithHeader([]string{"Item", "Qty", "Price"}, rows, align) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Total:  $%.2f\n", inv.Amount)
	return []byte(b.String())
}

func cloneDocument(doc Document) Document {
	out := Document{User: doc.User}
	if len(doc.Orders) > 0 {
		out.Orders = make([]account.Order, len(doc.Orders))
		for i, order := range doc.Orders {
			out.Orders[i] = order
			out.Orders[i].Items = append([]account.OrderItem(nil), order.Items...)
		}
	}
	out.Invoices = append([]account.Invoice(nil), doc.Invoices...)
	out.Addresses = append([]account.Address(nil), doc.Addresses...)
	return out
}
