package backend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/logging"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindUser Kind = iota
	KindRole
	KindOrders
	KindInvoices
	KindAddresses
)

var kindNames = map[Kind]string{
	KindUser:      "user",
	KindRole:      "role",
	KindOrders:    "orders",
	KindInvoices:  "invoices",
	KindAddresses: "addresses",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds lists every kind in the order they are first fetched.
var Kinds = []Kind{KindUser, KindRole, KindOrders, KindInvoices, KindAddresses}

// DefaultInterval is used when a watcher is created with a non-positive
// interval.
const DefaultInterval = 5 * time.Second

// fetchSpacing is the minimum gap between two fetches of one watcher.
const fetchSpacing = 100 * time.Millisecond

// Event conveys updated data or an error from a backend poll. Data holds
// account.User, account.Role, []account.Order, []account.Invoice or
// []account.Address depending on Kind. FetchedAt is when the fetch started;
// anything the source changed after that instant may be missing from Data.
type Event struct {
	Kind      Kind
	Data      interface{}
	Err       error
	FetchedAt time.Time
}

// Watcher polls the account services at a fixed interval and publishes events.
type Watcher struct {
	source   account.DataSource
	userID   string
	interval time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls source every interval.
func NewWatcher(source account.DataSource, userID string, interval time.Duration) *Watcher {
	return newWatcher(source, userID, interval, fetchSpacing)
}

func newWatcher(source account.DataSource, userID string, interval, spacing time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		userID:   userID,
		interval: interval,
		throttle: newThrottle(spacing),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	for _, kind := range Kinds {
		w.startPoller(kind)
	}

	logging.Info("watcher started", zap.String("user", userID), zap.Duration("interval", interval))

	go func() {
		w.wg.Wait()
		close(w.events)
		logging.Info("watcher stopped", zap.String("user", userID))
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers waiting for a fetch slot exit at once;
// one mid-fetch exits when the fetch returns. Use Wait to drain.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// Fetch performs a single fetch of kind.
func Fetch(ctx context.Context, source account.DataSource, userID string, kind Kind) Event {
	var (
		data interface{}
		err  error
	)
	started := time.Now()
	switch kind {
	case KindUser:
		data, err = source.GetUser(ctx)
	case KindRole:
		data, err = source.CurrentRole(ctx)
	case KindOrders:
		data, err = source.ListOrders(ctx, userID)
	case KindInvoices:
		data, err = source.ListInvoices(ctx, userID)
	case KindAddresses:
		data, err = source.ListAddresses(ctx, userID)
	}
	if err != nil {
		data = nil
	}
	return Event{Kind: kind, Data: data, Err: err, FetchedAt: started}
}

// Snapshot fetches every kind once, in Kinds order.
func Snapshot(ctx context.Context, source account.DataSource, userID string) []Event {
	out := make([]Event, 0, len(Kinds))
	for _, kind := range Kinds {
		out = append(out, Fetch(ctx, source, userID, kind))
	}
	return out
}

func (w *Watcher) startPoller(kind Kind) {
	w.wg.Add(1)
	go w.poll(kind)
}

func (w *Watcher) poll(kind Kind) {
	defer w.wg.Done()

	emit := func() bool {
		if w.throttle.wait(w.ctx) != nil {
			return false
		}
		evt := Fetch(w.ctx, w.source, w.userID, kind)
		if w.ctx.Err() != nil {
			return false
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
