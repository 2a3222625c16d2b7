package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/logging/events"
)

// Request encapsulates a service call issued from the UI.
type Request struct {
	Label string
	// Entity scopes the one-in-flight rule, e.g. "profile" or "address:2".
	// Requests without an entity are never rejected.
	Entity string
	Run    func(ctx context.Context) tea.Msg
}

// Bus turns service calls into Bubble Tea commands, allowing at most one
// in-flight call per entity.
type Bus struct {
	ctx     context.Context
	timeout time.Duration

	mu       sync.Mutex
	inflight map[string]string
}

// New initialises a command bus. Calls derive from ctx and, when timeout is
// positive, are bounded by it.
func New(ctx context.Context, timeout time.Duration) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, timeout: timeout, inflight: make(map[string]string)}
}

// Execute reserves the request's entity and returns the command that runs it.
// The reservation is released once the command has produced its message. If
// the entity already has a call in flight, Execute returns account.ErrBusy.
func (b *Bus) Execute(req Request) (tea.Cmd, error) {
	id := uuid.NewString()
	if req.Run == nil {
		events.Command.Skip(id, req.Label)
		return nil, nil
	}
	if req.Entity != "" {
		b.mu.Lock()
		if _, busy := b.inflight[req.Entity]; busy {
			b.mu.Unlock()
			events.Command.Busy(id, req.Label, req.Entity)
			return nil, account.ErrBusy
		}
		b.inflight[req.Entity] = id
		b.mu.Unlock()
	}
	events.Command.Queue(id, req.Label, req.Entity)
	return func() tea.Msg {
		defer b.release(req.Entity, id)
		ctx, cancel := b.callContext()
		defer cancel()
		msg := req.Run(ctx)
		events.Command.Result(id, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}, nil
}

// InFlight reports whether entity has a call in progress.
func (b *Bus) InFlight(entity string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.inflight[entity]
	return ok
}

func (b *Bus) release(entity, id string) {
	if entity == "" {
		return
	}
	b.mu.Lock()
	if b.inflight[entity] == id {
		delete(b.inflight, entity)
	}
	b.mu.Unlock()
}

func (b *Bus) callContext() (context.Context, context.CancelFunc) {
	if b.timeout > 0 {
		return context.WithTimeout(b.ctx, b.timeout)
	}
	return context.WithCancel(b.ctx)
}
