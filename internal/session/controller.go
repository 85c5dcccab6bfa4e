// internal/session/controller.go
// Owns the lifetime of the current debate session: opens the stream,
// pushes every decoded event through the reducer in arrival order, and
// publishes an immutable snapshot after each application.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"alphaduel/internal/backend"
	"alphaduel/internal/debate"
	"alphaduel/internal/sse"
)

// Controller drives one session at a time. All state mutation happens in
// the read loop or behind the mutex; readers only ever see value
// snapshots.
type Controller struct {
	client    *backend.Client
	logger    *log.Logger
	maxRounds int

	mu     sync.Mutex
	gen    uuid.UUID
	cancel context.CancelFunc
	state  debate.State

	updates chan debate.Session
}

// New creates a controller in the idle state.
func New(client *backend.Client, maxRounds int, logger *log.Logger) *Controller {
	c := &Controller{
		client:    client,
		logger:    logger,
		maxRounds: maxRounds,
		updates:   make(chan debate.Session, 64),
	}
	c.state = idleState()
	return c
}

func idleState() debate.State {
	st := debate.NewState("", "")
	st.Session.Status = debate.StatusIdle
	return st
}

// SetMaxRounds changes the round count requested for subsequent debates.
// The in-flight session, if any, is unaffected.
func (c *Controller) SetMaxRounds(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxRounds = n
}

// Updates returns the snapshot channel. Delivery is latest-wins: under
// backpressure the oldest pending snapshot is evicted, never the newest.
func (c *Controller) Updates() <-chan debate.Session {
	return c.updates
}

// Snapshot returns the current published session state.
func (c *Controller) Snapshot() debate.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Session
}

// Start begins a new debate, superseding any in-flight session. A fresh
// generation token is minted before state is reset, so events still
// draining from the old transport can never touch the new transcript.
func (c *Controller) Start(query, symbol string) {
	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	gen := uuid.New()
	c.gen = gen
	c.cancel = cancel
	c.state = debate.NewState(query, symbol)
	rounds := c.maxRounds
	c.publishLocked()
	c.mu.Unlock()

	c.logger.Info("starting debate", "symbol", symbol, "generation", gen)

	go c.run(ctx, gen, query, symbol, rounds)
}

// Reset cancels any in-flight stream and returns to idle. Not an error:
// no message is appended and the cancelled session's remaining events are
// silently discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen = uuid.New()
	c.state = idleState()
	c.publishLocked()
}

// run is the single read loop for one session generation.
func (c *Controller) run(ctx context.Context, gen uuid.UUID, query, symbol string, rounds int) {
	body, err := c.client.Stream(ctx, backend.DebateRequest{
		Query:     query,
		Symbol:    symbol,
		MaxRounds: rounds,
	})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.fail(gen, fmt.Sprintf("Failed to reach the debate backend: %v", err))
		return
	}
	defer body.Close()

	dec := sse.NewDecoder()
	buf := make([]byte, 4096)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			for _, payload := range dec.Feed(string(buf[:n])) {
				ev, perr := debate.ParseEvent(payload)
				if perr != nil {
					// Recoverable: drop the frame, keep reading.
					c.logger.Warn("dropping malformed frame", "err", perr)
					continue
				}
				if !c.apply(gen, ev) {
					// Superseded mid-stream; stop draining.
					return
				}
			}
		}
		if readErr != nil {
			dec.End()
			if readErr == io.EOF {
				break
			}
			if ctx.Err() != nil {
				return
			}
			c.fail(gen, fmt.Sprintf("Debate stream interrupted: %v", readErr))
			return
		}
	}

	c.finish(gen)
}

// apply runs one reducer step if gen is still the active generation.
// Returns false for stale events, which are discarded without effect.
func (c *Controller) apply(gen uuid.UUID, ev debate.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return false
	}

	// First decoded event of the session moves loading -> debating.
	if c.state.Session.Status == debate.StatusLoading {
		c.state.Session.Status = debate.StatusDebating
	}

	c.state = debate.Reduce(c.state, ev)
	c.publishLocked()
	return true
}

// fail records a transport-level failure as a synthetic error message.
// Reuses the reducer's own error path so status and transcript stay
// consistent.
func (c *Controller) fail(gen uuid.UUID, msg string) {
	c.logger.Error("session failed", "err", msg)
	c.apply(gen, debate.Event{Type: debate.EventError, Content: msg})
}

// finish handles stream end without an explicit done event.
func (c *Controller) finish(gen uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	if c.state.Session.Status == debate.StatusCompleted || c.state.Session.Status == debate.StatusError {
		return
	}
	c.state = debate.Reduce(c.state, debate.Event{Type: debate.EventDone})
	c.publishLocked()
}

// publishLocked pushes the current snapshot, evicting the oldest pending
// one if the channel is full. Callers hold c.mu.
func (c *Controller) publishLocked() {
	select {
	case c.updates <- c.state.Session:
		return
	default:
	}
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- c.state.Session:
	default:
	}
}
