// Package engine implements the game synchronization engine: it owns the
// client's BoardState, serializes actions against the remote board service
// and publishes every resolution, in order, to its subscribers.
//
// At most one remote call is outstanding at any time. Actions dispatched
// while a call is in flight wait in a bounded queue and run in arrival
// order once the engine is idle again (see Policy for the coalescing mode).
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/transport"
)

var (
	ErrNotStarted     = errors.New("engine: not started")
	ErrAlreadyStarted = errors.New("engine: already started")
	ErrClosed         = errors.New("engine: closed")
	ErrQueueFull      = errors.New("engine: action queue is full")
	ErrInvalidAction  = errors.New("engine: invalid action")
)

// Transport performs the three remote board operations.
// *transport.Client satisfies it.
type Transport interface {
	Load(ctx context.Context) (core.BoardState, error)
	Move(ctx context.Context, dir core.Direction) (core.BoardState, error)
	Reset(ctx context.Context) (core.BoardState, error)
}

// Resolution is published once per executed action.
// On failure State is the last good state and Err is set.
type Resolution struct {
	Seq    uint64
	Action core.Action
	State  core.BoardState
	Err    error
}

// OK reports whether the action succeeded.
func (r Resolution) OK() bool {
	return r.Err == nil
}

// Listener receives resolutions. It runs on the engine goroutine and
// must not block for long; it may call Dispatch.
type Listener func(Resolution)

// Config holds engine configuration.
type Config struct {
	QueueSize int    // Maximum number of waiting actions
	Policy    Policy // What to do with moves dispatched while others wait
}

// DefaultConfig returns the FIFO policy with a 64-action bound.
func DefaultConfig() Config {
	return Config{
		QueueSize: 64,
		Policy:    PolicyFIFO,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

type subscriber struct {
	id int
	fn Listener
}

// Engine is the synchronization engine. Create one per session with New.
type Engine struct {
	transport Transport
	logger    *log.Logger

	mu          sync.Mutex
	state       core.BoardState
	phase       Phase
	inFlight    *queued // Single in-flight slot, nil when idle
	queue       *actionQueue
	subscribers []subscriber
	nextSubID   int
	seq         uint64
	started     bool
	closed      bool

	settled   chan struct{} // Closed while idle with an empty queue
	isSettled bool

	wake   chan struct{}
	runCtx context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an engine in the Idle phase with an unset BoardState.
func New(t Transport, cfg Config, opts ...Option) *Engine {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyFIFO
	}

	settled := make(chan struct{})
	close(settled)

	e := &Engine{
		transport: t,
		logger:    log.New(io.Discard),
		queue:     newActionQueue(cfg.QueueSize, cfg.Policy),
		settled:   settled,
		isSettled: true,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start loads the board once and begins processing actions.
// It returns immediately; the load result is published like any other action.
// Cancelling ctx stops the engine the way Close does.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.started {
		e.mu.Unlock()
		return ErrAlreadyStarted
	}
	e.started = true

	runCtx, cancel := context.WithCancel(ctx)
	e.runCtx = runCtx
	e.cancel = cancel
	err := e.enqueueLocked(core.Init())
	e.mu.Unlock()

	if err != nil {
		cancel()
		return err
	}

	go e.run(runCtx)
	return nil
}

// Dispatch accepts an action. It never blocks on the network: the action
// runs once every previously accepted action has resolved.
func (e *Engine) Dispatch(a core.Action) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidAction, a)
	}

	e.mu.Lock()
	switch {
	case e.closed, e.runCtx != nil && e.runCtx.Err() != nil:
		e.mu.Unlock()
		return ErrClosed
	case !e.started:
		e.mu.Unlock()
		return ErrNotStarted
	}
	err := e.enqueueLocked(a)
	pending := e.queue.len()
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn("action rejected", "action", a, "pending", pending, "error", err)
		return err
	}
	return nil
}

// enqueueLocked queues an action and wakes the runner. Caller holds e.mu.
func (e *Engine) enqueueLocked(a core.Action) error {
	seq := e.seq + 1
	coalesced, err := e.queue.push(queued{seq: seq, action: a})
	if err != nil {
		return err
	}
	e.seq = seq

	if coalesced {
		e.logger.Debug("move coalesced", "action", a, "seq", seq)
	} else {
		e.logger.Debug("action queued", "action", a, "seq", seq, "pending", e.queue.len())
	}

	if e.isSettled {
		e.settled = make(chan struct{})
		e.isSettled = false
	}

	select {
	case e.wake <- struct{}{}:
	default:
	}
	return nil
}

// Subscribe registers a listener. The returned function removes it.
func (e *Engine) Subscribe(fn Listener) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers = append(e.subscribers, subscriber{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subscribers {
			if s.id == id {
				e.subscribers = append(e.subscribers[:i:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

// State returns the most recently published board.
func (e *Engine) State() core.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Phase returns whether a call is currently outstanding.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Pending returns the number of accepted actions not yet resolved,
// including the one in flight.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := e.queue.len()
	if e.inFlight != nil {
		n++
	}
	return n
}

// WaitIdle blocks until every accepted action has resolved and been published.
func (e *Engine) WaitIdle(ctx context.Context) error {
	e.mu.Lock()
	ch := e.settled
	e.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the engine. A call already in flight completes and is
// published; actions still queued are dropped.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	dropped := e.queue.drain()
	started := e.started
	cancel := e.cancel
	e.mu.Unlock()

	if len(dropped) > 0 {
		e.logger.Info("dropping queued actions", "count", len(dropped))
	}
	if !started {
		return nil
	}

	cancel()
	<-e.done

	e.mu.Lock()
	e.settleLocked()
	e.mu.Unlock()
	return nil
}

// run is the single runner goroutine.
func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	for {
		item, ok, stopped := e.begin(ctx)
		if stopped {
			return
		}
		if !ok {
			select {
			case <-e.wake:
			case <-ctx.Done():
			}
			continue
		}

		// Issued calls are never cancelled; Close waits for them instead.
		state, err := e.call(context.WithoutCancel(ctx), item.action)
		e.publish(e.finish(item, state, err))
	}
}

// begin moves Idle -> Busy with the oldest queued action.
// With nothing queued it marks the engine settled and returns false.
// Once ctx is done it closes the engine, dropping what is still queued.
func (e *Engine) begin(ctx context.Context) (item queued, ok, stopped bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ctx.Err() != nil {
		e.closed = true
		if dropped := e.queue.drain(); len(dropped) > 0 {
			e.logger.Info("dropping queued actions", "count", len(dropped), "reason", ctx.Err())
		}
		e.settleLocked()
		return queued{}, false, true
	}

	item, ok = e.queue.pop()
	if !ok {
		e.settleLocked()
		return queued{}, false, false
	}

	e.phase = PhaseBusy
	e.inFlight = &item
	return item, true, false
}

// settleLocked releases WaitIdle callers. Caller holds e.mu.
func (e *Engine) settleLocked() {
	if !e.isSettled {
		close(e.settled)
		e.isSettled = true
	}
}

// call invokes the transport operation matching the action.
func (e *Engine) call(ctx context.Context, a core.Action) (core.BoardState, error) {
	switch a.Kind() {
	case core.KindInit:
		return e.transport.Load(ctx)
	case core.KindReset:
		return e.transport.Reset(ctx)
	case core.KindMove:
		return e.transport.Move(ctx, a.Direction())
	default:
		return core.BoardState{}, ErrInvalidAction
	}
}

// finish moves Busy -> Idle, replacing the state on success.
func (e *Engine) finish(item queued, state core.BoardState, err error) Resolution {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.state
	if err == nil && !prev.IsZero() &&
		(state.Len() != prev.Len() || state.Columns() != prev.Columns()) {
		err = &transport.ProtocolError{
			Op:    item.action.Kind().String(),
			Field: "rows",
			Reason: fmt.Sprintf("board changed from %d cells x %d columns to %d x %d within a session",
				prev.Len(), prev.Columns(), state.Len(), state.Columns()),
		}
	}

	if err != nil {
		e.logger.Warn("action failed", "action", item.action, "seq", item.seq, "error", err)
	} else {
		if item.action.IsMove() && state.Score() < prev.Score() {
			e.logger.Warn("score decreased without a reset",
				"action", item.action,
				"from", prev.Score(),
				"to", state.Score(),
			)
		}
		e.state = state
		e.logger.Debug("action resolved", "action", item.action, "seq", item.seq, "score", state.Score())
	}

	e.phase = PhaseIdle
	e.inFlight = nil

	return Resolution{
		Seq:    item.seq,
		Action: item.action,
		State:  e.state,
		Err:    err,
	}
}

// publish notifies subscribers in subscription order.
func (e *Engine) publish(res Resolution) {
	e.mu.Lock()
	subs := make([]subscriber, len(e.subscribers))
	copy(subs, e.subscribers)
	e.mu.Unlock()

	for _, s := range subs {
		s.fn(res)
	}
}
