// Package list drives the fetch lifecycle of one resource list page.
//
// Every list view follows the same machine: Unloaded until its query state
// is ready, Loading while a fetch is in flight, then Loaded with the page
// or Errored with a message. A query change from any state re-enters
// Loading, and only the result of the newest fetch may ever be committed:
// a stale response resolving late is discarded, never merged.
package list

import (
	"context"
	"sync"

	"fundesk/internal/api"
	"fundesk/internal/query"
)

// State is the lifecycle phase of a list page.
type State int

const (
	Unloaded State = iota
	Loading
	Loaded
	Errored
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// FetchFunc loads one page of the resource for the given filter values.
type FetchFunc[T any] func(ctx context.Context, values query.Values) (*api.Page[T], error)

// Snapshot is the committed view state handed to renderers. Page is nil
// until the first successful fetch resolves; renderers must branch on that
// before touching Page fields.
type Snapshot[T any] struct {
	State State
	Page  *api.Page[T]
	Err   error
}

// Controller owns the fetch lifecycle of one list page. It subscribes to
// a query.Holder and re-fetches on every update.
type Controller[T any] struct {
	holder *query.Holder
	fetch  FetchFunc[T]

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	page     *api.Page[T]
	err      error
	closed   bool
	onCommit func(Snapshot[T])

	// seq identifies the newest fetch. Every reload bumps it, whether
	// the query changed or not, so a retry racing an in-flight fetch
	// still supersedes it.
	seq uint64

	// wg tracks in-flight fetches so tests and teardown can drain them.
	wg sync.WaitGroup
}

// New creates a controller bound to the holder. The initial fetch does not
// start until Load is called, so callers can finish wiring first.
func New[T any](parent context.Context, holder *query.Holder, fetch FetchFunc[T]) *Controller[T] {
	ctx, cancel := context.WithCancel(parent)
	c := &Controller[T]{
		holder: holder,
		fetch:  fetch,
		ctx:    ctx,
		cancel: cancel,
		state:  Unloaded,
	}
	holder.OnChange(func(query.Values) { c.reload() })
	return c
}

// OnCommit registers a callback invoked after every committed transition.
// Stale or post-teardown results never reach it.
func (c *Controller[T]) OnCommit(fn func(Snapshot[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCommit = fn
}

// Snapshot returns the current committed view state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{State: c.state, Page: c.page, Err: c.err}
}

// Load issues the initial fetch.
func (c *Controller[T]) Load() { c.reload() }

// Retry re-fetches after an error without changing the query.
func (c *Controller[T]) Retry() { c.reload() }

// Close tears the page down. In-flight fetch completions become no-ops
// and the page context is cancelled.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// Wait blocks until no fetch is in flight. Test helper; view code relies
// on OnCommit instead.
func (c *Controller[T]) Wait() { c.wg.Wait() }

func (c *Controller[T]) reload() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = Loading
	c.err = nil
	c.seq++
	seq := c.seq
	values := c.holder.Values()
	notify := c.onCommit
	page := c.page
	c.mu.Unlock()

	if notify != nil {
		notify(Snapshot[T]{State: Loading, Page: page})
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		page, err := c.fetch(c.ctx, values)
		c.commit(seq, page, err)
	}()
}

// commit applies a fetch result if it is still the newest one. Last write
// wins: a result superseded by any later reload, including a retry of the
// same query, is dropped.
func (c *Controller[T]) commit(seq uint64, page *api.Page[T], err error) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.state = Errored
		c.err = err
	} else {
		c.state = Loaded
		c.page = page
		c.err = nil
	}
	snapshot := Snapshot[T]{State: c.state, Page: c.page, Err: c.err}
	notify := c.onCommit
	c.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
}
