package list

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"fundesk/internal/api"
	"fundesk/internal/models"
	"fundesk/internal/query"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fundPage(names ...string) *api.Page[models.Fund] {
	funds := make([]models.Fund, len(names))
	for i, name := range names {
		funds[i] = models.Fund{ID: i + 1, Name: name}
	}
	return &api.Page[models.Fund]{
		Data: funds,
		Meta: api.Meta{Total: len(funds), CurrentPage: 1, PerPage: 10, LastPage: 1},
	}
}

func TestLoadCommitsPage(t *testing.T) {
	h := query.New(query.Values{"q": ""})
	c := New(context.Background(), h, func(ctx context.Context, v query.Values) (*api.Page[models.Fund], error) {
		return fundPage("Zorgfonds"), nil
	})
	defer c.Close()

	c.Load()
	c.Wait()

	snap := c.Snapshot()
	if snap.State != Loaded {
		t.Fatalf("state = %v, want Loaded", snap.State)
	}
	if len(snap.Page.Data) != 1 || snap.Page.Data[0].Name != "Zorgfonds" {
		t.Errorf("page = %+v", snap.Page)
	}
}

func TestStaleResultIsDiscarded(t *testing.T) {
	h := query.New(query.Values{"q": ""})

	release := map[string]chan struct{}{
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}
	c := New(context.Background(), h, func(ctx context.Context, v query.Values) (*api.Page[models.Fund], error) {
		q := v["q"].(string)
		<-release[q]
		return fundPage(q), nil
	})
	defer c.Close()

	var mu sync.Mutex
	var commits []Snapshot[models.Fund]
	c.OnCommit(func(s Snapshot[models.Fund]) {
		if s.State == Loaded {
			mu.Lock()
			commits = append(commits, s)
			mu.Unlock()
		}
	})

	h.Update(query.Values{"q": "first"})
	h.Update(query.Values{"q": "second"})

	// Fetch #2 resolves first; stale fetch #1 resolves afterwards.
	close(release["second"])
	time.Sleep(20 * time.Millisecond)
	close(release["first"])
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(commits) != 1 {
		t.Fatalf("committed %d loads, want 1 (stale result must be dropped)", len(commits))
	}
	if commits[0].Page.Data[0].Name != "second" {
		t.Errorf("committed %q, want the newest query's result", commits[0].Page.Data[0].Name)
	}
	if got := c.Snapshot().Page.Data[0].Name; got != "second" {
		t.Errorf("final page = %q, want %q", got, "second")
	}
}

func TestRetrySupersedesInFlightFetch(t *testing.T) {
	h := query.New(query.Values{"q": ""})

	// Two fetches of the same, unchanged query. The first resolves last.
	release := []chan struct{}{make(chan struct{}), make(chan struct{})}
	names := []string{"old", "new"}
	started := make(chan int, 2)
	var mu sync.Mutex
	var calls int
	c := New(context.Background(), h, func(ctx context.Context, v query.Values) (*api.Page[models.Fund], error) {
		mu.Lock()
		n := calls
		calls++
		mu.Unlock()
		started <- n
		<-release[n]
		return fundPage(names[n]), nil
	})
	defer c.Close()

	c.Load()
	<-started
	c.Retry()
	<-started

	close(release[1])
	time.Sleep(20 * time.Millisecond)
	close(release[0])
	c.Wait()

	if got := c.Snapshot().Page.Data[0].Name; got != "new" {
		t.Errorf("displayed %q, want %q (superseded fetch must not commit)", got, "new")
	}
}

func TestErroredThenRetry(t *testing.T) {
	h := query.New(query.Values{"q": ""})

	var fail = true
	c := New(context.Background(), h, func(ctx context.Context, v query.Values) (*api.Page[models.Fund], error) {
		if fail {
			return nil, &api.NetworkError{Err: errors.New("connection refused")}
		}
		return fundPage("Zorgfonds"), nil
	})
	defer c.Close()

	c.Load()
	c.Wait()
	if snap := c.Snapshot(); snap.State != Errored || snap.Err == nil {
		t.Fatalf("state = %v err = %v, want Errored with error", snap.State, snap.Err)
	}

	fail = false
	c.Retry()
	c.Wait()
	if snap := c.Snapshot(); snap.State != Loaded {
		t.Fatalf("state after retry = %v, want Loaded", snap.State)
	}
}

func TestQueryChangeLeavesErroredState(t *testing.T) {
	h := query.New(query.Values{"q": ""})

	var fail = true
	c := New(context.Background(), h, func(ctx context.Context, v query.Values) (*api.Page[models.Fund], error) {
		if fail {
			return nil, errors.New("boom")
		}
		return fundPage("Zorgfonds"), nil
	})
	defer c.Close()

	c.Load()
	c.Wait()

	fail = false
	h.Update(query.Values{"q": "zorg"})
	c.Wait()

	if snap := c.Snapshot(); snap.State != Loaded || snap.Err != nil {
		t.Fatalf("state = %v err = %v, want Loaded without error", snap.State, snap.Err)
	}
}

func TestCloseMakesLateCompletionsNoOps(t *testing.T) {
	h := query.New(query.Values{"q": ""})

	release := make(chan struct{})
	c := New(context.Background(), h, func(ctx context.Context, v query.Values) (*api.Page[models.Fund], error) {
		<-release
		return fundPage("late"), nil
	})

	var commits int
	c.OnCommit(func(s Snapshot[models.Fund]) {
		if s.State == Loaded {
			commits++
		}
	})

	c.Load()
	c.Close()
	close(release)
	c.Wait()

	if commits != 0 {
		t.Errorf("a completion after teardown mutated state (%d commits)", commits)
	}
	if snap := c.Snapshot(); snap.Page != nil {
		t.Errorf("page committed after close: %+v", snap.Page)
	}
}

func TestSubmitGuardRejectsConcurrentSubmit(t *testing.T) {
	var g SubmitGuard

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int

	done := make(chan error, 1)
	go func() {
		done <- g.Do(func() error {
			calls++
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	if err := g.Do(func() error { calls++; return nil }); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("second submit: err = %v, want ErrSubmitInFlight", err)
	}
	if !g.Busy() {
		t.Error("guard not busy while submission in flight")
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("first submit failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no duplicate network call)", calls)
	}

	// After resolution the guard accepts again.
	if err := g.Do(func() error { return nil }); err != nil {
		t.Errorf("submit after resolution: %v", err)
	}
}
