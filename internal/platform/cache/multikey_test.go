package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type skillRow struct {
	Team  string
	Score int
}

func TestMultiKey_GetBeforePopulateReturnsEmptyList(t *testing.T) {
	t.Parallel()

	c := NewMultiKey("skills", func(context.Context, Key) ([]skillRow, error) {
		t.Fatalf("Get must never fetch")
		return nil, nil
	})

	got := c.Get(NewKey(190, 1, "High School"))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
	if state := c.State(NewKey(190, 1, "High School")); state != StateEmpty {
		t.Fatalf("expected empty state, got %s", state)
	}
}

func TestMultiKey_Preload_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	c := NewMultiKey("skills", func(context.Context, Key) ([]skillRow, error) {
		calls.Add(1)
		<-release
		return []skillRow{{Team: "229V", Score: 120}}, nil
	})
	key := NewKey(190, 1, "High School")

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	results := make(chan []skillRow, workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := c.Preload(context.Background(), key)
			if err != nil {
				errCh <- err
				return
			}
			results <- v
		}()
	}

	close(start)
	waitForState(t, c, key, StatePopulating)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errCh)
	close(results)

	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}
	for v := range results {
		if len(v) != 1 || v[0].Team != "229V" {
			t.Fatalf("unexpected value: %#v", v)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("fetch called %d times, want 1", got)
	}
	if state := c.State(key); state != StatePopulated {
		t.Fatalf("expected populated state, got %s", state)
	}
}

func TestMultiKey_Preload_ReturnsCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := NewMultiKey("rankings", func(context.Context, Key) ([]skillRow, error) {
		calls.Add(1)
		return []skillRow{{Team: "1234A"}}, nil
	})
	key := NewKey(1, 51488, 1)

	for i := 0; i < 3; i++ {
		if _, err := c.Preload(context.Background(), key); err != nil {
			t.Fatalf("preload %d: %v", i, err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("fetch called %d times, want 1", got)
	}
	if got := c.Get(key); len(got) != 1 {
		t.Fatalf("expected stored value, got %#v", got)
	}
}

func TestMultiKey_Preload_FailureRevertsToEmpty(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	boom := errors.New("upstream unavailable")
	c := NewMultiKey("awards", func(context.Context, Key) ([]skillRow, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return []skillRow{{Team: "7842F"}}, nil
	})
	key := NewKey(1, 51488)

	if _, err := c.Preload(context.Background(), key); !errors.Is(err, boom) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if state := c.State(key); state != StateEmpty {
		t.Fatalf("expected empty state after failure, got %s", state)
	}

	got, err := c.Preload(context.Background(), key)
	if err != nil {
		t.Fatalf("retry preload: %v", err)
	}
	if len(got) != 1 || calls.Load() != 2 {
		t.Fatalf("expected retried fetch, calls=%d value=%#v", calls.Load(), got)
	}
}

func TestMultiKey_ForceRefresh_AlwaysFetches(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := NewMultiKey("rankings", func(context.Context, Key) ([]skillRow, error) {
		n := int(calls.Add(1))
		return []skillRow{{Team: "229V", Score: n}}, nil
	})
	key := NewKey(1, 51488, 1)

	if _, err := c.Preload(context.Background(), key); err != nil {
		t.Fatalf("preload: %v", err)
	}
	for want := 2; want <= 3; want++ {
		got, err := c.ForceRefresh(context.Background(), key)
		if err != nil {
			t.Fatalf("force refresh: %v", err)
		}
		if got[0].Score != want {
			t.Fatalf("refresh returned score=%d want=%d", got[0].Score, want)
		}
		if stored := c.Get(key); stored[0].Score != want {
			t.Fatalf("stored score=%d want=%d", stored[0].Score, want)
		}
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("fetch called %d times, want 3", got)
	}
}

func TestMultiKey_ForceRefresh_DoesNotWaitForPopulate(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var calls atomic.Int32
	c := NewMultiKey("events", func(context.Context, Key) ([]skillRow, error) {
		if calls.Add(1) == 1 {
			<-release
			return []skillRow{{Team: "old"}}, nil
		}
		return []skillRow{{Team: "new"}}, nil
	})
	key := NewKey(1, 4471, 190)

	preloadDone := make(chan []skillRow, 1)
	go func() {
		v, _ := c.Preload(context.Background(), key)
		preloadDone <- v
	}()
	waitForState(t, c, key, StatePopulating)

	got, err := c.ForceRefresh(context.Background(), key)
	if err != nil {
		t.Fatalf("force refresh: %v", err)
	}
	if got[0].Team != "new" {
		t.Fatalf("unexpected refresh value: %#v", got)
	}

	close(release)
	<-preloadDone

	if stored := c.Get(key); stored[0].Team != "new" {
		t.Fatalf("older populate result must not overwrite the refresh, got %#v", stored)
	}
	if state := c.State(key); state != StatePopulated {
		t.Fatalf("expected populated state, got %s", state)
	}
}

func TestMultiKey_ClearDiscardsValues(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := NewMultiKey("teams", func(context.Context, Key) ([]skillRow, error) {
		calls.Add(1)
		return []skillRow{{Team: "99999A"}}, nil
	})
	key := NewKey(1, 51488)

	if _, err := c.Preload(context.Background(), key); err != nil {
		t.Fatalf("preload: %v", err)
	}
	c.Clear()

	if got := c.Get(key); len(got) != 0 {
		t.Fatalf("expected empty after clear, got %#v", got)
	}
	if len(c.Entries()) != 0 {
		t.Fatalf("expected no entries after clear")
	}
	if _, err := c.Preload(context.Background(), key); err != nil {
		t.Fatalf("preload after clear: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("fetch called %d times, want 2", got)
	}
}

func TestMultiKey_UnrelatedKeysPopulateInParallel(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := NewMultiKey("skills", func(_ context.Context, key Key) ([]skillRow, error) {
		if key.Dimensions()[2] == "Middle School" {
			<-release
		}
		return []skillRow{{Team: key.Dimensions()[2]}}, nil
	})

	blocked := NewKey(190, 1, "Middle School")
	go func() { _, _ = c.Preload(context.Background(), blocked) }()
	waitForState(t, c, blocked, StatePopulating)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := c.Preload(ctx, NewKey(190, 1, "High School"))
	close(release)
	if err != nil {
		t.Fatalf("unrelated key blocked: %v", err)
	}
	if got[0].Team != "High School" {
		t.Fatalf("unexpected value: %#v", got)
	}
}

func TestMultiKey_WaiterCancellationDoesNotCancelFetch(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := NewMultiKey("skills", func(ctx context.Context, _ Key) ([]skillRow, error) {
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []skillRow{{Team: "ok"}}, nil
	})
	key := NewKey(181, 4, "College")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Preload(ctx, key)
		errCh <- err
	}()
	waitForState(t, c, key, StatePopulating)
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled waiter, got %v", err)
	}

	close(release)
	waitForState(t, c, key, StatePopulated)
	if got := c.Get(key); len(got) != 1 {
		t.Fatalf("expected fetch to complete for the cache, got %#v", got)
	}
}

func waitForState[T any](t *testing.T, c *MultiKey[T], key Key, want State) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State(key) == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("key %s never reached state %s", key, want)
}
