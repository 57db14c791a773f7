package cache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LJTian/MarketCards/internal/logger"
	"github.com/LJTian/MarketCards/internal/processor"
)

// fakeClock 手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// countingLoader 每次调用产出带序号与时间戳的集合
func countingLoader(clock *fakeClock, calls *atomic.Int32, delay time.Duration) Loader {
	return func(ctx context.Context) (processor.Collection, error) {
		n := calls.Add(1)
		if delay > 0 {
			time.Sleep(delay)
		}
		m := processor.BuildMarket(processor.Transformed{Question: fmt.Sprintf("Will run %d finish?", n)},
			"Crypto", nil, processor.RawItem{Title: "t"}, clock.Now())
		return processor.NewCollection([]processor.Market{m}), nil
	}
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)}
}

func TestGetWithinTTLReturnsIdenticalCollection(t *testing.T) {
	clock := newClock()
	var calls atomic.Int32
	c := New(countingLoader(clock, &calls, 0), 30*time.Minute, clock.Now, logger.Discard())

	first, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	clock.Advance(29 * time.Minute)
	second, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("loader calls = %d, want 1", calls.Load())
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("collections differ within TTL")
	}
}

func TestGetAfterExpiryRecomputes(t *testing.T) {
	clock := newClock()
	var calls atomic.Int32
	c := New(countingLoader(clock, &calls, 0), 30*time.Minute, clock.Now, logger.Discard())

	first, _ := c.Get(context.Background())
	// now == expiry 视为过期
	clock.Advance(30 * time.Minute)
	second, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("loader calls = %d, want 2", calls.Load())
	}
	if first.Markets()[0].CreatedAt == second.Markets()[0].CreatedAt {
		t.Fatalf("expected a fresh collection after expiry")
	}

	exp, ok := c.Expiry()
	if !ok || !exp.Equal(clock.Now().Add(30*time.Minute)) {
		t.Fatalf("expiry = %v (ok=%v)", exp, ok)
	}
}

func TestConcurrentReadersTriggerSingleRefresh(t *testing.T) {
	clock := newClock()
	var calls atomic.Int32
	c := New(countingLoader(clock, &calls, 20*time.Millisecond), time.Minute, clock.Now, logger.Discard())

	run := func() {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := c.Get(context.Background()); err != nil {
					t.Errorf("Get: %v", err)
				}
			}()
		}
		wg.Wait()
	}

	run()
	if calls.Load() != 1 {
		t.Fatalf("cold start: loader calls = %d, want 1", calls.Load())
	}

	clock.Advance(time.Minute)
	run()
	if calls.Load() != 2 {
		t.Fatalf("after expiry: loader calls = %d, want 2", calls.Load())
	}
}

func TestLoadErrorKeepsPreviousState(t *testing.T) {
	clock := newClock()
	boom := errors.New("boom")
	fail := false
	var calls atomic.Int32
	ok := countingLoader(clock, &calls, 0)

	c := New(func(ctx context.Context) (processor.Collection, error) {
		if fail {
			return processor.Collection{}, boom
		}
		return ok(ctx)
	}, time.Minute, clock.Now, logger.Discard())

	if _, err := c.Get(context.Background()); err != nil {
		t.Fatalf("Get: %v", err)
	}
	firstExpiry, _ := c.Expiry()

	fail = true
	clock.Advance(2 * time.Minute)
	if _, err := c.Get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if exp, _ := c.Expiry(); !exp.Equal(firstExpiry) {
		t.Fatalf("failed refresh must not move expiry")
	}

	fail = false
	if _, err := c.Get(context.Background()); err != nil {
		t.Fatalf("Get after recovery: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("loader calls = %d, want 2", calls.Load())
	}
}

func TestRefreshIgnoresCallerCancellation(t *testing.T) {
	clock := newClock()
	c := New(func(ctx context.Context) (processor.Collection, error) {
		if err := ctx.Err(); err != nil {
			return processor.Collection{}, err
		}
		return processor.NewCollection(nil), nil
	}, time.Minute, clock.Now, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Get(ctx); err != nil {
		t.Fatalf("refresh should run detached from caller cancellation: %v", err)
	}
	if _, ok := c.Expiry(); !ok {
		t.Fatalf("cache should be populated")
	}
}
