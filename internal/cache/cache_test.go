package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func constant(v string) func() (string, error) {
	return func() (string, error) { return v, nil }
}

func TestGetMissStoresValue(t *testing.T) {
	c := New[string](3)

	v, err := c.Get("a", constant("alpha"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "alpha" {
		t.Errorf("expected %q, got %q", "alpha", v)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestGetHitDoesNotCallProducer(t *testing.T) {
	c := New[string](3)
	if _, err := c.Get("a", constant("first")); err != nil {
		t.Fatal(err)
	}

	calls := 0
	v, err := c.Get("a", func() (string, error) {
		calls++
		return "second", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("producer called %d times on a hit", calls)
	}
	if v != "first" {
		t.Errorf("expected stored value %q, got %q", "first", v)
	}
}

func TestEvictsOldestInsertedKey(t *testing.T) {
	for _, max := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("max=%d", max), func(t *testing.T) {
			c := New[string](max)
			for i := 0; i <= max; i++ {
				key := fmt.Sprintf("k%d", i)
				if _, err := c.Get(key, constant(key)); err != nil {
					t.Fatal(err)
				}
			}

			if c.Len() != max {
				t.Fatalf("expected %d entries, got %d", max, c.Len())
			}
			if _, ok := c.Peek("k0"); ok {
				t.Errorf("expected k0 to be evicted, keys: %v", c.Keys())
			}
			for i := 1; i <= max; i++ {
				if _, ok := c.Peek(fmt.Sprintf("k%d", i)); !ok {
					t.Errorf("expected k%d to survive", i)
				}
			}
			if got := c.Stats().Evictions; got != 1 {
				t.Errorf("expected 1 eviction, got %d", got)
			}
		})
	}
}

func TestHitPromotesKey(t *testing.T) {
	c := New[string](2)
	c.Get("a", constant("a"))
	c.Get("b", constant("b"))

	// touch a so b becomes the least recently used
	c.Get("a", constant("unused"))
	c.Get("c", constant("c"))

	if _, ok := c.Peek("a"); !ok {
		t.Errorf("expected promoted key a to survive, keys: %v", c.Keys())
	}
	if _, ok := c.Peek("b"); ok {
		t.Errorf("expected b to be evicted, keys: %v", c.Keys())
	}
	want := []string{"c", "a"}
	got := c.Keys()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestProducerErrorIsNotCached(t *testing.T) {
	c := New[string](2)
	boom := errors.New("boom")

	_, err := c.Get("a", func() (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped producer error, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("failed value must not be stored, len=%d", c.Len())
	}

	v, err := c.Get("a", constant("ok"))
	if err != nil || v != "ok" {
		t.Errorf("expected retry to succeed, got %q, %v", v, err)
	}
}

func TestNilProducer(t *testing.T) {
	c := New[int](1)
	if _, err := c.Get("x", nil); !errors.Is(err, ErrNilProducer) {
		t.Errorf("expected ErrNilProducer, got %v", err)
	}
}

func TestNonPositiveMaxSizeUsesDefault(t *testing.T) {
	c := New[int](0)
	if got := c.Stats().MaxSize; got != DefaultMaxSize {
		t.Errorf("expected default max size %d, got %d", DefaultMaxSize, got)
	}
}

func TestConcurrentMissesShareOneCreate(t *testing.T) {
	c := New[string](10)

	var calls int32
	release := make(chan struct{})
	producer := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get("same", producer)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = v
		}(i)
	}

	// give every goroutine a chance to join the flight
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected a single producer call, got %d", n)
	}
	for i, r := range results {
		if r != "shared" {
			t.Errorf("caller %d got %q", i, r)
		}
	}
}

func TestConcurrentDistinctKeysRespectBound(t *testing.T) {
	c := New[int](16)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%40)
			c.Get(key, func() (int, error) { return i, nil })
		}(i)
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Errorf("cache exceeded its bound: %d", c.Len())
	}
	s := c.Stats()
	if s.Size != c.Len() {
		t.Errorf("stats size %d != len %d", s.Size, c.Len())
	}
}
