package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRegistryLimit(t *testing.T) {
	r := NewRegistry(2)
	now := time.Now()

	if err := r.Register(Info{ID: "a", Started: now}); err != nil {
		t.Fatalf("Register(a) failed: %v", err)
	}
	if err := r.Register(Info{ID: "b", Started: now.Add(time.Second)}); err != nil {
		t.Fatalf("Register(b) failed: %v", err)
	}
	if err := r.Register(Info{ID: "c"}); !errors.Is(err, ErrFull) {
		t.Errorf("Register(c) = %v, expected ErrFull", err)
	}

	// Re-registering a known ID does not count against the limit.
	if err := r.Register(Info{ID: "a", User: "ann", Started: now}); err != nil {
		t.Errorf("re-Register(a) failed: %v", err)
	}
	if s, _ := r.Get("a"); s.User != "ann" {
		t.Errorf("Get(a).User = %q, expected ann", s.User)
	}

	r.Unregister("a")
	if err := r.Register(Info{ID: "c", Started: now.Add(2 * time.Second)}); err != nil {
		t.Errorf("Register(c) after Unregister failed: %v", err)
	}

	list := r.List()
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "c" {
		t.Errorf("List() = %+v, expected [b c]", list)
	}
}

func TestRegistryUnlimited(t *testing.T) {
	r := NewRegistry(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := r.Register(Info{ID: ID(fmt.Sprint(i))}); err != nil {
				t.Errorf("Register(%d) failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if r.Count() != 50 {
		t.Errorf("Count() = %d, expected 50", r.Count())
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
}
