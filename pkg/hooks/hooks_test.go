package hooks

import (
	"errors"
	"sync"
	"testing"
)

func TestEmitReachesPrefixHandlers(t *testing.T) {
	em := NewHierarchicalEmitter()

	var seen []string
	em.Register("before-call", func(ev Event) error {
		seen = append(seen, "global:"+ev.Name)
		return nil
	})
	em.Register("before-call.myservice", func(ev Event) error {
		seen = append(seen, "service")
		return nil
	})
	em.Register("before-call.myservice.TestOperation", func(ev Event) error {
		seen = append(seen, "operation")
		return nil
	})

	err := em.Emit(Event{Name: "before-call.myservice.TestOperation"})
	if err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}

	// Most specific handlers run first.
	want := []string{"operation", "service", "global:before-call.myservice.TestOperation"}
	if len(seen) != len(want) {
		t.Fatalf("expected %d handler runs, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("run %d: got %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestEmitDoesNotCrossSiblings(t *testing.T) {
	em := NewHierarchicalEmitter()

	called := false
	em.Register("before-call.otherservice", func(Event) error {
		called = true
		return nil
	})

	if err := em.Emit(Event{Name: "before-call.myservice.TestOperation"}); err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}
	if called {
		t.Fatal("sibling handler must not fire")
	}
}

func TestHandlerErrorAbortsEmission(t *testing.T) {
	em := NewHierarchicalEmitter()
	boom := errors.New("boom")

	var later int
	em.Register("before-call.myservice", func(Event) error { return boom })
	em.Register("before-call", func(Event) error {
		later++
		return nil
	})

	err := em.Emit(Event{Name: "before-call.myservice"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error to propagate, got %v", err)
	}
	if later != 0 {
		t.Fatal("handlers after the failing one must not run")
	}
}

func TestRegistrationOrderPreserved(t *testing.T) {
	em := NewHierarchicalEmitter()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		em.Register("after-call", func(Event) error {
			order = append(order, i)
			return nil
		})
	}

	if err := em.Emit(Event{Name: "after-call"}); err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("handlers ran out of registration order: %v", order)
		}
	}
}

func TestConcurrentRegisterAndEmit(t *testing.T) {
	em := NewHierarchicalEmitter()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			em.Register("before-call", func(Event) error { return nil })
		}()
		go func() {
			defer wg.Done()
			_ = em.Emit(Event{Name: "before-call.svc.Op"})
		}()
	}
	wg.Wait()
}
