package callable

import "testing"

// counter is a stateful functor used to observe copy semantics
type counter struct {
	calls int
}

func newCounterCallable(t *testing.T) Callable[func() int] {
	t.Helper()

	c, err := NewFunctor(counter{}, func(s *counter) func() int {
		return func() int {
			s.calls++
			return s.calls
		}
	})
	if err != nil {
		t.Fatalf("NewFunctor failed: %v", err)
	}
	return c
}

// TestNewFunction tests the plain function variant
func TestNewFunction(t *testing.T) {
	c := New(func(a, b int) int { return a + b })

	if c.IsEmpty() {
		t.Fatal("freshly constructed container should not be empty")
	}
	if c.Kind() != KindFunction {
		t.Errorf("expected KindFunction, got %v", c.Kind())
	}
	if got := c.Fn()(2, 3); got != 5 {
		t.Errorf("invocation returned %d, want 5", got)
	}
}

// TestFunctorCopyIndependence tests that cloned functor state mutates
// independently
func TestFunctorCopyIndependence(t *testing.T) {
	a := newCounterCallable(t)

	// Advance a before cloning: the clone must start from a's current
	// state, then diverge.
	if got := a.Fn()(); got != 1 {
		t.Fatalf("first call returned %d, want 1", got)
	}

	b := a.Clone()
	if b.Kind() != KindFunctor {
		t.Errorf("clone should be a functor, got %v", b.Kind())
	}

	if got := a.Fn()(); got != 2 {
		t.Errorf("a's second call returned %d, want 2", got)
	}
	if got := b.Fn()(); got != 2 {
		t.Errorf("b's first call returned %d, want 2 (cloned from state 1)", got)
	}
	if got := b.Fn()(); got != 3 {
		t.Errorf("b's second call returned %d, want 3", got)
	}
	if got := a.Fn()(); got != 3 {
		t.Errorf("a must not observe b's calls, got %d, want 3", got)
	}
}

// TestFunctorCapacity tests the storage bound check
func TestFunctorCapacity(t *testing.T) {
	type big struct {
		payload [256]byte
	}

	_, err := NewFunctorWithCapacity(16, big{}, func(s *big) func() byte {
		return func() byte { return s.payload[0] }
	})
	if err == nil {
		t.Fatal("state larger than the capacity should be rejected")
	}

	if IsStorable[big](16) {
		t.Error("IsStorable should agree with the constructor")
	}
	if !IsStorable[big](RequiredStorageSize[big]()) {
		t.Error("a capacity of exactly RequiredStorageSize must be sufficient")
	}
}

// TestBoundMethod tests the non-owning bound object variant
func TestBoundMethod(t *testing.T) {
	obj := &counter{}

	c := NewBoundMethod(obj, func(o *counter) func() int {
		return func() int {
			o.calls++
			return o.calls
		}
	})
	if c.Kind() != KindBoundMethod {
		t.Errorf("expected KindBoundMethod, got %v", c.Kind())
	}

	c.Fn()()
	c.Fn()()
	if obj.calls != 2 {
		t.Errorf("bound object should observe invocations, calls = %d", obj.calls)
	}

	// Copies share the object: no state is duplicated.
	d := c.Clone()
	d.Fn()()
	if obj.calls != 3 {
		t.Errorf("clone must act on the same object, calls = %d", obj.calls)
	}
}

// TestMoveInvalidation tests that a moved-from container is empty and
// invoking it panics
func TestMoveInvalidation(t *testing.T) {
	a := newCounterCallable(t)
	b := a.Move()

	if !a.IsEmpty() {
		t.Fatal("moved-from container should be empty")
	}
	if b.IsEmpty() {
		t.Fatal("move target should hold the callable")
	}
	if got := b.Fn()(); got != 1 {
		t.Errorf("moved callable returned %d, want 1", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("invoking a moved-from container should panic")
		}
	}()
	a.Fn()
}

// TestMoveReassignment tests that a moved-from container is usable again
// after reassignment
func TestMoveReassignment(t *testing.T) {
	a := New(func() int { return 1 })
	_ = a.Move()

	a = New(func() int { return 2 })
	if got := a.Fn()(); got != 2 {
		t.Errorf("reassigned container returned %d, want 2", got)
	}
}

// TestSwap tests the three-way move swap
func TestSwap(t *testing.T) {
	a := New(func() int { return 1 })
	b := New(func() int { return 2 })

	a.Swap(&b)

	if got := a.Fn()(); got != 2 {
		t.Errorf("after swap a returned %d, want 2", got)
	}
	if got := b.Fn()(); got != 1 {
		t.Errorf("after swap b returned %d, want 1", got)
	}

	// Swapping with an empty container moves the callable over.
	var empty Callable[func() int]
	a.Swap(&empty)
	if !a.IsEmpty() {
		t.Error("a should be empty after swapping with an empty container")
	}
	if got := empty.Fn()(); got != 2 {
		t.Errorf("swap target returned %d, want 2", got)
	}
}

// TestCloneEmpty tests that cloning an empty container yields an empty one
func TestCloneEmpty(t *testing.T) {
	var c Callable[func()]
	d := c.Clone()
	if !d.IsEmpty() {
		t.Error("clone of an empty container should be empty")
	}
}
