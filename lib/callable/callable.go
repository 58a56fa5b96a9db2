package callable

import (
	"fmt"
	"unsafe"
)

// --------------------------------------------------------------------------
// Constants and Capacity Queries
// --------------------------------------------------------------------------

// DefaultCapacity is the storage bound (in bytes) used by the plain
// constructors. It is large enough for typical capture state (a handful of
// pointers and counters) while keeping the container cheap to clone.
const DefaultCapacity uintptr = 128

// RequiredStorageSize returns the storage footprint of a value of type T
// inside a container: sizeof plus worst-case alignment padding. The bound
// is conservative rather than tight, but always sufficient.
func RequiredStorageSize[T any]() uintptr {
	var v T
	return unsafe.Sizeof(v) + unsafe.Alignof(v) - 1
}

// IsStorable reports whether a value of type T fits a container with the
// given capacity.
func IsStorable[T any](capacity uintptr) bool {
	return RequiredStorageSize[T]() <= capacity
}

// --------------------------------------------------------------------------
// Construction Variant Kinds
// --------------------------------------------------------------------------

// Kind identifies which construction variant produced a container.
type Kind int

const (
	// KindFunction marks a container wrapping a plain function value.
	KindFunction Kind = iota
	// KindFunctor marks a container owning a copied state value.
	KindFunctor
	// KindBoundMethod marks a container bound to a non-owned object.
	KindBoundMethod
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindFunctor:
		return "Functor"
	case KindBoundMethod:
		return "BoundMethod"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Container Type
// --------------------------------------------------------------------------

// opTable carries the operations bound to the concrete stored type at
// construction time. clone rebuilds an independent container according to
// the variant's copy semantics; for KindFunction and KindBoundMethod it
// degenerates to copying the call target.
type opTable[F any] struct {
	kind  Kind
	size  uintptr
	clone func() Callable[F]
}

// Callable is a capacity-bounded, type-erased container for one callable
// with call signature F. The zero value is empty; invoking an empty
// container panics. Instances are created through New, NewFunctor or
// NewBoundMethod.
type Callable[F any] struct {
	target F
	ops    *opTable[F]
}

// New wraps a plain function value. The container is always storable: no
// state beyond the function value itself is held.
func New[F any](fn F) Callable[F] {
	c := Callable[F]{target: fn}
	c.ops = &opTable[F]{
		kind:  KindFunction,
		size:  unsafe.Sizeof(fn),
		clone: func() Callable[F] { return New(fn) },
	}
	return c
}

// NewFunctor copies state into the container and binds the call target via
// bind, which receives a pointer to the container's own copy. Cloning the
// container clones the state at its current value, so every copy mutates
// independently. Fails if the state's storage footprint exceeds
// DefaultCapacity.
func NewFunctor[F, S any](state S, bind func(*S) F) (Callable[F], error) {
	return NewFunctorWithCapacity(DefaultCapacity, state, bind)
}

// NewFunctorWithCapacity is NewFunctor with an explicit storage bound.
func NewFunctorWithCapacity[F, S any](capacity uintptr, state S, bind func(*S) F) (Callable[F], error) {
	if !IsStorable[S](capacity) {
		return Callable[F]{}, fmt.Errorf(
			"callable: state of type %T requires %d bytes of storage, capacity is %d",
			*new(S), RequiredStorageSize[S](), capacity)
	}

	// The container's private copy of the state. The bound target and the
	// clone closure both refer to this copy, never to the caller's value.
	owned := state

	c := Callable[F]{target: bind(&owned)}
	c.ops = &opTable[F]{
		kind: KindFunctor,
		size: RequiredStorageSize[S](),
		clone: func() Callable[F] {
			// Snapshot the state at clone time, not construction time.
			cloned, err := NewFunctorWithCapacity(capacity, owned, bind)
			if err != nil {
				// The state fit this container, so it fits the clone.
				panic(err)
			}
			return cloned
		},
	}
	return c, nil
}

// NewBoundMethod binds a call target to obj through bind. The container
// stores only the pointer: obj's lifetime is the caller's responsibility
// and is not extended. Clones share obj.
func NewBoundMethod[F, O any](obj *O, bind func(*O) F) Callable[F] {
	c := Callable[F]{target: bind(obj)}
	c.ops = &opTable[F]{
		kind:  KindBoundMethod,
		size:  unsafe.Sizeof(obj),
		clone: func() Callable[F] { return NewBoundMethod(obj, bind) },
	}
	return c
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// IsEmpty reports whether the container holds no callable. A container is
// empty after it has been moved from and before reassignment.
func (c *Callable[F]) IsEmpty() bool {
	return c.ops == nil
}

// Kind returns the construction variant of the held callable. Calling Kind
// on an empty container panics.
func (c *Callable[F]) Kind() Kind {
	c.mustBeOccupied()
	return c.ops.kind
}

// StorageSize returns the storage footprint of the held callable's state.
// Calling StorageSize on an empty container panics.
func (c *Callable[F]) StorageSize() uintptr {
	c.mustBeOccupied()
	return c.ops.size
}

// Fn returns the call target. The returned function invokes the stored
// callable directly; callers invoke it as c.Fn()(args...). Calling Fn on
// an empty container panics: this is a contract violation by the caller,
// never an expected runtime condition.
func (c *Callable[F]) Fn() F {
	c.mustBeOccupied()
	return c.target
}

func (c *Callable[F]) mustBeOccupied() {
	if c.ops == nil {
		panic("callable: use of an empty or moved-from container")
	}
}

// --------------------------------------------------------------------------
// Copy, Move and Swap
// --------------------------------------------------------------------------

// Clone returns an independent copy of the container, built through the
// operation table bound to the concrete stored type: functor state is
// duplicated at its current value, function values and bound objects are
// shared per their variant's semantics. Cloning an empty container yields
// an empty container.
func (c *Callable[F]) Clone() Callable[F] {
	if c.ops == nil {
		return Callable[F]{}
	}
	return c.ops.clone()
}

// Move transfers the held callable to the returned container and leaves
// the receiver empty. Moving an empty container yields an empty container.
func (c *Callable[F]) Move() Callable[F] {
	moved := *c
	*c = Callable[F]{}
	return moved
}

// Swap exchanges the contents of two containers via three-way move.
func (c *Callable[F]) Swap(other *Callable[F]) {
	tmp := other.Move()
	*other = c.Move()
	*c = tmp
}
