// Package callable provides a capacity-bounded, type-erased container for a
// single callable value. It is the Go rendition of a fixed-capacity
// function wrapper: the concrete callable type is erased behind a uniform
// container, an operation table bound at construction preserves the
// concrete type's copy semantics, and a storage-size bound fixed at
// construction rejects state that would not fit the container.
//
// Three construction variants exist, exactly one of which is active per
// instance:
//
//   - New: wraps a plain function value. Copies of the container share the
//     function value; for a capturing closure this means captured state is
//     shared, matching Go closure semantics. Use NewFunctor when copies
//     must own independent state.
//   - NewFunctor: copies a state value into the container and binds the
//     call target to the container's own copy. Cloning the container
//     clones the state, giving each copy fully independent state. The
//     state's storage footprint is checked against the container's
//     capacity at construction.
//   - NewBoundMethod: binds a call target to a caller-supplied object
//     through a raw, non-owning pointer. The container never extends the
//     object's lifetime; the caller must guarantee the object outlives
//     every invocation. Copies of the container share the object.
//
// A moved-from container is empty. Invoking an empty container is a
// contract violation, not a recoverable error: Fn panics, because calling
// a callable that was never assigned (or was moved away without
// reassignment) is always a defect in the calling code.
//
// All operations are synchronous and single-threaded; a container owns its
// state exclusively and instances never alias each other (clone duplicates
// state, move transfers it and empties the source).
package callable
