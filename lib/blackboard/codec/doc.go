// Package codec provides interchangeable encoders for blackboard snapshot
// records. A snapshot record is one key's value together with its
// generation counter; boards encode a stream of records when persisting
// their state and decode it when restoring.
//
// Three implementations are provided:
//
//   - Binary: a custom length-prefixed binary format optimized for speed
//     and size. This is the default for board persistence.
//   - JSON: human-readable, useful for debugging and tooling.
//   - GOB: Go's native binary encoding.
//
// All implementations are stateless and safe for concurrent use.
package codec
