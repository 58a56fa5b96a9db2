// Package blackboard provides a single-writer / multi-reader key-value
// broadcast board with a generation-counter staleness protocol. A board
// holds one value slot per key; exactly one writer may hold a key's slot
// at a time, while any number of readers observe consistent
// (value, generation) snapshots without blocking the writer or each
// other.
//
// The package focuses on:
//   - Writer exclusivity per key, acquired and released atomically
//   - Torn-read-free value observation via atomic snapshot replacement:
//     a publish installs a fresh immutable snapshot, it never mutates the
//     one readers may currently hold
//   - A monotonically increasing generation counter per key that lets
//     readers decide whether a previously seen value is stale
//   - Asynchronous update notification through subscriptions backed by a
//     lock-free multi-producer single-consumer queue
//   - Snapshot persistence via the pluggable codecs of the codec
//     subpackage
//
// Keys are validated file names (see the semantic package): the board is
// the naming layer's primary consumer, and restricting keys to the
// portable file name grammar keeps every key usable as a shared-resource
// identifier.
//
// Key Components:
//
//   - Board: the slot registry. Creates writers and readers, fans out
//     update events to subscriptions, and persists/restores its state.
//   - Writer: the exclusive publishing handle for one key. Publish
//     advances the key's generation by exactly one.
//   - Reader: a non-exclusive observing handle for one key. Get returns
//     the current snapshot, IsStale compares a previously seen
//     generation against the current one.
//   - Subscription: a stream of Event values describing publishes on the
//     board, consumable through a channel.
//
// Operation counts (publishes and reads per board) are exported through
// the VictoriaMetrics metrics set.
package blackboard
