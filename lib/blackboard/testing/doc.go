// Package testing provides a standardised conformance suite for the
// blackboard's single-writer / multi-reader protocol.
//
// The suite exercises the contract every board must honour: writer
// exclusivity per key, generation advancement by exactly one per publish,
// torn-read-free snapshots, staleness detection, subscription delivery and
// snapshot persistence round trips.
//
// Example usage:
//
//	// Creating a factory function for a board under test
//	factory := func() *blackboard.Board {
//		return blackboard.New(nil)
//	}
//
//	// Running the conformance suite
//	testing.RunBoardTests(t, "Default", factory)
package testing
