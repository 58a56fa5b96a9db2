package testing

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ibex-ipc/ibex/lib/blackboard"
	"github.com/ibex-ipc/ibex/lib/blackboard/codec"
	"github.com/ibex-ipc/ibex/lib/semantic"
)

// BoardFactory is a function that creates a new board under test
type BoardFactory func() *blackboard.Board

// RunBoardTests runs the conformance suite for a board implementation.
func RunBoardTests(t *testing.T, name string, factory BoardFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("PublishGet", func(t *testing.T) {
			testPublishGet(t, factory())
		})

		t.Run("WriterExclusivity", func(t *testing.T) {
			testWriterExclusivity(t, factory())
		})

		t.Run("GenerationAdvancement", func(t *testing.T) {
			testGenerationAdvancement(t, factory())
		})

		t.Run("Staleness", func(t *testing.T) {
			testStaleness(t, factory())
		})

		t.Run("PublishCopiesValue", func(t *testing.T) {
			testPublishCopiesValue(t, factory())
		})

		t.Run("ClosedWriter", func(t *testing.T) {
			testClosedWriter(t, factory())
		})

		t.Run("Subscriptions", func(t *testing.T) {
			testSubscriptions(t, factory())
		})

		t.Run("ConcurrentReaders", func(t *testing.T) {
			testConcurrentReaders(t, factory())
		})

		t.Run("SaveLoad", func(t *testing.T) {
			testSaveLoad(t, factory)
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// mustKey validates a key or fails the test
func mustKey(t testing.TB, key string) semantic.FileName {
	t.Helper()

	name, err := semantic.NewFileName(key)
	if err != nil {
		t.Fatalf("invalid test key %q: %v", key, err)
	}
	return name
}

// mustWriter opens a writer or fails the test
func mustWriter(t testing.TB, board *blackboard.Board, key string) *blackboard.Writer {
	t.Helper()

	writer, err := board.OpenWriter(mustKey(t, key))
	if err != nil {
		t.Fatalf("failed to open writer for %q: %v", key, err)
	}
	return writer
}

// requireCode asserts that err carries the expected blackboard return code
func requireCode(t testing.TB, err error, code blackboard.RetCode) {
	t.Helper()

	var bbErr *blackboard.Error
	if !errors.As(err, &bbErr) {
		t.Fatalf("expected a *blackboard.Error, got %v", err)
	}
	if bbErr.Code != code {
		t.Fatalf("expected code %d, got %d (%v)", code, bbErr.Code, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testPublishGet(t *testing.T, board *blackboard.Board) {
	key := mustKey(t, "vehicle-pose")
	reader := board.OpenReader(key)

	// A never-published key yields no snapshot.
	if _, _, ok := reader.Get(); ok {
		t.Error("reader on a never-published key should report ok=false")
	}
	if reader.Generation() != 0 {
		t.Errorf("never-published key should have generation 0, got %d", reader.Generation())
	}

	writer := mustWriter(t, board, "vehicle-pose")
	defer writer.Close()

	want := []byte("x=1.0 y=2.0")
	generation, err := writer.Publish(want)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if generation != 1 {
		t.Errorf("first publish should yield generation 1, got %d", generation)
	}

	value, gen, ok := reader.Get()
	if !ok {
		t.Fatal("reader should observe the published value")
	}
	if gen != 1 {
		t.Errorf("expected generation 1, got %d", gen)
	}
	if !bytes.Equal(value, want) {
		t.Errorf("expected value %q, got %q", want, value)
	}
}

func testWriterExclusivity(t *testing.T, board *blackboard.Board) {
	first := mustWriter(t, board, "status")

	// Second writer on the same key must be rejected.
	_, err := board.OpenWriter(mustKey(t, "status"))
	if err == nil {
		t.Fatal("second writer on the same key should be rejected")
	}
	requireCode(t, err, blackboard.RetCWriterPresent)

	// A different key is unaffected.
	other := mustWriter(t, board, "other-status")
	other.Close()

	// Closing releases the slot.
	first.Close()
	reopened := mustWriter(t, board, "status")
	reopened.Close()
}

func testGenerationAdvancement(t *testing.T, board *blackboard.Board) {
	writer := mustWriter(t, board, "counter")
	defer writer.Close()

	for want := uint64(1); want <= 10; want++ {
		generation, err := writer.Publish([]byte{byte(want)})
		if err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
		if generation != want {
			t.Fatalf("expected generation %d, got %d", want, generation)
		}
	}

	// The writer slot survives close/reopen with its generation intact.
	writer.Close()
	reopened := mustWriter(t, board, "counter")
	defer reopened.Close()

	generation, err := reopened.Publish([]byte("next"))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if generation != 11 {
		t.Errorf("generation should continue after reopen, expected 11, got %d", generation)
	}
}

func testStaleness(t *testing.T, board *blackboard.Board) {
	writer := mustWriter(t, board, "config")
	defer writer.Close()
	reader := board.OpenReader(mustKey(t, "config"))

	if _, err := writer.Publish([]byte("v1")); err != nil {
		t.Fatal(err)
	}

	_, seen, _ := reader.Get()
	if reader.IsStale(seen) {
		t.Error("freshly observed generation should not be stale")
	}

	if _, err := writer.Publish([]byte("v2")); err != nil {
		t.Fatal(err)
	}
	if !reader.IsStale(seen) {
		t.Error("generation observed before a publish should be stale afterwards")
	}

	_, seen, _ = reader.Get()
	if reader.IsStale(seen) {
		t.Error("re-observed generation should not be stale")
	}
}

func testPublishCopiesValue(t *testing.T, board *blackboard.Board) {
	writer := mustWriter(t, board, "payload")
	defer writer.Close()
	reader := board.OpenReader(mustKey(t, "payload"))

	buf := []byte("original")
	if _, err := writer.Publish(buf); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slice after publish must not affect the board.
	buf[0] = 'X'

	value, _, ok := reader.Get()
	if !ok {
		t.Fatal("reader should observe the published value")
	}
	if !bytes.Equal(value, []byte("original")) {
		t.Errorf("board must own its snapshot, got %q", value)
	}
}

func testClosedWriter(t *testing.T, board *blackboard.Board) {
	writer := mustWriter(t, board, "short-lived")
	writer.Close()

	_, err := writer.Publish([]byte("late"))
	if err == nil {
		t.Fatal("publish on a closed writer should fail")
	}
	requireCode(t, err, blackboard.RetCWriterClosed)

	// Close is idempotent.
	writer.Close()
}

func testSubscriptions(t *testing.T, board *blackboard.Board) {
	sub := board.Subscribe()

	writer := mustWriter(t, board, "events")
	defer writer.Close()

	const publishes = 5
	for i := 0; i < publishes; i++ {
		if _, err := writer.Publish([]byte{byte(i)}); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < publishes; i++ {
		select {
		case event := <-sub.Recv():
			if event.Key != "events" {
				t.Errorf("event %d has key %q, want %q", i, event.Key, "events")
			}
			if event.Generation != uint64(i+1) {
				t.Errorf("event %d has generation %d, want %d", i, event.Generation, i+1)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}

	// After close the event channel drains and closes.
	sub.Close()
	for {
		select {
		case _, open := <-sub.Recv():
			if !open {
				return
			}
		case <-time.After(time.Second):
			t.Fatal("subscription channel did not close")
		}
	}
}

func testConcurrentReaders(t *testing.T, board *blackboard.Board) {
	writer := mustWriter(t, board, "shared")
	defer writer.Close()

	const (
		numReaders   = 8
		numPublishes = 200
	)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers continuously observe snapshots and check their consistency:
	// a snapshot's first byte encodes its generation, so a torn read is
	// detectable as a mismatch.
	for i := 0; i < numReaders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reader := board.OpenReader(mustKey(t, "shared"))
			for {
				select {
				case <-stop:
					return
				default:
				}

				value, generation, ok := reader.Get()
				if !ok {
					continue
				}
				if len(value) != 1 || uint64(value[0]) != generation%251 {
					t.Errorf("torn read: generation %d carries value %v", generation, value)
					return
				}
			}
		}()
	}

	for i := uint64(1); i <= numPublishes; i++ {
		if _, err := writer.Publish([]byte{byte(i % 251)}); err != nil {
			t.Fatal(err)
		}
	}

	close(stop)
	wg.Wait()
}

func testSaveLoad(t *testing.T, factory BoardFactory) {
	source := factory()

	writer := mustWriter(t, source, "persisted")
	if _, err := writer.Publish([]byte("v1")); err != nil {
		t.Fatal(err)
	}
	if _, err := writer.Publish([]byte("v2")); err != nil {
		t.Fatal(err)
	}

	// A slot that exists but was never published survives as generation 0.
	source.OpenReader(mustKey(t, "empty-slot"))

	var buf bytes.Buffer

	// Save is rejected only on the loading side: an open writer does not
	// prevent saving.
	if err := source.Save(&buf, codec.NewBinaryCodec()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	writer.Close()

	// Loading into a board with an open writer is rejected.
	busy := factory()
	busyWriter := mustWriter(t, busy, "busy")
	err := busy.Load(bytes.NewReader(buf.Bytes()), codec.NewBinaryCodec())
	if err == nil {
		t.Fatal("loading into a board with open writers should fail")
	}
	requireCode(t, err, blackboard.RetCBoardBusy)
	busyWriter.Close()

	// Round trip into a fresh board.
	restored := factory()
	if err := restored.Load(bytes.NewReader(buf.Bytes()), codec.NewBinaryCodec()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	reader := restored.OpenReader(mustKey(t, "persisted"))
	value, generation, ok := reader.Get()
	if !ok {
		t.Fatal("restored board should hold the persisted value")
	}
	if generation != 2 {
		t.Errorf("expected restored generation 2, got %d", generation)
	}
	if !bytes.Equal(value, []byte("v2")) {
		t.Errorf("expected restored value %q, got %q", "v2", value)
	}

	emptyReader := restored.OpenReader(mustKey(t, "empty-slot"))
	if _, _, ok := emptyReader.Get(); ok {
		t.Error("never-published slot should restore as unpublished")
	}

	// Generations continue after restore.
	restoredWriter := mustWriter(t, restored, "persisted")
	defer restoredWriter.Close()
	generation, err = restoredWriter.Publish([]byte("v3"))
	if err != nil {
		t.Fatal(err)
	}
	if generation != 3 {
		t.Errorf("expected generation 3 after restore, got %d", generation)
	}
}
