package blackboard

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
	"github.com/ibex-ipc/ibex/lib/blackboard/codec"
	"github.com/ibex-ipc/ibex/lib/semantic"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("blackboard")

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	snapshotMagic   = "IBEXBB\x00" // Snapshot file format identifier
	snapshotVersion = 1            // Snapshot format version
)

// --------------------------------------------------------------------------
// Board
// --------------------------------------------------------------------------

// snapshot is one published value together with its generation. A snapshot
// is immutable once installed; a publish replaces the pointer, it never
// mutates the snapshot a reader may currently hold.
type snapshot struct {
	value      []byte
	generation uint64
}

// entry is one key's slot on the board.
type entry struct {
	writerHeld atomic.Bool
	snap       atomic.Pointer[snapshot]
}

// Options configures a Board.
type Options struct {
	// Name identifies the board in metrics and log output.
	Name string
}

// Board is a single-writer / multi-reader key-value broadcast board.
type Board struct {
	name        string
	entries     *xsync.MapOf[string, *entry]
	subs        *xsync.MapOf[uint64, *Subscription]
	nextSubID   atomic.Uint64
	openWriters atomic.Int64

	publishes *metrics.Counter
	reads     *metrics.Counter
}

// New creates a new empty board.
func New(opts *Options) *Board {
	name := "default"
	if opts != nil && opts.Name != "" {
		name = opts.Name
	}

	return &Board{
		name:    name,
		entries: xsync.NewMapOf[string, *entry](),
		subs:    xsync.NewMapOf[uint64, *Subscription](),
		publishes: metrics.GetOrCreateCounter(
			fmt.Sprintf(`ibex_blackboard_publishes_total{board=%q}`, name)),
		reads: metrics.GetOrCreateCounter(
			fmt.Sprintf(`ibex_blackboard_reads_total{board=%q}`, name)),
	}
}

// Name returns the board's name.
func (b *Board) Name() string {
	return b.name
}

// Keys returns the keys of all slots that currently exist on the board,
// including slots that have never been published to.
func (b *Board) Keys() []string {
	var keys []string
	b.entries.Range(func(key string, _ *entry) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// getOrCreateEntry returns the slot for key, creating it if needed.
func (b *Board) getOrCreateEntry(key string) *entry {
	ent, _ := b.entries.LoadOrStore(key, &entry{})
	return ent
}

// --------------------------------------------------------------------------
// Writer
// --------------------------------------------------------------------------

// Writer is the exclusive publishing handle for one key. A Writer must be
// closed to release the key's slot.
type Writer struct {
	board  *Board
	key    string
	ent    *entry
	closed atomic.Bool
}

// OpenWriter acquires the exclusive writer slot for key. It fails with
// RetCWriterPresent if another writer currently holds the slot.
func (b *Board) OpenWriter(key semantic.FileName) (*Writer, error) {
	ent := b.getOrCreateEntry(key.String())

	// The slot is acquired with a CAS: whoever flips the flag owns it until
	// Close flips it back.
	if !ent.writerHeld.CompareAndSwap(false, true) {
		return nil, NewError(RetCWriterPresent,
			fmt.Sprintf("a writer for key %q is already open on board %q", key.String(), b.name))
	}

	b.openWriters.Add(1)
	Logger.Debugf("opened writer for key %q on board %q", key.String(), b.name)
	return &Writer{board: b, key: key.String(), ent: ent}, nil
}

// Key returns the key this writer publishes to.
func (w *Writer) Key() string {
	return w.key
}

// Publish installs value as the key's new snapshot and advances the key's
// generation by one. The value is copied, the caller keeps ownership of
// the passed slice. Returns the new generation, or RetCWriterClosed if the
// writer has been closed.
func (w *Writer) Publish(value []byte) (uint64, error) {
	if w.closed.Load() {
		return 0, NewError(RetCWriterClosed,
			fmt.Sprintf("publish on closed writer for key %q", w.key))
	}

	generation := uint64(1)
	if cur := w.ent.snap.Load(); cur != nil {
		generation = cur.generation + 1
	}

	owned := make([]byte, len(value))
	copy(owned, value)

	w.ent.snap.Store(&snapshot{value: owned, generation: generation})
	w.board.publishes.Inc()
	w.board.notify(Event{Key: w.key, Generation: generation})

	return generation, nil
}

// Close releases the key's writer slot. Close is idempotent.
func (w *Writer) Close() {
	if w.closed.CompareAndSwap(false, true) {
		w.ent.writerHeld.Store(false)
		w.board.openWriters.Add(-1)
	}
}

// --------------------------------------------------------------------------
// Reader
// --------------------------------------------------------------------------

// Reader is a non-exclusive observing handle for one key. Any number of
// readers may exist per key.
type Reader struct {
	board *Board
	key   string
	ent   *entry
}

// OpenReader creates a reader for key. Opening a reader never fails; a
// reader on a never-published key observes ok == false until the first
// publish.
func (b *Board) OpenReader(key semantic.FileName) *Reader {
	return &Reader{board: b, key: key.String(), ent: b.getOrCreateEntry(key.String())}
}

// Key returns the key this reader observes.
func (r *Reader) Key() string {
	return r.key
}

// Get returns the key's current snapshot. ok is false iff the key has
// never been published to. The returned slice is the installed snapshot
// itself and must be treated as read-only; it is never mutated by later
// publishes.
func (r *Reader) Get() (value []byte, generation uint64, ok bool) {
	r.board.reads.Inc()

	snap := r.ent.snap.Load()
	if snap == nil {
		return nil, 0, false
	}
	return snap.value, snap.generation, true
}

// Generation returns the key's current generation (0 for a never-published
// key).
func (r *Reader) Generation() uint64 {
	if snap := r.ent.snap.Load(); snap != nil {
		return snap.generation
	}
	return 0
}

// IsStale reports whether a previously observed generation no longer
// matches the key's current generation.
func (r *Reader) IsStale(generation uint64) bool {
	return r.Generation() != generation
}

// --------------------------------------------------------------------------
// Subscriptions
// --------------------------------------------------------------------------

// Subscription is a stream of publish events on a board.
type Subscription struct {
	id    uint64
	board *Board
	queue *eventQueue
}

// Subscribe registers a new subscription receiving an Event for every
// publish on the board.
func (b *Board) Subscribe() *Subscription {
	sub := &Subscription{
		id:    b.nextSubID.Add(1),
		board: b,
		queue: newEventQueue(),
	}
	b.subs.Store(sub.id, sub)
	return sub
}

// Recv returns the channel events are delivered on. The channel is closed
// after the subscription is closed and all queued events were delivered.
func (s *Subscription) Recv() <-chan *Event {
	return s.queue.out
}

// Close unregisters the subscription. Events already queued are still
// delivered.
func (s *Subscription) Close() {
	s.board.subs.Delete(s.id)
	s.queue.close()
}

// notify fans an event out to all subscriptions.
func (b *Board) notify(event Event) {
	b.subs.Range(func(_ uint64, sub *Subscription) bool {
		ev := event
		sub.queue.push(&ev)
		return true
	})
}

// --------------------------------------------------------------------------
// Persistence
// --------------------------------------------------------------------------

// Save persists all slots of the board to w using the given codec. Slots
// that have never been published to are saved with generation 0 and no
// value.
func (b *Board) Save(w io.Writer, c codec.Codec) error {
	// Collect records first so the entry map is not held during I/O.
	var records []codec.Record
	b.entries.Range(func(key string, ent *entry) bool {
		rec := codec.Record{Key: key}
		if snap := ent.snap.Load(); snap != nil {
			rec.Generation = snap.generation
			rec.Value = snap.value
		}
		records = append(records, rec)
		return true
	})

	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(snapshotMagic); err != nil {
		return err
	}
	if err := bw.WriteByte(snapshotVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(len(records))); err != nil {
		return err
	}

	for _, rec := range records {
		data, err := c.Encode(rec)
		if err != nil {
			return NewError(RetCInternalError,
				fmt.Sprintf("failed to encode record for key %q: %s", rec.Key, err))
		}
		if err := binary.Write(bw, binary.BigEndian, uint32(len(data))); err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Load restores the board's slots from r. It fails with RetCBoardBusy if
// any writer is open, and with RetCCorruptSnapshot if the stream is not a
// valid snapshot (bad header, undecodable record, or a key that does not
// satisfy the file name grammar). Existing slots for keys present in the
// snapshot are replaced.
func (b *Board) Load(r io.Reader, c codec.Codec) error {
	if b.openWriters.Load() != 0 {
		return NewError(RetCBoardBusy,
			fmt.Sprintf("cannot restore board %q while writers are open", b.name))
	}

	br := bufio.NewReader(r)

	header := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(br, header); err != nil {
		return NewError(RetCCorruptSnapshot, "snapshot too short for header")
	}
	if string(header) != snapshotMagic {
		return NewError(RetCCorruptSnapshot, "snapshot magic number mismatch")
	}
	version, err := br.ReadByte()
	if err != nil {
		return NewError(RetCCorruptSnapshot, "snapshot too short for version")
	}
	if version != snapshotVersion {
		return NewError(RetCCorruptSnapshot,
			fmt.Sprintf("unsupported snapshot version %d", version))
	}

	var count uint32
	if err := binary.Read(br, binary.BigEndian, &count); err != nil {
		return NewError(RetCCorruptSnapshot, "snapshot too short for record count")
	}

	for i := uint32(0); i < count; i++ {
		var recLen uint32
		if err := binary.Read(br, binary.BigEndian, &recLen); err != nil {
			return NewError(RetCCorruptSnapshot,
				fmt.Sprintf("snapshot too short for record %d length", i))
		}

		data := make([]byte, recLen)
		if _, err := io.ReadFull(br, data); err != nil {
			return NewError(RetCCorruptSnapshot,
				fmt.Sprintf("snapshot too short for record %d data", i))
		}

		var rec codec.Record
		if err := c.Decode(data, &rec); err != nil {
			return NewError(RetCCorruptSnapshot,
				fmt.Sprintf("failed to decode record %d: %s", i, err))
		}

		// Keys are re-validated on restore: a snapshot is external input.
		key, err := semantic.NewFileName(rec.Key)
		if err != nil {
			return NewError(RetCCorruptSnapshot,
				fmt.Sprintf("record %d holds an invalid key: %s", i, err))
		}

		ent := b.getOrCreateEntry(key.String())
		if rec.Generation == 0 {
			ent.snap.Store(nil)
			continue
		}
		value := make([]byte, len(rec.Value))
		copy(value, rec.Value)
		ent.snap.Store(&snapshot{value: value, generation: rec.Generation})
	}

	Logger.Infof("restored %d slots on board %q", count, b.name)
	return nil
}
