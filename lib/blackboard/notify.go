// This file implements the unbounded, lock-free multi-producer
// single-consumer queue that backs subscriptions. Writers on any number of
// goroutines push update events concurrently; a single consumer goroutine
// drains the queue into the subscription's output channel.
//
// Guarantees:
//
//   - Push is lock-free: producers link nodes onto the tail with CAS and an
//     exponential backoff under contention
//   - Events pushed by one producer are delivered in that producer's push
//     order; no total order across producers is guaranteed
//   - Close stops further pushes; events already queued are still delivered
//     before the output channel is closed

package blackboard

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Event describes one publish on a board.
type Event struct {
	// Key is the key that was published to.
	Key string
	// Generation is the key's generation after the publish.
	Generation uint64
}

// eventNode is one element of the queue's linked list.
type eventNode struct {
	event *Event
	next  atomic.Pointer[eventNode]
}

// eventQueue is the lock-free MPSC queue. The head is owned by the single
// consumer, the tail is shared between producers.
type eventQueue struct {
	head   atomic.Pointer[eventNode]
	tail   atomic.Pointer[eventNode]
	out    chan *Event
	closed atomic.Bool

	// The consumer parks on cond while the queue is empty.
	mu   sync.Mutex
	cond *sync.Cond
}

// newEventQueue creates a queue and starts its consumer goroutine.
func newEventQueue() *eventQueue {
	// A sentinel node keeps head and tail non-nil at all times.
	sentinel := &eventNode{}

	q := &eventQueue{out: make(chan *Event)}
	q.cond = sync.NewCond(&q.mu)
	q.head.Store(sentinel)
	q.tail.Store(sentinel)

	go q.drain()

	return q
}

// push appends an event to the queue. It returns false if the queue is
// closed or the event is nil.
//
// Thread-safety: safe for concurrent use by any number of producers.
func (q *eventQueue) push(event *Event) bool {
	if event == nil || q.closed.Load() {
		return false
	}

	node := &eventNode{event: event}

	var backoff uint8
	for {
		tail := q.tail.Load()

		if tail.next.Load() == nil {
			if tail.next.CompareAndSwap(nil, node) {
				// Appended. Advancing the tail may race with a helping
				// producer, a failed CAS here is fine.
				q.tail.CompareAndSwap(tail, node)

				// The signal must be issued under the mutex: otherwise it
				// can fall between the consumer's empty-check and its Wait
				// and the wakeup is lost.
				q.mu.Lock()
				q.cond.Signal()
				q.mu.Unlock()
				return true
			}
		} else {
			// Another producer appended but has not advanced the tail yet,
			// help it along.
			q.tail.CompareAndSwap(tail, tail.next.Load())
		}

		// Exponential backoff under contention: spin first, yield once the
		// queue stays contended.
		if backoff < 10 {
			backoff++
			for i := 0; i < 1<<backoff; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

// drain moves events from the linked list to the output channel until the
// queue is closed and fully emptied.
func (q *eventQueue) drain() {
	defer close(q.out)

	for {
		delivered := false

		for {
			head := q.head.Load()
			next := head.next.Load()
			if next == nil {
				break
			}

			delivered = true
			event := next.event

			// Advancing head releases the consumed node to the GC.
			q.head.Store(next)
			q.out <- event
			next.event = nil
		}

		if !delivered {
			if q.closed.Load() {
				return
			}

			q.mu.Lock()
			// Re-check under the lock, a producer may have signalled
			// between the empty scan and here.
			if q.head.Load().next.Load() == nil && !q.closed.Load() {
				q.cond.Wait()
			}
			q.mu.Unlock()
		}
	}
}

// close stops further pushes. Queued events are still delivered, then the
// output channel is closed.
func (q *eventQueue) close() {
	q.closed.Store(true)
	q.mu.Lock()
	q.cond.Signal()
	q.mu.Unlock()
}
