package blackboard

import (
	"sync"
	"testing"
	"time"
)

// TestEventQueueDelivery tests that all pushed events are delivered
func TestEventQueueDelivery(t *testing.T) {
	q := newEventQueue()

	const count = 100
	go func() {
		for i := 0; i < count; i++ {
			q.push(&Event{Key: "k", Generation: uint64(i)})
		}
		q.close()
	}()

	received := 0
	for event := range q.out {
		if event.Generation != uint64(received) {
			t.Errorf("event %d delivered out of order: generation %d", received, event.Generation)
		}
		received++
	}
	if received != count {
		t.Errorf("expected %d events, received %d", count, received)
	}
}

// TestEventQueueConcurrentProducers tests lock-free pushes from many
// goroutines
func TestEventQueueConcurrentProducers(t *testing.T) {
	q := newEventQueue()

	const (
		producers        = 8
		eventsPerProducer = 500
	)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < eventsPerProducer; i++ {
				if !q.push(&Event{Key: "k", Generation: uint64(i)}) {
					t.Error("push on an open queue should succeed")
					return
				}
			}
		}()
	}

	done := make(chan int)
	go func() {
		received := 0
		for range q.out {
			received++
		}
		done <- received
	}()

	wg.Wait()
	q.close()

	select {
	case received := <-done:
		if received != producers*eventsPerProducer {
			t.Errorf("expected %d events, received %d", producers*eventsPerProducer, received)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not finish")
	}
}

// TestEventQueueClose tests push rejection after close
func TestEventQueueClose(t *testing.T) {
	q := newEventQueue()
	q.close()

	if q.push(&Event{Key: "k"}) {
		t.Error("push on a closed queue should be rejected")
	}
	if q.push(nil) {
		t.Error("nil events are never accepted")
	}

	select {
	case _, open := <-q.out:
		if open {
			t.Error("no events were pushed, channel should close without delivery")
		}
	case <-time.After(time.Second):
		t.Fatal("output channel did not close")
	}
}
