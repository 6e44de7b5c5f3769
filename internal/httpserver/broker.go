package httpserver

import (
	"sync"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

// eventBufferSize bounds each subscriber queue. A slow consumer drops
// events instead of stalling the analysis goroutine.
const eventBufferSize = 16

// ProgressBroker fans analysis progress events out to SSE subscribers.
type ProgressBroker struct {
	mu   sync.Mutex
	subs map[chan schema.ProgressEvent]struct{}
}

var _ contract.ProgressSink = (*ProgressBroker)(nil)

// NewProgressBroker returns an empty broker with no subscribers.
func NewProgressBroker() *ProgressBroker {
	return &ProgressBroker{subs: make(map[chan schema.ProgressEvent]struct{})}
}

// Subscribe registers a listener and returns its event channel together
// with a cancel function. Cancel must be called when the listener goes
// away, after which the channel is closed.
func (b *ProgressBroker) Subscribe() (<-chan schema.ProgressEvent, func()) {
	ch := make(chan schema.ProgressEvent, eventBufferSize)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Report implements contract.ProgressSink by broadcasting the event to
// every subscriber whose buffer still has room.
func (b *ProgressBroker) Report(event schema.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *ProgressBroker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
