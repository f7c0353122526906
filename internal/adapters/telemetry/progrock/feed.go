package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

const feedBuffer = 64

var _ progrock.Writer = (*Feed)(nil)

// Feed is a progrock.Writer that fans status updates out to a bounded
// channel so a UI can consume them live. Updates are dropped rather than
// blocking the recording side when the consumer falls behind.
type Feed struct {
	mu     sync.Mutex
	ch     chan *progrock.StatusUpdate
	closed bool
}

// NewFeed creates an open Feed.
func NewFeed() *Feed {
	return &Feed{
		ch: make(chan *progrock.StatusUpdate, feedBuffer),
	}
}

// WriteStatus queues the update for the consumer. Writes after Close are
// discarded.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	select {
	case f.ch <- update:
	default:
	}
	return nil
}

// Close ends the stream. Subsequent reads return io.EOF once the channel is
// drained.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
	return nil
}

// Read returns the next update, or io.EOF once the feed is closed and
// drained.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	update, ok := <-f.ch
	if !ok {
		return nil, io.EOF
	}
	return update, nil
}
