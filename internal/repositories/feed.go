package repositories

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// ChangeFeed fans committed order changes out to subscribers. Each
// subscriber holds at most one pending change: a newer change replaces an
// unread one, since subscribers reload the full order set anyway.
type ChangeFeed struct {
	mu     sync.RWMutex
	subs   map[uint64]chan models.OrderChange
	nextID uint64
	logger *logrus.Logger
}

// NewChangeFeed creates an empty feed
func NewChangeFeed(logger *logrus.Logger) *ChangeFeed {
	if logger == nil {
		logger = logrus.New()
	}
	return &ChangeFeed{
		subs:   make(map[uint64]chan models.OrderChange),
		logger: logger,
	}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (f *ChangeFeed) Subscribe() (<-chan models.OrderChange, func()) {
	ch := make(chan models.OrderChange, 1)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers change to every subscriber without blocking
func (f *ChangeFeed) Publish(change models.OrderChange) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.subs {
		select {
		case ch <- change:
			continue
		default:
		}

		// replace the unread change with the newer one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- change:
		default:
		}
	}

	f.logger.WithFields(logrus.Fields{
		"kind":        change.Kind,
		"order_id":    change.OrderID,
		"subscribers": len(f.subs),
	}).Debug("Order change published")
}

// Subscribers returns the number of active subscribers
func (f *ChangeFeed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
