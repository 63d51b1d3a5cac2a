package cart

import (
	"context"
	"sync"

	"github.com/levelup-gaming/levelup-api/models"
	"github.com/sirupsen/logrus"
)

// Subscription is a live view of one owner's line items. Updates
// carries full-list snapshots: the current list on subscribe, then a
// fresh list after every change to the owner's rows. The channel is
// closed when the subscription ends.
type Subscription struct {
	updates chan []models.LineItem
	done    chan struct{}
	once    sync.Once
}

func newSubscription() *Subscription {
	return &Subscription{
		updates: make(chan []models.LineItem, 1),
		done:    make(chan struct{}),
	}
}

// Updates is the snapshot stream. Receive until it closes.
func (s *Subscription) Updates() <-chan []models.LineItem {
	return s.updates
}

// Close stops the stream and releases the underlying store watch.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Subscription) run(ctx context.Context, store Store, owner string, snapshot []models.LineItem, notify <-chan struct{}, cancelWatch func()) {
	defer cancelWatch()
	defer close(s.updates)

	if !s.send(ctx, snapshot) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-notify:
			items, err := store.ListItems(ctx, owner)
			if err != nil {
				// Keep the subscription alive; the next change
				// triggers another read.
				logrus.Warnf("cart: re-reading items for %s failed: %v", owner, err)
				continue
			}
			if !s.send(ctx, items) {
				return
			}
		}
	}
}

func (s *Subscription) send(ctx context.Context, items []models.LineItem) bool {
	select {
	case s.updates <- items:
		return true
	case <-ctx.Done():
		return false
	case <-s.done:
		return false
	}
}
