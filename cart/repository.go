package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/levelup-gaming/levelup-api/models"
)

// Repository owns every mutation of cart line items. It applies signed
// quantity deltas against the store and enforces the one rule of the
// cart: a quantity that would drop to zero or below deletes the row,
// non-positive quantities are never stored.
type Repository struct {
	store Store

	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

func NewRepository(store Store) *Repository {
	return &Repository{
		store: store,
		keys:  make(map[string]*sync.Mutex),
	}
}

// keyLock serializes read-modify-write cycles per (owner, product) so
// concurrent deltas on the same row cannot lose updates. Locks are
// kept for the lifetime of the repository; the key space is bounded by
// the number of distinct rows ever touched.
func (r *Repository) keyLock(owner string, productId int) *sync.Mutex {
	key := fmt.Sprintf("%s/%d", owner, productId)
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.keys[key]
	if !ok {
		lock = &sync.Mutex{}
		r.keys[key] = lock
	}
	return lock
}

// ApplyDelta merges a signed quantity adjustment into the row for
// (owner, productId). A positive delta on a missing row creates it, a
// resulting quantity <= 0 deletes it, and a non-positive delta on a
// missing row is a no-op.
func (r *Repository) ApplyDelta(ctx context.Context, owner string, productId, delta int) error {
	lock := r.keyLock(owner, productId)
	lock.Lock()
	defer lock.Unlock()

	existing, err := r.store.GetItem(ctx, owner, productId)
	switch {
	case err == nil:
		newQuantity := existing.Quantity + delta
		if newQuantity > 0 {
			return r.store.UpdateQuantity(ctx, owner, productId, newQuantity)
		}
		return r.store.DeleteItem(ctx, owner, productId)
	case errors.Is(err, ErrItemNotFound):
		if delta <= 0 {
			return nil
		}
		return r.store.InsertItem(ctx, models.LineItem{
			OwnerKey:  owner,
			ProductId: productId,
			Quantity:  delta,
		})
	default:
		return err
	}
}

// Remove deletes the row if present. Removing an absent row is not an
// error.
func (r *Repository) Remove(ctx context.Context, owner string, productId int) error {
	err := r.store.DeleteItem(ctx, owner, productId)
	if errors.Is(err, ErrItemNotFound) {
		return nil
	}
	return err
}

// Clear deletes every row for the owner. Clearing an empty cart is not
// an error.
func (r *Repository) Clear(ctx context.Context, owner string) error {
	return r.store.DeleteAll(ctx, owner)
}

// Items returns a live subscription to the owner's line items. The
// first emission is the current snapshot; further emissions follow
// every store change until the subscription is closed or ctx is done.
func (r *Repository) Items(ctx context.Context, owner string) (*Subscription, error) {
	notify, cancelWatch := r.store.Watch(owner)

	snapshot, err := r.store.ListItems(ctx, owner)
	if err != nil {
		cancelWatch()
		return nil, err
	}

	sub := newSubscription()
	go sub.run(ctx, r.store, owner, snapshot, notify, cancelWatch)
	return sub, nil
}
