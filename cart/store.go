package cart

import (
	"context"
	"errors"

	"github.com/levelup-gaming/levelup-api/models"
)

var (
	// ErrItemNotFound is returned by Store.GetItem when no row exists
	// for the (owner, product) pair.
	ErrItemNotFound = errors.New("cart: line item not found")

	// ErrProductNotFound is returned by a ProductLookup when the
	// product is unknown. Pricing treats it as a zero-price line, it
	// is never surfaced to the user.
	ErrProductNotFound = errors.New("cart: product not found")
)

// Store is the keyed record store behind the cart. It holds rows and
// nothing else: all business rules (merge, delete-on-zero, clearing on
// checkout) live in Repository.
//
// Watch registers interest in changes to an owner's rows. The returned
// channel receives a signal after any successful mutation for that
// owner; the cancel func releases the watcher. Signals are coalesced,
// receivers re-read the full list rather than relying on one signal
// per mutation.
type Store interface {
	ListItems(ctx context.Context, owner string) ([]models.LineItem, error)
	GetItem(ctx context.Context, owner string, productId int) (models.LineItem, error)
	InsertItem(ctx context.Context, item models.LineItem) error
	UpdateQuantity(ctx context.Context, owner string, productId, quantity int) error
	DeleteItem(ctx context.Context, owner string, productId int) error
	DeleteAll(ctx context.Context, owner string) error
	Watch(owner string) (<-chan struct{}, func())
}

// ProductLookup resolves products for pricing cart lines.
type ProductLookup interface {
	GetByID(ctx context.Context, productId int) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
}
