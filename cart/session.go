package cart

import (
	"context"
	"errors"

	"github.com/levelup-gaming/levelup-api/models"
	"golang.org/x/sync/errgroup"
)

// Session binds a Repository to one owner for the lifetime of a
// signed-in user. It translates user intents into repository calls and
// prices the cart; it owns no merge rules of its own.
type Session struct {
	owner    string
	repo     *Repository
	products ProductLookup
}

func NewSession(repo *Repository, products ProductLookup, owner string) *Session {
	return &Session{owner: owner, repo: repo, products: products}
}

func (s *Session) Owner() string {
	return s.owner
}

// AddProduct adds quantity units of the product. Callers pass a
// positive quantity; anything else falls through to the repository's
// delta rule and degenerates to a removal or no-op.
func (s *Session) AddProduct(ctx context.Context, productId, quantity int) error {
	return s.repo.ApplyDelta(ctx, s.owner, productId, quantity)
}

func (s *Session) IncreaseQuantity(ctx context.Context, item models.LineItem) error {
	return s.repo.ApplyDelta(ctx, s.owner, item.ProductId, 1)
}

// DecreaseQuantity steps the line down by one. Decreasing a line of
// quantity 1 removes it.
func (s *Session) DecreaseQuantity(ctx context.Context, item models.LineItem) error {
	return s.repo.ApplyDelta(ctx, s.owner, item.ProductId, -1)
}

func (s *Session) RemoveItem(ctx context.Context, productId int) error {
	return s.repo.Remove(ctx, s.owner, productId)
}

func (s *Session) ClearCart(ctx context.Context) error {
	return s.repo.Clear(ctx, s.owner)
}

// Items returns the live subscription for this owner's cart.
func (s *Session) Items(ctx context.Context) (*Subscription, error) {
	return s.repo.Items(ctx, s.owner)
}

// Snapshot is a one-shot read of the current line items.
func (s *Session) Snapshot(ctx context.Context) ([]models.LineItem, error) {
	return s.repo.store.ListItems(ctx, s.owner)
}

// PricedLine is a line item joined with its product for display.
type PricedLine struct {
	ProductId int    `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
	Subtotal  int    `json:"subtotal"`
}

type Totals struct {
	Lines []PricedLine `json:"lines"`
	Total int          `json:"total"`
}

const maxConcurrentLookups = 10

// Totals prices the current cart against the product lookup. A product
// the lookup no longer knows prices at zero rather than failing the
// whole cart.
func (s *Session) Totals(ctx context.Context) (Totals, error) {
	items, err := s.Snapshot(ctx)
	if err != nil {
		return Totals{}, err
	}

	lines := make([]PricedLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			item := items[idx]
			line := PricedLine{
				ProductId: item.ProductId,
				Quantity:  item.Quantity,
			}
			product, err := s.products.GetByID(ctx, item.ProductId)
			switch {
			case err == nil:
				line.Name = product.Name
				line.UnitPrice = product.Price
				line.Subtotal = product.Price * item.Quantity
			case errors.Is(err, ErrProductNotFound):
				// Unknown product: keep the line, price it at zero.
			default:
				return err
			}
			lines[idx] = line
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Totals{}, err
	}

	totals := Totals{Lines: lines}
	for _, line := range lines {
		totals.Total += line.Subtotal
	}
	return totals, nil
}
