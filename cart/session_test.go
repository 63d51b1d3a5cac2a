package cart

import (
	"context"
	"testing"

	"github.com/levelup-gaming/levelup-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	products map[int]models.Product
}

func (f fakeLookup) GetByID(ctx context.Context, productId int) (models.Product, error) {
	product, ok := f.products[productId]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

func (f fakeLookup) GetAll(ctx context.Context) ([]models.Product, error) {
	all := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		all = append(all, p)
	}
	return all, nil
}

func product(id uint, name string, price int) models.Product {
	p := models.Product{Name: name, Price: price}
	p.ID = id
	return p
}

func newTestSession(owner string) *Session {
	lookup := fakeLookup{products: map[int]models.Product{
		7: product(7, "PlayStation 5", 499990),
		9: product(9, "Nintendo Switch OLED", 389990),
	}}
	return NewSession(NewRepository(NewMemoryStore()), lookup, owner)
}

func TestSessionIntentMapping(t *testing.T) {
	ctx := context.Background()
	session := newTestSession("u1")

	require.NoError(t, session.AddProduct(ctx, 7, 2))
	require.NoError(t, session.IncreaseQuantity(ctx, models.LineItem{ProductId: 7}))

	items, err := session.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	require.NoError(t, session.DecreaseQuantity(ctx, items[0]))
	items, err = session.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	require.NoError(t, session.RemoveItem(ctx, 7))
	items, err = session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSessionDecreaseLastUnitRemovesLine(t *testing.T) {
	ctx := context.Background()
	session := newTestSession("u1")

	require.NoError(t, session.AddProduct(ctx, 9, 1))
	items, err := session.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, session.DecreaseQuantity(ctx, items[0]))
	items, err = session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSessionClearCart(t *testing.T) {
	ctx := context.Background()
	session := newTestSession("u1")

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, session.AddProduct(ctx, 9, 2))
	require.NoError(t, session.ClearCart(ctx))

	items, err := session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTotalsSumsPricedLines(t *testing.T) {
	ctx := context.Background()
	session := newTestSession("u1")

	require.NoError(t, session.AddProduct(ctx, 7, 2))
	require.NoError(t, session.AddProduct(ctx, 9, 1))

	totals, err := session.Totals(ctx)
	require.NoError(t, err)
	require.Len(t, totals.Lines, 2)
	assert.Equal(t, 2*499990+389990, totals.Total)

	byProduct := make(map[int]PricedLine)
	for _, line := range totals.Lines {
		byProduct[line.ProductId] = line
	}
	assert.Equal(t, "PlayStation 5", byProduct[7].Name)
	assert.Equal(t, 2*499990, byProduct[7].Subtotal)
	assert.Equal(t, 389990, byProduct[9].Subtotal)
}

// A product the catalog no longer knows still shows up as a line, it
// just contributes nothing to the total.
func TestTotalsMissingProductPricesAtZero(t *testing.T) {
	ctx := context.Background()
	session := newTestSession("u1")

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, session.AddProduct(ctx, 12345, 4))

	totals, err := session.Totals(ctx)
	require.NoError(t, err)
	require.Len(t, totals.Lines, 2)
	assert.Equal(t, 499990, totals.Total)

	for _, line := range totals.Lines {
		if line.ProductId == 12345 {
			assert.Zero(t, line.UnitPrice)
			assert.Zero(t, line.Subtotal)
			assert.Equal(t, 4, line.Quantity)
		}
	}
}

func TestTotalsEmptyCart(t *testing.T) {
	ctx := context.Background()
	session := newTestSession("u1")

	totals, err := session.Totals(ctx)
	require.NoError(t, err)
	assert.Empty(t, totals.Lines)
	assert.Zero(t, totals.Total)
}
