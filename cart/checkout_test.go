package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	charges []fakeCharge
	fail    error
}

type fakeCharge struct {
	owner  string
	method string
	amount int
}

func (g *fakeGateway) Charge(ctx context.Context, owner, method string, amount int) error {
	if g.fail != nil {
		err := g.fail
		g.fail = nil
		return err
	}
	g.charges = append(g.charges, fakeCharge{owner: owner, method: method, amount: amount})
	return nil
}

type fakeRecorder struct {
	orders []Receipt
	fail   error
}

func (r *fakeRecorder) RecordOrder(ctx context.Context, owner string, receipt Receipt, lines []PricedLine) error {
	if r.fail != nil {
		return r.fail
	}
	r.orders = append(r.orders, receipt)
	return nil
}

func newTestCheckout(t *testing.T, gateway PaymentGateway) (*Checkout, *Session) {
	t.Helper()
	session := newTestSession("u1")
	return NewCheckout(session, gateway, nil), session
}

func TestCheckoutHappyPath(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{}
	checkout, session := newTestCheckout(t, gateway)

	require.NoError(t, session.AddProduct(ctx, 7, 2))
	require.NoError(t, session.AddProduct(ctx, 9, 1))

	state, _, _ := checkout.Status()
	assert.Equal(t, StateIdle, state)

	require.NoError(t, checkout.Begin(ctx))
	state, _, _ = checkout.Status()
	assert.Equal(t, StateMethodSelection, state)

	receipt, err := checkout.Pay(ctx, "PayPal")
	require.NoError(t, err)
	assert.Equal(t, "PayPal", receipt.Method)
	assert.Equal(t, 2*499990+389990, receipt.Total)
	assert.NotEmpty(t, receipt.Number)

	// The cart must already be empty when Confirmed is observable.
	state, method, got := checkout.Status()
	assert.Equal(t, StateConfirmed, state)
	assert.Equal(t, "PayPal", method)
	assert.Equal(t, receipt, got)

	items, err := session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, gateway.charges, 1)
	assert.Equal(t, "u1", gateway.charges[0].owner)
	assert.Equal(t, 2*499990+389990, gateway.charges[0].amount)

	require.NoError(t, checkout.Dismiss())
	state, method, _ = checkout.Status()
	assert.Equal(t, StateIdle, state)
	assert.Empty(t, method)
}

func TestCheckoutBeginRejectsEmptyCart(t *testing.T) {
	ctx := context.Background()
	checkout, _ := newTestCheckout(t, &fakeGateway{})

	assert.ErrorIs(t, checkout.Begin(ctx), ErrEmptyCart)
	state, _, _ := checkout.Status()
	assert.Equal(t, StateIdle, state)
}

func TestCheckoutBeginOnlyFromIdle(t *testing.T) {
	ctx := context.Background()
	checkout, session := newTestCheckout(t, &fakeGateway{})

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, checkout.Begin(ctx))
	assert.ErrorIs(t, checkout.Begin(ctx), ErrCheckoutInProgress)
}

func TestCheckoutCancelReturnsToIdle(t *testing.T) {
	ctx := context.Background()
	checkout, session := newTestCheckout(t, &fakeGateway{})

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, checkout.Begin(ctx))
	require.NoError(t, checkout.Cancel())

	state, method, _ := checkout.Status()
	assert.Equal(t, StateIdle, state)
	assert.Empty(t, method)

	// Cancelling leaves the cart alone.
	items, err := session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.ErrorIs(t, checkout.Cancel(), ErrNoSelection)
}

func TestCheckoutPayRequiresSelectionState(t *testing.T) {
	ctx := context.Background()
	checkout, _ := newTestCheckout(t, &fakeGateway{})

	_, err := checkout.Pay(ctx, "PayPal")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestCheckoutPayRejectsUnknownMethod(t *testing.T) {
	ctx := context.Background()
	checkout, session := newTestCheckout(t, &fakeGateway{})

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, checkout.Begin(ctx))

	_, err := checkout.Pay(ctx, "Dogecoin")
	assert.ErrorIs(t, err, ErrUnknownMethod)

	state, _, _ := checkout.Status()
	assert.Equal(t, StateMethodSelection, state)
}

func TestCheckoutGatewayFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("gateway unreachable")
	gateway := &fakeGateway{fail: boom}
	checkout, session := newTestCheckout(t, gateway)

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, checkout.Begin(ctx))

	_, err := checkout.Pay(ctx, "PayPal")
	assert.ErrorIs(t, err, boom)

	// Back in method selection with the method forgotten and the cart
	// untouched; a retry from here can still confirm.
	state, method, _ := checkout.Status()
	assert.Equal(t, StateMethodSelection, state)
	assert.Empty(t, method)

	items, err := session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	receipt, err := checkout.Pay(ctx, "Transferencia bancaria")
	require.NoError(t, err)
	assert.Equal(t, "Transferencia bancaria", receipt.Method)

	items, err = session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutDismissOnlyWhenConfirmed(t *testing.T) {
	checkout, _ := newTestCheckout(t, &fakeGateway{})
	assert.ErrorIs(t, checkout.Dismiss(), ErrNotConfirmed)
}

func TestCheckoutFreshCycleAfterDismiss(t *testing.T) {
	ctx := context.Background()
	checkout, session := newTestCheckout(t, &fakeGateway{})

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, checkout.Begin(ctx))
	_, err := checkout.Pay(ctx, "PayPal")
	require.NoError(t, err)
	require.NoError(t, checkout.Dismiss())

	// New cart contents, new cycle.
	require.NoError(t, session.AddProduct(ctx, 9, 3))
	require.NoError(t, checkout.Begin(ctx))
	receipt, err := checkout.Pay(ctx, "Tarjeta de crédito")
	require.NoError(t, err)
	assert.Equal(t, 3*389990, receipt.Total)
}

func TestCheckoutRecordsOrderOnConfirmation(t *testing.T) {
	ctx := context.Background()
	recorder := &fakeRecorder{}
	checkout, session := newTestCheckout(t, &fakeGateway{})
	checkout.WithRecorder(recorder)

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, checkout.Begin(ctx))
	receipt, err := checkout.Pay(ctx, "PayPal")
	require.NoError(t, err)

	require.Len(t, recorder.orders, 1)
	assert.Equal(t, receipt, recorder.orders[0])
}

func TestCheckoutRecorderFailureDoesNotBlockConfirmation(t *testing.T) {
	ctx := context.Background()
	recorder := &fakeRecorder{fail: errors.New("orders table gone")}
	checkout, session := newTestCheckout(t, &fakeGateway{})
	checkout.WithRecorder(recorder)

	require.NoError(t, session.AddProduct(ctx, 7, 1))
	require.NoError(t, checkout.Begin(ctx))
	_, err := checkout.Pay(ctx, "PayPal")
	require.NoError(t, err)

	state, _, _ := checkout.Status()
	assert.Equal(t, StateConfirmed, state)
}

func TestCheckoutDefaultMethods(t *testing.T) {
	checkout, _ := newTestCheckout(t, &fakeGateway{})
	assert.Equal(t, DefaultPaymentMethods, checkout.Methods())
}

func TestSimulatedGatewayWaitsBoundedDelay(t *testing.T) {
	gateway := SimulatedGateway{Delay: 20 * time.Millisecond}

	start := time.Now()
	err := gateway.Charge(context.Background(), "u1", "PayPal", 1000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulatedGatewayHonoursContext(t *testing.T) {
	gateway := SimulatedGateway{Delay: time.Minute}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := gateway.Charge(ctx, "u1", "PayPal", 1000)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
