package cart

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// State is the checkout position for one owner.
//
//	Idle -> MethodSelection -> Processing -> Confirmed -> Idle
//
// The only other transition is MethodSelection -> Idle on cancel.
// Processing has no abort path.
type State string

const (
	StateIdle            State = "idle"
	StateMethodSelection State = "method_selection"
	StateProcessing      State = "processing"
	StateConfirmed       State = "confirmed"
)

var (
	ErrEmptyCart          = errors.New("cart: cannot check out an empty cart")
	ErrCheckoutInProgress = errors.New("cart: checkout already in progress")
	ErrNoSelection        = errors.New("cart: no payment method selection in progress")
	ErrUnknownMethod      = errors.New("cart: unknown payment method")
	ErrNotConfirmed       = errors.New("cart: no confirmed checkout to dismiss")
)

// DefaultPaymentMethods mirrors the labels the storefront has always
// shown. Operators can override the set via configuration.
var DefaultPaymentMethods = []string{
	"Tarjeta de crédito",
	"Transferencia bancaria",
	"PayPal",
}

// PaymentGateway charges the owner for the cart total. Amounts are in
// currency minor-unit-free values, same as product prices.
type PaymentGateway interface {
	Charge(ctx context.Context, owner, method string, amount int) error
}

// SimulatedGateway stands in for a real payment processor: it waits a
// bounded delay and always succeeds.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g SimulatedGateway) Charge(ctx context.Context, owner, method string, amount int) error {
	delay := g.Delay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receipt describes a completed checkout.
type Receipt struct {
	Number string `json:"receiptNumber"`
	Method string `json:"paymentMethod"`
	Total  int    `json:"total"`
}

// OrderRecorder persists completed checkouts. Optional; recording is
// best effort and never blocks confirmation.
type OrderRecorder interface {
	RecordOrder(ctx context.Context, owner string, receipt Receipt, lines []PricedLine) error
}

// Checkout sequences payment-method selection, simulated processing
// and confirmation for one owner's session. State is held in memory
// only and starts over from Idle if the process restarts mid-flow.
type Checkout struct {
	session  *Session
	gateway  PaymentGateway
	recorder OrderRecorder
	methods  []string

	mu      sync.Mutex
	state   State
	method  string
	receipt Receipt
}

func NewCheckout(session *Session, gateway PaymentGateway, methods []string) *Checkout {
	if len(methods) == 0 {
		methods = DefaultPaymentMethods
	}
	return &Checkout{
		session: session,
		gateway: gateway,
		methods: methods,
		state:   StateIdle,
	}
}

// WithRecorder sets the order recorder used on confirmation.
func (c *Checkout) WithRecorder(recorder OrderRecorder) *Checkout {
	c.recorder = recorder
	return c
}

// Methods is the configured payment method label set.
func (c *Checkout) Methods() []string {
	return slices.Clone(c.methods)
}

// Status reports the current state, the selected method (empty outside
// Processing/Confirmed) and the receipt of the last confirmed checkout.
func (c *Checkout) Status() (State, string, Receipt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.method, c.receipt
}

// Begin moves Idle -> MethodSelection. A fresh cycle only starts from
// Idle and only with a non-empty cart.
func (c *Checkout) Begin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return ErrCheckoutInProgress
	}
	items, err := c.session.Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrEmptyCart
	}
	c.state = StateMethodSelection
	return nil
}

// Cancel moves MethodSelection -> Idle. Processing cannot be cancelled.
func (c *Checkout) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateMethodSelection {
		return ErrNoSelection
	}
	c.state = StateIdle
	c.method = ""
	return nil
}

// Pay records the chosen method, runs the gateway charge and, on
// success, clears the cart and confirms. The cart is empty by the time
// Confirmed is observable. If the gateway or the clear fails the
// selection rolls back to MethodSelection with no method recorded.
func (c *Checkout) Pay(ctx context.Context, method string) (Receipt, error) {
	c.mu.Lock()
	if c.state != StateMethodSelection {
		c.mu.Unlock()
		return Receipt{}, ErrNoSelection
	}
	if !slices.Contains(c.methods, method) {
		c.mu.Unlock()
		return Receipt{}, ErrUnknownMethod
	}
	c.state = StateProcessing
	c.method = method
	c.mu.Unlock()

	totals, err := c.session.Totals(ctx)
	if err != nil {
		return Receipt{}, c.rollback(err)
	}

	if err := c.gateway.Charge(ctx, c.session.Owner(), method, totals.Total); err != nil {
		return Receipt{}, c.rollback(err)
	}

	if err := c.session.ClearCart(ctx); err != nil {
		return Receipt{}, c.rollback(err)
	}

	receipt := Receipt{
		Number: uuid.NewString(),
		Method: method,
		Total:  totals.Total,
	}

	if c.recorder != nil {
		if err := c.recorder.RecordOrder(ctx, c.session.Owner(), receipt, totals.Lines); err != nil {
			logrus.Warnf("cart: recording order for %s failed: %v", c.session.Owner(), err)
		}
	}

	c.mu.Lock()
	c.state = StateConfirmed
	c.receipt = receipt
	c.mu.Unlock()
	return receipt, nil
}

// rollback returns Processing to MethodSelection and forgets the
// selected method, so no confirmation can fire without a completed
// charge.
func (c *Checkout) rollback(cause error) error {
	c.mu.Lock()
	c.state = StateMethodSelection
	c.method = ""
	c.mu.Unlock()
	return cause
}

// Dismiss acknowledges the confirmation, forgetting the method and
// returning to Idle so the next checkout starts a fresh cycle.
func (c *Checkout) Dismiss() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConfirmed {
		return ErrNotConfirmed
	}
	c.state = StateIdle
	c.method = ""
	return nil
}
