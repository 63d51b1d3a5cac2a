package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/cart"
	"github.com/levelup-gaming/levelup-api/middlewares"
	"github.com/levelup-gaming/levelup-api/models"
	"github.com/levelup-gaming/levelup-api/utils"
	"github.com/sirupsen/logrus"
)

const (
	msgFailedToUpdateCart = "could not update cart"
	msgFailedToReadCart   = "could not read cart"
)

// CartController serves the cart and checkout endpoints. Each
// authenticated owner gets one lazily created session and checkout
// pair, held in memory for the lifetime of the process.
type CartController struct {
	repo     *cart.Repository
	products cart.ProductLookup
	gateway  cart.PaymentGateway
	recorder cart.OrderRecorder
	methods  []string

	mu       sync.Mutex
	sessions map[string]*ownerState
}

type ownerState struct {
	session  *cart.Session
	checkout *cart.Checkout
}

func NewCartController(repo *cart.Repository, products cart.ProductLookup, gateway cart.PaymentGateway, recorder cart.OrderRecorder, methods []string) *CartController {
	return &CartController{
		repo:     repo,
		products: products,
		gateway:  gateway,
		recorder: recorder,
		methods:  methods,
		sessions: make(map[string]*ownerState),
	}
}

func (c *CartController) stateFor(owner string) *ownerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.sessions[owner]
	if !ok {
		session := cart.NewSession(c.repo, c.products, owner)
		checkout := cart.NewCheckout(session, c.gateway, c.methods)
		if c.recorder != nil {
			checkout.WithRecorder(c.recorder)
		}
		state = &ownerState{session: session, checkout: checkout}
		c.sessions[owner] = state
	}
	return state
}

func (c *CartController) owner(ctx *gin.Context) (*ownerState, bool) {
	owner, ok := middlewares.OwnerKey(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return nil, false
	}
	return c.stateFor(owner), true
}

// GetCart returns the current line items with prices and the total.
func (c *CartController) GetCart(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	totals, err := state.session.Totals(ctx.Request.Context())
	if err != nil {
		logrus.Errorf("Cart totals error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToReadCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items": totals.Lines,
		"total": totals.Total,
	})
}

type addItemBody struct {
	ProductId int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity"`
}

// AddItem adds units of a product to the cart, merging with any
// existing line.
func (c *CartController) AddItem(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	var body addItemBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	if err := state.session.AddProduct(ctx.Request.Context(), body.ProductId, body.Quantity); err != nil {
		logrus.Errorf("Add to cart error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item added to cart"})
}

type productRefBody struct {
	ProductId int `json:"productId" binding:"required"`
}

func (c *CartController) IncreaseQuantity(ctx *gin.Context) {
	c.step(ctx, 1)
}

func (c *CartController) DecreaseQuantity(ctx *gin.Context) {
	c.step(ctx, -1)
}

func (c *CartController) step(ctx *gin.Context, delta int) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	var body productRefBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	item := models.LineItem{ProductId: body.ProductId}
	var err error
	if delta > 0 {
		err = state.session.IncreaseQuantity(ctx.Request.Context(), item)
	} else {
		err = state.session.DecreaseQuantity(ctx.Request.Context(), item)
	}
	if err != nil {
		logrus.Errorf("Cart quantity change error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart updated"})
}

func (c *CartController) RemoveItem(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	productId, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := state.session.RemoveItem(ctx.Request.Context(), productId); err != nil {
		logrus.Errorf("Cart remove error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (c *CartController) ClearCart(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	if err := state.session.ClearCart(ctx.Request.Context()); err != nil {
		logrus.Errorf("Cart clear error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}

// WatchCart streams newline-delimited JSON snapshots of the cart until
// the client goes away. Every change to the owner's items produces a
// fresh snapshot.
func (c *CartController) WatchCart(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	sub, err := state.session.Items(ctx.Request.Context())
	if err != nil {
		logrus.Errorf("Cart watch error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToReadCart)
		return
	}
	defer sub.Close()

	ctx.Header("Content-Type", "application/x-ndjson")
	ctx.Header("Cache-Control", "no-cache")

	ctx.Stream(func(w io.Writer) bool {
		items, open := <-sub.Updates()
		if !open {
			return false
		}
		if err := json.NewEncoder(w).Encode(gin.H{"items": items}); err != nil {
			return false
		}
		return true
	})
}

// Checkout endpoints

func (c *CartController) GetCheckout(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	checkoutState, method, receipt := state.checkout.Status()
	response := gin.H{
		"state":   checkoutState,
		"methods": state.checkout.Methods(),
	}
	if method != "" {
		response["selectedMethod"] = method
	}
	if checkoutState == cart.StateConfirmed {
		response["receipt"] = receipt
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}

func (c *CartController) BeginCheckout(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	if err := state.checkout.Begin(ctx.Request.Context()); err != nil {
		switch {
		case errors.Is(err, cart.ErrEmptyCart):
			sendErrorResponse(ctx, http.StatusConflict, "cart is empty")
		case errors.Is(err, cart.ErrCheckoutInProgress):
			sendErrorResponse(ctx, http.StatusConflict, "checkout already in progress")
		default:
			logrus.Errorf("Checkout begin error: %v", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToReadCart)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"state":   cart.StateMethodSelection,
		"methods": state.checkout.Methods(),
	})
}

type payBody struct {
	Method string `json:"method" binding:"required"`
}

// Pay runs the full Processing transition: the response arrives once
// the gateway finished and the cart is cleared.
func (c *CartController) Pay(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	var body payBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	receipt, err := state.checkout.Pay(ctx.Request.Context(), body.Method)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrNoSelection):
			sendErrorResponse(ctx, http.StatusConflict, "no checkout in progress")
		case errors.Is(err, cart.ErrUnknownMethod):
			sendErrorResponse(ctx, http.StatusBadRequest, "unknown payment method")
		default:
			logrus.Errorf("Checkout payment error: %v", err)
			sendErrorResponse(ctx, http.StatusBadGateway, "payment failed, cart unchanged")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"state":   cart.StateConfirmed,
		"message": "Tu pago de " + utils.FormatPrice(receipt.Total) + " con " + receipt.Method + " ha sido procesado exitosamente.",
		"receipt": receipt,
	})
}

func (c *CartController) CancelCheckout(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	if err := state.checkout.Cancel(); err != nil {
		sendErrorResponse(ctx, http.StatusConflict, "no checkout in progress")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"state": cart.StateIdle})
}

func (c *CartController) DismissCheckout(ctx *gin.Context) {
	state, ok := c.owner(ctx)
	if !ok {
		return
	}

	if err := state.checkout.Dismiss(); err != nil {
		sendErrorResponse(ctx, http.StatusConflict, "no confirmed checkout to dismiss")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"state": cart.StateIdle})
}
