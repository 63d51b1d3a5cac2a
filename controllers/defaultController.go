package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the LevelUp Gaming API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- GET "/auth/me" - Current user profile

PRODUCT
- GET "/product" - Get all products
- GET "/product/{id}" - Get product by ID
- POST "/product" - Create new product (admin)
- POST "/product/sync" - Refresh catalog from the remote API (admin)
- POST "/product-images" - Upload a product image (admin)

CART
- GET "/cart" - Current cart with totals
- POST "/cart" - Add a product to the cart
- POST "/cart/increase" - Increase a line's quantity
- POST "/cart/decrease" - Decrease a line's quantity
- DELETE "/cart/{productId}" - Remove a line
- DELETE "/cart" - Empty the cart
- GET "/cart/watch" - Live cart snapshots

CHECKOUT
- GET "/checkout" - Checkout state and payment methods
- POST "/checkout" - Start checkout
- POST "/checkout/pay" - Pay with a selected method
- POST "/checkout/cancel" - Cancel method selection
- POST "/checkout/dismiss" - Dismiss the confirmation

ORDERS
- GET "/orders" - Purchase history

ADMIN
- GET "/admin/users" - List users
- POST "/admin/users" - Create user
- PATCH "/admin/users/{id}" - Update user
- DELETE "/admin/users/{id}" - Delete user`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
