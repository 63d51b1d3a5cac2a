package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/controllers"
	"github.com/levelup-gaming/levelup-api/middlewares"
)

func CartRoutes(server *gin.Engine, carts *controllers.CartController) {
	group := server.Group("/", middlewares.RequireAuth())
	{
		group.GET("/cart", carts.GetCart)
		group.POST("/cart", carts.AddItem)
		group.POST("/cart/increase", carts.IncreaseQuantity)
		group.POST("/cart/decrease", carts.DecreaseQuantity)
		group.DELETE("/cart/:productId", carts.RemoveItem)
		group.DELETE("/cart", carts.ClearCart)
		group.GET("/cart/watch", carts.WatchCart)

		group.GET("/checkout", carts.GetCheckout)
		group.POST("/checkout", carts.BeginCheckout)
		group.POST("/checkout/pay", carts.Pay)
		group.POST("/checkout/cancel", carts.CancelCheckout)
		group.POST("/checkout/dismiss", carts.DismissCheckout)
	}
}
