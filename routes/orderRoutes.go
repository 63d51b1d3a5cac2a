package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/controllers"
	"github.com/levelup-gaming/levelup-api/middlewares"
)

func OrderRoutes(server *gin.Engine, orders *controllers.OrderController) {
	server.GET("/orders", middlewares.RequireAuth(), orders.GetOrders)
}
