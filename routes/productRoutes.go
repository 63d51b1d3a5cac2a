package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/controllers"
	"github.com/levelup-gaming/levelup-api/middlewares"
)

func ProductRoutes(server *gin.Engine, products *controllers.ProductController) {
	server.GET("/product", products.GetProducts)
	server.GET("/product/:id", products.GetProduct)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/product", products.CreateProduct)
		admin.POST("/product/sync", products.SyncProducts)
		admin.POST("/product-images", products.UploadProductImage)
	}
}
