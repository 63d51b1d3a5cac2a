package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/controllers"
	"github.com/levelup-gaming/levelup-api/middlewares"
)

func AdminRoutes(server *gin.Engine, admin *controllers.AdminController) {
	group := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		group.GET("/users", admin.GetUsers)
		group.POST("/users", admin.CreateUser)
		group.PATCH("/users/:id", admin.UpdateUser)
		group.DELETE("/users/:id", admin.DeleteUser)
	}
}
