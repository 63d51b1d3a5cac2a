package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/controllers"
	"github.com/levelup-gaming/levelup-api/middlewares"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController) {
	group := server.Group("/auth")
	{
		group.POST("/signup", auth.Signup)
		group.POST("/login", auth.Login)
		group.GET("/me", middlewares.RequireAuth(), auth.Me)
	}
}
