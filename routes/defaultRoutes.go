package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
