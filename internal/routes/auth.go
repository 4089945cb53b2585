package routes

import (
	"github.com/1Kunalvats9/chatx/internal/handlers"
	"github.com/1Kunalvats9/chatx/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	{
		auth.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
	}
}
