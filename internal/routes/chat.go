package routes

import (
	"github.com/1Kunalvats9/chatx/internal/handlers"
	"github.com/1Kunalvats9/chatx/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterChatRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/contacts", handlers.GetContacts)
		chat.GET("/conversations", handlers.GetConversations)
		chat.GET("/messages", handlers.GetMessages) // ?userId=...
		chat.POST("/messages", middleware.ChatRateLimit(), handlers.SendMessage)
	}
}
