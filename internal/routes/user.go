package routes

import (
	"github.com/1Kunalvats9/chatx/internal/handlers"
	"github.com/1Kunalvats9/chatx/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		// Public profile data
		users.GET("/profile/:username", handlers.GetUserProfile)
		users.GET("/:username/followers", handlers.GetFollowers)
		users.GET("/:username/following", handlers.GetFollowing)

		// Authenticated actions
		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", handlers.GetMe)
			protected.PUT("/profile", handlers.UpdateProfile)
			protected.POST("/:username/follow", handlers.FollowUser)
			protected.GET("/:username/follow/status", handlers.CheckFollowStatus)
		}
	}
}
