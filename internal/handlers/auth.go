package handlers

import (
	"net/http"
	"time"

	"github.com/1Kunalvats9/chatx/internal/database"
	"github.com/1Kunalvats9/chatx/pkg/logger"
	"github.com/1Kunalvats9/chatx/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Logout handles POST /auth/logout by revoking the presented token until
// its natural expiry
func Logout(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	claims := claimsValue.(*utils.Claims)

	ttl := time.Hour
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}

	if err := database.BlacklistToken(claims.GetJTI(), ttl); err != nil {
		logger.Warn().Err(err).Msg("Failed to blacklist token on logout")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
