package handlers

import (
	"net/http"
	"time"

	"github.com/1Kunalvats9/chatx/internal/database"
	"github.com/1Kunalvats9/chatx/internal/messaging"
	"github.com/1Kunalvats9/chatx/internal/models"
	apperrors "github.com/1Kunalvats9/chatx/pkg/errors"
	"github.com/1Kunalvats9/chatx/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Messaging is the facade behind all chat endpoints. Wired at boot via
// InitMessaging; tests swap in fakes.
var Messaging *messaging.Service

// Notifier is shared with the social handlers for follow notifications.
var Notifier messaging.NotificationEmitter

// InitMessaging builds the messaging service on top of the given DB
func InitMessaging(db *gorm.DB) {
	directory := messaging.NewGormDirectory(db)
	store := messaging.NewGormMessageStore(db)
	Notifier = messaging.NewGormNotificationEmitter(db)
	Messaging = messaging.NewService(directory, store, Notifier)
}

// SendMessage handles POST /chat/messages
func SendMessage(c *gin.Context) {
	senderID := c.MustGet("userId").(string)

	var req struct {
		ReceiverID string `json:"receiverId" binding:"required"`
		Content    string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Per-user send throttle on top of the IP limiter (30/min)
	allowed, err := database.CheckRateLimit("chat_send:"+senderID, 30, time.Minute)
	if err != nil {
		logger.Warn().Err(err).Msg("Send rate limit check failed, allowing request")
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages. Please slow down."})
		return
	}

	msg, err := Messaging.SendMessage(c.Request.Context(), senderID, req.ReceiverID, req.Content)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetMessages handles GET /chat/messages?userId= (one thread, oldest first)
func GetMessages(c *gin.Context) {
	currentUserID := c.MustGet("userId").(string)
	otherUserID := c.Query("userId")

	if otherUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	messages, err := Messaging.GetConversation(c.Request.Context(), currentUserID, otherUserID)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetConversations handles GET /chat/conversations. Each value is one
// partner's thread, oldest first, so the last element is the latest
// message for inbox previews.
func GetConversations(c *gin.Context) {
	currentUserID := c.MustGet("userId").(string)

	conversations, err := Messaging.GetConversations(c.Request.Context(), currentUserID)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetContacts handles GET /chat/contacts. It lists users the caller follows,
// everyone the caller is currently allowed to message
func GetContacts(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	contacts := make([]models.User, 0)
	err := database.DB.
		Joins("JOIN user_follows ON user_follows.followee_id = users.id").
		Where("user_follows.follower_id = ?", userId).
		Order("user_follows.created_at desc").
		Find(&contacts).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}
