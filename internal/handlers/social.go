package handlers

import (
	"context"
	"net/http"

	"github.com/1Kunalvats9/chatx/internal/database"
	"github.com/1Kunalvats9/chatx/internal/models"
	"github.com/1Kunalvats9/chatx/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowUser handles POST /users/:username/follow (toggle)
func FollowUser(c *gin.Context) {
	followerID := c.MustGet("userId").(string)
	targetInput := c.Param("username")

	var targetUser models.User
	if err := database.DB.Where("username = ? OR id = ?", targetInput, targetInput).First(&targetUser).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if followerID == targetUser.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	var existing models.UserFollow
	err := database.DB.Where("follower_id = ? AND followee_id = ?", followerID, targetUser.ID).First(&existing).Error

	if err == nil {
		// Already following -> unfollow
		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", targetUser.ID).
				UpdateColumn("followers_count", gorm.Expr("CASE WHEN followers_count > 0 THEN followers_count - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", followerID).
				UpdateColumn("following_count", gorm.Expr("CASE WHEN following_count > 0 THEN following_count - 1 ELSE 0 END")).Error
		})
		if txErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully", "following": false})
		return
	}

	// Not following -> follow
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		follow := models.UserFollow{
			FollowerID: followerID,
			FolloweeID: targetUser.ID,
		}
		if err := tx.Create(&follow).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", targetUser.ID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	// Notify target post-transaction; a failed notification never fails
	// the follow itself
	go func(fromID, toID string) {
		if Notifier == nil {
			return
		}
		if err := Notifier.Emit(context.Background(), fromID, toID, models.NotificationTypeFollow); err != nil {
			logger.Warn().Err(err).Str("from", fromID).Str("to", toID).Msg("Follow notification failed")
		}
	}(followerID, targetUser.ID)

	c.JSON(http.StatusOK, gin.H{"message": "User followed successfully", "following": true})
}

// GetFollowers handles GET /users/:username/followers
func GetFollowers(c *gin.Context) {
	targetInput := c.Param("username")

	var targetUser models.User
	if err := database.DB.Where("username = ? OR id = ?", targetInput, targetInput).First(&targetUser).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var follows []models.UserFollow
	if err := database.DB.Preload("Follower").Where("followee_id = ?", targetUser.ID).
		Order("created_at desc").Limit(50).Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}

	users := make([]gin.H, 0)
	for _, f := range follows {
		users = append(users, gin.H{
			"id":             f.Follower.ID,
			"username":       f.Follower.Username,
			"firstName":      f.Follower.FirstName,
			"lastName":       f.Follower.LastName,
			"profilePicture": f.Follower.ProfilePicture,
			"followedAt":     f.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"followers": users})
}

// GetFollowing handles GET /users/:username/following
func GetFollowing(c *gin.Context) {
	targetInput := c.Param("username")

	var targetUser models.User
	if err := database.DB.Where("username = ? OR id = ?", targetInput, targetInput).First(&targetUser).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var follows []models.UserFollow
	if err := database.DB.Preload("Followee").Where("follower_id = ?", targetUser.ID).
		Order("created_at desc").Limit(50).Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
		return
	}

	users := make([]gin.H, 0)
	for _, f := range follows {
		users = append(users, gin.H{
			"id":             f.Followee.ID,
			"username":       f.Followee.Username,
			"firstName":      f.Followee.FirstName,
			"lastName":       f.Followee.LastName,
			"profilePicture": f.Followee.ProfilePicture,
			"followedAt":     f.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"following": users})
}

// CheckFollowStatus handles GET /users/:username/follow/status
func CheckFollowStatus(c *gin.Context) {
	followerID := c.MustGet("userId").(string)
	targetInput := c.Param("username")

	var targetUser models.User
	if err := database.DB.Where("username = ? OR id = ?", targetInput, targetInput).Select("id").First(&targetUser).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var count int64
	database.DB.Model(&models.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, targetUser.ID).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"following": count > 0})
}
