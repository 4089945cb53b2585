package handlers

import (
	"net/http"

	"github.com/1Kunalvats9/chatx/internal/database"
	"github.com/1Kunalvats9/chatx/internal/models"
	"github.com/gin-gonic/gin"
)

// GetMe handles GET /users/me
func GetMe(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUserProfile handles GET /users/profile/:username
func GetUserProfile(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := database.DB.First(&user, "username = ?", username).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile handles PUT /users/profile
func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		FirstName      *string `json:"firstName"`
		LastName       *string `json:"lastName"`
		Bio            *string `json:"bio"`
		Location       *string `json:"location"`
		ProfilePicture *string `json:"profilePicture"`
		BannerImage    *string `json:"bannerImage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if input.Bio != nil && len([]rune(*input.Bio)) > 160 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bio must be 160 characters or less"})
		return
	}

	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.ProfilePicture != nil {
		updates["profile_picture"] = *input.ProfilePicture
	}
	if input.BannerImage != nil {
		updates["banner_image"] = *input.BannerImage
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	var user models.User
	database.DB.First(&user, "id = ?", userID)

	c.JSON(http.StatusOK, gin.H{"user": user})
}
