package handlers

import (
	"net/http"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/gitaura/gitaura/internal/services"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile returns the user profile, creating a default one on first call
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load profile: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// UpdateProfileRequest carries the user-editable profile fields
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required"`
}

// UpdateProfile updates the user-editable fields of the profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var request UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	profile, err := h.profileService.UpdateProfile(&models.ProfileUpdate{
		Username: &request.Username,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update profile: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated",
		"data":    profile,
	})
}

// ToggleFavoriteRequest identifies the repository to toggle
type ToggleFavoriteRequest struct {
	Owner string `json:"owner" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

// ToggleFavorite flips a repository's membership in the favorites set
func (h *ProfileHandler) ToggleFavorite(c *gin.Context) {
	var request ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	isFavorite, err := h.profileService.ToggleFavorite(request.Owner, request.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to toggle favorite: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"isFavorite": isFavorite,
		},
	})
}

// CheckFavorite reports whether a repository is in the favorites set
func (h *ProfileHandler) CheckFavorite(c *gin.Context) {
	owner := c.Param("owner")
	name := c.Param("name")

	isFavorite, err := h.profileService.IsFavorite(owner, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to check favorite: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"isFavorite": isFavorite,
		},
	})
}
