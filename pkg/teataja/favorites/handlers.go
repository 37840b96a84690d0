package favorites

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martlaas/teataja/pkg/teataja/auth"
	"github.com/martlaas/teataja/pkg/teataja/models"
	"github.com/martlaas/teataja/pkg/teataja/visibility"
	"gorm.io/gorm"
)

// Handler handles favorites requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new favorites handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Add favorites a notification for the caller.
// Idempotent: favoriting twice leaves one row and both calls succeed.
// @Summary Add a favorite
// @Description Add a notification to the caller's favorites. Safe to call repeatedly.
// @Tags favorites
// @Produce json
// @Param notificationId path int true "Notification ID"
// @Success 200 {object} map[string]string "Favorited"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /favorites/{notificationId} [post]
func (h *Handler) Add(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	role, _ := auth.GetRole(c)

	id, err := strconv.ParseUint(c.Param("notificationId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	if err := h.db.First(&notification, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	ok, err := visibility.CanSee(h.db, userID, role, notification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve visibility"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var existing models.Favorite
	err = h.db.Where("user_id = ? AND notification_id = ?", userID, notification.ID).First(&existing).Error
	if err != nil {
		favorite := models.Favorite{UserID: userID, NotificationID: notification.ID}
		if err := h.db.Create(&favorite).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorited"})
}

// Remove unfavorites a notification.
// Idempotent: removing an absent favorite is a no-op, not an error.
// @Summary Remove a favorite
// @Description Remove a notification from the caller's favorites. Removing an absent favorite succeeds.
// @Tags favorites
// @Produce json
// @Param notificationId path int true "Notification ID"
// @Success 200 {object} map[string]string "Removed"
// @Security BearerAuth
// @Router /favorites/{notificationId} [delete]
func (h *Handler) Remove(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("notificationId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := h.db.Where("user_id = ? AND notification_id = ?", userID, id).Delete(&models.Favorite{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed"})
}

// List returns the caller's favorited notifications
// @Summary List favorites
// @Description Get the notifications the caller has favorited
// @Tags favorites
// @Produce json
// @Success 200 {array} models.Notification
// @Security BearerAuth
// @Router /favorites [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var notifications []models.Notification
	err := h.db.Preload("CreatedBy").
		Joins("JOIN favorites ON favorites.notification_id = notifications.id").
		Where("favorites.user_id = ?", userID).
		Order("notifications.created_at DESC").
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// RegisterRoutes registers favorites routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.List)
	rg.POST("/favorites/:notificationId", h.Add)
	rg.DELETE("/favorites/:notificationId", h.Remove)
}
