package readstatus

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martlaas/teataja/pkg/teataja/auth"
	"github.com/martlaas/teataja/pkg/teataja/models"
	"github.com/martlaas/teataja/pkg/teataja/visibility"
	"gorm.io/gorm"
)

// Handler handles read-status requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new read-status handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// StatusResponse represents a read-status row in API responses
type StatusResponse struct {
	UserID         uint   `json:"user_id"`
	NotificationID uint   `json:"notification_id"`
	Read           bool   `json:"read"`
	ReaderName     string `json:"reader_name,omitempty"`
	ReaderRole     string `json:"reader_role,omitempty"`
}

// MarkRead marks a notification as read for the caller.
// Idempotent upsert: repeated calls leave exactly one row with read=true.
// @Summary Mark a notification read
// @Description Record that the caller has read the notification. Safe to call repeatedly.
// @Tags read-status
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} StatusResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *Handler) MarkRead(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}
	notificationID := uint(id)

	// Check-then-branch upsert; the unique index backs the at-most-one-row
	// invariant
	var status models.ReadStatus
	err = h.db.Where("user_id = ? AND notification_id = ?", userID, notificationID).First(&status).Error
	if err == nil {
		if !status.Read {
			status.Read = true
			err = h.db.Save(&status).Error
		} else {
			err = nil
		}
	} else {
		status = models.ReadStatus{UserID: userID, NotificationID: notificationID, Read: true}
		err = h.db.Create(&status).Error
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		UserID:         status.UserID,
		NotificationID: status.NotificationID,
		Read:           status.Read,
	})
}

// ListMine returns all read-status rows of the caller
// @Summary Get own read statuses
// @Description Get every read-status row recorded for the caller
// @Tags read-status
// @Produce json
// @Success 200 {array} StatusResponse
// @Security BearerAuth
// @Router /read-status [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var statuses []models.ReadStatus
	if err := h.db.Where("user_id = ?", userID).Find(&statuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch read statuses"})
		return
	}

	responses := make([]StatusResponse, len(statuses))
	for i, s := range statuses {
		responses[i] = StatusResponse{
			UserID:         s.UserID,
			NotificationID: s.NotificationID,
			Read:           s.Read,
		}
	}

	c.JSON(http.StatusOK, responses)
}

// ListForNotification returns who has read a notification.
// Creator-only: the existence check runs first so a missing notification is a
// 404 while someone else's notification is a 403.
// @Summary Get a notification's read statuses
// @Description Get the read-status breakdown of a notification, with reader name and role. Creator only.
// @Tags read-status
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {array} StatusResponse
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read-status [get]
func (h *Handler) ListForNotification(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	if err := h.db.First(&notification, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	if notification.CreatedByID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator may view read statuses"})
		return
	}

	var statuses []models.ReadStatus
	if err := h.db.Preload("User").Where("notification_id = ?", notification.ID).Find(&statuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch read statuses"})
		return
	}

	responses := make([]StatusResponse, len(statuses))
	for i, s := range statuses {
		responses[i] = StatusResponse{
			UserID:         s.UserID,
			NotificationID: s.NotificationID,
			Read:           s.Read,
			ReaderName:     s.User.Name,
			ReaderRole:     string(s.User.Role),
		}
	}

	c.JSON(http.StatusOK, responses)
}

// ListUnread returns the visible notifications the caller has not read.
// Left-join semantics: no row at all counts as unread, same as read=false.
// @Summary Get unread notifications
// @Description Get the notifications visible to the caller that have no read-status row or an unread one
// @Tags read-status
// @Produce json
// @Success 200 {array} models.Notification
// @Security BearerAuth
// @Router /notifications/unread [get]
func (h *Handler) ListUnread(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	role, _ := auth.GetRole(c)

	var candidates []models.Notification
	err := h.db.Preload("CreatedBy").
		Joins("LEFT JOIN read_statuses ON read_statuses.notification_id = notifications.id AND read_statuses.user_id = ?", userID).
		Where("read_statuses.id IS NULL OR read_statuses.read = ?", false).
		Order("notifications.created_at DESC").
		Find(&candidates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unread notifications"})
		return
	}

	visible, err := visibility.FilterVisible(h.db, userID, role, candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve visibility"})
		return
	}

	c.JSON(http.StatusOK, visible)
}

// RegisterRoutes registers read-status routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications/:id/read", h.MarkRead)
	rg.GET("/notifications/:id/read-status", h.ListForNotification)
	rg.GET("/notifications/unread", h.ListUnread)
	rg.GET("/read-status", h.ListMine)
}
