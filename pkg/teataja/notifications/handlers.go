package notifications

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martlaas/teataja/pkg/teataja/auth"
	"github.com/martlaas/teataja/pkg/teataja/models"
	"github.com/martlaas/teataja/pkg/teataja/visibility"
	"gorm.io/gorm"
)

// Handler handles notification-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new notifications handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

var errUnknownGroup = errors.New("unknown group")

// CreateNotificationRequest represents the request to create a notification
type CreateNotificationRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	GroupIDs []uint `json:"group_ids"` // empty or absent means public
}

// UpdateNotificationRequest represents the request to update a notification.
// GroupIDs distinguishes "not supplied" (nil, associations untouched) from
// "supplied empty" (clear associations, notification becomes public).
type UpdateNotificationRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Priority string  `json:"priority"`
	GroupIDs *[]uint `json:"group_ids"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	CreatedByID   uint   `json:"created_by_id"`
	CreatedByName string `json:"created_by_name,omitempty"`
	GroupIDs      []uint `json:"group_ids"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// SearchResponse represents a paged search result
type SearchResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
}

func notificationToResponse(n models.Notification, groupIDs []uint) NotificationResponse {
	if groupIDs == nil {
		groupIDs = []uint{}
	}
	return NotificationResponse{
		ID:            n.ID,
		Title:         n.Title,
		Content:       n.Content,
		Category:      n.Category,
		Priority:      n.Priority,
		CreatedByID:   n.CreatedByID,
		CreatedByName: n.CreatedBy.Name,
		GroupIDs:      groupIDs,
		CreatedAt:     n.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     n.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *Handler) toResponses(notifications []models.Notification) ([]NotificationResponse, error) {
	ids := make([]uint, len(notifications))
	for i, n := range notifications {
		ids[i] = n.ID
	}
	targetSets, err := visibility.TargetGroupSets(h.db, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notificationToResponse(n, targetSets[n.ID])
	}
	return responses, nil
}

// replaceTargetGroups validates the group ids and replaces the notification's
// association rows inside the caller's transaction. An unknown id aborts the
// transaction via errUnknownGroup.
func replaceTargetGroups(tx *gorm.DB, notificationID uint, groupIDs []uint) error {
	if err := tx.Where("notification_id = ?", notificationID).Delete(&models.NotificationGroup{}).Error; err != nil {
		return err
	}
	return insertTargetGroups(tx, notificationID, groupIDs)
}

func insertTargetGroups(tx *gorm.DB, notificationID uint, groupIDs []uint) error {
	if len(groupIDs) == 0 {
		return nil
	}

	unique := make(map[uint]struct{}, len(groupIDs))
	for _, id := range groupIDs {
		unique[id] = struct{}{}
	}
	deduped := make([]uint, 0, len(unique))
	for id := range unique {
		deduped = append(deduped, id)
	}

	var count int64
	if err := tx.Model(&models.Group{}).Where("id IN ?", deduped).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(deduped)) {
		return errUnknownGroup
	}

	rows := make([]models.NotificationGroup, len(deduped))
	for i, id := range deduped {
		rows[i] = models.NotificationGroup{NotificationID: notificationID, GroupID: id}
	}
	return tx.Create(&rows).Error
}

func parsePagination(c *gin.Context) (page, limit int) {
	page = 1
	limit = 20
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return page, limit
}

func paginate(responses []NotificationResponse, page, limit int) []NotificationResponse {
	start := (page - 1) * limit
	if start >= len(responses) {
		return []NotificationResponse{}
	}
	end := start + limit
	if end > len(responses) {
		end = len(responses)
	}
	return responses[start:end]
}

// List returns all notifications visible to the caller
// @Summary List notifications
// @Description Get all notifications the caller may see, newest first
// @Tags notifications
// @Produce json
// @Param page query int false "Page (1-based, optional)"
// @Param limit query int false "Page size (optional, max 100)"
// @Success 200 {array} NotificationResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	role, _ := auth.GetRole(c)

	var candidates []models.Notification
	if err := h.db.Preload("CreatedBy").Order("created_at DESC").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	visible, err := visibility.FilterVisible(h.db, userID, role, candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve visibility"})
		return
	}

	responses, err := h.toResponses(visible)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	if c.Query("page") != "" || c.Query("limit") != "" {
		page, limit := parsePagination(c)
		responses = paginate(responses, page, limit)
	}

	c.JSON(http.StatusOK, responses)
}

// Search searches visible notifications by free text
// @Summary Search notifications
// @Description Case-insensitive substring search over title, content, category and creator name, restricted to notifications the caller may see
// @Tags notifications
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page (1-based, default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} map[string]string "Empty query"
// @Security BearerAuth
// @Router /notifications/search [get]
func (h *Handler) Search(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	role, _ := auth.GetRole(c)

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	pattern := "%" + strings.ToLower(q) + "%"
	var candidates []models.Notification
	err := h.db.Preload("CreatedBy").
		Joins("JOIN users ON users.id = notifications.created_by_id").
		Where("LOWER(notifications.title) LIKE ? OR LOWER(notifications.content) LIKE ? OR LOWER(notifications.category) LIKE ? OR LOWER(users.name) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("notifications.created_at DESC").
		Find(&candidates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search notifications"})
		return
	}

	visible, err := visibility.FilterVisible(h.db, userID, role, candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve visibility"})
		return
	}

	responses, err := h.toResponses(visible)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search notifications"})
		return
	}

	// Pagination applies to the final filtered set
	page, limit := parsePagination(c)
	c.JSON(http.StatusOK, SearchResponse{
		Notifications: paginate(responses, page, limit),
		Total:         len(responses),
		Page:          page,
		Limit:         limit,
	})
}

// GetByID returns a single notification.
// A missing id is a 404; an existing but hidden one is a 403 so the caller
// can tell "doesn't exist" from "exists but not yours to see".
// @Summary Get a notification
// @Description Get a notification by id
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} NotificationResponse
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	role, _ := auth.GetRole(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	if err := h.db.Preload("CreatedBy").First(&notification, id).Error; err != nil {
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

	groupIDs, err := visibility.TargetGroupIDs(h.db, notification.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification"})
		return
	}

	c.JSON(http.StatusOK, notificationToResponse(notification, groupIDs))
}

// GetGroups returns the target groups of a notification
// @Summary List a notification's target groups
// @Description Get the groups a notification is restricted to; empty means public
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {array} models.Group
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/groups [get]
func (h *Handler) GetGroups(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	role, _ := auth.GetRole(c)

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

	ok, err := visibility.CanSee(h.db, userID, role, notification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve visibility"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var groups []models.Group
	err = h.db.Joins("JOIN notification_groups ON notification_groups.group_id = groups.id").
		Where("notification_groups.notification_id = ?", notification.ID).
		Find(&groups).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// Create creates a new notification
// @Summary Create a notification
// @Description Create a notification, optionally restricted to target groups. Program managers only.
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body CreateNotificationRequest true "Notification details"
// @Success 201 {object} NotificationResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /notifications [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A stale token can outlive its user row; a missing creator is a payload
	// problem, not a 404
	var creator models.User
	if err := h.db.First(&creator, userID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Creator does not exist"})
		return
	}

	notification := models.Notification{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Priority:    req.Priority,
		CreatedByID: userID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}
		return insertTargetGroups(tx, notification.ID, req.GroupIDs)
	})

	if err != nil {
		if errors.Is(err, errUnknownGroup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more group ids do not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	notification.CreatedBy = creator
	groupIDs, _ := visibility.TargetGroupIDs(h.db, notification.ID)
	c.JSON(http.StatusCreated, notificationToResponse(notification, groupIDs))
}

// Update updates a notification. Only the creator may update; other program
// managers get a 403.
// @Summary Update a notification
// @Description Update a notification's fields and optionally replace its target groups. Omitting group_ids keeps the current targeting; an explicit empty list makes the notification public.
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Param request body UpdateNotificationRequest true "Updated notification details"
// @Success 200 {object} NotificationResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	// Existence check precedes the ownership check: the two failures map to
	// different status codes
	var notification models.Notification
	if err := h.db.First(&notification, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	if notification.CreatedByID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator may update this notification"})
		return
	}

	var req UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != "" {
		notification.Title = req.Title
	}
	if req.Content != "" {
		notification.Content = req.Content
	}
	if req.Category != "" {
		notification.Category = req.Category
	}
	if req.Priority != "" {
		notification.Priority = req.Priority
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&notification).Error; err != nil {
			return err
		}
		if req.GroupIDs != nil {
			return replaceTargetGroups(tx, notification.ID, *req.GroupIDs)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errUnknownGroup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more group ids do not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	h.db.Preload("CreatedBy").First(&notification, notification.ID)
	groupIDs, _ := visibility.TargetGroupIDs(h.db, notification.ID)
	c.JSON(http.StatusOK, notificationToResponse(notification, groupIDs))
}

// Delete deletes a notification and all of its dependent state
// @Summary Delete a notification
// @Description Delete a notification together with its read statuses, group targeting and favorites. Only the creator may delete.
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string "Notification deleted"
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator may delete this notification"})
		return
	}

	// Dependent rows go first, all inside one transaction; a failure anywhere
	// rolls the whole deletion back
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", notification.ID).Delete(&models.ReadStatus{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notification_id = ?", notification.ID).Delete(&models.NotificationGroup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notification_id = ?", notification.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&notification).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// RegisterRoutes registers the read routes available to every authenticated
// user
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.GET("/notifications/search", h.Search)
	rg.GET("/notifications/:id", h.GetByID)
	rg.GET("/notifications/:id/groups", h.GetGroups)
}

// RegisterManagerRoutes registers the write routes; the caller wraps the
// group with auth.RequireProgramManager
func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications", h.Create)
	rg.PUT("/notifications/:id", h.Update)
	rg.DELETE("/notifications/:id", h.Delete)
}
