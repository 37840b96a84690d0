package groups

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martlaas/teataja/pkg/teataja/auth"
	"github.com/martlaas/teataja/pkg/teataja/models"
	"gorm.io/gorm"
)

// Handler handles group-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	IsRoleGroup bool   `json:"is_role_group"`
	MemberCount int    `json:"member_count,omitempty"`
}

func groupToResponse(g models.Group, memberCount int) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		IsRoleGroup: g.IsRoleGroup,
		MemberCount: memberCount,
	}
}

// List returns all groups
// @Summary List groups
// @Description Get every group; used for picking notification targets and opting into groups
// @Tags groups
// @Produce json
// @Success 200 {array} GroupResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *Handler) List(c *gin.Context) {
	var groups []models.Group
	if err := h.db.Order("name").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	responses := make([]GroupResponse, len(groups))
	for i, g := range groups {
		var memberCount int64
		h.db.Model(&models.UserGroup{}).Where("group_id = ?", g.ID).Count(&memberCount)
		responses[i] = groupToResponse(g, int(memberCount))
	}

	c.JSON(http.StatusOK, responses)
}

// ListMine returns the groups the caller belongs to
// @Summary List own groups
// @Description Get the groups the caller is a member of
// @Tags groups
// @Produce json
// @Success 200 {array} GroupResponse
// @Security BearerAuth
// @Router /groups/mine [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var memberships []models.UserGroup
	if err := h.db.Preload("Group").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	responses := make([]GroupResponse, len(memberships))
	for i, m := range memberships {
		responses[i] = groupToResponse(m.Group, 0)
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a new regular group. Program managers only; role groups are
// seeded at startup and cannot be created here.
// @Summary Create a group
// @Description Create a regular (opt-in) group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} GroupResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /groups [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{Name: req.Name}
	if err := h.db.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, groupToResponse(group, 0))
}

// Join adds the caller to a regular group. Idempotent: joining a group the
// caller is already in succeeds.
// @Summary Join a group
// @Description Join a regular group. Role groups cannot be joined manually.
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Joined"
// @Failure 400 {object} map[string]string "Role group"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/join [post]
func (h *Handler) Join(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if group.IsRoleGroup {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role group membership is automatic"})
		return
	}

	var existing models.UserGroup
	err = h.db.Where("user_id = ? AND group_id = ?", userID, group.ID).First(&existing).Error
	if err != nil {
		membership := models.UserGroup{UserID: userID, GroupID: group.ID}
		if err := h.db.Create(&membership).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined"})
}

// Leave removes the caller from a regular group
// @Summary Leave a group
// @Description Leave a regular group. Role groups cannot be left.
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Left"
// @Failure 400 {object} map[string]string "Role group"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/leave [delete]
func (h *Handler) Leave(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if group.IsRoleGroup {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role group membership is automatic"})
		return
	}

	if err := h.db.Where("user_id = ? AND group_id = ?", userID, group.ID).Delete(&models.UserGroup{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left"})
}

// RegisterRoutes registers group routes available to every authenticated user
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/groups", h.List)
	rg.GET("/groups/mine", h.ListMine)
	rg.POST("/groups/:id/join", h.Join)
	rg.DELETE("/groups/:id/leave", h.Leave)
}

// RegisterManagerRoutes registers group creation; the caller wraps the group
// with auth.RequireProgramManager
func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	rg.POST("/groups", h.Create)
}
