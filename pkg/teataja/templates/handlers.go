package templates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martlaas/teataja/pkg/teataja/auth"
	"github.com/martlaas/teataja/pkg/teataja/models"
	"gorm.io/gorm"
)

// Handler handles notification-template requests.
// Templates are private to their creator: every query filters by
// created_by_id, so another program manager's template id behaves like a
// missing one.
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new templates handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

var errUnknownGroup = errors.New("unknown group")

// CreateTemplateRequest represents the request to create a template
type CreateTemplateRequest struct {
	Name     string `json:"name" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	GroupIDs []uint `json:"group_ids"`
}

// UpdateTemplateRequest represents the request to update a template.
// GroupIDs follows the notification contract: nil keeps the current default
// targeting, an explicit empty list clears it.
type UpdateTemplateRequest struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Priority string  `json:"priority"`
	GroupIDs *[]uint `json:"group_ids"`
}

// RenderTemplateRequest carries the variable values for rendering
type RenderTemplateRequest struct {
	Values map[string]string `json:"values"`
}

// TemplateResponse represents a template in API responses
type TemplateResponse struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Priority  string   `json:"priority"`
	GroupIDs  []uint   `json:"group_ids"`
	Variables []string `json:"variables"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// RenderResponse represents a rendered template
type RenderResponse struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	GroupIDs []uint `json:"group_ids"`
}

func (h *Handler) targetGroupIDs(templateID uint) ([]uint, error) {
	var ids []uint
	err := h.db.Model(&models.TemplateGroup{}).Where("template_id = ?", templateID).Pluck("group_id", &ids).Error
	if ids == nil {
		ids = []uint{}
	}
	return ids, err
}

func templateToResponse(t models.Template, groupIDs []uint) TemplateResponse {
	return TemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Title:     t.Title,
		Content:   t.Content,
		Category:  t.Category,
		Priority:  t.Priority,
		GroupIDs:  groupIDs,
		Variables: ExtractVariables(t.Title, t.Content),
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// replaceTargetGroups validates the group ids and replaces the template's
// association rows inside the caller's transaction
func replaceTargetGroups(tx *gorm.DB, templateID uint, groupIDs []uint) error {
	if err := tx.Where("template_id = ?", templateID).Delete(&models.TemplateGroup{}).Error; err != nil {
		return err
	}
	return insertTargetGroups(tx, templateID, groupIDs)
}

func insertTargetGroups(tx *gorm.DB, templateID uint, groupIDs []uint) error {
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

	rows := make([]models.TemplateGroup, len(deduped))
	for i, id := range deduped {
		rows[i] = models.TemplateGroup{TemplateID: templateID, GroupID: id}
	}
	return tx.Create(&rows).Error
}

// findOwn loads a template owned by the caller; someone else's id is
// indistinguishable from a missing one
func (h *Handler) findOwn(userID uint, id uint64) (models.Template, error) {
	var template models.Template
	err := h.db.Where("id = ? AND created_by_id = ?", id, userID).First(&template).Error
	return template, err
}

// List returns the caller's templates
// @Summary List templates
// @Description Get the templates created by the caller
// @Tags templates
// @Produce json
// @Success 200 {array} TemplateResponse
// @Security BearerAuth
// @Router /templates [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var templates []models.Template
	if err := h.db.Where("created_by_id = ?", userID).Order("created_at DESC").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}

	responses := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		groupIDs, err := h.targetGroupIDs(t.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
			return
		}
		responses[i] = templateToResponse(t, groupIDs)
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns one of the caller's templates
// @Summary Get a template
// @Description Get a template by id. Templates belonging to other users are reported as not found.
// @Tags templates
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} TemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	template, err := h.findOwn(userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	groupIDs, err := h.targetGroupIDs(template.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}

	c.JSON(http.StatusOK, templateToResponse(template, groupIDs))
}

// Create creates a new template
// @Summary Create a template
// @Description Create a reusable notification template with optional {variable} placeholders and default target groups
// @Tags templates
// @Accept json
// @Produce json
// @Param request body CreateTemplateRequest true "Template details"
// @Success 201 {object} TemplateResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /templates [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template := models.Template{
		Name:        req.Name,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Priority:    req.Priority,
		CreatedByID: userID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
		return insertTargetGroups(tx, template.ID, req.GroupIDs)
	})

	if err != nil {
		if errors.Is(err, errUnknownGroup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more group ids do not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}

	groupIDs, _ := h.targetGroupIDs(template.ID)
	c.JSON(http.StatusCreated, templateToResponse(template, groupIDs))
}

// Update updates one of the caller's templates
// @Summary Update a template
// @Description Update a template's fields and optionally replace its default target groups. Omitting group_ids keeps the current targeting; an explicit empty list clears it.
// @Tags templates
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param request body UpdateTemplateRequest true "Updated template details"
// @Success 200 {object} TemplateResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	template, err := h.findOwn(userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		template.Name = req.Name
	}
	if req.Title != "" {
		template.Title = req.Title
	}
	if req.Content != "" {
		template.Content = req.Content
	}
	if req.Category != "" {
		template.Category = req.Category
	}
	if req.Priority != "" {
		template.Priority = req.Priority
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&template).Error; err != nil {
			return err
		}
		if req.GroupIDs != nil {
			return replaceTargetGroups(tx, template.ID, *req.GroupIDs)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errUnknownGroup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more group ids do not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}

	groupIDs, _ := h.targetGroupIDs(template.ID)
	c.JSON(http.StatusOK, templateToResponse(template, groupIDs))
}

// Delete deletes one of the caller's templates together with its target-group
// rows
// @Summary Delete a template
// @Description Delete a template and its default target groups
// @Tags templates
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} map[string]string "Template deleted"
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	template, err := h.findOwn(userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", template.ID).Delete(&models.TemplateGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&template).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// Variables returns the distinct placeholder names of a template
// @Summary List template variables
// @Description Get the distinct {variable} tokens appearing in a template's title and content
// @Tags templates
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {array} string
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /templates/{id}/variables [get]
func (h *Handler) Variables(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	template, err := h.findOwn(userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	c.JSON(http.StatusOK, ExtractVariables(template.Title, template.Content))
}

// Render substitutes variable values into a template
// @Summary Render a template
// @Description Substitute the supplied values into the template's placeholders. Unfilled tokens stay as literal text.
// @Tags templates
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param request body RenderTemplateRequest true "Variable values"
// @Success 200 {object} RenderResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /templates/{id}/render [post]
func (h *Handler) Render(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	template, err := h.findOwn(userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	var req RenderTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groupIDs, err := h.targetGroupIDs(template.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}

	c.JSON(http.StatusOK, RenderResponse{
		Title:    Substitute(template.Title, req.Values),
		Content:  Substitute(template.Content, req.Values),
		Category: template.Category,
		Priority: template.Priority,
		GroupIDs: groupIDs,
	})
}

// RegisterRoutes registers template routes; the caller wraps the group with
// auth.RequireProgramManager
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.List)
	rg.POST("/templates", h.Create)
	rg.GET("/templates/:id", h.Get)
	rg.PUT("/templates/:id", h.Update)
	rg.DELETE("/templates/:id", h.Delete)
	rg.GET("/templates/:id/variables", h.Variables)
	rg.POST("/templates/:id/render", h.Render)
}
