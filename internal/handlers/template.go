package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/contractdesk/contract-management-api/internal/errors"
	"github.com/contractdesk/contract-management-api/internal/middleware"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/scope"
	"github.com/contractdesk/contract-management-api/internal/services"
)

// TemplateHandler coordinates agreement template HTTP handlers.
type TemplateHandler struct {
	templateService *services.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// ListTemplates lists templates visible to the caller, newest first.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	requested := scope.ResourceScope(c.Query("scope"))
	if !requested.Valid() {
		apierrors.BadRequest(c, "Unknown scope")
		return
	}
	targetBranchID, ok := parseOptionalBranchID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid branch office ID")
		return
	}

	templates, err := h.templateService.ListTemplates(principal, requested, targetBranchID)
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
	})
}

// CreateTemplate creates a template. Visibility is decided service-side:
// whatever the payload says, branch admins get branch visibility.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	type CreateTemplateRequest struct {
		Name           string                    `json:"name" binding:"required"`
		Category       string                    `json:"category"`
		Content        string                    `json:"content"`
		Visibility     models.TemplateVisibility `json:"visibility"`
		BranchOfficeID *uint64                   `json:"branch_office_id"`
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.CreateTemplate(principal, services.CreateTemplateInput{
		Name:           req.Name,
		Category:       req.Category,
		Content:        req.Content,
		Visibility:     req.Visibility,
		BranchOfficeID: req.BranchOfficeID,
	})
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplate returns a single template if the caller can see it.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	templateID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid template ID")
		return
	}

	template, err := h.templateService.GetTemplate(principal, templateID)
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// UpdateTemplate updates a template's name, category, or content.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	templateID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid template ID")
		return
	}

	type UpdateTemplateRequest struct {
		Name     *string `json:"name"`
		Category *string `json:"category"`
		Content  *string `json:"content"`
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.UpdateTemplate(principal, templateID, services.UpdateTemplateInput{
		Name:     req.Name,
		Category: req.Category,
		Content:  req.Content,
	})
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func respondTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrBranchNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTemplateNameRequired),
		errors.Is(err, services.ErrBranchWrongOrg),
		errors.Is(err, scope.ErrBranchRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
