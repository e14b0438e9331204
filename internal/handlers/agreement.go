package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contract-management-api/internal/dto"
	apierrors "github.com/contractdesk/contract-management-api/internal/errors"
	"github.com/contractdesk/contract-management-api/internal/middleware"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/scope"
	"github.com/contractdesk/contract-management-api/internal/services"
	"github.com/contractdesk/contract-management-api/internal/utils"
)

// AgreementHandler coordinates agreement HTTP handlers.
type AgreementHandler struct {
	agreementService *services.AgreementService
	authService      *services.AuthService
}

// NewAgreementHandler creates a new AgreementHandler.
func NewAgreementHandler(agreementService *services.AgreementService, authService *services.AuthService) *AgreementHandler {
	return &AgreementHandler{
		agreementService: agreementService,
		authService:      authService,
	}
}

// ListAgreements lists agreements visible to the caller, newest first.
func (h *AgreementHandler) ListAgreements(c *gin.Context) {
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

	input := services.ListAgreementsInput{
		Scope:          requested,
		TargetBranchID: targetBranchID,
	}

	if raw := c.Query("status"); raw != "" {
		status := models.AgreementStatus(raw)
		if !status.Valid() {
			apierrors.BadRequest(c, "Unknown agreement status")
			return
		}
		input.Status = &status
	}

	pagination := utils.GetPaginationParams(c)
	input.Page = pagination.Page
	input.PageSize = pagination.Limit

	agreements, total, err := h.agreementService.ListAgreements(principal, input)
	if err != nil {
		respondAgreementError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAgreementListResponse(agreements, pagination.Page, pagination.Limit, total))
}

// GetAgreement returns one agreement with its embedded collections.
func (h *AgreementHandler) GetAgreement(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	agreement, err := h.agreementService.GetAgreement(principal, c.Param("id"))
	if err != nil {
		respondAgreementError(c, err)
		return
	}

	c.JSON(http.StatusOK, agreement)
}

// UpsertAgreement saves the full agreement row, creating or replacing by the
// client-supplied id.
func (h *AgreementHandler) UpsertAgreement(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	type UpsertAgreementRequest struct {
		ID             string                 `json:"id"`
		Title          string                 `json:"title" binding:"required"`
		Counterparty   string                 `json:"counterparty"`
		BranchOfficeID *uint64                `json:"branch_office_id"`
		ProjectID      *uint64                `json:"project_id"`
		Status         models.AgreementStatus `json:"status"`
		RiskLevel      models.RiskLevel       `json:"risk_level"`
		Version        int                    `json:"version"`
		Sections       []models.Section       `json:"sections"`
		Tags           []string               `json:"tags"`
		Comments       []models.Comment       `json:"comments"`
		AuditLog       []models.AuditEntry    `json:"audit_log"`
	}

	var req UpsertAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	agreement, err := h.agreementService.UpsertAgreement(principal, services.UpsertAgreementInput{
		ID:             req.ID,
		Title:          req.Title,
		Counterparty:   req.Counterparty,
		BranchOfficeID: req.BranchOfficeID,
		ProjectID:      req.ProjectID,
		Status:         req.Status,
		RiskLevel:      req.RiskLevel,
		Version:        req.Version,
		Sections:       req.Sections,
		Tags:           req.Tags,
		Comments:       req.Comments,
		AuditLog:       req.AuditLog,
	})
	if err != nil {
		respondAgreementError(c, err)
		return
	}

	c.JSON(http.StatusOK, agreement)
}

// AddComment appends a comment to an agreement.
func (h *AgreementHandler) AddComment(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	type AddCommentRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	author := ""
	if user, err := h.authService.GetUser(principal.UserID); err == nil {
		author = user.Email
	}

	agreement, err := h.agreementService.AddComment(principal, c.Param("id"), author, req.Body)
	if err != nil {
		respondAgreementError(c, err)
		return
	}

	c.JSON(http.StatusOK, agreement)
}

// DeleteAgreement soft deletes an agreement.
func (h *AgreementHandler) DeleteAgreement(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	if err := h.agreementService.DeleteAgreement(principal, c.Param("id")); err != nil {
		respondAgreementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Agreement deleted",
	})
}

// GenerateClause drafts clause prose for a section title.
func (h *AgreementHandler) GenerateClause(c *gin.Context) {
	type GenerateClauseRequest struct {
		SectionTitle string `json:"section_title" binding:"required"`
		Context      string `json:"context"`
	}

	var req GenerateClauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	clause, err := h.agreementService.GenerateClause(c.Request.Context(), req.SectionTitle, req.Context)
	if err != nil {
		respondAgreementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clause": clause,
	})
}

// AnalyzeRisk classifies the risk of agreement text.
func (h *AgreementHandler) AnalyzeRisk(c *gin.Context) {
	type AnalyzeRiskRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req AnalyzeRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assessment, err := h.agreementService.AnalyzeRisk(c.Request.Context(), req.Text)
	if err != nil {
		respondAgreementError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

func respondAgreementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAgreementNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrBranchNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAgreementTitleRequired),
		errors.Is(err, services.ErrAgreementStatusInvalid),
		errors.Is(err, services.ErrAgreementIDInvalid),
		errors.Is(err, services.ErrProjectWrongOrg),
		errors.Is(err, services.ErrBranchWrongOrg),
		errors.Is(err, scope.ErrBranchRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
