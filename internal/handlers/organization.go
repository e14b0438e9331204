package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contract-management-api/internal/dto"
	apierrors "github.com/contractdesk/contract-management-api/internal/errors"
	"github.com/contractdesk/contract-management-api/internal/middleware"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/services"
)

// OrganizationHandler coordinates organization and branch office handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// GetOrganization returns the caller's organization.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	org, err := h.orgService.GetOrganization(principal)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organization":     dto.ToOrganizationDTO(*org),
		"role":             principal.Role,
		"branch_office_id": principal.BranchOfficeID,
	})
}

// UpdateOrganization updates the organization name and billing plan.
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	type UpdateOrgRequest struct {
		Name        *string             `json:"name"`
		BillingPlan *models.BillingPlan `json:"billing_plan"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdateOrganization(principal, services.UpdateOrganizationInput{
		Name:        req.Name,
		BillingPlan: req.BillingPlan,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// CreateBranch creates a branch office.
func (h *OrganizationHandler) CreateBranch(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	type CreateBranchRequest struct {
		Code      string `json:"code" binding:"required"`
		Location  string `json:"location"`
		Headcount int    `json:"headcount"`
	}

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.orgService.CreateBranch(principal, services.CreateBranchInput{
		Code:      req.Code,
		Location:  req.Location,
		Headcount: req.Headcount,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// ListBranches lists the organization's branch offices.
func (h *OrganizationHandler) ListBranches(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	branches, err := h.orgService.ListBranches(principal)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"branches": branches,
	})
}

// UpdateBranch updates a branch office.
func (h *OrganizationHandler) UpdateBranch(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	branchID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid branch office ID")
		return
	}

	type UpdateBranchRequest struct {
		Location  *string `json:"location"`
		Headcount *int    `json:"headcount"`
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.orgService.UpdateBranch(principal, branchID, services.UpdateBranchInput{
		Location:  req.Location,
		Headcount: req.Headcount,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, branch)
}

// ListMembers lists members visible to the caller.
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	members, err := h.orgService.ListMembers(principal)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	memberDTOs := make([]dto.MemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToMemberDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{
		"members": memberDTOs,
	})
}

func respondOrganizationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrBranchNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidOrganizationName),
		errors.Is(err, services.ErrInvalidBillingPlan),
		errors.Is(err, services.ErrBranchCodeRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBranchCodeTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
