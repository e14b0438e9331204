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
	"github.com/contractdesk/contract-management-api/internal/scope"
	"github.com/contractdesk/contract-management-api/internal/services"
)

// InviteHandler coordinates branch invite handlers, including the public
// token-based acceptance endpoints.
type InviteHandler struct {
	inviteService *services.InviteService
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
	}
}

// CreateInvite issues a branch invite and dispatches the email best-effort.
func (h *InviteHandler) CreateInvite(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	type CreateInviteRequest struct {
		BranchOfficeID uint64                  `json:"branch_office_id" binding:"required"`
		Email          string                  `json:"email" binding:"required,email"`
		Role           models.OrganizationRole `json:"role" binding:"required"`
		FullName       *string                 `json:"full_name"`
		Department     *string                 `json:"department"`
		Title          *string                 `json:"title"`
		ContactEmail   *string                 `json:"contact_email"`
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.inviteService.CreateInvite(principal, services.CreateInviteInput{
		BranchOfficeID: req.BranchOfficeID,
		Email:          req.Email,
		Role:           req.Role,
		FullName:       req.FullName,
		Department:     req.Department,
		Title:          req.Title,
		ContactEmail:   req.ContactEmail,
	})
	if err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedInviteDTO{
		Invite:    dto.ToInviteDTO(*created.Invite),
		Link:      created.Link,
		EmailSent: created.EmailSent,
	})
}

// ListInvites lists invites visible to the caller.
func (h *InviteHandler) ListInvites(c *gin.Context) {
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

	invites, err := h.inviteService.ListInvites(principal, requested, targetBranchID)
	if err != nil {
		respondInviteError(c, err)
		return
	}

	inviteDTOs := make([]dto.InviteDTO, len(invites))
	for i, invite := range invites {
		inviteDTOs[i] = dto.ToInviteDTO(invite)
	}

	c.JSON(http.StatusOK, gin.H{
		"invites": inviteDTOs,
	})
}

// RevokeInvite flips a pending invite to revoked.
func (h *InviteHandler) RevokeInvite(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invite ID")
		return
	}

	if err := h.inviteService.RevokeInvite(principal, inviteID); err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invite revoked",
	})
}

// GetInviteByToken renders the public acceptance screen data. The route is
// unauthenticated; the token is the sole credential.
func (h *InviteHandler) GetInviteByToken(c *gin.Context) {
	invite, err := h.inviteService.GetInviteByToken(c.Param("token"))
	if err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicInviteDTO(*invite))
}

// AcceptInvite converts a pending invite into a user account and membership.
func (h *InviteHandler) AcceptInvite(c *gin.Context) {
	type AcceptInviteRequest struct {
		Password string `json:"password" binding:"required"`
	}

	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, invite, err := h.inviteService.AcceptInvite(services.AcceptInviteInput{
		Token:    c.Param("token"),
		Password: req.Password,
	})
	if err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   dto.ToUserDTO(*user),
		"invite": dto.ToInviteDTO(*invite),
	})
}

func parseOptionalBranchID(c *gin.Context) (*uint64, bool) {
	raw := c.Query("branch_office_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func respondInviteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrBranchNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInviteAlreadyAccepted):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInviteRoleInvalid),
		errors.Is(err, services.ErrInviteEmailRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrBranchWrongOrg):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInviteForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
