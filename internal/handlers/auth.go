package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contract-management-api/internal/constants"
	"github.com/contractdesk/contract-management-api/internal/dto"
	apierrors "github.com/contractdesk/contract-management-api/internal/errors"
	"github.com/contractdesk/contract-management-api/internal/middleware"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService       *services.AuthService
	membershipService *services.MembershipService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, membershipService *services.MembershipService) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		membershipService: membershipService,
	}
}

// Signup registers a new user and their organization.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email            string             `json:"email" binding:"required,email"`
		Password         string             `json:"password" binding:"required"`
		FullName         string             `json:"full_name"`
		OrganizationName string             `json:"organization_name" binding:"required"`
		Headquarters     string             `json:"headquarters"`
		BillingPlan      models.BillingPlan `json:"billing_plan"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:            req.Email,
		Password:         req.Password,
		FullName:         req.FullName,
		OrganizationName: req.OrganizationName,
		Headquarters:     req.Headquarters,
		BillingPlan:      req.BillingPlan,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	userDTO := dto.ToUserDTO(*user)
	c.JSON(http.StatusCreated, userDTO)
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	userDTO := dto.ToUserDTO(*user)
	c.JSON(http.StatusOK, userDTO)
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user together with their resolved
// membership. A missing membership is not an error: the client routes to
// onboarding when membership is null.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	resolved, err := h.membershipService.ResolveMembership(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to resolve membership")
		return
	}

	response := gin.H{
		"user":       dto.ToUserDTO(*user),
		"membership": nil,
	}
	if resolved != nil {
		response["membership"] = dto.ToMembershipDTO(*resolved)
	}

	c.JSON(http.StatusOK, response)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser),
		errors.Is(err, services.ErrFailedToCreateOrg),
		errors.Is(err, services.ErrFailedToAddMember):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
