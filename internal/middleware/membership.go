package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contract-management-api/internal/constants"
	apierrors "github.com/contractdesk/contract-management-api/internal/errors"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/services"
)

// RequireMembership resolves the signed-in user's organization membership and
// stores the resulting principal in the request context. A user without a
// membership gets 404: they need onboarding, not an error page.
func RequireMembership(membershipService *services.MembershipService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		resolved, err := membershipService.ResolveMembership(userID)
		if err != nil {
			apierrors.InternalError(c, "Failed to resolve membership")
			c.Abort()
			return
		}
		if resolved == nil {
			apierrors.NotFound(c, "No organization membership")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, resolved.Principal(userID))
		c.Next()
	}
}

// GetPrincipal retrieves the resolved principal from context
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}

// RequireOrgAdmin restricts the route to organization admins.
func RequireOrgAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.Forbidden(c, "Organization membership required")
			c.Abort()
			return
		}
		if !principal.IsOrgAdmin() {
			apierrors.Forbidden(c, "Only organization admins can perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireBranchManager restricts the route to org admins and branch admins.
func RequireBranchManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.Forbidden(c, "Organization membership required")
			c.Abort()
			return
		}
		if !principal.IsOrgAdmin() && !principal.IsBranchAdmin() {
			apierrors.Forbidden(c, "Only admins can perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}
