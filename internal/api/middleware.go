package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierweb/site-backend/internal/admin"
	"github.com/atelierweb/site-backend/internal/auth"
)

// RequireSuperAdmin ensures the authenticated admin has the super flag.
// It MUST be used after auth.AuthRequired middleware.
func RequireSuperAdmin(adminService admin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := auth.GetAdminID(c)
		if adminID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// Check permissions
		a, err := adminService.GetByID(c.Request.Context(), adminID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
			return
		}

		if !a.IsSuper {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: super admin access required"})
			return
		}

		c.Next()
	}
}
