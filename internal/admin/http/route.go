package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes exposes admin login plus the authenticated dashboard
// and export endpoints.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, superMiddleware gin.HandlerFunc) {
	g.POST("/admin/login", h.Login)

	group := g.Group("/admin")
	group.Use(authMiddleware)
	{
		group.GET("/me", h.Me)
		group.GET("/dashboard", h.Dashboard)
		group.GET("/export/contacts", h.ExportContacts)
		group.GET("/export/meetings", h.ExportMeetings)
		group.POST("/admins", superMiddleware, h.CreateAdmin)
	}
}
