package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes exposes the contact form.
func RegisterPublicRoutes(g *gin.RouterGroup, h *Handler) {
	g.POST("/contact", h.Submit)
}

// RegisterAdminRoutes exposes contact management for the dashboard.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/contacts")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.DELETE("/:id", h.Delete)
	}
}
