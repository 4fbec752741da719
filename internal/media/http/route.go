package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes serves the stored images; blog posts reference
// them by URL.
func RegisterPublicRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/media/:id", h.ServeImage)
	g.GET("/media/:id/thumbnail", h.ServeThumbnail)
}

// RegisterAdminRoutes exposes upload and management for the dashboard.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/media")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Upload)
		group.DELETE("/:id", h.Delete)
	}
}
