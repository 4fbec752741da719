package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes exposes the booking calendar and form.
func RegisterPublicRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/slots", h.AvailableSlots)
	g.POST("/meetings", h.Book)
}

// RegisterAdminRoutes exposes meeting management for the dashboard.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/meetings")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/:id/link", h.ProvideLink)
		group.POST("/:id/reschedule", h.Reschedule)
		group.POST("/:id/complete", h.Complete)
		group.POST("/:id/cancel", h.Cancel)
		group.DELETE("/:id", h.Delete)
	}
}
