package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes exposes published posts and the topic tree.
func RegisterPublicRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/blogs", h.ListPublic)
	g.GET("/blogs/:slug", h.GetBySlug)
	g.GET("/topics", h.ListTopics)
}

// RegisterAdminRoutes exposes post and topic management for the dashboard.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	blogs := g.Group("/blogs")
	blogs.Use(authMiddleware)
	{
		blogs.GET("", h.ListAdmin)
		blogs.POST("", h.Create)
		blogs.PUT("/:id", h.Update)
		blogs.DELETE("/:id", h.Delete)
	}

	topics := g.Group("/topics")
	topics.Use(authMiddleware)
	{
		topics.POST("", h.CreateTopic)
		topics.POST("/:id/subtopics", h.CreateSubtopic)
	}
}
