package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atelierweb/site-backend/internal/blog"
	"github.com/atelierweb/site-backend/internal/pkg/request"
	"github.com/atelierweb/site-backend/internal/pkg/response"
)

type Handler struct {
	service blog.Service
}

func NewHandler(service blog.Service) *Handler {
	return &Handler{service: service}
}

// ListPublic serves the public blog index: published posts only.
func (h *Handler) ListPublic(c *gin.Context) {
	h.list(c, false)
}

// ListAdmin serves the dashboard post table, drafts included.
func (h *Handler) ListAdmin(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler) list(c *gin.Context, allowAnyStatus bool) {
	var req ListPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	status := req.Status
	if !allowAnyStatus {
		status = string(blog.StatusPublished)
	} else if status == "all" {
		status = ""
	}

	filter := blog.PostFilter{
		Status:   status,
		TopicID:  req.TopicID,
		Keyword:  req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	posts, total, err := h.service.ListPosts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}

	items := make([]PostResponse, len(posts))
	for i, p := range posts {
		items[i] = NewPostResponse(p)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	p, err := h.service.GetPostBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get post"})
		return
	}
	c.JSON(http.StatusOK, NewPostResponse(p))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreatePostRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.CreatePost(c.Request.Context(), blog.CreatePostRequest{
		Title:      body.Title,
		Slug:       body.Slug,
		Content:    body.Content,
		Excerpt:    body.Excerpt,
		Author:     body.Author,
		Status:     body.Status,
		TopicID:    body.TopicID,
		SubtopicID: body.SubtopicID,
	})
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrTitleRequired),
			errors.Is(err, blog.ErrContentRequired),
			errors.Is(err, blog.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, blog.ErrSlugTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		}
		return
	}
	c.JSON(http.StatusCreated, NewPostResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdatePostRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.UpdatePost(c.Request.Context(), uri.ID, blog.UpdatePostRequest{
		Title:      body.Title,
		Slug:       body.Slug,
		Content:    body.Content,
		Excerpt:    body.Excerpt,
		Author:     body.Author,
		Status:     body.Status,
		TopicID:    body.TopicID,
		SubtopicID: body.SubtopicID,
	})
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, blog.ErrTitleRequired),
			errors.Is(err, blog.ErrContentRequired),
			errors.Is(err, blog.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, blog.ErrSlugTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		}
		return
	}
	c.JSON(http.StatusOK, NewPostResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTopics(c *gin.Context) {
	topics, err := h.service.ListTopics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list topics"})
		return
	}

	items := make([]TopicResponse, len(topics))
	for i, t := range topics {
		items[i] = NewTopicResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{"topics": items})
}

func (h *Handler) CreateTopic(c *gin.Context) {
	var body CreateTopicRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.CreateTopic(c.Request.Context(), blog.CreateTopicRequest{
		Name:         body.Name,
		Slug:         body.Slug,
		Description:  body.Description,
		Icon:         body.Icon,
		DisplayOrder: body.DisplayOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, blog.ErrSlugTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create topic"})
		}
		return
	}
	c.JSON(http.StatusCreated, NewTopicResponse(t))
}

func (h *Handler) CreateSubtopic(c *gin.Context) {
	topicID := c.Param("id")
	if _, err := uuid.Parse(topicID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreateSubtopicRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	st, err := h.service.CreateSubtopic(c.Request.Context(), topicID, blog.CreateSubtopicRequest{
		Name:         body.Name,
		Slug:         body.Slug,
		DisplayOrder: body.DisplayOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrTopicNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		case errors.Is(err, blog.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, blog.ErrSlugTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subtopic"})
		}
		return
	}
	c.JSON(http.StatusCreated, SubtopicResponse{
		ID:           st.ID,
		TopicID:      st.TopicID,
		Name:         st.Name,
		Slug:         st.Slug,
		DisplayOrder: st.DisplayOrder,
	})
}
