package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierweb/site-backend/internal/auth"
	"github.com/atelierweb/site-backend/internal/media"
	"github.com/atelierweb/site-backend/internal/pkg/request"
)

type Handler struct {
	service media.Service
}

func NewHandler(service media.Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart image upload from the dashboard.
func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	a, err := h.service.Upload(c.Request.Context(), header, auth.GetAdminUsername(c))
	if err != nil {
		switch {
		case errors.Is(err, media.ErrNotAnImage):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		case errors.Is(err, media.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		}
		return
	}
	c.JSON(http.StatusCreated, NewAssetResponse(a))
}

// List returns all uploaded assets for the media picker.
func (h *Handler) List(c *gin.Context) {
	assets, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list media"})
		return
	}

	items := make([]AssetResponse, len(assets))
	for i, a := range assets {
		items[i] = NewAssetResponse(a)
	}
	c.JSON(http.StatusOK, gin.H{"media": items})
}

// ServeImage streams the full-size image by asset ID.
func (h *Handler) ServeImage(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	stream, a, err := h.service.Open(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to serve media"})
		return
	}
	defer stream.Close()

	c.Header("Content-Type", a.ContentType)
	c.Header("Content-Disposition", `inline; filename="`+a.Filename+`"`)
	c.Status(http.StatusOK)
	// Response already started; nothing useful to do on a copy error.
	_, _ = io.Copy(c.Writer, stream)
}

// ServeThumbnail streams the thumbnail by asset ID.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	stream, a, err := h.service.OpenThumbnail(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrNotFound), errors.Is(err, media.ErrNoThumbnail):
			c.JSON(http.StatusNotFound, gin.H{"error": "thumbnail not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to serve thumbnail"})
		}
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", `inline; filename="`+a.Filename+`_thumb.jpg"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}

// Delete removes an asset and its files.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, media.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete media"})
		return
	}
	c.Status(http.StatusNoContent)
}
