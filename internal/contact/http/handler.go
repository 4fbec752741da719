package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierweb/site-backend/internal/contact"
	"github.com/atelierweb/site-backend/internal/pkg/request"
	"github.com/atelierweb/site-backend/internal/pkg/response"
)

type Handler struct {
	service contact.Service
}

func NewHandler(service contact.Service) *Handler {
	return &Handler{service: service}
}

// Submit handles the public contact form.
func (h *Handler) Submit(c *gin.Context) {
	var body SubmitContactRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	saved, outcome, err := h.service.Submit(c.Request.Context(), contact.SubmitRequest{
		Name:    body.Name,
		Email:   body.Email,
		Message: body.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, contact.ErrNameRequired),
			errors.Is(err, contact.ErrEmailRequired),
			errors.Is(err, contact.ErrMessageRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save your message, please try again"})
		}
		return
	}

	message := "Your message has been saved. We will contact you soon."
	if outcome.Requester || outcome.Operator {
		message = "Thank you for contacting us! We will get back to you soon."
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, "contact": NewContactResponse(saved)})
}

// List serves the admin contact table.
func (h *Handler) List(c *gin.Context) {
	var req ListContactsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := contact.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	contacts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contacts"})
		return
	}

	items := make([]ContactResponse, len(contacts))
	for i, item := range contacts {
		items[i] = NewContactResponse(item)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete contact"})
		return
	}
	c.Status(http.StatusNoContent)
}
