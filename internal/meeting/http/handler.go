package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atelierweb/site-backend/internal/meeting"
	"github.com/atelierweb/site-backend/internal/pkg/request"
	"github.com/atelierweb/site-backend/internal/pkg/response"
)

type Handler struct {
	service     meeting.Service
	horizonDays int
}

func NewHandler(service meeting.Service, horizonDays int) *Handler {
	return &Handler{service: service, horizonDays: horizonDays}
}

// AvailableSlots serves the public booking calendar.
func (h *Handler) AvailableSlots(c *gin.Context) {
	slots, err := h.service.AvailableSlots(c.Request.Context(), h.horizonDays)
	if err != nil {
		// A store failure is not "no slots available"; the frontend
		// shows a retry message on 503.
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "availability is temporarily unavailable, please try again"})
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"slots": items})
}

// Book handles the public booking form.
func (h *Handler) Book(c *gin.Context) {
	var body BookMeetingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	when, err := parseDatetime(body.Datetime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": meeting.ErrInvalidDatetime.Error()})
		return
	}

	m, outcome, err := h.service.Book(c.Request.Context(), meeting.BookRequest{
		Name:     body.Name,
		Email:    body.Email,
		Datetime: when,
	})
	if err != nil {
		switch {
		case errors.Is(err, meeting.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "This time slot is no longer available. Please choose another time."})
		case errors.Is(err, meeting.ErrDuplicateRequest):
			c.JSON(http.StatusConflict, gin.H{"error": "A booking request from this email was submitted recently. Please wait a few minutes before trying again."})
		case errors.Is(err, meeting.ErrNameRequired),
			errors.Is(err, meeting.ErrEmailRequired),
			errors.Is(err, meeting.ErrInvalidDatetime):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit meeting request. Please try again."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Meeting request submitted successfully! We will contact you soon with the meeting link.",
		"meeting":          NewMeetingResponse(m),
		"email_sent_user":  outcome.Requester,
		"email_sent_admin": outcome.Operator,
	})
}

// List serves the admin meeting table.
func (h *Handler) List(c *gin.Context) {
	var req ListMeetingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := meeting.Filter{
		Status:    req.Status,
		Email:     req.Email,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	meetings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meetings"})
		return
	}

	items := make([]MeetingResponse, len(meetings))
	for i, m := range meetings {
		items[i] = NewMeetingResponse(m)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, meeting.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get meeting"})
		return
	}
	c.JSON(http.StatusOK, NewMeetingResponse(m))
}

func (h *Handler) Reschedule(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body RescheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New date and time are required."})
		return
	}

	newTime, err := parseDatetime(body.NewDatetime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": meeting.ErrInvalidDatetime.Error()})
		return
	}

	m, oldTime, outcome, err := h.service.Reschedule(c.Request.Context(), id, newTime)
	if err != nil {
		switch {
		case errors.Is(err, meeting.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
		case errors.Is(err, meeting.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "This time slot is already booked. Please choose another time."})
		case errors.Is(err, meeting.ErrInvalidDatetime):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule meeting. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Meeting rescheduled from " + oldTime.Format("2006-01-02 15:04") +
			" to " + m.MeetingDatetime.Format("2006-01-02 15:04") + ".",
		"meeting":          NewMeetingResponse(m),
		"email_sent_user":  outcome.Requester,
		"email_sent_admin": outcome.Operator,
	})
}

func (h *Handler) ProvideLink(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body ProvideLinkRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Meeting link is required."})
		return
	}

	m, outcome, err := h.service.ProvideLink(c.Request.Context(), id, body.MeetingLink)
	if err != nil {
		switch {
		case errors.Is(err, meeting.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
		case errors.Is(err, meeting.ErrLinkRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provide meeting link. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Meeting link provided successfully! Client has been notified.",
		"meeting":          NewMeetingResponse(m),
		"email_sent_user":  outcome.Requester,
		"email_sent_admin": outcome.Operator,
	})
}

func (h *Handler) Complete(c *gin.Context) {
	h.setStatus(c, h.service.Complete, "Meeting marked as completed successfully!")
}

func (h *Handler) Cancel(c *gin.Context) {
	h.setStatus(c, h.service.Cancel, "Meeting cancelled successfully!")
}

func (h *Handler) setStatus(c *gin.Context, op func(ctx context.Context, id string) error, message string) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := op(c.Request.Context(), id); err != nil {
		if errors.Is(err, meeting.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meeting status. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, meeting.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meeting. Please try again."})
		return
	}
	c.Status(http.StatusNoContent)
}
