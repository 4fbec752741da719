package http

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/admin"
	"github.com/atelierweb/site-backend/internal/auth"
	"github.com/atelierweb/site-backend/internal/contact"
	contacthttp "github.com/atelierweb/site-backend/internal/contact/http"
	"github.com/atelierweb/site-backend/internal/meeting"
	meetinghttp "github.com/atelierweb/site-backend/internal/meeting/http"
	"github.com/atelierweb/site-backend/internal/pkg/response"
)

type Handler struct {
	adminService   admin.Service
	contactService contact.Service
	meetingService meeting.Service
	jwtManager     *auth.JWTManager
	logger         *zap.Logger
}

func NewHandler(
	adminService admin.Service,
	contactService contact.Service,
	meetingService meeting.Service,
	jwtManager *auth.JWTManager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		adminService:   adminService,
		contactService: contactService,
		meetingService: meetingService,
		jwtManager:     jwtManager,
		logger:         logger,
	}
}

// Login verifies admin credentials and issues an access token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(a.ID, a.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		Admin:       NewAdminResponse(a),
	})
}

// Me returns the currently authenticated admin.
func (h *Handler) Me(c *gin.Context) {
	id := auth.GetAdminID(c)

	a, err := h.adminService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get admin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": NewAdminResponse(a)})
}

// CreateAdmin provisions an additional dashboard account.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.adminService.Create(c.Request.Context(), req.Username, req.Password, req.IsSuper)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrUsernameAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, admin.ErrUsernameRequired), errors.Is(err, admin.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create admin"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"admin": NewAdminResponse(a)})
}

// dashboardPageSize matches what the overview screen renders per table.
const dashboardPageSize = 10

// Dashboard returns one page of contact messages and one page of
// meeting requests, newest first, plus headline counts.
func (h *Handler) Dashboard(c *gin.Context) {
	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.MeetingsPage < 1 {
		req.MeetingsPage = 1
	}

	ctx := c.Request.Context()

	contacts, totalContacts, err := h.contactService.List(ctx, contact.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: dashboardPageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load contacts"})
		return
	}

	meetings, totalMeetings, err := h.meetingService.List(ctx, meeting.Filter{
		Page:     req.MeetingsPage,
		PageSize: dashboardPageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meetings"})
		return
	}

	// Only the count is wanted here, not the rows.
	_, pending, err := h.meetingService.List(ctx, meeting.Filter{
		Status:   string(meeting.StatusPending),
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meetings"})
		return
	}

	contactItems := make([]contacthttp.ContactResponse, len(contacts))
	for i, ct := range contacts {
		contactItems[i] = contacthttp.NewContactResponse(ct)
	}
	meetingItems := make([]meetinghttp.MeetingResponse, len(meetings))
	for i, m := range meetings {
		meetingItems[i] = meetinghttp.NewMeetingResponse(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts":         response.NewPageResponse(contactItems, req.Page, dashboardPageSize, totalContacts),
		"meetings":         response.NewPageResponse(meetingItems, req.MeetingsPage, dashboardPageSize, totalMeetings),
		"total_contacts":   totalContacts,
		"total_meetings":   totalMeetings,
		"pending_meetings": pending,
	})
}

// ExportContacts streams every contact message as a CSV download.
func (h *Handler) ExportContacts(c *gin.Context) {
	contacts, err := h.contactService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load contacts"})
		return
	}

	setCSVHeaders(c, "contacts")

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ID", "Name", "Email", "Message", "Email Sent User", "Email Sent Admin", "Created At"})
	for _, ct := range contacts {
		record := []string{
			ct.ID,
			ct.Name,
			ct.Email,
			ct.Message,
			strconv.FormatBool(ct.EmailSentUser),
			strconv.FormatBool(ct.EmailSentAdmin),
			ct.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			h.logger.Warn("contact csv export aborted", zap.Error(err))
			return
		}
	}
	w.Flush()
}

// ExportMeetings streams every meeting request as a CSV download.
func (h *Handler) ExportMeetings(c *gin.Context) {
	meetings, err := h.meetingService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meetings"})
		return
	}

	setCSVHeaders(c, "meetings")

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ID", "Name", "Email", "Meeting Datetime", "Meeting Link", "Status", "Email Sent User", "Email Sent Admin", "Created At"})
	for _, m := range meetings {
		record := []string{
			m.ID,
			m.Name,
			m.Email,
			m.MeetingDatetime.Format(time.RFC3339),
			m.MeetingLink,
			string(m.Status),
			strconv.FormatBool(m.EmailSentUser),
			strconv.FormatBool(m.EmailSentAdmin),
			m.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			h.logger.Warn("meeting csv export aborted", zap.Error(err))
			return
		}
	}
	w.Flush()
}

func setCSVHeaders(c *gin.Context, name string) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
}
