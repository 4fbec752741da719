package http

import (
	"time"

	"github.com/atelierweb/site-backend/internal/admin"
)

// LoginRequest defines the payload for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminResponse is the shape of admin data returned in API responses.
type AdminResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	IsSuper     bool       `json:"is_super"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// NewAdminResponse converts domain admin.Admin to AdminResponse used by the API.
func NewAdminResponse(a *admin.Admin) AdminResponse {
	var lastLoginAt *time.Time
	if a.LastLoginAt != nil {
		ll := *a.LastLoginAt
		lastLoginAt = &ll
	}
	return AdminResponse{
		ID:          a.ID,
		Username:    a.Username,
		IsSuper:     a.IsSuper,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: lastLoginAt,
	}
}

// CreateAdminRequest defines the payload for creating another admin
// account. Only super admins may call this.
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	IsSuper  bool   `json:"is_super"`
}

// DashboardRequest carries the paging knobs for the overview screen.
// page pages the contact list, meetings_page the meeting list, search
// narrows the contacts.
type DashboardRequest struct {
	Page         int    `form:"page"`
	MeetingsPage int    `form:"meetings_page"`
	Search       string `form:"search"`
}

// LoginResponse returns the token and admin info.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Admin       AdminResponse `json:"admin"`
}
