package http

import (
	"time"

	"github.com/atelierweb/site-backend/internal/contact"
)

type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type ContactResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Message        string    `json:"message"`
	EmailSentUser  bool      `json:"email_sent_user"`
	EmailSentAdmin bool      `json:"email_sent_admin"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewContactResponse(c *contact.Contact) ContactResponse {
	return ContactResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Message:        c.Message,
		EmailSentUser:  c.EmailSentUser,
		EmailSentAdmin: c.EmailSentAdmin,
		CreatedAt:      c.CreatedAt,
	}
}

type ListContactsRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
