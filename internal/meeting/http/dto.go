package http

import (
	"time"

	"github.com/atelierweb/site-backend/internal/meeting"
)

// SlotResponse mirrors one entry of the availability grid.
type SlotResponse struct {
	Datetime  time.Time `json:"datetime"`
	Display   string    `json:"display"`
	Available bool      `json:"available"`
	Booked    bool      `json:"booked"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Day       string    `json:"day"`
	DayShort  string    `json:"day_short"`
}

func NewSlotResponse(s meeting.Slot) SlotResponse {
	return SlotResponse{
		Datetime:  s.Start,
		Display:   s.Start.Format("Monday, January 2 at 3:04 PM"),
		Available: s.Available,
		Booked:    !s.Available,
		Date:      s.Date,
		Time:      s.Start.Format("3:04 PM"),
		Day:       s.Weekday,
		DayShort:  s.Start.Format("Mon"),
	}
}

type MeetingResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	MeetingDatetime time.Time `json:"meeting_datetime"`
	MeetingLink     string    `json:"meeting_link"`
	Status          string    `json:"status"`
	EmailSentUser   bool      `json:"email_sent_user"`
	EmailSentAdmin  bool      `json:"email_sent_admin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewMeetingResponse(m *meeting.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		MeetingDatetime: m.MeetingDatetime,
		MeetingLink:     m.MeetingLink,
		Status:          string(m.Status),
		EmailSentUser:   m.EmailSentUser,
		EmailSentAdmin:  m.EmailSentAdmin,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type BookMeetingRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Datetime string `json:"datetime" binding:"required"`
}

type RescheduleRequest struct {
	NewDatetime string `json:"new_datetime" binding:"required"`
}

type ProvideLinkRequest struct {
	MeetingLink string `json:"meeting_link" binding:"required"`
}

// ListMeetingsRequest defines query parameters for the admin listing.
type ListMeetingsRequest struct {
	Status    string `form:"status" binding:"omitempty,oneof=pending scheduled completed cancelled"`
	Email     string `form:"email"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// parseDatetime accepts RFC3339 as well as the bare local form the
// booking widget submits (2006-01-02T15:04:05).
func parseDatetime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
}
