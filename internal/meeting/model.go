package meeting

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("meeting not found")
	ErrSlotTaken        = errors.New("time slot already booked")
	ErrDuplicateRequest = errors.New("a booking request from this email was submitted recently")
	ErrInvalidDatetime  = errors.New("invalid meeting datetime")
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrLinkRequired     = errors.New("meeting link is required")
	ErrInvalidStatus    = errors.New("invalid meeting status")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// DuplicateWindow is the cooldown during which a second booking request
// from the same email is rejected, regardless of the slot it asks for.
const DuplicateWindow = 10 * time.Minute

// Meeting is one booking tied to exactly one slot start time.
// No two non-cancelled meetings may share MeetingDatetime; the meetings
// table enforces this with a partial unique index.
type Meeting struct {
	ID              string
	Name            string
	Email           string
	MeetingDatetime time.Time
	MeetingLink     string
	Status          Status
	EmailSentUser   bool
	EmailSentAdmin  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing meetings.
type Filter struct {
	Status    string
	Email     string
	Page      int
	PageSize  int
	SortOrder string
}

// NotifyOutcome records which of the two booking notifications went out.
// Delivery is best-effort and never fails the operation it follows.
type NotifyOutcome struct {
	Requester bool
	Operator  bool
}

// Notifier dispatches booking email to the requester and the operator.
// Implementations must not return errors past this boundary; failures
// are reported through the outcome flags only.
type Notifier interface {
	BookingRequested(ctx context.Context, m *Meeting) NotifyOutcome
	Rescheduled(ctx context.Context, m *Meeting, oldTime time.Time) NotifyOutcome
	LinkProvided(ctx context.Context, m *Meeting) NotifyOutcome
}
