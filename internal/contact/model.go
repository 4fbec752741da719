package contact

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("contact not found")
	ErrNameRequired    = errors.New("name is required")
	ErrEmailRequired   = errors.New("email is required")
	ErrMessageRequired = errors.New("message is required")
)

// Contact is one submitted contact-form message.
type Contact struct {
	ID             string
	Name           string
	Email          string
	Message        string
	EmailSentUser  bool
	EmailSentAdmin bool
	CreatedAt      time.Time
}

// Filter defines parameters for the admin contact listing.
type Filter struct {
	// Search matches name, email or message, case-insensitively.
	Search   string
	Page     int
	PageSize int
}

// NotifyOutcome records which acknowledgement emails went out.
type NotifyOutcome struct {
	Requester bool
	Operator  bool
}

// Notifier sends the contact acknowledgement to the sender and a copy
// to the operator. Implementations must not return errors; failures
// show up as false outcome flags.
type Notifier interface {
	ContactReceived(ctx context.Context, c *Contact) NotifyOutcome
}
