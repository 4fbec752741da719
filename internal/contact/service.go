package contact

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type SubmitRequest struct {
	Name    string
	Email   string
	Message string
}

type Service interface {
	// Submit persists the message and attempts the acknowledgement
	// emails. The message is saved even when no email goes out.
	Submit(ctx context.Context, req SubmitRequest) (*Contact, NotifyOutcome, error)

	List(ctx context.Context, filter Filter) ([]*Contact, int, error)
	ListAll(ctx context.Context) ([]*Contact, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	notifier Notifier
	logger   *zap.Logger
}

func NewService(repo Repository, notifier Notifier, logger *zap.Logger) Service {
	return &service{repo: repo, notifier: notifier, logger: logger}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Contact, NotifyOutcome, error) {
	var none NotifyOutcome

	if strings.TrimSpace(req.Name) == "" {
		return nil, none, ErrNameRequired
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, none, ErrEmailRequired
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, none, ErrMessageRequired
	}

	c := &Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, none, err
	}

	// Delivery comes after the insert so a mail outage can never
	// discard the message, and no acknowledgement goes out for a
	// message that was not saved.
	outcome := s.notifier.ContactReceived(ctx, c)
	c.EmailSentUser = outcome.Requester
	c.EmailSentAdmin = outcome.Operator
	if err := s.repo.SetNotifyFlags(ctx, c.ID, outcome.Requester, outcome.Operator); err != nil {
		// The message stands either way.
		s.logger.Warn("persist notify flags failed",
			zap.String("contact_id", c.ID), zap.Error(err))
	}

	return c, outcome, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Contact, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListAll(ctx context.Context) ([]*Contact, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence first
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
