package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/pkg/clock"
)

type BookRequest struct {
	Name     string
	Email    string
	Datetime time.Time
}

type Service interface {
	// AvailableSlots computes the open business-hours grid over the
	// horizon. A store failure propagates so callers can distinguish
	// "no slots" from "could not read".
	AvailableSlots(ctx context.Context, horizonDays int) ([]Slot, error)

	Book(ctx context.Context, req BookRequest) (*Meeting, NotifyOutcome, error)

	// Reschedule moves the meeting to newTime, returning the updated
	// record and the previous slot time.
	Reschedule(ctx context.Context, id string, newTime time.Time) (*Meeting, time.Time, NotifyOutcome, error)

	ProvideLink(ctx context.Context, id, link string) (*Meeting, NotifyOutcome, error)
	Complete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Meeting, error)
	List(ctx context.Context, filter Filter) ([]*Meeting, int, error)
	ListAll(ctx context.Context) ([]*Meeting, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	clock    clock.Clock
	logger   *zap.Logger
}

func NewService(repo Repository, notifier Notifier, clk clock.Clock, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
	}
}

func (s *service) AvailableSlots(ctx context.Context, horizonDays int) ([]Slot, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	now := s.clock.Now()
	from, to := horizonBounds(now, horizonDays)

	booked, err := s.repo.BookedTimes(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load booked slots: %w", err)
	}

	taken := make(map[int64]struct{}, len(booked))
	for _, t := range booked {
		taken[t.Unix()] = struct{}{}
	}

	grid := slotGrid(now, horizonDays)
	slots := make([]Slot, 0, len(grid))
	for _, t := range grid {
		_, busy := taken[t.Unix()]
		slots = append(slots, Slot{
			Start:     t,
			Available: !busy,
			Date:      t.Format("2006-01-02"),
			Weekday:   t.Weekday().String(),
		})
	}
	return slots, nil
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Meeting, NotifyOutcome, error) {
	var none NotifyOutcome

	if strings.TrimSpace(req.Name) == "" {
		return nil, none, ErrNameRequired
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, none, ErrEmailRequired
	}
	if req.Datetime.IsZero() {
		return nil, none, ErrInvalidDatetime
	}

	// Anti-spam cooldown. This is a rate limit, not part of the slot
	// uniqueness guarantee.
	since := s.clock.Now().Add(-DuplicateWindow)
	recent, err := s.repo.HasRecentRequest(ctx, req.Email, since)
	if err != nil {
		return nil, none, err
	}
	if recent {
		return nil, none, ErrDuplicateRequest
	}

	m := &Meeting{
		Name:            req.Name,
		Email:           req.Email,
		MeetingDatetime: req.Datetime,
		MeetingLink:     "",
		Status:          StatusPending,
	}

	// The insert is the conflict check: the partial unique index turns
	// a concurrent double booking into ErrSlotTaken.
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, none, err
	}

	outcome := s.notifier.BookingRequested(ctx, m)
	m.EmailSentUser = outcome.Requester
	m.EmailSentAdmin = outcome.Operator
	if err := s.repo.SetNotifyFlags(ctx, m.ID, outcome.Requester, outcome.Operator); err != nil {
		// The booking stands either way.
		s.logger.Warn("persist notify flags failed",
			zap.String("meeting_id", m.ID), zap.Error(err))
	}

	return m, outcome, nil
}

func (s *service) Reschedule(ctx context.Context, id string, newTime time.Time) (*Meeting, time.Time, NotifyOutcome, error) {
	var none NotifyOutcome

	if newTime.IsZero() {
		return nil, time.Time{}, none, ErrInvalidDatetime
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, time.Time{}, none, err
	}
	oldTime := current.MeetingDatetime

	// Single conditional write; a conflicting active meeting at newTime
	// surfaces as ErrSlotTaken from the storage layer.
	updated, err := s.repo.UpdateDatetime(ctx, id, newTime)
	if err != nil {
		return nil, time.Time{}, none, err
	}

	outcome := s.notifier.Rescheduled(ctx, updated, oldTime)
	if !outcome.Requester || !outcome.Operator {
		s.logger.Warn("reschedule notification incomplete",
			zap.String("meeting_id", updated.ID),
			zap.Bool("requester", outcome.Requester),
			zap.Bool("operator", outcome.Operator))
	}

	return updated, oldTime, outcome, nil
}

func (s *service) ProvideLink(ctx context.Context, id, link string) (*Meeting, NotifyOutcome, error) {
	var none NotifyOutcome

	if strings.TrimSpace(link) == "" {
		return nil, none, ErrLinkRequired
	}

	updated, err := s.repo.SetLink(ctx, id, link)
	if err != nil {
		return nil, none, err
	}

	outcome := s.notifier.LinkProvided(ctx, updated)
	if !outcome.Requester || !outcome.Operator {
		s.logger.Warn("link notification incomplete",
			zap.String("meeting_id", updated.ID),
			zap.Bool("requester", outcome.Requester),
			zap.Bool("operator", outcome.Operator))
	}

	return updated, outcome, nil
}

func (s *service) Complete(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, StatusCompleted)
}

func (s *service) Cancel(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, StatusCancelled)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id string) (*Meeting, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Meeting, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListAll(ctx context.Context) ([]*Meeting, error) {
	return s.repo.ListAll(ctx)
}
