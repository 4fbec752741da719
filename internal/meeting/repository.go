package meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts a pending meeting. The partial unique index on
	// meeting_datetime rejects a second active booking for the same
	// slot; that violation surfaces as ErrSlotTaken.
	Create(ctx context.Context, m *Meeting) error
	GetByID(ctx context.Context, id string) (*Meeting, error)
	List(ctx context.Context, filter Filter) ([]*Meeting, int, error)
	ListAll(ctx context.Context) ([]*Meeting, error)

	// BookedTimes returns the start times of all non-cancelled meetings
	// in [from, to).
	BookedTimes(ctx context.Context, from, to time.Time) ([]time.Time, error)

	// UpdateDatetime moves a meeting to a new slot in a single
	// conditional write and returns the post-update record. A conflict
	// with another active meeting surfaces as ErrSlotTaken.
	UpdateDatetime(ctx context.Context, id string, t time.Time) (*Meeting, error)

	// SetLink stores the meeting link and advances status to scheduled,
	// returning the post-update record.
	SetLink(ctx context.Context, id, link string) (*Meeting, error)
	SetStatus(ctx context.Context, id string, status Status) error
	SetNotifyFlags(ctx context.Context, id string, requester, operator bool) error
	Delete(ctx context.Context, id string) error

	// HasRecentRequest reports whether the email submitted a booking
	// request at or after since. Cancelled meetings do not count.
	HasRecentRequest(ctx context.Context, email string, since time.Time) (bool, error)
}

const meetingColumns = "id, name, email, meeting_datetime, meeting_link, status, email_sent_user, email_sent_admin, created_at, updated_at"

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanMeeting(row pgx.Row) (*Meeting, error) {
	var m Meeting
	if err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.MeetingDatetime, &m.MeetingLink,
		&m.Status, &m.EmailSentUser, &m.EmailSentAdmin, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *pgxRepository) Create(ctx context.Context, m *Meeting) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.meetings").
		Columns("name", "email", "meeting_datetime", "meeting_link", "status").
		Values(m.Name, m.Email, m.MeetingDatetime, m.MeetingLink, m.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create meeting query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("create meeting failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Meeting, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(meetingColumns).
		From("public.meetings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get meeting query failed: %w", err)
	}

	m, err := scanMeeting(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get meeting failed: %w", err)
	}
	return m, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Meeting, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "email", "meeting_datetime", "meeting_link", "status",
		"email_sent_user", "email_sent_admin", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.meetings")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Email != "" {
		query = query.Where(squirrel.ILike{"email": "%" + filter.Email + "%"})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("meeting_datetime " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list meetings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list meetings failed: %w", err)
	}
	defer rows.Close()

	var meetings []*Meeting
	var total int

	for rows.Next() {
		var m Meeting
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.MeetingDatetime, &m.MeetingLink, &m.Status,
			&m.EmailSentUser, &m.EmailSentAdmin, &m.CreatedAt, &m.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan meeting failed: %w", err)
		}
		meetings = append(meetings, &m)
	}

	return meetings, total, nil
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Meeting, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(meetingColumns).
		From("public.meetings").
		OrderBy("meeting_datetime ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list all meetings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list all meetings failed: %w", err)
	}
	defer rows.Close()

	var meetings []*Meeting
	for rows.Next() {
		var m Meeting
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.MeetingDatetime, &m.MeetingLink, &m.Status,
			&m.EmailSentUser, &m.EmailSentAdmin, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meeting failed: %w", err)
		}
		meetings = append(meetings, &m)
	}
	return meetings, nil
}

func (r *pgxRepository) BookedTimes(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("meeting_datetime").
		From("public.meetings").
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.GtOrEq{"meeting_datetime": from}).
		Where(squirrel.Lt{"meeting_datetime": to}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booked times query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("booked times query failed: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan booked time failed: %w", err)
		}
		times = append(times, t)
	}
	return times, nil
}

func (r *pgxRepository) UpdateDatetime(ctx context.Context, id string, t time.Time) (*Meeting, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.meetings").
		Set("meeting_datetime", t).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + meetingColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reschedule query failed: %w", err)
	}

	m, err := scanMeeting(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("reschedule meeting failed: %w", err)
	}
	return m, nil
}

func (r *pgxRepository) SetLink(ctx context.Context, id, link string) (*Meeting, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.meetings").
		Set("meeting_link", link).
		Set("status", StatusScheduled).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + meetingColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build set link query failed: %w", err)
	}

	m, err := scanMeeting(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set meeting link failed: %w", err)
	}
	return m, nil
}

func (r *pgxRepository) SetStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.meetings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set meeting status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetNotifyFlags(ctx context.Context, id string, requester, operator bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.meetings").
		Set("email_sent_user", requester).
		Set("email_sent_admin", operator).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set notify flags query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set notify flags failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.meetings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete meeting query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete meeting failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasRecentRequest(ctx context.Context, email string, since time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.meetings").
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.GtOrEq{"created_at": since})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build recent request query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check recent request failed: %w", err)
	}
	return exists, nil
}
