package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context, filter Filter) ([]*Contact, int, error)
	ListAll(ctx context.Context) ([]*Contact, error)
	SetNotifyFlags(ctx context.Context, id string, requester, operator bool) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Contact) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.contacts").
		Columns("name", "email", "message", "email_sent_user", "email_sent_admin").
		Values(c.Name, c.Email, c.Message, c.EmailSentUser, c.EmailSentAdmin).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create contact query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create contact failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Contact, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "email", "message", "email_sent_user", "email_sent_admin", "created_at").
		From("public.contacts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get contact query failed: %w", err)
	}

	var c Contact
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Email, &c.Message, &c.EmailSentUser, &c.EmailSentAdmin, &c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Contact, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "name", "email", "message", "email_sent_user", "email_sent_admin", "created_at",
		"count(*) OVER() as total_count").
		From("public.contacts")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"message": pattern},
		})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list contacts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts failed: %w", err)
	}
	defer rows.Close()

	var contacts []*Contact
	var total int

	for rows.Next() {
		var c Contact
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Message, &c.EmailSentUser, &c.EmailSentAdmin, &c.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan contact failed: %w", err)
		}
		contacts = append(contacts, &c)
	}

	return contacts, total, nil
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Contact, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "name", "email", "message", "email_sent_user", "email_sent_admin", "created_at").
		From("public.contacts").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list all contacts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list all contacts failed: %w", err)
	}
	defer rows.Close()

	var contacts []*Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Message, &c.EmailSentUser, &c.EmailSentAdmin, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact failed: %w", err)
		}
		contacts = append(contacts, &c)
	}
	return contacts, nil
}

func (r *pgxRepository) SetNotifyFlags(ctx context.Context, id string, requester, operator bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.contacts").
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
	query, args, err := psql.Delete("public.contacts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete contact query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete contact failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
