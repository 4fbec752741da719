package admin

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
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)

	// Create inserts a new admin. A duplicate username surfaces as
	// ErrUsernameAlreadyUsed.
	Create(ctx context.Context, a *Admin) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	Count(ctx context.Context) (int, error)
}

const adminColumns = "id, username, password_hash, is_super, created_at, last_login_at"

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanAdmin(row pgx.Row) (*Admin, error) {
	var a Admin
	if err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.IsSuper, &a.CreatedAt, &a.LastLoginAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *pgxRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(adminColumns).
		From("public.admins").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get admin query failed: %w", err)
	}

	a, err := scanAdmin(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by username failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Admin, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(adminColumns).
		From("public.admins").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get admin query failed: %w", err)
	}

	a, err := scanAdmin(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Create(ctx context.Context, a *Admin) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.admins").
		Columns("username", "password_hash", "is_super").
		Values(a.Username, a.PasswordHash, a.IsSuper).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create admin query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUsernameAlreadyUsed
		}
		return fmt.Errorf("create admin failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.admins").
		Set("last_login_at", t).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update last login query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Count(ctx context.Context) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)").
		From("public.admins").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count admins query failed: %w", err)
	}

	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count admins failed: %w", err)
	}
	return n, nil
}
