package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id string) (*Asset, error)
	ListAll(ctx context.Context) ([]*Asset, error)
	Delete(ctx context.Context, id string) error
}

const assetColumns = "id, uploaded_by, filename, storage_path, thumbnail_path, content_type, size, created_at"

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanAsset(row pgx.Row) (*Asset, error) {
	var a Asset
	if err := row.Scan(
		&a.ID, &a.UploadedBy, &a.Filename, &a.StoragePath, &a.ThumbnailPath,
		&a.ContentType, &a.Size, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *pgxRepository) Create(ctx context.Context, a *Asset) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.media_assets").
		Columns("id", "uploaded_by", "filename", "storage_path", "thumbnail_path", "content_type", "size").
		Values(a.ID, a.UploadedBy, a.Filename, a.StoragePath, a.ThumbnailPath, a.ContentType, a.Size).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create asset query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.CreatedAt); err != nil {
		return fmt.Errorf("create asset failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Asset, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(assetColumns).
		From("public.media_assets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get asset query failed: %w", err)
	}

	a, err := scanAsset(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get asset failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Asset, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(assetColumns).
		From("public.media_assets").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list assets query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets failed: %w", err)
	}
	defer rows.Close()

	var assets []*Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(
			&a.ID, &a.UploadedBy, &a.Filename, &a.StoragePath, &a.ThumbnailPath,
			&a.ContentType, &a.Size, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset failed: %w", err)
		}
		assets = append(assets, &a)
	}
	return assets, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.media_assets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete asset query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete asset failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
