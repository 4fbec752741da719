package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepository interface {
	// Create inserts a post; a slug collision surfaces as ErrSlugTaken.
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, filter PostFilter) ([]*Post, int, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) error
}

type TopicRepository interface {
	CreateTopic(ctx context.Context, t *Topic) error
	CreateSubtopic(ctx context.Context, st *Subtopic) error
	// ListTopics returns all topics ordered by display_order, each with
	// its subtopics attached.
	ListTopics(ctx context.Context) ([]*Topic, error)
	GetTopic(ctx context.Context, id string) (*Topic, error)
}

const postColumns = "id, title, slug, content, excerpt, author, status, topic_id, subtopic_id, published_at, created_at, updated_at"

type pgxPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgxPostRepository(pool *pgxpool.Pool) PostRepository {
	return &pgxPostRepository{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author, &p.Status,
		&p.TopicID, &p.SubtopicID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgxPostRepository) Create(ctx context.Context, p *Post) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blog_posts").
		Columns("title", "slug", "content", "excerpt", "author", "status", "topic_id", "subtopic_id", "published_at").
		Values(p.Title, p.Slug, p.Content, p.Excerpt, p.Author, p.Status, p.TopicID, p.SubtopicID, p.PublishedAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create post query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *pgxPostRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id})
}

func (r *pgxPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return r.getWhere(ctx, squirrel.Eq{"slug": slug})
}

func (r *pgxPostRepository) getWhere(ctx context.Context, pred any) (*Post, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(postColumns).
		From("public.blog_posts").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get post query failed: %w", err)
	}

	p, err := scanPost(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post failed: %w", err)
	}
	return p, nil
}

func (r *pgxPostRepository) List(ctx context.Context, filter PostFilter) ([]*Post, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "title", "slug", "content", "excerpt", "author", "status",
		"topic_id", "subtopic_id", "published_at", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.blog_posts")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.TopicID != "" {
		query = query.Where(squirrel.Eq{"topic_id": filter.TopicID})
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
			squirrel.ILike{"excerpt": pattern},
		})
	}

	query = query.OrderBy("COALESCE(published_at, created_at) DESC")

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
		return nil, 0, fmt.Errorf("build list posts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts failed: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	var total int

	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author, &p.Status,
			&p.TopicID, &p.SubtopicID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan post failed: %w", err)
		}
		posts = append(posts, &p)
	}

	return posts, total, nil
}

func (r *pgxPostRepository) Update(ctx context.Context, p *Post) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.blog_posts").
		Set("title", p.Title).
		Set("slug", p.Slug).
		Set("content", p.Content).
		Set("excerpt", p.Excerpt).
		Set("author", p.Author).
		Set("status", p.Status).
		Set("topic_id", p.TopicID).
		Set("subtopic_id", p.SubtopicID).
		Set("published_at", p.PublishedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update post query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("update post failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *pgxPostRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.blog_posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete post query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

type pgxTopicRepository struct {
	pool *pgxpool.Pool
}

func NewPgxTopicRepository(pool *pgxpool.Pool) TopicRepository {
	return &pgxTopicRepository{pool: pool}
}

func (r *pgxTopicRepository) CreateTopic(ctx context.Context, t *Topic) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blog_topics").
		Columns("name", "slug", "description", "icon", "display_order").
		Values(t.Name, t.Slug, t.Description, t.Icon, t.DisplayOrder).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create topic query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("create topic failed: %w", err)
	}
	return nil
}

func (r *pgxTopicRepository) CreateSubtopic(ctx context.Context, st *Subtopic) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blog_subtopics").
		Columns("topic_id", "name", "slug", "display_order").
		Values(st.TopicID, st.Name, st.Slug, st.DisplayOrder).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create subtopic query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&st.ID); err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("create subtopic failed: %w", err)
	}
	return nil
}

func (r *pgxTopicRepository) GetTopic(ctx context.Context, id string) (*Topic, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "slug", "description", "icon", "display_order", "created_at").
		From("public.blog_topics").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get topic query failed: %w", err)
	}

	var t Topic
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.Icon, &t.DisplayOrder, &t.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("get topic failed: %w", err)
	}
	return &t, nil
}

func (r *pgxTopicRepository) ListTopics(ctx context.Context) ([]*Topic, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "name", "slug", "description", "icon", "display_order", "created_at").
		From("public.blog_topics").
		OrderBy("display_order ASC, name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list topics query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics failed: %w", err)
	}
	defer rows.Close()

	var topics []*Topic
	index := map[string]*Topic{}
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.Icon, &t.DisplayOrder, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan topic failed: %w", err)
		}
		topics = append(topics, &t)
		index[t.ID] = &t
	}
	rows.Close()

	stSQL, stArgs, err := psql.Select("id", "topic_id", "name", "slug", "display_order").
		From("public.blog_subtopics").
		OrderBy("display_order ASC, name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list subtopics query failed: %w", err)
	}

	stRows, err := r.pool.Query(ctx, stSQL, stArgs...)
	if err != nil {
		return nil, fmt.Errorf("list subtopics failed: %w", err)
	}
	defer stRows.Close()

	for stRows.Next() {
		var st Subtopic
		if err := stRows.Scan(&st.ID, &st.TopicID, &st.Name, &st.Slug, &st.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan subtopic failed: %w", err)
		}
		if parent, ok := index[st.TopicID]; ok {
			parent.Subtopics = append(parent.Subtopics, st)
		}
	}

	return topics, nil
}
