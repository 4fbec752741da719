package blog

import (
	"context"
	"strings"

	"github.com/atelierweb/site-backend/internal/pkg/clock"
)

type CreatePostRequest struct {
	Title      string
	Slug       string
	Content    string
	Excerpt    string
	Author     string
	Status     string
	TopicID    *string
	SubtopicID *string
}

type UpdatePostRequest struct {
	Title      *string
	Slug       *string
	Content    *string
	Excerpt    *string
	Author     *string
	Status     *string
	TopicID    *string
	SubtopicID *string
}

type CreateTopicRequest struct {
	Name         string
	Slug         string
	Description  string
	Icon         string
	DisplayOrder int
}

type CreateSubtopicRequest struct {
	Name         string
	Slug         string
	DisplayOrder int
}

type Service interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]*Post, int, error)
	UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id string) error

	CreateTopic(ctx context.Context, req CreateTopicRequest) (*Topic, error)
	CreateSubtopic(ctx context.Context, topicID string, req CreateSubtopicRequest) (*Subtopic, error)
	ListTopics(ctx context.Context) ([]*Topic, error)
}

type service struct {
	posts  PostRepository
	topics TopicRepository
	clock  clock.Clock
}

func NewService(posts PostRepository, topics TopicRepository, clk clock.Clock) Service {
	return &service{posts: posts, topics: topics, clock: clk}
}

func parseStatus(s string) (PostStatus, error) {
	switch PostStatus(s) {
	case StatusDraft, StatusPublished:
		return PostStatus(s), nil
	case "":
		return StatusDraft, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}

	p := &Post{
		Title:      req.Title,
		Slug:       slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		Author:     req.Author,
		Status:     status,
		TopicID:    req.TopicID,
		SubtopicID: req.SubtopicID,
	}
	if status == StatusPublished {
		now := s.clock.Now()
		p.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.posts.GetBySlug(ctx, slug)
}

func (s *service) ListPosts(ctx context.Context, filter PostFilter) ([]*Post, int, error) {
	return s.posts.List(ctx, filter)
}

func (s *service) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		p.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != "" {
		p.Slug = Slugify(*req.Slug)
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrContentRequired
		}
		p.Content = *req.Content
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.Author != nil {
		p.Author = *req.Author
	}
	if req.TopicID != nil {
		p.TopicID = req.TopicID
	}
	if req.SubtopicID != nil {
		p.SubtopicID = req.SubtopicID
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		// First transition to published stamps the publication time.
		if status == StatusPublished && p.PublishedAt == nil {
			now := s.clock.Now()
			p.PublishedAt = &now
		}
		p.Status = status
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeletePost(ctx context.Context, id string) error {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

func (s *service) CreateTopic(ctx context.Context, req CreateTopicRequest) (*Topic, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	t := &Topic{
		Name:         req.Name,
		Slug:         slug,
		Description:  req.Description,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.topics.CreateTopic(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) CreateSubtopic(ctx context.Context, topicID string, req CreateSubtopicRequest) (*Subtopic, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if _, err := s.topics.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	st := &Subtopic{
		TopicID:      topicID,
		Name:         req.Name,
		Slug:         slug,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.topics.CreateSubtopic(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) ListTopics(ctx context.Context) ([]*Topic, error) {
	return s.topics.ListTopics(ctx)
}
