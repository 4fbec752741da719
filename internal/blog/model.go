package blog

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrPostNotFound    = errors.New("blog post not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrNameRequired    = errors.New("name is required")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrInvalidStatus   = errors.New("invalid post status")
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Post is one blog article.
type Post struct {
	ID          string
	Title       string
	Slug        string
	Content     string
	Excerpt     string
	Author      string
	Status      PostStatus
	TopicID     *string
	SubtopicID  *string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Topic groups posts; subtopics nest one level below.
type Topic struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	Icon         string
	DisplayOrder int
	Subtopics    []Subtopic
	CreatedAt    time.Time
}

type Subtopic struct {
	ID           string
	TopicID      string
	Name         string
	Slug         string
	DisplayOrder int
}

// PostFilter defines parameters for listing posts.
type PostFilter struct {
	// Status limits the listing; public callers are pinned to
	// published.
	Status   string
	TopicID  string
	Keyword  string
	Page     int
	PageSize int
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from free text.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
