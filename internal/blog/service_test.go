package blog

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierweb/site-backend/internal/pkg/clock"
)

type fakePostRepo struct {
	posts  map[string]*Post
	nextID int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*Post)}
}

func (r *fakePostRepo) slugTaken(slug, excludeID string) bool {
	for id, p := range r.posts {
		if id != excludeID && p.Slug == slug {
			return true
		}
	}
	return false
}

func (r *fakePostRepo) Create(_ context.Context, p *Post) error {
	if r.slugTaken(p.Slug, "") {
		return ErrSlugTaken
	}
	r.nextID++
	p.ID = fmt.Sprintf("post-%d", r.nextID)
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) GetBySlug(_ context.Context, slug string) (*Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrPostNotFound
}

func (r *fakePostRepo) List(_ context.Context, filter PostFilter) ([]*Post, int, error) {
	var out []*Post
	for _, p := range r.posts {
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		if filter.TopicID != "" && (p.TopicID == nil || *p.TopicID != filter.TopicID) {
			continue
		}
		if filter.Keyword != "" {
			needle := strings.ToLower(filter.Keyword)
			hay := strings.ToLower(p.Title + " " + p.Content)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakePostRepo) Update(_ context.Context, p *Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return ErrPostNotFound
	}
	if r.slugTaken(p.Slug, p.ID) {
		return ErrSlugTaken
	}
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type fakeTopicRepo struct {
	topics    map[string]*Topic
	subtopics []*Subtopic
	nextID    int
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: make(map[string]*Topic)}
}

func (r *fakeTopicRepo) CreateTopic(_ context.Context, t *Topic) error {
	for _, existing := range r.topics {
		if existing.Slug == t.Slug {
			return ErrSlugTaken
		}
	}
	r.nextID++
	t.ID = fmt.Sprintf("topic-%d", r.nextID)
	cp := *t
	r.topics[t.ID] = &cp
	return nil
}

func (r *fakeTopicRepo) CreateSubtopic(_ context.Context, st *Subtopic) error {
	r.nextID++
	st.ID = fmt.Sprintf("subtopic-%d", r.nextID)
	cp := *st
	r.subtopics = append(r.subtopics, &cp)
	return nil
}

func (r *fakeTopicRepo) ListTopics(_ context.Context) ([]*Topic, error) {
	out := make([]*Topic, 0, len(r.topics))
	for _, t := range r.topics {
		cp := *t
		for _, st := range r.subtopics {
			if st.TopicID == t.ID {
				cp.Subtopics = append(cp.Subtopics, *st)
			}
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTopicRepo) GetTopic(_ context.Context, id string) (*Topic, error) {
	t, ok := r.topics[id]
	if !ok {
		return nil, ErrTopicNotFound
	}
	cp := *t
	return &cp, nil
}

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newTestService(posts *fakePostRepo, topics *fakeTopicRepo) Service {
	return NewService(posts, topics, clock.Fixed{T: testNow})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  everywhere  ", "spaces-everywhere"},
		{"Crafting APIs: A Field Guide!", "crafting-apis-a-field-guide"},
		{"already-slugged", "already-slugged"},
		{"MiXeD CaSe 123", "mixed-case-123"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug from title", func(t *testing.T) {
		svc := newTestService(newFakePostRepo(), newFakeTopicRepo())

		p, err := svc.CreatePost(ctx, CreatePostRequest{Title: "My First Post", Content: "body"})
		require.NoError(t, err)
		assert.Equal(t, "my-first-post", p.Slug)
		assert.Equal(t, StatusDraft, p.Status)
		assert.Nil(t, p.PublishedAt)
	})

	t.Run("publishing stamps the publication time", func(t *testing.T) {
		svc := newTestService(newFakePostRepo(), newFakeTopicRepo())

		p, err := svc.CreatePost(ctx, CreatePostRequest{
			Title:   "Launch Notes",
			Content: "body",
			Status:  "published",
		})
		require.NoError(t, err)
		require.NotNil(t, p.PublishedAt)
		assert.True(t, p.PublishedAt.Equal(testNow))
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		svc := newTestService(newFakePostRepo(), newFakeTopicRepo())

		_, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Same Title", Content: "a"})
		require.NoError(t, err)
		_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "Same Title", Content: "b"})
		assert.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("validates input", func(t *testing.T) {
		svc := newTestService(newFakePostRepo(), newFakeTopicRepo())

		_, err := svc.CreatePost(ctx, CreatePostRequest{Content: "body"})
		assert.ErrorIs(t, err, ErrTitleRequired)

		_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "t"})
		assert.ErrorIs(t, err, ErrContentRequired)

		_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "t", Content: "c", Status: "archived"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("first publish stamps time exactly once", func(t *testing.T) {
		svc := newTestService(newFakePostRepo(), newFakeTopicRepo())

		p, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Draft", Content: "body"})
		require.NoError(t, err)
		require.Nil(t, p.PublishedAt)

		published := "published"
		updated, err := svc.UpdatePost(ctx, p.ID, UpdatePostRequest{Status: &published})
		require.NoError(t, err)
		require.NotNil(t, updated.PublishedAt)
		firstStamp := *updated.PublishedAt

		draft := "draft"
		_, err = svc.UpdatePost(ctx, p.ID, UpdatePostRequest{Status: &draft})
		require.NoError(t, err)

		again, err := svc.UpdatePost(ctx, p.ID, UpdatePostRequest{Status: &published})
		require.NoError(t, err)
		require.NotNil(t, again.PublishedAt)
		assert.True(t, again.PublishedAt.Equal(firstStamp), "re-publishing must not move the original stamp")
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		svc := newTestService(newFakePostRepo(), newFakeTopicRepo())

		p, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Original", Content: "body", Author: "Ada"})
		require.NoError(t, err)

		newTitle := "Renamed"
		updated, err := svc.UpdatePost(ctx, p.ID, UpdatePostRequest{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "body", updated.Content)
		assert.Equal(t, "Ada", updated.Author)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc := newTestService(newFakePostRepo(), newFakeTopicRepo())
		title := "t"
		_, err := svc.UpdatePost(ctx, "missing", UpdatePostRequest{Title: &title})
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakePostRepo(), newFakeTopicRepo())

	_, err := svc.CreatePost(ctx, CreatePostRequest{Title: "Public Piece", Content: "body", Status: "published"})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, CreatePostRequest{Title: "Hidden Draft", Content: "body"})
	require.NoError(t, err)

	published, total, err := svc.ListPosts(ctx, PostFilter{Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, published, 1)
	assert.Equal(t, "Public Piece", published[0].Title)

	all, total, err := svc.ListPosts(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)
}

func TestTopics(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakePostRepo(), newFakeTopicRepo())

	topic, err := svc.CreateTopic(ctx, CreateTopicRequest{Name: "Design Systems", DisplayOrder: 1})
	require.NoError(t, err)
	assert.Equal(t, "design-systems", topic.Slug)

	_, err = svc.CreateSubtopic(ctx, topic.ID, CreateSubtopicRequest{Name: "Color Tokens"})
	require.NoError(t, err)

	_, err = svc.CreateSubtopic(ctx, "missing", CreateSubtopicRequest{Name: "Orphan"})
	assert.ErrorIs(t, err, ErrTopicNotFound)

	topics, err := svc.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	require.Len(t, topics[0].Subtopics, 1)
	assert.Equal(t, "color-tokens", topics[0].Subtopics[0].Slug)
}
