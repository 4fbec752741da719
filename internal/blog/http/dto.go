package http

import (
	"time"

	"github.com/atelierweb/site-backend/internal/blog"
)

type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	Author      string     `json:"author"`
	Status      string     `json:"status"`
	TopicID     *string    `json:"topic_id"`
	SubtopicID  *string    `json:"subtopic_id"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewPostResponse(p *blog.Post) PostResponse {
	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		Author:      p.Author,
		Status:      string(p.Status),
		TopicID:     p.TopicID,
		SubtopicID:  p.SubtopicID,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type SubtopicResponse struct {
	ID           string `json:"id"`
	TopicID      string `json:"topic_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	DisplayOrder int    `json:"display_order"`
}

type TopicResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Description  string             `json:"description"`
	Icon         string             `json:"icon"`
	DisplayOrder int                `json:"display_order"`
	Subtopics    []SubtopicResponse `json:"subtopics"`
}

func NewTopicResponse(t *blog.Topic) TopicResponse {
	subtopics := make([]SubtopicResponse, len(t.Subtopics))
	for i, st := range t.Subtopics {
		subtopics[i] = SubtopicResponse{
			ID:           st.ID,
			TopicID:      st.TopicID,
			Name:         st.Name,
			Slug:         st.Slug,
			DisplayOrder: st.DisplayOrder,
		}
	}
	return TopicResponse{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		Description:  t.Description,
		Icon:         t.Icon,
		DisplayOrder: t.DisplayOrder,
		Subtopics:    subtopics,
	}
}

type ListPostsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft published all"`
	TopicID  string `form:"topic_id" binding:"omitempty,uuid"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type CreatePostRequest struct {
	Title      string  `json:"title" binding:"required"`
	Slug       string  `json:"slug"`
	Content    string  `json:"content" binding:"required"`
	Excerpt    string  `json:"excerpt"`
	Author     string  `json:"author"`
	Status     string  `json:"status" binding:"omitempty,oneof=draft published"`
	TopicID    *string `json:"topic_id" binding:"omitempty,uuid"`
	SubtopicID *string `json:"subtopic_id" binding:"omitempty,uuid"`
}

type UpdatePostRequest struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	Author     *string `json:"author"`
	Status     *string `json:"status" binding:"omitempty,oneof=draft published"`
	TopicID    *string `json:"topic_id" binding:"omitempty,uuid"`
	SubtopicID *string `json:"subtopic_id" binding:"omitempty,uuid"`
}

type CreateTopicRequest struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

type CreateSubtopicRequest struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug"`
	DisplayOrder int    `json:"display_order"`
}
