package http

import (
	"time"

	"github.com/atelierweb/site-backend/internal/media"
)

// AssetResponse is the shape of media data returned in API responses.
type AssetResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAssetResponse(a *media.Asset) AssetResponse {
	var thumbURL *string
	if a.ThumbnailPath != nil {
		t := media.ThumbnailURL(a.ID)
		thumbURL = &t
	}
	return AssetResponse{
		ID:           a.ID,
		Filename:     a.Filename,
		ContentType:  a.ContentType,
		Size:         a.Size,
		URL:          media.URL(a.ID),
		ThumbnailURL: thumbURL,
		UploadedBy:   a.UploadedBy,
		CreatedAt:    a.CreatedAt,
	}
}
