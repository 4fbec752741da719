package media

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("media asset not found")
	ErrNotAnImage   = errors.New("only image uploads are accepted")
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
	ErrNoThumbnail  = errors.New("no thumbnail for this asset")
)

// Asset is one uploaded image, stored on disk with a generated
// thumbnail and referenced from blog posts by URL.
type Asset struct {
	ID            string
	UploadedBy    string // admin username
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public path for the full-size image.
func URL(id string) string {
	return "/v1/media/" + id
}

// ThumbnailURL returns the public path for the thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/media/" + id + "/thumbnail"
}
