package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/pkg/storage"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 10 << 20 // 10 MiB

const thumbnailMaxSize = 400

type Service interface {
	// Upload stores an image and its thumbnail, then records the asset.
	// Non-image uploads are rejected.
	Upload(ctx context.Context, header *multipart.FileHeader, uploadedBy string) (*Asset, error)

	Get(ctx context.Context, id string) (*Asset, error)
	ListAll(ctx context.Context) ([]*Asset, error)

	// Open returns the full-size image stream with its metadata.
	Open(ctx context.Context, id string) (io.ReadCloser, *Asset, error)
	// OpenThumbnail returns the thumbnail stream with its metadata.
	OpenThumbnail(ctx context.Context, id string) (io.ReadCloser, *Asset, error)

	// Delete removes the asset record and its files. File cleanup is
	// best effort; the record always goes.
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	store  storage.Storage
	thumbs *storage.Thumbnailer
	logger *zap.Logger
}

func NewService(repo Repository, store storage.Storage, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		store:  store,
		thumbs: storage.NewThumbnailer(),
		logger: logger,
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, uploadedBy string) (*Asset, error) {
	if header.Size > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffered so we can write the original and decode the thumbnail
	// from the same bytes. Uploads are capped, so this stays small.
	content, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(content)) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Shard by ID prefix to keep directories small.
	shard := id[:2]
	storagePath := fmt.Sprintf("media/%s/%s%s", shard, id, ext)

	if err := s.store.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	// A failed thumbnail keeps the upload; the asset just serves the
	// original only.
	var thumbnailPath *string
	thumb, err := s.thumbs.Generate(bytes.NewReader(content), thumbnailMaxSize, thumbnailMaxSize)
	if err != nil {
		s.logger.Warn("thumbnail generation failed",
			zap.String("asset_id", id), zap.Error(err))
	} else {
		tPath := fmt.Sprintf("media/%s/%s_thumb.jpg", shard, id)
		if err := s.store.Save(ctx, tPath, thumb); err != nil {
			s.logger.Warn("thumbnail save failed",
				zap.String("asset_id", id), zap.Error(err))
		} else {
			thumbnailPath = &tPath
		}
	}

	a := &Asset{
		ID:            id,
		UploadedBy:    uploadedBy,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(content)),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		_ = s.store.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.store.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return a, nil
}

func (s *service) Get(ctx context.Context, id string) (*Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]*Asset, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Open(ctx context.Context, id string) (io.ReadCloser, *Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.store.Get(ctx, a.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open image: %w", err)
	}
	return stream, a, nil
}

func (s *service) OpenThumbnail(ctx context.Context, id string) (io.ReadCloser, *Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if a.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.store.Get(ctx, *a.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open thumbnail: %w", err)
	}
	return stream, a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, a.StoragePath); err != nil {
		s.logger.Warn("image file cleanup failed",
			zap.String("asset_id", id), zap.Error(err))
	}
	if a.ThumbnailPath != nil {
		_ = s.store.Delete(ctx, *a.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
