package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/pkg/storage"
)

type fakeRepo struct {
	assets     map[string]*Asset
	failCreate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{assets: make(map[string]*Asset)}
}

func (r *fakeRepo) Create(_ context.Context, a *Asset) error {
	if r.failCreate {
		return fmt.Errorf("connection refused")
	}
	cp := *a
	r.assets[a.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]*Asset, error) {
	out := make([]*Asset, 0, len(r.assets))
	for _, a := range r.assets {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.assets[id]; !ok {
		return ErrNotFound
	}
	delete(r.assets, id)
	return nil
}

// multipartImage builds a *multipart.FileHeader carrying a small PNG.
func multipartImage(t *testing.T, filename string, width, height int) *multipart.FileHeader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	return multipartFile(t, filename, "image/png", imgBuf.Bytes())
}

func multipartFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(repo, store, zap.NewNop())
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores image with thumbnail", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)

		a, err := svc.Upload(ctx, multipartImage(t, "cover.png", 800, 600), "operator")
		require.NoError(t, err)
		assert.Equal(t, "operator", a.UploadedBy)
		assert.Equal(t, "cover.png", a.Filename)
		require.NotNil(t, a.ThumbnailPath)

		stream, got, err := svc.Open(ctx, a.ID)
		require.NoError(t, err)
		defer stream.Close()
		assert.Equal(t, a.ID, got.ID)

		content, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.NotEmpty(t, content)

		thumb, _, err := svc.OpenThumbnail(ctx, a.ID)
		require.NoError(t, err)
		defer thumb.Close()

		thumbImg, _, err := image.Decode(thumb)
		require.NoError(t, err)
		bounds := thumbImg.Bounds()
		assert.LessOrEqual(t, bounds.Dx(), 400)
		assert.LessOrEqual(t, bounds.Dy(), 400)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())

		_, err := svc.Upload(ctx, multipartFile(t, "notes.txt", "text/plain", []byte("hello")), "operator")
		assert.ErrorIs(t, err, ErrNotAnImage)
	})

	t.Run("corrupt image still uploads, without thumbnail", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())

		a, err := svc.Upload(ctx, multipartFile(t, "broken.png", "image/png", []byte("not a png")), "operator")
		require.NoError(t, err)
		assert.Nil(t, a.ThumbnailPath)

		_, _, err = svc.OpenThumbnail(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNoThumbnail)
	})

	t.Run("cleans up files when the record fails", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failCreate = true
		svc := newTestService(t, repo)

		_, err := svc.Upload(ctx, multipartImage(t, "cover.png", 100, 100), "operator")
		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	a, err := svc.Upload(ctx, multipartImage(t, "cover.png", 100, 100), "operator")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))

	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.Open(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
