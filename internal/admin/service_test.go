package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/auth"
	"github.com/atelierweb/site-backend/internal/pkg/clock"
)

type fakeRepo struct {
	admins map[string]*Admin
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{admins: make(map[string]*Admin)}
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (*Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, a *Admin) error {
	for _, existing := range r.admins {
		if existing.Username == a.Username {
			return ErrUsernameAlreadyUsed
		}
	}
	r.nextID++
	a.ID = fmt.Sprintf("admin-%d", r.nextID)
	a.CreatedAt = time.Now()
	cp := *a
	r.admins[a.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	a, ok := r.admins[id]
	if !ok {
		return ErrNotFound
	}
	a.LastLoginAt = &t
	return nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	return len(r.admins), nil
}

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo) Service {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	return NewService(repo, hasher, clock.Fixed{T: testNow}, zap.NewNop())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		created, err := svc.Create(ctx, "operator", "s3cret-pass", false)
		require.NoError(t, err)

		a, err := svc.Login(ctx, "operator", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, created.ID, a.ID)

		stored, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.LastLoginAt)
		assert.True(t, stored.LastLoginAt.Equal(testNow))
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		_, err := svc.Create(ctx, "operator", "s3cret-pass", false)
		require.NoError(t, err)

		_, err = svc.Login(ctx, "operator", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username reads the same as a bad password", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		_, err := svc.Login(ctx, "ghost", "whatever1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank input", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a duplicate username", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		_, err := svc.Create(ctx, "operator", "s3cret-pass", false)
		require.NoError(t, err)

		_, err = svc.Create(ctx, "operator", "other-pass1", false)
		assert.ErrorIs(t, err, ErrUsernameAlreadyUsed)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		_, err := svc.Create(ctx, "operator", "short", false)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		a, err := svc.Create(ctx, "operator", "s3cret-pass", false)
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", a.PasswordHash)
		assert.NotEmpty(t, a.PasswordHash)
	})
}

func TestEnsureDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds an empty table", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		require.NoError(t, svc.EnsureDefault(ctx, "admin", "bootstrap-pass"))

		a, err := repo.GetByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, a.IsSuper)
	})

	t.Run("leaves an existing account untouched", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		first, err := svc.Create(ctx, "operator", "s3cret-pass", false)
		require.NoError(t, err)

		require.NoError(t, svc.EnsureDefault(ctx, "admin", "bootstrap-pass"))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = repo.GetByID(ctx, first.ID)
		assert.NoError(t, err)
	})

	t.Run("idempotent", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		require.NoError(t, svc.EnsureDefault(ctx, "admin", "bootstrap-pass"))
		require.NoError(t, svc.EnsureDefault(ctx, "admin", "bootstrap-pass"))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
