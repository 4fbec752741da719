package contact

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	contacts   map[string]*Contact
	nextID     int
	failCreate bool
	failFlags  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{contacts: make(map[string]*Contact)}
}

func (r *fakeRepo) Create(_ context.Context, c *Contact) error {
	if r.failCreate {
		return fmt.Errorf("connection refused")
	}
	r.nextID++
	c.ID = fmt.Sprintf("contact-%d", r.nextID)
	cp := *c
	r.contacts[c.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Contact, int, error) {
	var out []*Contact
	for _, c := range r.contacts {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			hay := strings.ToLower(c.Name + " " + c.Email + " " + c.Message)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]*Contact, error) {
	out := make([]*Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) SetNotifyFlags(_ context.Context, id string, requester, operator bool) error {
	if r.failFlags {
		return fmt.Errorf("connection refused")
	}
	c, ok := r.contacts[id]
	if !ok {
		return ErrNotFound
	}
	c.EmailSentUser = requester
	c.EmailSentAdmin = operator
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

type stubNotifier struct {
	outcome NotifyOutcome
	calls   int
}

func (n *stubNotifier) ContactReceived(_ context.Context, _ *Contact) NotifyOutcome {
	n.calls++
	return n.outcome
}

func newTestService(repo *fakeRepo, notifier *stubNotifier) Service {
	return NewService(repo, notifier, zap.NewNop())
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("saves the message with delivery flags", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &stubNotifier{outcome: NotifyOutcome{Requester: true, Operator: true}}
		svc := newTestService(repo, notifier)

		c, outcome, err := svc.Submit(ctx, SubmitRequest{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "Hello there",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.True(t, outcome.Requester)
		assert.True(t, outcome.Operator)
		assert.Equal(t, 1, notifier.calls)

		stored, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, stored.EmailSentUser)
		assert.True(t, stored.EmailSentAdmin)
	})

	t.Run("message survives failed delivery", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &stubNotifier{outcome: NotifyOutcome{}})

		c, outcome, err := svc.Submit(ctx, SubmitRequest{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "Hello there",
		})
		require.NoError(t, err)
		assert.False(t, outcome.Requester)
		assert.False(t, outcome.Operator)

		stored, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.False(t, stored.EmailSentUser)
		assert.False(t, stored.EmailSentAdmin)
	})

	t.Run("validates input", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &stubNotifier{})

		_, _, err := svc.Submit(ctx, SubmitRequest{Email: "a@b.c", Message: "hi"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, _, err = svc.Submit(ctx, SubmitRequest{Name: "Ada", Message: "hi"})
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, _, err = svc.Submit(ctx, SubmitRequest{Name: "Ada", Email: "a@b.c", Message: "  "})
		assert.ErrorIs(t, err, ErrMessageRequired)
	})

	t.Run("no acknowledgement for a message that was not saved", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failCreate = true
		notifier := &stubNotifier{outcome: NotifyOutcome{Requester: true, Operator: true}}
		svc := newTestService(repo, notifier)

		_, _, err := svc.Submit(ctx, SubmitRequest{Name: "Ada", Email: "a@b.c", Message: "hi"})
		assert.Error(t, err)
		assert.Zero(t, notifier.calls, "failed insert must not send emails")
	})

	t.Run("submission survives notify flag persistence failure", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failFlags = true
		svc := newTestService(repo, &stubNotifier{outcome: NotifyOutcome{Requester: true, Operator: true}})

		c, outcome, err := svc.Submit(ctx, SubmitRequest{Name: "Ada", Email: "a@b.c", Message: "hi"})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.True(t, outcome.Requester)
	})
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &stubNotifier{})

	c1, _, err := svc.Submit(ctx, SubmitRequest{Name: "Ada", Email: "ada@example.com", Message: "about pricing"})
	require.NoError(t, err)
	_, _, err = svc.Submit(ctx, SubmitRequest{Name: "Ben", Email: "ben@example.com", Message: "partnership"})
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, total, err := svc.List(ctx, Filter{Search: "pricing"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, matched, 1)
	assert.Equal(t, "Ada", matched[0].Name)

	require.NoError(t, svc.Delete(ctx, c1.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c1.ID), ErrNotFound)
}
