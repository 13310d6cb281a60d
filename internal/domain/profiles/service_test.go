package profiles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRepo struct {
	created []Profile
	err     error
}

func (r *recordingRepo) Create(_ context.Context, p Profile) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, p)
	return nil
}

func TestCreate_TrimsAndStamps(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo)
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), " u-1 ", " ana@example.com ", " Ana ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.ID)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Equal(t, "Ana", p.FullName)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
	require.Len(t, repo.created, 1)
}

func TestCreate_RequiresUserID(t *testing.T) {
	repo := &recordingRepo{}
	_, err := NewService(repo).Create(context.Background(), "  ", "a@example.com", "Ana")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.created)
}

func TestCreate_PropagatesRepoError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&recordingRepo{err: boom}).Create(context.Background(), "u-1", "", "")
	assert.ErrorIs(t, err, boom)
}
