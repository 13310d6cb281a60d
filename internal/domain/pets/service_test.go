package pets

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	created []Pet
	err     error
}

func (r *testRepo) Create(_ context.Context, p Pet) (Pet, error) {
	if r.err != nil {
		return Pet{}, r.err
	}
	r.created = append(r.created, p)
	return p, nil
}

func (r *testRepo) ListByOwner(_ context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.created {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func TestService_Create_DefaultsHealthStatus(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	now := time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "u-1", CreateInput{Name: " Rex ", Breed: "Vira-lata", Age: "3 anos"})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "u-1", p.OwnerUserID)
	assert.Equal(t, "Rex", p.Name)
	assert.Equal(t, HealthyStatus, p.HealthStatus)
	assert.Equal(t, now, p.CreatedAt)
	assert.Len(t, repo.created, 1)
}

func TestService_Create_RequiresNameAndBreed_NoRepoCall(t *testing.T) {
	cases := map[string]CreateInput{
		"empty name":  {Name: "", Breed: "Poodle"},
		"blank name":  {Name: "   ", Breed: "Poodle"},
		"empty breed": {Name: "Rex", Breed: ""},
		"bad photo":   {Name: "Rex", Breed: "Poodle", PhotoURL: "not a url"},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &testRepo{}
			svc := NewService(repo)

			_, err := svc.Create(context.Background(), "u-1", in)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Empty(t, repo.created)
		})
	}
}

func TestService_Create_RequiresOwner(t *testing.T) {
	repo := &testRepo{}
	_, err := NewService(repo).Create(context.Background(), " ", CreateInput{Name: "Rex", Breed: "Poodle"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.created)
}

func TestService_Create_PropagatesRepoError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&testRepo{err: boom}).Create(context.Background(), "u-1", CreateInput{Name: "Rex", Breed: "Poodle"})
	assert.ErrorIs(t, err, boom)
}
