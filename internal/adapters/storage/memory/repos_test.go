package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guiapet/internal/domain/pets"
	"guiapet/internal/domain/profiles"
	"guiapet/internal/domain/vaccines"
)

func TestPetRepo_ListByOwnerNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		_, err := repo.Create(ctx, pets.Pet{ID: id, OwnerUserID: "u-1", CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, pets.Pet{ID: "other", OwnerUserID: "u-2", CreatedAt: base})
	require.NoError(t, err)

	got, err := repo.ListByOwner(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{got[0].ID, got[1].ID, got[2].ID})

	_, err = repo.Create(ctx, pets.Pet{ID: "new", OwnerUserID: "u-1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestVaccineRepo_ListByPetSoonestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewVaccineRepo()
	d := func(day int) time.Time { return time.Date(2026, 11, day, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, repo.CreateMany(ctx, []vaccines.Vaccine{
		{ID: "a", PetID: "p1", NextDate: d(20)},
		{ID: "b", PetID: "p1", NextDate: d(5)},
		{ID: "c", PetID: "p2", NextDate: d(1)},
	}))

	got, err := repo.ListByPet(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	empty, err := repo.ListByPet(ctx, "nope")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestVaccineRepo_CreateManyIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewVaccineRepo()
	require.NoError(t, repo.CreateMany(ctx, []vaccines.Vaccine{{ID: "a", PetID: "p1"}}))

	err := repo.CreateMany(ctx, []vaccines.Vaccine{{ID: "b", PetID: "p1"}, {ID: "a", PetID: "p1"}})
	assert.ErrorIs(t, err, ErrConflict)

	got, _ := repo.ListByPet(ctx, "p1")
	assert.Len(t, got, 1)
}

func TestProfileRepo_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepo()

	require.NoError(t, repo.Create(ctx, profiles.Profile{ID: "u-1", Email: "a@example.com"}))
	assert.ErrorIs(t, repo.Create(ctx, profiles.Profile{ID: "u-1"}), ErrConflict)
	assert.Error(t, repo.Create(ctx, profiles.Profile{}))
}
