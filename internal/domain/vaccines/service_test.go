package vaccines

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	batches [][]Vaccine
	err     error
}

func (r *testRepo) CreateMany(_ context.Context, vs []Vaccine) error {
	if r.err != nil {
		return r.err
	}
	r.batches = append(r.batches, vs)
	return nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string) ([]Vaccine, error) {
	out := make([]Vaccine, 0)
	for _, b := range r.batches {
		for _, v := range b {
			if v.PetID == petID {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func TestDefaults_TwoVaccinesOneYearAhead(t *testing.T) {
	now := time.Date(2026, 10, 15, 21, 10, 0, 0, time.UTC)
	vs := Defaults("pet-1", now, now)

	require.Len(t, vs, 2)
	assert.Equal(t, NameV10, vs[0].Name)
	assert.Equal(t, NameAntirrabica, vs[1].Name)
	for _, v := range vs {
		assert.Equal(t, "pet-1", v.PetID)
		assert.NotEmpty(t, v.ID)
		assert.Equal(t, "2026-10-15", FormatDate(v.Date))
		assert.Equal(t, "2027-10-15", FormatDate(v.NextDate))
		assert.Equal(t, DefaultBoosterDays, DaysUntil(v.NextDate, v.Date))
	}
	assert.NotEqual(t, vs[0].ID, vs[1].ID)
}

func TestDefaults_LeapYearIsStill365Days(t *testing.T) {
	now := time.Date(2027, 3, 1, 8, 0, 0, 0, time.UTC)
	vs := Defaults("pet-1", now, now)
	// 2028 es bisiesto: +365 días cae el 29 de febrero
	assert.Equal(t, "2028-02-29", FormatDate(vs[0].NextDate))
}

func TestService_CreateDefaults_SingleBatch(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }

	vs, err := svc.CreateDefaults(context.Background(), "pet-1")
	require.NoError(t, err)
	assert.Len(t, vs, 2)
	assert.Len(t, repo.batches, 1)

	_, err = svc.CreateDefaults(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CreateDefaults_RepoError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&testRepo{err: boom}).CreateDefaults(context.Background(), "pet-1")
	assert.ErrorIs(t, err, boom)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-11-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-01", FormatDate(d))

	d, err = ParseDate("2026-11-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-01", FormatDate(d))

	_, err = ParseDate("01/11/2026")
	assert.Error(t, err)
}
