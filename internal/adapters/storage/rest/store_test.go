package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guiapet/internal/domain/pets"
	"guiapet/internal/domain/profiles"
	"guiapet/internal/domain/vaccines"
	"guiapet/internal/ports/auth"
)

func newTestStore(t *testing.T, h http.HandlerFunc) *Store {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewStore(Config{URL: ts.URL, AnonKey: "anon", Timeout: time.Second})
}

func userCtx() context.Context {
	return auth.WithClaims(context.Background(), auth.Claims{UserID: "u-1", AccessToken: "user-token"})
}

func TestPets_ListByOwner(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/pets", r.URL.Path)
		assert.Equal(t, "eq.u-1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[
			{"id":"p2","user_id":"u-1","name":"Mel","breed":"Poodle","age":null,"weight":"4kg","photo_url":null,
			 "health_status":"Saudável","created_at":"2026-10-02T10:00:00Z","updated_at":"2026-10-02T10:00:00Z"},
			{"id":"p1","user_id":"u-1","name":"Rex","breed":"SRD","age":"3 anos","weight":null,"photo_url":null,
			 "health_status":"Saudável","created_at":"2026-10-01T10:00:00Z","updated_at":"2026-10-01T10:00:00Z"}
		]`))
	})

	got, err := s.Pets().ListByOwner(userCtx(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "u-1", got[0].OwnerUserID)
	assert.Equal(t, "4kg", got[0].Weight)
	assert.Equal(t, "", got[0].Age)
	assert.Equal(t, "3 anos", got[1].Age)
}

func TestPets_CreateReturnsRepresentation(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var in []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Len(t, in, 1)
		assert.Equal(t, "u-1", in[0]["user_id"])
		assert.Nil(t, in[0]["photo_url"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"p1","user_id":"u-1","name":"Rex","breed":"SRD","health_status":"Saudável",
			"created_at":"2026-10-01T10:00:00Z","updated_at":"2026-10-01T10:00:00Z"}]`))
	})

	p, err := s.Pets().Create(userCtx(), pets.Pet{ID: "p1", OwnerUserID: "u-1", Name: "Rex", Breed: "SRD", HealthStatus: pets.HealthyStatus})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 2026, p.CreatedAt.Year())
}

func TestVaccines_CreateManyAndList(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
			var in []map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			require.Len(t, in, 2)
			assert.Equal(t, "2026-10-15", in[0]["date"])
			assert.Equal(t, "2027-10-15", in[0]["next_date"])
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			assert.Equal(t, "eq.p1", r.URL.Query().Get("pet_id"))
			assert.Equal(t, "next_date.asc", r.URL.Query().Get("order"))
			_, _ = w.Write([]byte(`[{"id":"v1","pet_id":"p1","name":"V10","date":"2026-10-15","next_date":"2027-10-15",
				"notes":null,"created_at":"2026-10-15T10:00:00Z","updated_at":"2026-10-15T10:00:00Z"}]`))
		}
	})

	today := time.Date(2026, 10, 15, 15, 0, 0, 0, time.UTC)
	require.NoError(t, s.Vaccines().CreateMany(userCtx(), vaccines.Defaults("p1", today, today)))

	got, err := s.Vaccines().ListByPet(userCtx(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2027, 10, 15, 0, 0, 0, 0, time.UTC), got[0].NextDate)
}

func TestProfiles_CreateWithoutSessionUsesAnonKey(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
		assert.Equal(t, "Bearer anon", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint"}`))
	})

	err := s.Profiles().Create(context.Background(), profiles.Profile{ID: "u-1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpstreamError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := s.Pets().ListByOwner(userCtx(), "u-1")
	assert.ErrorIs(t, err, ErrUpstream)
}
