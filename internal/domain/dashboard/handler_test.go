package dashboard

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guiapet/internal/domain/session"
	"guiapet/internal/ports/auth"
)

// withUser simula lo que deja el SessionGate en el contexto.
func withUser(userID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = r.WithContext(auth.WithClaims(r.Context(), claimsFor(userID)))
		}
		next.ServeHTTP(w, r)
	})
}

func newTestHandler(f *fixture, userID string) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, Options{Deps: f.deps, Now: func() time.Time { return today }, Heartbeat: time.Hour})
	return withUser(userID, r)
}

func doReq(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_AnonymousIsUnauthorized(t *testing.T) {
	h := newTestHandler(newFixture(), "")
	for _, p := range []string{"/", "/pets", "/pets/x/reminders", "/events"} {
		rr := doReq(t, h, http.MethodGet, p, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, p)
	}
}

func TestHandler_DashboardOnboarding(t *testing.T) {
	rr := doReq(t, newTestHandler(newFixture(), "u-1"), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var s Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.True(t, s.Onboarding)
	assert.Equal(t, "u-1", s.User.ID)
}

func TestHandler_AddPet(t *testing.T) {
	f := newFixture()
	h := newTestHandler(f, "u-1")

	rr := doReq(t, h, http.MethodPost, "/pets", `{"name":"Rex","breed":"Vira-lata","age":"2 anos"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Snapshot
		Form       map[string]string `json:"form"`
		DialogOpen bool              `json:"dialog_open"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.DialogOpen)
	assert.Equal(t, "", resp.Form["name"])
	require.Len(t, resp.Pets, 1)
	assert.Equal(t, "Rex", resp.Pets[0].Name)
	assert.Equal(t, "Saudável", resp.Pets[0].HealthStatus)
	assert.Len(t, resp.Pets[0].Vaccines, 2)
	assert.Equal(t, resp.Pets[0].ID, resp.SelectedPetID)

	rr = doReq(t, h, http.MethodGet, "/pets", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"onboarding":false`)
}

func TestHandler_AddPetValidation(t *testing.T) {
	f := newFixture()
	h := newTestHandler(f, "u-1")

	rr := doReq(t, h, http.MethodPost, "/pets", `{"name":"","breed":"Poodle"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name"`)

	list, err := f.pets.ListByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHandler_Reminders(t *testing.T) {
	f := newFixture()
	rex := f.addPet(t, "u-1", "Rex")
	h := newTestHandler(f, "u-1")

	rr := doReq(t, h, http.MethodGet, "/pets/"+rex.ID+"/reminders", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"pending":false`)

	rr = doReq(t, h, http.MethodGet, "/pets/nope/reminders", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// mascota de otro usuario
	other := f.addPet(t, "u-2", "Mel")
	rr = doReq(t, h, http.MethodGet, "/pets/"+other.ID+"/reminders", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func readEvent(t *testing.T, br *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := br.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
}

func TestHandler_EventsStream(t *testing.T) {
	f := newFixture()
	f.addPet(t, "u-1", "Rex")

	ts := httptest.NewServer(newTestHandler(f, "u-1"))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	br := bufio.NewReader(resp.Body)
	event, data := readEvent(t, br)
	assert.Equal(t, EventSnapshot, event)
	assert.Contains(t, data, `"Rex"`)

	f.addPet(t, "u-1", "Mel")
	f.hub.Publish(session.Event{Type: session.EventSignedIn, UserID: "u-1"})
	event, data = readEvent(t, br)
	assert.Equal(t, EventSnapshot, event)
	assert.Contains(t, data, `"Mel"`)

	f.hub.Publish(session.Event{Type: session.EventSignedOut, UserID: "u-1"})
	event, data = readEvent(t, br)
	assert.Equal(t, EventSignedOut, event)
	assert.Contains(t, data, `"/login"`)

	require.Eventually(t, func() bool { return f.hub.Len() == 0 }, time.Second, 5*time.Millisecond)
}
