package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guiapet/internal/ports/auth"
)

func TestSessionCookies_SetAndRead(t *testing.T) {
	c := NewSessionCookies("gp", "", true)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	rr := httptest.NewRecorder()
	c.Set(rr, auth.Session{AccessToken: "at", RefreshToken: "rt", ExpiresAt: now.Add(30 * time.Minute)})

	res := rr.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "gp-access-token", cookies[0].Name)
	assert.Equal(t, 1800, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	assert.Equal(t, "at", c.AccessToken(req))
	assert.Equal(t, "rt", c.RefreshToken(req))

	req.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", c.AccessToken(req))
}

func TestSessionCookies_ClientKey(t *testing.T) {
	c := NewSessionCookies("gp", "", false)

	// primer contacto: la key es la IP y se emite la cookie
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/sign-in", nil)
	req.RemoteAddr = "10.0.0.9:4000"
	assert.Equal(t, "ip:10.0.0.9", c.ClientKey(rr, req))

	issued := rr.Result().Cookies()
	require.Len(t, issued, 1)
	assert.Equal(t, "gp-client", issued[0].Name)

	// dos requests sin cookie desde la misma IP comparten key
	other := httptest.NewRequest(http.MethodPost, "/login/sign-in", nil)
	other.RemoteAddr = "10.0.0.9:4001"
	assert.Equal(t, "ip:10.0.0.9", c.ClientKey(httptest.NewRecorder(), other))

	again := httptest.NewRequest(http.MethodPost, "/login/sign-in", nil)
	again.AddCookie(issued[0])
	assert.Equal(t, issued[0].Value, c.ClientKey(httptest.NewRecorder(), again))

	api := httptest.NewRequest(http.MethodPost, "/login/sign-in", nil)
	api.Header.Set("Authorization", "Bearer x")
	api.RemoteAddr = "10.0.0.7:5555"
	assert.Equal(t, "ip:10.0.0.7", c.ClientKey(httptest.NewRecorder(), api))
}

func TestSessionCookies_CodeVerifier(t *testing.T) {
	c := NewSessionCookies("gp", "", false)

	rr := httptest.NewRecorder()
	c.SetCodeVerifier(rr, "v-1")
	issued := rr.Result().Cookies()
	require.Len(t, issued, 1)
	assert.Equal(t, "gp-code-verifier", issued[0].Name)
	assert.Equal(t, 600, issued[0].MaxAge)
	assert.True(t, issued[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/login?code=x", nil)
	req.AddCookie(issued[0])
	assert.Equal(t, "v-1", c.CodeVerifier(req))

	rr = httptest.NewRecorder()
	c.ClearCodeVerifier(rr)
	assert.Equal(t, -1, rr.Result().Cookies()[0].MaxAge)
}
