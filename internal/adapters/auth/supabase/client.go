package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guiapet/internal/platform/httpclient"
	"guiapet/internal/ports/auth"
)

var (
	ErrUpstream        = errors.New("supabase auth upstream error")
	ErrUnknownProvider = errors.New("oauth provider not supported")
)

// Providers OAuth habilitados por defecto.
var defaultOAuthProviders = []string{"google"}

// Config del cliente GoTrue.
// URL y AnonKey vienen de SUPABASE_URL / SUPABASE_ANON_KEY.
type Config struct {
	URL     string
	AnonKey string

	// Opcional: si está vacío se usa defaultOAuthProviders.
	OAuthProviders []string

	Timeout time.Duration
}

// Client habla con /auth/v1 de un proyecto Supabase. Implementa auth.Provider.
type Client struct {
	baseURL   string
	anonKey   string
	providers map[string]struct{}
	http      *httpclient.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	hc := httpclient.New(httpclient.Options{
		BaseURL: base,
		Timeout: timeout,
		Headers: map[string]string{"apikey": strings.TrimSpace(cfg.AnonKey)},
	})

	names := cfg.OAuthProviders
	if len(names) == 0 {
		names = defaultOAuthProviders
	}
	providers := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			providers[n] = struct{}{}
		}
	}

	return &Client{
		baseURL:   base,
		anonKey:   strings.TrimSpace(cfg.AnonKey),
		providers: providers,
		http:      hc,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.baseURL != "" && c.anonKey != ""
}

// tokenResponse cubre /token y /signup (con autoconfirm devuelve sesión).
type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         *userPayload `json:"user"`
}

type userPayload struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

func (u userPayload) toUser() auth.User {
	return auth.User{
		ID:       strings.TrimSpace(u.ID),
		Email:    strings.TrimSpace(u.Email),
		FullName: strings.TrimSpace(u.UserMetadata.FullName),
	}
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (auth.Session, error) {
	if !c.Configured() {
		return auth.Session{}, auth.ErrNotConfigured
	}

	var out tokenResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", nil,
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return auth.Session{}, mapAuthError(err)
	}
	return toSession(out)
}

func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (auth.User, error) {
	if !c.Configured() {
		return auth.User{}, auth.ErrNotConfigured
	}

	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	}

	// Con confirmación de email activa viene el user plano; con autoconfirm viene sesión.
	var out struct {
		userPayload
		User *userPayload `json:"user"`
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/signup", nil, body, &out); err != nil {
		return auth.User{}, mapAuthError(err)
	}

	u := out.userPayload
	if out.User != nil {
		u = *out.User
	}
	if strings.TrimSpace(u.ID) == "" {
		return auth.User{}, fmt.Errorf("%w: signup response missing user id", ErrUpstream)
	}
	return u.toUser(), nil
}

// OAuthURL no hace red: arma /authorize y el colaborador redirige solo.
// Con codeChallenge el flujo es PKCE y la vuelta trae ?code= en vez de tokens en el fragment.
func (c *Client) OAuthURL(_ context.Context, provider, redirectTo, codeChallenge string) (string, error) {
	if !c.Configured() {
		return "", auth.ErrNotConfigured
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if _, ok := c.providers[provider]; !ok {
		return "", &auth.AuthError{Status: http.StatusBadRequest, Code: "unsupported_provider", Message: ErrUnknownProvider.Error()}
	}

	q := url.Values{}
	q.Set("provider", provider)
	if strings.TrimSpace(redirectTo) != "" {
		q.Set("redirect_to", redirectTo)
	}
	if cc := strings.TrimSpace(codeChallenge); cc != "" {
		q.Set("code_challenge", cc)
		q.Set("code_challenge_method", "s256")
	}
	return c.baseURL + "/auth/v1/authorize?" + q.Encode(), nil
}

// ExchangeCode canjea el code de la vuelta OAuth (PKCE) por una sesión.
func (c *Client) ExchangeCode(ctx context.Context, authCode, codeVerifier string) (auth.Session, error) {
	if !c.Configured() {
		return auth.Session{}, auth.ErrNotConfigured
	}
	authCode, codeVerifier = strings.TrimSpace(authCode), strings.TrimSpace(codeVerifier)
	if authCode == "" || codeVerifier == "" {
		return auth.Session{}, auth.ErrUnauthorized
	}

	var out tokenResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=pkce", nil,
		map[string]string{"auth_code": authCode, "code_verifier": codeVerifier}, &out)
	if err != nil {
		return auth.Session{}, mapAuthError(err)
	}
	return toSession(out)
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if !c.Configured() {
		return auth.ErrNotConfigured
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil
	}
	err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/logout", bearer(accessToken), nil, nil)
	if err != nil {
		// token ya inválido => la sesión ya no existe, no es error
		if st := httpclient.StatusOf(err); st == http.StatusUnauthorized || st == http.StatusForbidden {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (auth.User, error) {
	if !c.Configured() {
		return auth.User{}, auth.ErrNotConfigured
	}
	if strings.TrimSpace(accessToken) == "" {
		return auth.User{}, auth.ErrUnauthorized
	}

	var out userPayload
	if err := c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", bearer(accessToken), nil, &out); err != nil {
		switch httpclient.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.User{}, auth.ErrUnauthorized
		default:
			return auth.User{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	u := out.toUser()
	if u.ID == "" {
		return auth.User{}, fmt.Errorf("%w: user response missing id", ErrUpstream)
	}
	return u, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	if !c.Configured() {
		return auth.Session{}, auth.ErrNotConfigured
	}
	if strings.TrimSpace(refreshToken) == "" {
		return auth.Session{}, auth.ErrUnauthorized
	}

	var out tokenResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", nil,
		map[string]string{"refresh_token": refreshToken}, &out)
	if err != nil {
		switch httpclient.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return auth.Session{}, auth.ErrUnauthorized
		default:
			return auth.Session{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}
	return toSession(out)
}

func toSession(out tokenResponse) (auth.Session, error) {
	if strings.TrimSpace(out.AccessToken) == "" || out.User == nil {
		return auth.Session{}, fmt.Errorf("%w: token response missing session", ErrUpstream)
	}

	exp := time.Unix(out.ExpiresAt, 0)
	if out.ExpiresAt == 0 {
		exp = time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}

	return auth.Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    exp,
		User:         out.User.toUser(),
	}, nil
}

// mapAuthError: 4xx del colaborador son errores de credenciales (se muestran tal cual);
// el resto es falla upstream.
func mapAuthError(err error) error {
	var he *httpclient.HTTPError
	if errors.As(err, &he) && he.StatusCode >= 400 && he.StatusCode < 500 {
		return &auth.AuthError{Status: he.StatusCode, Code: he.Code, Message: he.Message}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + strings.TrimSpace(token)}
}
