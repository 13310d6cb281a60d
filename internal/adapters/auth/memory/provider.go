package memory

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"guiapet/internal/ports/auth"
)

// Provider es un colaborador de auth en proceso para demo local y tests.
// Emite JWT HS256 con el mismo formato que GoTrue (sub, email) y también verifica (auth.AuthVerifier).
type Provider struct {
	mu        sync.Mutex
	byEmail   map[string]account
	refresh   map[string]string // refresh token -> user id
	revoked   map[string]struct{}
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
	cost      int
}

type account struct {
	user auth.User
	hash []byte
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewProvider(secret string) *Provider {
	key := []byte(strings.TrimSpace(secret))
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &Provider{
		byEmail:   make(map[string]account),
		refresh:   make(map[string]string),
		revoked:   make(map[string]struct{}),
		secret:    key,
		accessTTL: time.Hour,
		now:       time.Now,
		cost:      bcrypt.DefaultCost,
	}
}

// NewProviderWithCost permite bajar el costo de bcrypt (tests).
func NewProviderWithCost(secret string, cost int) *Provider {
	p := NewProvider(secret)
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		p.cost = cost
	}
	return p
}

func (p *Provider) Configured() bool { return true }

func (p *Provider) SignUp(_ context.Context, email, password, fullName string) (auth.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return auth.User{}, &auth.AuthError{Status: http.StatusBadRequest, Code: "validation_failed", Message: "Email and password are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return auth.User{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[email]; exists {
		return auth.User{}, &auth.AuthError{Status: http.StatusUnprocessableEntity, Code: "user_already_exists", Message: "User already registered"}
	}

	u := auth.User{ID: uuid.NewString(), Email: email, FullName: strings.TrimSpace(fullName)}
	p.byEmail[email] = account{user: u, hash: hash}
	return u, nil
}

func (p *Provider) SignInWithPassword(_ context.Context, email, password string) (auth.Session, error) {
	p.mu.Lock()
	acc, ok := p.byEmail[normalizeEmail(email)]
	p.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return auth.Session{}, &auth.AuthError{Status: http.StatusBadRequest, Code: "invalid_credentials", Message: "Invalid login credentials"}
	}
	return p.issue(acc.user)
}

func (p *Provider) OAuthURL(_ context.Context, provider, _, _ string) (string, error) {
	return "", &auth.AuthError{
		Status:  http.StatusBadRequest,
		Code:    "provider_disabled",
		Message: "Unsupported provider: " + strings.TrimSpace(provider) + " is not enabled",
	}
}

// ExchangeCode: sin OAuth no hay flujos PKCE abiertos.
func (p *Provider) ExchangeCode(_ context.Context, _, _ string) (auth.Session, error) {
	return auth.Session{}, &auth.AuthError{
		Status:  http.StatusNotFound,
		Code:    "flow_state_not_found",
		Message: "invalid flow state, no valid flow state found",
	}
}

// SignOut revoca también con el access token vencido: solo se exige la firma.
func (p *Provider) SignOut(_ context.Context, accessToken string) error {
	c, err := p.parse(accessToken, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.revoked[c.ID] = struct{}{}
	for rt, uid := range p.refresh {
		if uid == c.Subject {
			delete(p.refresh, rt)
		}
	}
	return nil
}

func (p *Provider) GetUser(ctx context.Context, accessToken string) (auth.User, error) {
	claims, err := p.Verify(ctx, accessToken)
	if err != nil {
		return auth.User{}, err
	}
	u, ok := p.userByID(claims.UserID)
	if !ok {
		return auth.User{}, auth.ErrUnauthorized
	}
	return u, nil
}

func (p *Provider) Refresh(_ context.Context, refreshToken string) (auth.Session, error) {
	p.mu.Lock()
	uid, ok := p.refresh[refreshToken]
	if ok {
		// rotación: cada refresh token sirve una sola vez
		delete(p.refresh, refreshToken)
	}
	p.mu.Unlock()

	if !ok {
		return auth.Session{}, auth.ErrUnauthorized
	}
	u, ok := p.userByID(uid)
	if !ok {
		return auth.Session{}, auth.ErrUnauthorized
	}
	return p.issue(u)
}

// Verify implementa auth.AuthVerifier.
func (p *Provider) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, err := p.parse(token)
	if err != nil {
		return auth.Claims{}, err
	}

	p.mu.Lock()
	_, revoked := p.revoked[c.ID]
	p.mu.Unlock()
	if revoked {
		return auth.Claims{}, auth.ErrUnauthorized
	}

	return auth.Claims{UserID: c.Subject, Email: c.Email, AccessToken: token}, nil
}

func (p *Provider) parse(token string, extra ...jwt.ParserOption) (tokenClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return tokenClaims{}, auth.ErrUnauthorized
	}

	opts := append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	}, extra...)

	var c tokenClaims
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return p.secret, nil })
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return tokenClaims{}, auth.ErrTokenExpired
		}
		return tokenClaims{}, auth.ErrUnauthorized
	}
	return c, nil
}

func (p *Provider) issue(u auth.User) (auth.Session, error) {
	now := p.now()
	exp := now.Add(p.accessTTL)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(p.secret)
	if err != nil {
		return auth.Session{}, err
	}

	rt := uuid.NewString()
	p.mu.Lock()
	p.refresh[rt] = u.ID
	p.mu.Unlock()

	return auth.Session{AccessToken: signed, RefreshToken: rt, ExpiresAt: exp, User: u}, nil
}

func (p *Provider) userByID(id string) (auth.User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, acc := range p.byEmail {
		if acc.user.ID == id {
			return acc.user, true
		}
	}
	return auth.User{}, false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
