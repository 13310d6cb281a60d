// Package authflow implementa login con contraseña, registro, login OAuth y logout.
// Cada acción devuelve un Outcome que el cliente aplica tal cual: mensaje o error a mostrar,
// redirección (opcionalmente diferida) y si tiene que recargar su estado.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guiapet/internal/domain/profiles"
	"guiapet/internal/domain/session"
	"guiapet/internal/platform/inflight"
	"guiapet/internal/platform/logger"
	"guiapet/internal/platform/validation"
	"guiapet/internal/ports/auth"
)

const (
	MinPasswordLength = 6

	MsgSignInFailed   = "Erro ao fazer login"
	MsgSignUpFailed   = "Erro ao criar conta"
	MsgOAuthFailed    = "Erro ao fazer login com Google"
	MsgSignUpComplete = "Conta criada com sucesso! Redirecionando..."

	DefaultOAuthProvider = "google"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBusy         = inflight.ErrBusy
)

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignUpInput struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Outcome es el resultado visible de una acción de auth.
// Error reemplaza cualquier error anterior (hay un solo slot).
type Outcome struct {
	Redirect      string
	RedirectAfter time.Duration
	Message       string
	Error         string
	ReloadState   bool

	Session *auth.Session

	// CodeVerifier del inicio OAuth; el navegador lo guarda hasta la vuelta.
	CodeVerifier string
}

type Config struct {
	// AppOrigin es la raíz de la app; el callback OAuth vuelve ahí.
	AppOrigin           string
	SignUpRedirectDelay time.Duration
}

type Flow struct {
	provider  auth.Provider
	profiles  *profiles.Service
	hub       *session.Hub
	gate      *inflight.Gate
	validator *validation.Validator
	log       logger.Logger
	cfg       Config
}

func NewFlow(provider auth.Provider, profilesSvc *profiles.Service, hub *session.Hub, log logger.Logger, cfg Config) *Flow {
	if log == nil {
		log = logger.Nop()
	}
	cfg.AppOrigin = strings.TrimRight(strings.TrimSpace(cfg.AppOrigin), "/")
	if cfg.SignUpRedirectDelay < 0 {
		cfg.SignUpRedirectDelay = 0
	}
	return &Flow{
		provider:  provider,
		profiles:  profilesSvc,
		hub:       hub,
		gate:      inflight.New(),
		validator: validation.New(),
		log:       log,
		cfg:       cfg,
	}
}

// Loading indica si clientKey tiene una acción de auth en curso.
func (f *Flow) Loading(clientKey string) bool {
	return f.gate.Busy(flagKey(clientKey))
}

func (f *Flow) SignIn(ctx context.Context, clientKey string, in SignInInput) (Outcome, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := f.validator.Validate(in); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	release, err := f.gate.Acquire(flagKey(clientKey))
	if err != nil {
		return Outcome{Error: err.Error()}, err
	}
	defer release()

	s, err := f.provider.SignInWithPassword(ctx, in.Email, in.Password)
	if err != nil {
		f.logFailure("sign in failed", in.Email, err)
		return Outcome{Error: userMessage(err, MsgSignInFailed)}, err
	}

	f.publish(session.EventSignedIn, s.User)
	return Outcome{Redirect: "/", ReloadState: true, Session: &s}, nil
}

// SignUp crea la cuenta, intenta crear el perfil (si falla solo se loguea) e inicia sesión.
func (f *Flow) SignUp(ctx context.Context, clientKey string, in SignUpInput) (Outcome, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := f.validator.Validate(in); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	release, err := f.gate.Acquire(flagKey(clientKey))
	if err != nil {
		return Outcome{Error: err.Error()}, err
	}
	defer release()

	u, err := f.provider.SignUp(ctx, in.Email, in.Password, in.FullName)
	if err != nil {
		f.logFailure("sign up failed", in.Email, err)
		return Outcome{Error: userMessage(err, MsgSignUpFailed)}, err
	}

	if f.profiles != nil {
		email := u.Email
		if email == "" {
			email = in.Email
		}
		if _, err := f.profiles.Create(ctx, u.ID, email, in.FullName); err != nil {
			f.log.Warn("profile not created", map[string]any{"user_id": u.ID, "error": err})
		}
	}

	s, err := f.provider.SignInWithPassword(ctx, in.Email, in.Password)
	if err != nil {
		f.logFailure("sign in after sign up failed", in.Email, err)
		return Outcome{Error: userMessage(err, MsgSignUpFailed)}, err
	}

	f.publish(session.EventSignedIn, s.User)
	return Outcome{
		Redirect:      "/",
		RedirectAfter: f.cfg.SignUpRedirectDelay,
		Message:       MsgSignUpComplete,
		ReloadState:   true,
		Session:       &s,
	}, nil
}

// OAuth devuelve la URL del proveedor externo (PKCE). La vuelta (callback) es la raíz de la app
// con ?code=, que CompleteOAuth canjea con el CodeVerifier devuelto acá.
func (f *Flow) OAuth(ctx context.Context, clientKey, provider string) (Outcome, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = DefaultOAuthProvider
	}

	release, err := f.gate.Acquire(flagKey(clientKey))
	if err != nil {
		return Outcome{Error: err.Error()}, err
	}
	defer release()

	verifier, err := auth.NewCodeVerifier()
	if err != nil {
		return Outcome{Error: MsgOAuthFailed}, err
	}

	u, err := f.provider.OAuthURL(ctx, provider, f.cfg.AppOrigin+"/", auth.CodeChallenge(verifier))
	if err != nil {
		f.log.Error("oauth start failed", map[string]any{"provider": provider, "error": err})
		return Outcome{Error: userMessage(err, MsgOAuthFailed)}, err
	}
	return Outcome{Redirect: u, CodeVerifier: verifier}, nil
}

// CompleteOAuth canjea el code de la vuelta OAuth por una sesión.
func (f *Flow) CompleteOAuth(ctx context.Context, clientKey, code, verifier string) (Outcome, error) {
	code, verifier = strings.TrimSpace(code), strings.TrimSpace(verifier)
	if code == "" || verifier == "" {
		return Outcome{Error: MsgOAuthFailed}, fmt.Errorf("%w: missing oauth code or verifier", ErrInvalidInput)
	}

	release, err := f.gate.Acquire(flagKey(clientKey))
	if err != nil {
		return Outcome{Error: err.Error()}, err
	}
	defer release()

	s, err := f.provider.ExchangeCode(ctx, code, verifier)
	if err != nil {
		f.log.Error("oauth exchange failed", map[string]any{"error": err})
		return Outcome{Error: userMessage(err, MsgOAuthFailed)}, err
	}

	f.publish(session.EventSignedIn, s.User)
	return Outcome{Redirect: "/", ReloadState: true, Session: &s}, nil
}

// SignOut no falla: un error del colaborador se loguea y la sesión local se descarta igual.
func (f *Flow) SignOut(ctx context.Context, claims auth.Claims) Outcome {
	if tok := strings.TrimSpace(claims.AccessToken); tok != "" {
		if err := f.provider.SignOut(ctx, tok); err != nil {
			f.log.Error("sign out failed", map[string]any{"user_id": claims.UserID, "error": err})
		}
	}
	f.publish(session.EventSignedOut, auth.User{ID: claims.UserID, Email: claims.Email})
	return Outcome{Redirect: "/login", ReloadState: true}
}

func (f *Flow) publish(t session.EventType, u auth.User) {
	if f.hub == nil {
		return
	}
	f.hub.Publish(session.Event{Type: t, UserID: u.ID, Email: u.Email})
}

func (f *Flow) logFailure(msg, email string, err error) {
	fields := map[string]any{"email": email, "error": err}
	var ae *auth.AuthError
	if errors.As(err, &ae) {
		f.log.Info(msg, fields)
		return
	}
	f.log.Error(msg, fields)
}

// userMessage: errores de auth del colaborador se muestran tal cual; el resto usa fallback.
func userMessage(err error, fallback string) string {
	var ae *auth.AuthError
	if errors.As(err, &ae) && strings.TrimSpace(ae.Message) != "" {
		return ae.Message
	}
	return fallback
}

func flagKey(clientKey string) string {
	return "auth:" + strings.TrimSpace(clientKey)
}
