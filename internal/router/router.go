package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "guiapet/docs"
	"guiapet/internal/adapters/auth/supabase"
	"guiapet/internal/domain/authflow"
	"guiapet/internal/domain/dashboard"
	"guiapet/internal/domain/pets"
	"guiapet/internal/domain/profiles"
	"guiapet/internal/domain/roster"
	"guiapet/internal/domain/session"
	"guiapet/internal/domain/vaccines"
	"guiapet/internal/middleware"
	"guiapet/internal/platform/config"
	"guiapet/internal/platform/logger"
	"guiapet/internal/platform/ratelimit"
	"guiapet/internal/ports/auth"
)

type Options struct {
	Config config.Config
	Log    logger.Logger

	// Provider y Verifier del colaborador de auth.
	// GateEnabled=false => modo degradado (sin gate).
	Provider    auth.Provider
	Verifier    auth.AuthVerifier
	GateEnabled bool

	Pets     pets.Repository
	Vaccines vaccines.Repository
	Profiles profiles.Repository

	// Opcionales.
	Hub *session.Hub
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	hub := opts.Hub
	if hub == nil {
		hub = session.NewHub()
	}
	if opts.Provider == nil {
		// sin colaborador: todas las acciones de auth responden ErrNotConfigured
		opts.Provider = supabase.NewClient(supabase.Config{})
	}
	if opts.Verifier == nil {
		opts.GateEnabled = false
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	cookies := middleware.NewSessionCookies(cfg.CookiePrefix, cfg.CookieDomain, cfg.SecureCookies())

	r.Use(middleware.SessionGate(middleware.GateConfig{
		Verifier:         opts.Verifier,
		Provider:         opts.Provider,
		Cookies:          cookies,
		Hub:              hub,
		Log:              log,
		Configured:       opts.GateEnabled,
		AllowDebugHeader: cfg.DebugUserHeader,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	petsSvc := pets.NewService(opts.Pets)
	vaccinesSvc := vaccines.NewService(opts.Vaccines)
	profilesSvc := profiles.NewService(opts.Profiles)
	rosterSvc := roster.NewService(petsSvc, vaccinesSvc, log)

	flow := authflow.NewFlow(opts.Provider, profilesSvc, hub, log, authflow.Config{
		AppOrigin:           cfg.AppOrigin,
		SignUpRedirectDelay: cfg.SignUpRedirectDelay,
	})

	limiter := ratelimit.New(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)

	// Rutas por módulo. El rate limit cubre /login/*; /logout queda afuera.
	authflow.RegisterRoutes(r, flow, cookies, limiter.Middleware)

	dashboard.RegisterRoutes(r, dashboard.Options{
		Deps: dashboard.Deps{
			Provider:  opts.Provider,
			Roster:    rosterSvc,
			Hub:       hub,
			Evaluator: vaccines.NewEvaluator(cfg.ReminderWindowDays),
			Log:       log,
		},
		Now: opts.Now,
	})

	return r
}
