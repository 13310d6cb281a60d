package router

import (
	"context"
	"database/sql"
	"fmt"

	authmem "guiapet/internal/adapters/auth/memory"
	"guiapet/internal/adapters/auth/supabase"
	mem "guiapet/internal/adapters/storage/memory"
	pg "guiapet/internal/adapters/storage/postgres"
	"guiapet/internal/adapters/storage/rest"
	"guiapet/internal/platform/config"
	"guiapet/internal/platform/logger"
)

// FromConfig elige colaborador de auth y storage según cfg.
// cleanup libera lo que haya abierto (conexión a Postgres); siempre es no-nil.
func FromConfig(ctx context.Context, cfg config.Config, log logger.Logger) (opts Options, cleanup func(), err error) {
	if log == nil {
		log = logger.Nop()
	}
	opts = Options{Config: cfg, Log: log}
	cleanup = func() {}

	switch cfg.AuthProvider {
	case "memory":
		p := authmem.NewProvider(cfg.Supabase.JWTSecret)
		opts.Provider, opts.Verifier, opts.GateEnabled = p, p, true
		log.Warn("using in-memory auth provider", nil)
	case "supabase", "auto", "":
		c := supabase.NewClient(supabase.Config{URL: cfg.Supabase.URL, AnonKey: cfg.Supabase.AnonKey})
		opts.Provider = c
		opts.Verifier = supabase.NewVerifier(c, cfg.Supabase.JWTSecret)
		opts.GateEnabled = cfg.SupabaseConfigured()
	default:
		return Options{}, cleanup, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}

	storage := cfg.Storage
	if storage == "auto" || storage == "" {
		switch {
		case cfg.DBDSN != "":
			storage = "postgres"
		case cfg.SupabaseConfigured():
			storage = "supabase"
		default:
			storage = "memory"
		}
	}

	switch storage {
	case "postgres":
		db, err := openPostgres(ctx, cfg.DBDSN)
		if err != nil {
			return Options{}, cleanup, err
		}
		cleanup = func() { _ = db.Close() }
		opts.Pets = pg.NewPetsRepo(db)
		opts.Vaccines = pg.NewVaccinesRepo(db)
		opts.Profiles = pg.NewProfilesRepo(db)
	case "supabase":
		if !cfg.SupabaseConfigured() {
			return Options{}, cleanup, fmt.Errorf("storage supabase requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}
		s := rest.NewStore(rest.Config{URL: cfg.Supabase.URL, AnonKey: cfg.Supabase.AnonKey})
		opts.Pets, opts.Vaccines, opts.Profiles = s.Pets(), s.Vaccines(), s.Profiles()
	case "memory":
		opts.Pets, opts.Vaccines, opts.Profiles = mem.NewPetRepo(), mem.NewVaccineRepo(), mem.NewProfileRepo()
	default:
		return Options{}, cleanup, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	log.Info("wiring ready", map[string]any{
		"auth_provider": cfg.AuthProvider,
		"gate_enabled":  opts.GateEnabled,
		"storage":       storage,
	})
	return opts, cleanup, nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("storage postgres requires DB_DSN")
	}
	db, err := pg.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pg.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return db, nil
}
