// Package rest implementa los repositorios sobre la API de tablas (PostgREST) del proyecto Supabase.
// Cada request va con la apikey del proyecto y el token del usuario tomado del contexto,
// así las políticas RLS del lado del servicio aplican al usuario real.
package rest

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
	ErrConflict = errors.New("already exists")
	ErrUpstream = errors.New("table store upstream error")
)

type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// Store agrupa el cliente compartido por los tres repos.
type Store struct {
	anonKey string
	http    *httpclient.Client
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	hc := httpclient.New(httpclient.Options{
		BaseURL: strings.TrimRight(strings.TrimSpace(cfg.URL), "/") + "/rest/v1",
		Timeout: timeout,
		Headers: map[string]string{"apikey": strings.TrimSpace(cfg.AnonKey)},
	})

	return &Store{anonKey: strings.TrimSpace(cfg.AnonKey), http: hc}
}

func (s *Store) Pets() *PetsRepo         { return &PetsRepo{s: s} }
func (s *Store) Vaccines() *VaccinesRepo { return &VaccinesRepo{s: s} }
func (s *Store) Profiles() *ProfilesRepo { return &ProfilesRepo{s: s} }

// headers arma Authorization con el token del usuario; sin claims cae a la anon key.
func (s *Store) headers(ctx context.Context, extra map[string]string) map[string]string {
	token := s.anonKey
	if c, ok := auth.ClaimsFrom(ctx); ok && strings.TrimSpace(c.AccessToken) != "" {
		token = strings.TrimSpace(c.AccessToken)
	}
	h := map[string]string{"Authorization": "Bearer " + token}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func (s *Store) insert(ctx context.Context, table string, rows any, out any) error {
	prefer := "return=minimal"
	if out != nil {
		prefer = "return=representation"
	}
	err := s.http.DoJSON(ctx, http.MethodPost, "/"+table, s.headers(ctx, map[string]string{"Prefer": prefer}), rows, out)
	return mapErr(table, err)
}

func (s *Store) selectRows(ctx context.Context, table string, q url.Values, out any) error {
	err := s.http.DoJSON(ctx, http.MethodGet, "/"+table+"?"+q.Encode(), s.headers(ctx, nil), nil, out)
	return mapErr(table, err)
}

func mapErr(table string, err error) error {
	if err == nil {
		return nil
	}
	if httpclient.StatusOf(err) == http.StatusConflict {
		return fmt.Errorf("%s: %w", table, ErrConflict)
	}
	return fmt.Errorf("%s: %w: %v", table, ErrUpstream, err)
}

func eq(v string) string { return "eq." + v }
