package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// PlaceholderSupabaseURL es el valor que usan los entornos demo; cuenta como "no configurado".
const PlaceholderSupabaseURL = "https://placeholder.supabase.co"

type Config struct {
	Port      string         `env:"PORT"`
	AppOrigin string         `env:"APP_ORIGIN"`
	Env       string         `env:"ENV"`
	Supabase  SupabaseConfig `envPrefix:"SUPABASE_"`

	DBDSN        string `env:"DB_DSN"`
	Storage      string `env:"STORAGE"`
	AuthProvider string `env:"AUTH_PROVIDER"`

	CookiePrefix string `env:"COOKIE_PREFIX"`
	CookieDomain string `env:"COOKIE_DOMAIN"`

	// DebugUserHeader habilita X-Debug-User-ID en modo degradado. Apagado salvo opt-in.
	DebugUserHeader bool `env:"AUTH_DEBUG_HEADER"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	AuthRateLimitRPS   float64 `env:"AUTH_RATE_LIMIT_RPS"`
	AuthRateLimitBurst int     `env:"AUTH_RATE_LIMIT_BURST"`

	SignUpRedirectDelay time.Duration `env:"SIGNUP_REDIRECT_DELAY"`
	ReminderWindowDays  int           `env:"REMINDER_WINDOW_DAYS"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
	AppName   string `env:"APP_NAME"`
}

type SupabaseConfig struct {
	URL       string `env:"URL"`
	AnonKey   string `env:"ANON_KEY"`
	JWTSecret string `env:"JWT_SECRET"`
}

type fileConfig struct {
	Server struct {
		Port      string `yaml:"port"`
		AppOrigin string `yaml:"app_origin"`
		Env       string `yaml:"env"`
	} `yaml:"server"`
	Supabase struct {
		URL       string `yaml:"url"`
		AnonKey   string `yaml:"anon_key"`
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"supabase"`
	Storage struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`
	Auth struct {
		Provider            string   `yaml:"provider"`
		CookiePrefix        string   `yaml:"cookie_prefix"`
		CookieDomain        string   `yaml:"cookie_domain"`
		DebugHeader         bool     `yaml:"debug_header"`
		RateLimitRPS        float64  `yaml:"rate_limit_rps"`
		RateLimitBurst      int      `yaml:"rate_limit_burst"`
		SignUpRedirectDelay string   `yaml:"signup_redirect_delay"`
		CORSAllowedOrigins  []string `yaml:"cors_allowed_origins"`
	} `yaml:"auth"`
	Reminders struct {
		WindowDays int `yaml:"window_days"`
	} `yaml:"reminders"`
}

func Defaults() Config {
	return Config{
		Port:                "8080",
		AppOrigin:           "http://localhost:8080",
		Env:                 "dev",
		Storage:             "auto",
		AuthProvider:        "auto",
		CookiePrefix:        "gp",
		AuthRateLimitRPS:    1,
		AuthRateLimitBurst:  5,
		SignUpRedirectDelay: 500 * time.Millisecond,
		ReminderWindowDays:  30,
		LogLevel:            "info",
		LogFormat:           "text",
		AppName:             "guiapet",
	}
}

// Load arma la config: defaults -> archivo YAML opcional -> env.
// Si path no existe se ignora; un YAML inválido sí es error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := applyFile(&cfg, raw); err != nil {
				return Config{}, err
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func applyFile(cfg *Config, raw []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&cfg.Port, f.Server.Port)
	setString(&cfg.AppOrigin, f.Server.AppOrigin)
	setString(&cfg.Env, f.Server.Env)
	setString(&cfg.Supabase.URL, f.Supabase.URL)
	setString(&cfg.Supabase.AnonKey, f.Supabase.AnonKey)
	setString(&cfg.Supabase.JWTSecret, f.Supabase.JWTSecret)
	setString(&cfg.Storage, f.Storage.Driver)
	setString(&cfg.DBDSN, f.Storage.DSN)
	setString(&cfg.AuthProvider, f.Auth.Provider)
	setString(&cfg.CookiePrefix, f.Auth.CookiePrefix)
	setString(&cfg.CookieDomain, f.Auth.CookieDomain)

	if f.Auth.DebugHeader {
		cfg.DebugUserHeader = true
	}
	if f.Auth.RateLimitRPS > 0 {
		cfg.AuthRateLimitRPS = f.Auth.RateLimitRPS
	}
	if f.Auth.RateLimitBurst > 0 {
		cfg.AuthRateLimitBurst = f.Auth.RateLimitBurst
	}
	if s := strings.TrimSpace(f.Auth.SignUpRedirectDelay); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse config file: signup_redirect_delay: %w", err)
		}
		cfg.SignUpRedirectDelay = d
	}
	if len(f.Auth.CORSAllowedOrigins) > 0 {
		cfg.CORSAllowedOrigins = f.Auth.CORSAllowedOrigins
	}
	if f.Reminders.WindowDays > 0 {
		cfg.ReminderWindowDays = f.Reminders.WindowDays
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func (c *Config) normalize() {
	c.Supabase.URL = strings.TrimRight(strings.TrimSpace(c.Supabase.URL), "/")
	c.Supabase.AnonKey = strings.TrimSpace(c.Supabase.AnonKey)
	c.AppOrigin = strings.TrimRight(strings.TrimSpace(c.AppOrigin), "/")
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	c.AuthProvider = strings.ToLower(strings.TrimSpace(c.AuthProvider))

	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 && c.AppOrigin != "" {
		origins = append(origins, c.AppOrigin)
	}
	c.CORSAllowedOrigins = origins

	if c.ReminderWindowDays <= 0 {
		c.ReminderWindowDays = 30
	}
	if c.SignUpRedirectDelay < 0 {
		c.SignUpRedirectDelay = 0
	}
	if strings.TrimSpace(c.CookiePrefix) == "" {
		c.CookiePrefix = "gp"
	}
}

// SupabaseConfigured replica el chequeo del colaborador: URL y key presentes y no placeholder.
func (c Config) SupabaseConfigured() bool {
	return c.Supabase.URL != "" && c.Supabase.AnonKey != "" && c.Supabase.URL != PlaceholderSupabaseURL
}

// SecureCookies: solo fuera de dev/test.
func (c Config) SecureCookies() bool {
	return c.Env == "prod" || c.Env == "production" || c.Env == "staging"
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
