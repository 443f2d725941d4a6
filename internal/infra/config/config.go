package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Credential store backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
)

// Config aggregates runtime configuration used across the CLI.
type Config struct {
	Unsplash    UnsplashConfig    `yaml:"unsplash"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Callback    CallbackConfig    `yaml:"callback"`
}

// UnsplashConfig identifies the application and the API hosts.
type UnsplashConfig struct {
	AppID       string        `yaml:"appId"`
	Secret      string        `yaml:"secret"`
	APIBaseURL  string        `yaml:"apiBaseUrl"`
	AuthBaseURL string        `yaml:"authBaseUrl"`
	RedirectURL string        `yaml:"redirectUrl"`
	Scopes      []string      `yaml:"scopes"`
	Timeout     time.Duration `yaml:"timeout"`
}

// CredentialsConfig selects where access tokens are kept.
type CredentialsConfig struct {
	Backend       string         `yaml:"backend"`
	EncryptionKey string         `yaml:"encryptionKey"`
	SQLite        SQLiteConfig   `yaml:"sqlite"`
	Valkey        ValkeyConfig   `yaml:"valkey"`
	Postgres      PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// ValkeyConfig contains connection information for a Valkey or Redis server.
type ValkeyConfig struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// CallbackConfig controls the loopback server that receives the OAuth
// redirect.
type CallbackConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("UNSPLASH_APP_ID"); v != "" {
		cfg.Unsplash.AppID = v
	}
	if v := os.Getenv("UNSPLASH_SECRET"); v != "" {
		cfg.Unsplash.Secret = v
	}
	if v := os.Getenv("UNSPLASH_API_BASE_URL"); v != "" {
		cfg.Unsplash.APIBaseURL = v
	}
	if v := os.Getenv("UNSPLASH_AUTH_BASE_URL"); v != "" {
		cfg.Unsplash.AuthBaseURL = v
	}
	if v := os.Getenv("UNSPLASH_REDIRECT_URL"); v != "" {
		cfg.Unsplash.RedirectURL = v
	}
	if v := os.Getenv("UNSPLASH_SCOPES"); v != "" {
		cfg.Unsplash.Scopes = splitList(v)
	}
	if v := os.Getenv("UNSPLASH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Unsplash.Timeout = parsed
		}
	}
	if v := os.Getenv("CREDENTIALS_BACKEND"); v != "" {
		cfg.Credentials.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("CREDENTIALS_ENCRYPTION_KEY"); v != "" {
		cfg.Credentials.EncryptionKey = v
	}
	if v := os.Getenv("CREDENTIALS_SQLITE_PATH"); v != "" {
		cfg.Credentials.SQLite.Path = v
	}
	if v := os.Getenv("CREDENTIALS_VALKEY_ADDR"); v != "" {
		cfg.Credentials.Valkey.Addr = v
	}
	if v := os.Getenv("CREDENTIALS_VALKEY_PREFIX"); v != "" {
		cfg.Credentials.Valkey.Prefix = v
	}
	if v := os.Getenv("CREDENTIALS_POSTGRES_DSN"); v != "" {
		cfg.Credentials.Postgres.DSN = v
	}
	if v := os.Getenv("CREDENTIALS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Credentials.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("CREDENTIALS_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Credentials.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("CALLBACK_ADDRESS"); v != "" {
		cfg.Callback.Address = v
	}
}

func splitList(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		Unsplash: UnsplashConfig{
			APIBaseURL:  "https://api.unsplash.com",
			AuthBaseURL: "https://unsplash.com",
			RedirectURL: "http://127.0.0.1:8765/oauth/callback",
			Timeout:     10 * time.Second,
		},
		Credentials: CredentialsConfig{
			Backend: BackendSQLite,
			SQLite: SQLiteConfig{
				Path: defaultSQLitePath(),
			},
			Valkey: ValkeyConfig{
				Prefix: "unsplash",
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Callback: CallbackConfig{
			Address:      "127.0.0.1:8765",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "unsplash-credentials.db"
	}
	return dir + string(os.PathSeparator) + "unsplash" + string(os.PathSeparator) + "credentials.db"
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Unsplash.AppID) == "" {
		return errors.New("unsplash.appId cannot be empty")
	}
	if !isAbsoluteURL(c.Unsplash.APIBaseURL) {
		return errors.New("unsplash.apiBaseUrl must be an absolute url")
	}
	if !isAbsoluteURL(c.Unsplash.AuthBaseURL) {
		return errors.New("unsplash.authBaseUrl must be an absolute url")
	}
	if c.Unsplash.RedirectURL != "" && !isAbsoluteURL(c.Unsplash.RedirectURL) {
		return errors.New("unsplash.redirectUrl must be an absolute url")
	}
	if c.Unsplash.Timeout <= 0 {
		return errors.New("unsplash.timeout must be positive")
	}
	switch c.Credentials.Backend {
	case BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(c.Credentials.SQLite.Path) == "" {
			return errors.New("credentials.sqlite.path cannot be empty when the sqlite backend is selected")
		}
	case BackendValkey:
		if strings.TrimSpace(c.Credentials.Valkey.Addr) == "" {
			return errors.New("credentials.valkey.addr cannot be empty when the valkey backend is selected")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Credentials.Postgres.DSN) == "" {
			return errors.New("credentials.postgres.dsn cannot be empty when the postgres backend is selected")
		}
		if c.Credentials.Postgres.MinConns < 0 || c.Credentials.Postgres.MaxConns < c.Credentials.Postgres.MinConns {
			return errors.New("credentials.postgres pool sizes are inconsistent")
		}
	default:
		return fmt.Errorf("credentials.backend %q is not supported", c.Credentials.Backend)
	}
	if c.Callback.Address == "" {
		return errors.New("callback.address cannot be empty")
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && u.IsAbs() && u.Host != ""
}
