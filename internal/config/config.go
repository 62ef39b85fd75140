package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const memoryDatabase = "memory"

// StoreKind is the option store backend selected by DATABASE_URL.
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StorePostgres StoreKind = "postgres"
	StoreSQLite   StoreKind = "sqlite"
)

type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR"    envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/translationgate?sslmode=disable"`

	OptionKey        string   `env:"OPTION_KEY"         envDefault:"excluded_categories"`
	LegacyOptionKeys []string `env:"LEGACY_OPTION_KEYS" envDefault:"weglot_exclude_post_types,udwlept_post_types"`

	// Host REST API. When HostAPIURL is empty the static Categories catalog is used
	// and entities never resolve to a category.
	HostAPIURL          string        `env:"HOST_API_URL"`
	HostAPIToken        string        `env:"HOST_API_TOKEN"`
	HostCategoriesPath  string        `env:"HOST_CATEGORIES_PATH"  envDefault:"/wp-json/wp/v2/types"`
	HostCategoriesQuery string        `env:"HOST_CATEGORIES_QUERY" envDefault:"@keys"`
	HostResolvePath     string        `env:"HOST_RESOLVE_PATH"     envDefault:"/wp-json/wp/v2/search?include={id}&per_page=1"`
	HostResolveQuery    string        `env:"HOST_RESOLVE_QUERY"    envDefault:"0.subtype"`
	HostPluginPath      string        `env:"HOST_PLUGIN_PATH"      envDefault:"/wp-json/wp/v2/plugins/weglot/weglot"`
	HostPluginQuery     string        `env:"HOST_PLUGIN_QUERY"     envDefault:"status"`
	HostTimeout         time.Duration `env:"HOST_TIMEOUT"          envDefault:"5s"`
	Categories          []string      `env:"CATEGORIES"            envDefault:"post,page,attachment"`

	AdminTokenKey   string `env:"ADMIN_TOKEN_KEY"`
	AdminCapability string `env:"ADMIN_CAPABILITY" envDefault:"manage_options"`
	HookSecret      string `env:"HOOK_SECRET"`

	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	LogLevel      string `env:"LOG_LEVEL"      envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT"`

	DiscordToken          string `env:"DISCORD_TOKEN"`
	DiscordAdminChannelID string `env:"DISCORD_ADMIN_CHANNEL_ID"`

	CheckInterval time.Duration `env:"CHECK_INTERVAL" envDefault:"10m"`
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DiscordEnabled reports whether the Discord notifier should be started.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.OptionKey) == "" {
		return fmt.Errorf("config: OPTION_KEY est requis et ne peut pas être vide")
	}

	if strings.TrimSpace(c.AdminTokenKey) == "" {
		return fmt.Errorf("config: ADMIN_TOKEN_KEY est requis (64 caractères hexadécimaux)")
	}
	if key, err := hex.DecodeString(c.AdminTokenKey); err != nil || len(key) != 32 {
		return fmt.Errorf("config: ADMIN_TOKEN_KEY doit contenir exactement 64 caractères hexadécimaux")
	}

	if strings.TrimSpace(c.AdminCapability) == "" {
		return fmt.Errorf("config: ADMIN_CAPABILITY ne peut pas être vide")
	}

	if _, _, err := parseDatabaseURL(c.DatabaseURL); err != nil {
		return err
	}

	if c.HostAPIURL != "" {
		parsed, err := url.Parse(c.HostAPIURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: HOST_API_URL invalide (%q)", c.HostAPIURL)
		}
		if !strings.Contains(c.HostResolvePath, "{id}") {
			return fmt.Errorf("config: HOST_RESOLVE_PATH doit contenir {id}")
		}
	} else if len(c.Categories) == 0 {
		return fmt.Errorf("config: CATEGORIES est requis lorsque HOST_API_URL n'est pas défini")
	}

	if c.DiscordToken != "" {
		if strings.TrimSpace(c.DiscordAdminChannelID) == "" {
			return fmt.Errorf("config: DISCORD_ADMIN_CHANNEL_ID est requis lorsque DISCORD_TOKEN est défini")
		}
		for _, r := range c.DiscordAdminChannelID {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: DISCORD_ADMIN_CHANNEL_ID doit être un ID de salon Discord (chiffres uniquement)")
			}
		}
	}

	if c.CheckInterval <= 0 {
		return fmt.Errorf("config: CHECK_INTERVAL doit être positif")
	}

	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT doit valoir console ou json")
	}

	return nil
}

// Store returns the backend selected by DATABASE_URL. Call after Load.
func (c *Config) Store() StoreKind {
	kind, _, _ := parseDatabaseURL(c.DatabaseURL)
	return kind
}

// SQLitePath returns the database file of a sqlite DATABASE_URL, or "".
func (c *Config) SQLitePath() string {
	_, path, _ := parseDatabaseURL(c.DatabaseURL)
	return path
}

// parseDatabaseURL accepts "memory", postgres URLs and the sqlite forms
// sqlite:rel.db, sqlite://rel.db and sqlite:///abs.db.
func parseDatabaseURL(raw string) (StoreKind, string, error) {
	if raw == memoryDatabase {
		return StoreMemory, "", nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("config: DATABASE_URL invalide (%q): %w", raw, err)
	}
	switch parsed.Scheme {
	case "postgres", "postgresql":
		if parsed.Host == "" {
			return "", "", fmt.Errorf("config: DATABASE_URL invalide (%q): host manquant", raw)
		}
		return StorePostgres, "", nil
	case "sqlite":
		path := parsed.Opaque
		if path == "" {
			path = parsed.Host + parsed.Path
		}
		if path == "" {
			return "", "", fmt.Errorf("config: DATABASE_URL invalide (%q): chemin sqlite manquant", raw)
		}
		return StoreSQLite, path, nil
	default:
		return "", "", fmt.Errorf("config: DATABASE_URL invalide (%q): schéma %q non supporté", raw, parsed.Scheme)
	}
}
