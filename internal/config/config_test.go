package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	return &Config{
		HTTPAddr:         ":8080",
		DatabaseURL:      "postgres://localhost:5432/translationgate?sslmode=disable",
		OptionKey:        "excluded_categories",
		LegacyOptionKeys: []string{"weglot_exclude_post_types"},
		HostResolvePath:  "/wp-json/wp/v2/search?include={id}",
		Categories:       []string{"post", "page"},
		AdminTokenKey:    testKey,
		AdminCapability:  "manage_options",
		CheckInterval:    10 * time.Minute,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().validate())
}

func TestValidate_DatabaseURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"postgres://localhost:5432/db", true},
		{"postgresql://user@db.internal/gate", true},
		{"sqlite:///var/lib/gate/options.db", true},
		{"memory", true},
		{"postgres:///nohost", false},
		{"mysql://localhost/db", false},
		{"sqlite://", false},
		{"sqlite:", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg := validConfig()
			cfg.DatabaseURL = tt.url
			err := cfg.validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStore_SQLiteForms(t *testing.T) {
	tests := []struct {
		url  string
		path string
	}{
		{"sqlite:data.db", "data.db"},
		{"sqlite://data.db", "data.db"},
		{"sqlite:///tmp/data.db", "/tmp/data.db"},
		{"sqlite://./var/gate.db", "./var/gate.db"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg := validConfig()
			cfg.DatabaseURL = tt.url
			require.NoError(t, cfg.validate())
			assert.Equal(t, StoreSQLite, cfg.Store())
			assert.Equal(t, tt.path, cfg.SQLitePath())
		})
	}
}

func TestStore_OtherBackends(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, StorePostgres, cfg.Store())
	assert.Empty(t, cfg.SQLitePath())

	cfg.DatabaseURL = "memory"
	assert.Equal(t, StoreMemory, cfg.Store())
}

func TestValidate_AdminTokenKey(t *testing.T) {
	for _, key := range []string{"", "abcd", testKey[:62] + "zz"} {
		cfg := validConfig()
		cfg.AdminTokenKey = key
		assert.Error(t, cfg.validate(), "key %q", key)
	}
}

func TestValidate_HostAPI(t *testing.T) {
	cfg := validConfig()
	cfg.HostAPIURL = "not a url"
	assert.Error(t, cfg.validate())

	cfg.HostAPIURL = "https://cms.example"
	assert.NoError(t, cfg.validate())

	cfg.HostResolvePath = "/wp-json/wp/v2/search"
	assert.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.Categories = nil
	assert.Error(t, cfg.validate(), "static catalog required without host API")
}

func TestValidate_Discord(t *testing.T) {
	cfg := validConfig()
	cfg.DiscordToken = "token"
	assert.Error(t, cfg.validate())

	cfg.DiscordAdminChannelID = "12ab"
	assert.Error(t, cfg.validate())

	cfg.DiscordAdminChannelID = "123456789012345678"
	assert.NoError(t, cfg.validate())
	assert.True(t, cfg.DiscordEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_KEY", testKey)
	t.Setenv("DATABASE_URL", "sqlite:///tmp/gate.db")
	t.Setenv("CATEGORIES", "post,page,product")
	t.Setenv("CHECK_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"post", "page", "product"}, cfg.Categories)
	assert.Equal(t, "excluded_categories", cfg.OptionKey)
	assert.Equal(t, []string{"weglot_exclude_post_types", "udwlept_post_types"}, cfg.LegacyOptionKeys)
	assert.Equal(t, 30*time.Second, cfg.CheckInterval)
	assert.Equal(t, "/tmp/gate.db", cfg.SQLitePath())
	assert.Equal(t, StoreSQLite, cfg.Store())
}

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_KEY", "")
	_, err := Load()
	assert.Error(t, err)
}
