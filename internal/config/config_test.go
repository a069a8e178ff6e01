package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// specVars is every environment variable the loader reads. Tests blank them
// all out so values leaking in from the host environment cannot interfere.
var specVars = []string{
	"DISCORD_TOKEN",
	"GOOGLE_BOOKS_API_KEY", "TMDB_API_KEY",
	"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET",
	"IGDB_CLIENT_ID", "IGDB_CLIENT_SECRET",
	"COMICVINE_API_KEY",
	"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DB",
	"DUE_PERIOD_DAYS", "REMIND_DAYS_BEFORE",
	"DASHBOARD_PASSWORD", "FLASK_HOST", "FLASK_PORT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range specVars {
		t.Setenv(key, "")
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg := NewConfig()

		assert.Equal(t, "localhost", cfg.MySQL.Host)
		assert.Equal(t, 3306, cfg.MySQL.Port)
		assert.Equal(t, "book_db", cfg.MySQL.Database)
		assert.Equal(t, 14, cfg.Lending.DuePeriodDays)
		assert.Equal(t, 1, cfg.Lending.RemindDaysBefore)
		assert.Equal(t, "admin", cfg.Dashboard.Password)
		assert.Equal(t, "0.0.0.0", cfg.Dashboard.Host)
		assert.Equal(t, 5000, cfg.Dashboard.Port)
		assert.Empty(t, cfg.Discord.Token)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DISCORD_TOKEN", "real-token")
		t.Setenv("MYSQL_HOST", "db.internal")
		t.Setenv("MYSQL_PORT", "3307")
		t.Setenv("MYSQL_USER", "media")
		t.Setenv("MYSQL_PASSWORD", "secret")
		t.Setenv("DUE_PERIOD_DAYS", "21")

		cfg := NewConfig()

		assert.Equal(t, "real-token", cfg.Discord.Token)
		assert.Equal(t, "db.internal", cfg.MySQL.Host)
		assert.Equal(t, 3307, cfg.MySQL.Port)
		assert.Equal(t, "media", cfg.MySQL.User)
		assert.Equal(t, "secret", cfg.MySQL.Password)
		assert.Equal(t, 21, cfg.Lending.DuePeriodDays)
	})
}

func validConfig() *Config {
	return &Config{
		Discord: Discord{Token: "real-token"},
		MySQL: MySQL{
			Host:     "localhost",
			Port:     3306,
			User:     "media",
			Password: "secret",
			Database: "book_db",
		},
		Lending:   Lending{DuePeriodDays: 14, RemindDaysBefore: 1},
		Dashboard: Dashboard{Password: "admin", Host: "0.0.0.0", Port: 5000},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.Empty(t, validConfig().Validate())
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Discord.Token = ""

		errs := cfg.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "DISCORD_TOKEN", errs[0].Field)
	})

	t.Run("placeholder token is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Discord.Token = TokenPlaceholder

		errs := cfg.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "DISCORD_TOKEN", errs[0].Field)
		assert.Contains(t, errs[0].Message, "placeholder")
	})

	t.Run("all problems are reported together", func(t *testing.T) {
		cfg := validConfig()
		cfg.Discord.Token = ""
		cfg.MySQL.User = ""
		cfg.MySQL.Password = ""

		errs := cfg.Validate()
		require.Len(t, errs, 3)

		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.Field)
		}
		assert.Contains(t, fields, "DISCORD_TOKEN")
		assert.Contains(t, fields, "MYSQL_USER")
		assert.Contains(t, fields, "MYSQL_PASSWORD")
	})

	t.Run("out of range values are rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.MySQL.Port = 0
		cfg.Lending.DuePeriodDays = 0
		cfg.Lending.RemindDaysBefore = -1
		cfg.Dashboard.Port = 70000

		errs := cfg.Validate()
		assert.Len(t, errs, 4)
	})

	t.Run("errors read as field and message", func(t *testing.T) {
		err := ValidationError{Field: "MYSQL_USER", Message: "is required"}
		assert.Equal(t, "MYSQL_USER: is required", err.Error())
	})
}

func TestAPIKeys_Providers(t *testing.T) {
	keys := APIKeys{
		GoogleBooks:     "key",
		SpotifyClientID: "id", // secret missing, so Spotify stays unconfigured
	}

	status := make(map[string]bool)
	for _, p := range keys.Providers() {
		status[p.Name] = p.Configured
	}

	assert.True(t, status["Google Books"])
	assert.False(t, status["Spotify"], "Spotify needs both client id and secret")
	assert.False(t, status["TMDB"])

	keys.SpotifyClientSecret = "secret"
	for _, p := range keys.Providers() {
		if p.Name == "Spotify" {
			assert.True(t, p.Configured)
		}
	}
}

func TestWriteEnvTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	require.NoError(t, WriteEnvTemplate(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "DISCORD_TOKEN="+TokenPlaceholder)
	assert.Contains(t, content, "MYSQL_DB=book_db")
	assert.Contains(t, content, "DUE_PERIOD_DAYS=14")

	// Every variable the loader knows must appear in the template
	for _, key := range specVars {
		assert.True(t, strings.Contains(content, key+"="), "template is missing %s", key)
	}

	t.Run("refuses to overwrite", func(t *testing.T) {
		err := WriteEnvTemplate(path)
		assert.ErrorIs(t, err, ErrEnvExists)
	})
}
