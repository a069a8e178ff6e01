package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Discord
		APIKeys
		MySQL
		Lending
		Dashboard
	}

	Discord struct {
		Token string
	}

	// APIKeys carries credentials for the external metadata services. The
	// bot process uses them for lookups; this binary only validates and
	// persists them.
	APIKeys struct {
		GoogleBooks         string
		TMDB                string
		SpotifyClientID     string
		SpotifyClientSecret string
		IGDBClientID        string
		IGDBClientSecret    string
		ComicVine           string
	}

	MySQL struct {
		Host     string
		Port     int
		User     string
		Password string
		Database string
	}

	Lending struct {
		DuePeriodDays    int // Days until a fresh loan is due
		RemindDaysBefore int // Reminder lead time before the due date
	}

	Dashboard struct {
		Password string
		Host     string
		Port     int
	}
)

// ProviderStatus reports whether one optional metadata provider has its
// credentials set.
type ProviderStatus struct {
	Name       string
	Configured bool
}

// Providers lists the optional metadata providers in display order. None of
// them is required; Validate never rejects a missing key, but the validate
// command reports which lookups the bot will be able to perform.
func (k APIKeys) Providers() []ProviderStatus {
	return []ProviderStatus{
		{"Google Books", k.GoogleBooks != ""},
		{"TMDB", k.TMDB != ""},
		{"Spotify", k.SpotifyClientID != "" && k.SpotifyClientSecret != ""},
		{"IGDB", k.IGDBClientID != "" && k.IGDBClientSecret != ""},
		{"ComicVine", k.ComicVine != ""},
	}
}

// ValidationError describes one rejected configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewConfig() *Config {
	// Missing .env is fine, values may come from the process environment
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("mysql_host", "localhost")
	v.SetDefault("mysql_port", 3306)
	v.SetDefault("mysql_db", "book_db")
	v.SetDefault("due_period_days", 14)
	v.SetDefault("remind_days_before", 1)
	v.SetDefault("dashboard_password", "admin")
	v.SetDefault("flask_host", "0.0.0.0")
	v.SetDefault("flask_port", 5000)

	return &Config{
		Discord: Discord{
			Token: v.GetString("DISCORD_TOKEN"),
		},
		APIKeys: APIKeys{
			GoogleBooks:         v.GetString("GOOGLE_BOOKS_API_KEY"),
			TMDB:                v.GetString("TMDB_API_KEY"),
			SpotifyClientID:     v.GetString("SPOTIFY_CLIENT_ID"),
			SpotifyClientSecret: v.GetString("SPOTIFY_CLIENT_SECRET"),
			IGDBClientID:        v.GetString("IGDB_CLIENT_ID"),
			IGDBClientSecret:    v.GetString("IGDB_CLIENT_SECRET"),
			ComicVine:           v.GetString("COMICVINE_API_KEY"),
		},
		MySQL: MySQL{
			Host:     v.GetString("MYSQL_HOST"),
			Port:     v.GetInt("MYSQL_PORT"),
			User:     v.GetString("MYSQL_USER"),
			Password: v.GetString("MYSQL_PASSWORD"),
			Database: v.GetString("MYSQL_DB"),
		},
		Lending: Lending{
			DuePeriodDays:    v.GetInt("DUE_PERIOD_DAYS"),
			RemindDaysBefore: v.GetInt("REMIND_DAYS_BEFORE"),
		},
		Dashboard: Dashboard{
			Password: v.GetString("DASHBOARD_PASSWORD"),
			Host:     v.GetString("FLASK_HOST"),
			Port:     v.GetInt("FLASK_PORT"),
		},
	}
}

// Validate checks the loaded configuration and returns every problem found,
// not just the first one, so an operator can fix them in one pass.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	switch c.Discord.Token {
	case "":
		errs = append(errs, ValidationError{"DISCORD_TOKEN", "is required"})
	case TokenPlaceholder:
		errs = append(errs, ValidationError{"DISCORD_TOKEN", "still contains the placeholder value, set a real bot token"})
	}

	if c.MySQL.User == "" {
		errs = append(errs, ValidationError{"MYSQL_USER", "is required"})
	}
	if c.MySQL.Password == "" {
		errs = append(errs, ValidationError{"MYSQL_PASSWORD", "is required"})
	}
	if c.MySQL.Port < 1 || c.MySQL.Port > 65535 {
		errs = append(errs, ValidationError{"MYSQL_PORT", fmt.Sprintf("must be between 1 and 65535, got %d", c.MySQL.Port)})
	}
	if c.MySQL.Database == "" {
		errs = append(errs, ValidationError{"MYSQL_DB", "is required"})
	}

	if c.Lending.DuePeriodDays < 1 {
		errs = append(errs, ValidationError{"DUE_PERIOD_DAYS", fmt.Sprintf("must be at least 1, got %d", c.Lending.DuePeriodDays)})
	}
	if c.Lending.RemindDaysBefore < 0 {
		errs = append(errs, ValidationError{"REMIND_DAYS_BEFORE", fmt.Sprintf("must not be negative, got %d", c.Lending.RemindDaysBefore)})
	}

	if c.Dashboard.Password == "" {
		errs = append(errs, ValidationError{"DASHBOARD_PASSWORD", "must not be empty"})
	}
	if c.Dashboard.Port < 1 || c.Dashboard.Port > 65535 {
		errs = append(errs, ValidationError{"FLASK_PORT", fmt.Sprintf("must be between 1 and 65535, got %d", c.Dashboard.Port)})
	}

	return errs
}
