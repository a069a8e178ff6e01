package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Settings is the persistent JSON settings document (bot_config.json).
// Unlike the environment configuration it is writable at runtime: the
// config subcommand edits it in place. Values missing from the file fall
// back to the defaults, so files written by older versions keep working
// after new sections are introduced.
type Settings struct {
	path   string
	exists bool
	values map[string]any
}

// DefaultSettings builds the default settings document. Credentials and
// connection values are seeded from the environment so a fresh file starts
// out consistent with the .env the operator already filled in.
func DefaultSettings() map[string]any {
	return map[string]any{
		"discord": map[string]any{
			"token":              envOr("DISCORD_TOKEN", ""),
			"admin_roles":        []any{"Admin", "Moderator"},
			"allowed_channels":   []any{},
			"command_prefix":     "!",
			"auto_sync_commands": true,
		},
		"apis": map[string]any{
			"google_books": map[string]any{
				"enabled": true,
				"api_key": envOr("GOOGLE_BOOKS_API_KEY", ""),
			},
			"tmdb": map[string]any{
				"enabled": true,
				"api_key": envOr("TMDB_API_KEY", ""),
			},
			"spotify": map[string]any{
				"enabled":       true,
				"client_id":     envOr("SPOTIFY_CLIENT_ID", ""),
				"client_secret": envOr("SPOTIFY_CLIENT_SECRET", ""),
			},
			"igdb": map[string]any{
				"enabled":       true,
				"client_id":     envOr("IGDB_CLIENT_ID", ""),
				"client_secret": envOr("IGDB_CLIENT_SECRET", ""),
			},
			"boardgamegeek": map[string]any{
				"enabled": true,
				"api_key": "", // BoardGameGeek needs no API key
			},
			"comic_vine": map[string]any{
				"enabled": true,
				"api_key": envOr("COMICVINE_API_KEY", ""),
			},
			"open_library": map[string]any{
				"enabled": true,
				"api_key": "", // Open Library needs no API key
			},
		},
		"media_settings": map[string]any{
			"due_period_days":    envOrInt("DUE_PERIOD_DAYS", 14),
			"remind_days_before": envOrInt("REMIND_DAYS_BEFORE", 1),
			"max_loans_per_user": 10,
			"allow_extensions":   true,
			"max_extension_days": 7,
		},
		"notifications": map[string]any{
			"enable_dm_reminders":      true,
			"enable_channel_reminders": false,
			"reminder_channel_id":      nil,
			"daily_reminder_time":      "09:00",
			"weekly_report":            true,
			"weekly_report_day":        "monday",
			"weekly_report_time":       "10:00",
		},
		"web_dashboard": map[string]any{
			"enabled":    true,
			"host":       envOr("FLASK_HOST", "0.0.0.0"),
			"port":       envOrInt("FLASK_PORT", 5000),
			"password":   envOr("DASHBOARD_PASSWORD", "admin"),
			"enable_api": true,
		},
		"database": map[string]any{
			"host":     envOr("MYSQL_HOST", "localhost"),
			"port":     envOrInt("MYSQL_PORT", 3306),
			"user":     envOr("MYSQL_USER", ""),
			"password": envOr("MYSQL_PASSWORD", ""),
			"database": envOr("MYSQL_DB", "book_db"),
		},
		"logging": map[string]any{
			"level":                  "INFO",
			"enable_file_logging":    true,
			"log_file":               "bot.log",
			"enable_discord_logging": false,
			"log_channel_id":         nil,
		},
	}
}

// LoadSettings reads the settings file at path and merges it over the
// defaults, file values winning. A missing file yields pure defaults;
// Exists reports whether the file was there.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{
		path:   path,
		values: DefaultSettings(),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var fromFile map[string]any
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	mergeMaps(s.values, fromFile)
	s.exists = true
	return s, nil
}

// Exists reports whether the settings file was present when loaded.
func (s *Settings) Exists() bool {
	return s.exists
}

func (s *Settings) Path() string {
	return s.path
}

// All returns the full settings document.
func (s *Settings) All() map[string]any {
	return s.values
}

// Get resolves a dot-separated path like "media_settings.due_period_days".
func (s *Settings) Get(path string) (any, bool) {
	current := any(s.values)
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func (s *Settings) GetString(path, fallback string) string {
	if v, ok := s.Get(path); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return fallback
}

// GetInt reads an integer value. JSON numbers arrive as float64, values set
// in code as int, so both are accepted.
func (s *Settings) GetInt(path string, fallback int) int {
	v, ok := s.Get(path)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}

func (s *Settings) GetBool(path string, fallback bool) bool {
	if v, ok := s.Get(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Set writes a value at a dot-separated path, creating intermediate
// sections as needed, and saves the file.
func (s *Settings) Set(path string, value any) error {
	keys := strings.Split(path, ".")
	current := s.values
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[key] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
	return s.Save()
}

// ResetSection restores one top-level section to its defaults and saves.
func (s *Settings) ResetSection(name string) error {
	defaults := DefaultSettings()
	section, ok := defaults[name]
	if !ok {
		return fmt.Errorf("unknown settings section %q", name)
	}
	s.values[name] = section
	return s.Save()
}

// Save writes the current document to disk.
func (s *Settings) Save() error {
	data, err := json.MarshalIndent(s.values, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", s.path, err)
	}
	s.exists = true
	return nil
}

func mergeMaps(base, overlay map[string]any) {
	for key, value := range overlay {
		if sub, ok := value.(map[string]any); ok {
			if baseSub, ok := base[key].(map[string]any); ok {
				mergeMaps(baseSub, sub)
				continue
			}
		}
		base[key] = value
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
