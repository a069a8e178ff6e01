package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jawollo07/DC-Lib/internal/config"
	"github.com/Jawollo07/DC-Lib/internal/lending"
)

func TestBorrowCommand_ParseFlags(t *testing.T) {
	t.Run("all required flags", func(t *testing.T) {
		cmd := NewBorrowCommand()
		err := cmd.ParseFlags([]string{
			"-user", "1234", "-username", "alice",
			"-isbn", "978-3-16-148410-0", "-title", "Faust",
			"-days", "7",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1234), cmd.UserID)
		assert.Equal(t, "alice", cmd.Username)
		assert.Equal(t, "978-3-16-148410-0", cmd.ISBN)
		assert.Equal(t, "Faust", cmd.Title)
		assert.Equal(t, 7, cmd.Days)
	})

	t.Run("missing required flags", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
		}{
			{"no user", []string{"-username", "alice", "-isbn", "1234567890", "-title", "Faust"}},
			{"no username", []string{"-user", "1", "-isbn", "1234567890", "-title", "Faust"}},
			{"no isbn", []string{"-user", "1", "-username", "alice", "-title", "Faust"}},
			{"no title", []string{"-user", "1", "-username", "alice", "-isbn", "1234567890"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := NewBorrowCommand().ParseFlags(tt.args)
				assert.Error(t, err)
			})
		}
	})
}

func TestReturnCommand_ParseFlags(t *testing.T) {
	t.Run("moderator defaults to the borrower", func(t *testing.T) {
		cmd := NewReturnCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-user", "1234", "-isbn", "1234567890"}))
		assert.Equal(t, int64(1234), cmd.ModeratorID)
	})

	t.Run("explicit moderator wins", func(t *testing.T) {
		cmd := NewReturnCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-user", "1234", "-isbn", "1234567890", "-moderator", "5678"}))
		assert.Equal(t, int64(5678), cmd.ModeratorID)
	})
}

func TestConfigCommand_ParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"show all", []string{"show"}, false},
		{"show one key", []string{"show", "media_settings"}, false},
		{"set with key and value", []string{"set", "media_settings.due_period_days", "21"}, false},
		{"set without value", []string{"set", "media_settings.due_period_days"}, true},
		{"reset with section", []string{"reset", "notifications"}, false},
		{"reset without section", []string{"reset"}, true},
		{"no action", []string{}, true},
		{"unknown action", []string{"frobnicate"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigCommand().ParseFlags(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		raw      string
		expected any
	}{
		{"true", true},
		{"false", false},
		{"21", 21},
		{"1", 1},
		{"2.5", 2.5},
		{"hello", "hello"},
		{"09:00", "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			result := coerceValue(tt.raw)
			if result != tt.expected {
				t.Errorf("coerceValue(%q) = %v (%T), expected %v (%T)", tt.raw, result, result, tt.expected, tt.expected)
			}
		})
	}
}

func TestLoanPolicy(t *testing.T) {
	// Neutralize ambient environment so the settings defaults are the
	// compiled ones
	t.Setenv("DUE_PERIOD_DAYS", "")
	t.Setenv("REMIND_DAYS_BEFORE", "")

	t.Run("defaults without a settings file", func(t *testing.T) {
		settings, err := config.LoadSettings(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)

		assert.Equal(t, lending.DefaultPolicy(), loanPolicy(settings))
	})

	t.Run("settings file overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bot_config.json")
		doc := `{
    "media_settings": {
        "due_period_days": 21,
        "max_loans_per_user": 3,
        "allow_extensions": false
    }
}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

		settings, err := config.LoadSettings(path)
		require.NoError(t, err)

		policy := loanPolicy(settings)
		assert.Equal(t, 21, policy.DuePeriodDays)
		assert.Equal(t, 3, policy.MaxLoansPerUser)
		assert.False(t, policy.AllowExtensions)
		// Untouched keys keep their defaults
		assert.Equal(t, 1, policy.RemindDaysBefore)
		assert.Equal(t, 7, policy.MaxExtensionDays)
	})
}

func TestSetupCommand_Run(t *testing.T) {
	dir := t.TempDir()
	cmd := NewSetupCommand()
	require.NoError(t, cmd.ParseFlags([]string{
		"-env", filepath.Join(dir, ".env"),
		"-config", filepath.Join(dir, "bot_config.json"),
	}))

	require.NoError(t, cmd.Run())

	for _, name := range []string{".env", "bot_config.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s should have been created", name)
	}

	t.Run("second run leaves files untouched", func(t *testing.T) {
		envPath := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(envPath, []byte("DISCORD_TOKEN=real_token\n"), 0600))

		require.NoError(t, cmd.Run())

		content, err := os.ReadFile(envPath)
		require.NoError(t, err)
		assert.Equal(t, "DISCORD_TOKEN=real_token\n", string(content))
	})
}
