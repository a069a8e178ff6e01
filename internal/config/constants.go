package config

// Default file locations for the bootstrap files written by --setup
const (
	// DefaultEnvPath is the default path of the environment file
	DefaultEnvPath = ".env"

	// DefaultSettingsPath is the default path of the JSON settings file
	DefaultSettingsPath = "bot_config.json"
)

// TokenPlaceholder is the dummy token written into fresh .env templates.
// Validation treats it the same as an unset token.
const TokenPlaceholder = "your_discord_bot_token_here"
