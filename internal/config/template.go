package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrEnvExists is returned when the target environment file is already
// present. Setup never overwrites an existing file.
var ErrEnvExists = errors.New("environment file already exists")

const envTemplate = `# Discord bot credentials
DISCORD_TOKEN=` + TokenPlaceholder + `

# Optional API keys for metadata lookups (leave empty to disable a source)
GOOGLE_BOOKS_API_KEY=
TMDB_API_KEY=
SPOTIFY_CLIENT_ID=
SPOTIFY_CLIENT_SECRET=
IGDB_CLIENT_ID=
IGDB_CLIENT_SECRET=
COMICVINE_API_KEY=

# MySQL connection
MYSQL_HOST=localhost
MYSQL_PORT=3306
MYSQL_USER=
MYSQL_PASSWORD=
MYSQL_DB=book_db

# Lending behaviour
DUE_PERIOD_DAYS=14
REMIND_DAYS_BEFORE=1

# Web dashboard
DASHBOARD_PASSWORD=admin
FLASK_HOST=0.0.0.0
FLASK_PORT=5000
`

// WriteEnvTemplate writes a commented .env template to path. Returns
// ErrEnvExists when the file is already there.
func WriteEnvTemplate(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return ErrEnvExists
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(envTemplate); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
