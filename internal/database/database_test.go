package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	got := dsn(Config{
		Host:     "db.example.com",
		Port:     3307,
		User:     "bot",
		Password: "secret",
		Database: "book_db",
	})

	// parseTime is required: due_date is a DATE column read into time.Time
	assert.Equal(t, "bot:secret@tcp(db.example.com:3307)/book_db?parseTime=true", got)
}
