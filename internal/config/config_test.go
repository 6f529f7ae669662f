package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBUser:     "app",
		DBPassword: "secret",
		DBHost:     "localhost",
		DBPort:     "3306",
		DBName:     "unimarket",
	}

	dsn := cfg.DSN()
	assert.True(t, strings.HasPrefix(dsn, "app:secret@tcp(localhost:3306)/unimarket?"))
	assert.Contains(t, dsn, "parseTime=true")
	// Matched-rows semantics: without this flag the driver reports rows
	// changed, and an update that writes the same values back would look
	// like a missing row.
	assert.Contains(t, dsn, "clientFoundRows=true")
}
