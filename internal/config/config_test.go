package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.Equal(t, "Asia/Manila", cfg.TimeZone)
	assert.Equal(t, 15*time.Second, cfg.SaveTimeout)
	assert.Equal(t, "Queue!A2:C", cfg.Sheets.QueueRange)
	assert.Equal(t, "History!A2:B", cfg.Sheets.HistoryRange)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.OpenMutations)
	assert.Equal(t, "Asia/Manila", cfg.Location().String())
}

func TestParseRequiresAdminPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Parse()
	assert.ErrorContains(t, err, "mongo")
}

func TestParseSheetsNeedsSpreadsheet(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("STORE_BACKEND", "sheets")
	t.Setenv("SHEETS_SPREADSHEET_ID", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	db := DBConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "court"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=court sslmode=disable", db.DSN())
}

func TestRedactedHidesSecrets(t *testing.T) {
	cfg := &Config{AdminPassword: "hunter2", JWTSecret: "topsecret", StoreBackend: "none"}
	out := cfg.Redacted()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "topsecret")
	assert.Contains(t, out, "jwt_secret=[set]")
}
