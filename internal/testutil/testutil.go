package testutil

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bartek5186/sahamit-tms/internal/db"
)

// SetupTestDB otwiera świeżą bazę SQLite (czysty Go) w katalogu tymczasowym testu
// i zakłada schemat.
func SetupTestDB(t *testing.T) *db.Handle {
	t.Helper()

	h, err := db.OpenAt(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })

	if err := h.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
	return h
}

func Str(s string) *string { return &s }

func F64(v float64) *float64 { return &v }
