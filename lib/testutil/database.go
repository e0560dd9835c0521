package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/icco/movies/lib/db"
	"gorm.io/gorm"
)

// NewTestDB opens a fresh SQLite file in a temp dir with the catalogue
// tables created. The database is closed when the test completes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gormDB, err := db.Open(filepath.Join(t.TempDir(), "movies.db"), logger)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(gormDB); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	if err := db.RunMigrations(context.Background(), gormDB, logger); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return gormDB
}

// SeedDirector inserts a director row directly.
func SeedDirector(t *testing.T, gormDB *gorm.DB, id int, name string) {
	t.Helper()
	if err := gormDB.Create(&db.DirectorRow{ID: id, Name: name}).Error; err != nil {
		t.Fatalf("failed to seed director %d: %v", id, err)
	}
}

// SeedGenre inserts a genre row directly.
func SeedGenre(t *testing.T, gormDB *gorm.DB, id int, name string) {
	t.Helper()
	if err := gormDB.Create(&db.GenreRow{ID: id, Name: name}).Error; err != nil {
		t.Fatalf("failed to seed genre %d: %v", id, err)
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
