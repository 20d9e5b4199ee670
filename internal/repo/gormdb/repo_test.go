package gormdb

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// newTestDB открывает SQLite (modernc.org/sqlite) во временном каталоге теста
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "trips.sqlite"), nil)
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}
