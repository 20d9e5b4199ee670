package commands

import (
	"path/filepath"
	"testing"
	"time"

	"TripKeeper/internal/config"
)

// withTempConfig возвращает конфигурацию, у которой все артефакты
// (база, медиа, файл сессии) лежат во временном каталоге теста.
func withTempConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DatabaseDSN:    filepath.Join(dir, "trips.db"),
		DataDir:        dir,
		MediaBackend:   config.MediaBackendFS,
		MediaDir:       filepath.Join(dir, "media"),
		MediaCacheSize: 4,
		MediaMaxSizeMB: 1,
		SessionFile:    filepath.Join(dir, "active_trip"),
	}
}

// withFixedNow фиксирует текущее время команд.
func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	old := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = old })
}
