package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"TripKeeper/internal/media"
	"TripKeeper/internal/repo"
	fsrepo "TripKeeper/internal/repo/fs"
	"TripKeeper/internal/repo/gormdb"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv — каталог с БД, медиа и файлом сессии; reopen имитирует перезапуск процесса.
type testEnv struct {
	t   *testing.T
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir()}
}

func (e *testEnv) open() *Store {
	e.t.Helper()
	db, err := gormdb.InitDB(filepath.Join(e.dir, "trips.sqlite"), nil)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { _ = gormdb.Close(db) })

	blobs, err := fsrepo.NewBlobStore(filepath.Join(e.dir, "media"))
	require.NoError(e.t, err)
	mr, err := media.NewRepository(blobs, 16, zap.NewNop().Sugar(), nil)
	require.NoError(e.t, err)

	s, err := Open(context.Background(), Options{
		Trips:   gormdb.NewTripRepository(db),
		Media:   mr,
		Session: fsrepo.NewSessionFSStore(filepath.Join(e.dir, "active_trip")),
		Logger:  zap.NewNop().Sugar(),
	})
	require.NoError(e.t, err)
	return s
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return newTestEnv(t).open()
}

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func at(d, h int) time.Time {
	return time.Date(2024, time.June, d, h, 0, 0, 0, time.UTC)
}

// --- Мок репозитория таблиц ---
type mockTripRepo struct{ mock.Mock }

func (m *mockTripRepo) LoadAll(ctx context.Context) (repo.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(repo.Snapshot), args.Error(1)
}

func (m *mockTripRepo) Apply(ctx context.Context, cs repo.Changeset) error {
	return m.Called(ctx, cs).Error(0)
}

func (m *mockTripRepo) ReplaceAll(ctx context.Context, s repo.Snapshot) error {
	return m.Called(ctx, s).Error(0)
}

var _ repo.TripRepository = (*mockTripRepo)(nil)
