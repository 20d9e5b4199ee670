package bootstrap

import (
	"context"
	"fmt"

	"TripKeeper/internal/config"
	"TripKeeper/internal/media"
	"TripKeeper/internal/metrics"
	"TripKeeper/internal/repo"
	fsrepo "TripKeeper/internal/repo/fs"
	"TripKeeper/internal/repo/gormdb"
	"TripKeeper/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// OpenStore собирает хранилище поездок по конфигурации: БД, медиа, файл сессии
// и метрики. Возвращает (store, cleanup, error); cleanup закрывает соединение с БД.
// reg может быть nil — тогда метрики не регистрируются.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger, reg prometheus.Registerer) (*store.Store, func() error, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	db, err := gormdb.InitDB(cfg.DatabaseDSN, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open trip db: %w", err)
	}
	cleanup := func() error { return gormdb.Close(db) }

	var blobs repo.BlobRepository
	switch cfg.MediaBackend {
	case config.MediaBackendDB:
		blobs = gormdb.NewBlobRepository(db)
	default:
		fsBlobs, err := fsrepo.NewBlobStore(cfg.MediaDir)
		if err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("open media dir: %w", err)
		}
		blobs = fsBlobs
	}

	var m *metrics.Metrics
	if reg != nil {
		m = metrics.New(reg)
	}

	mediaRepo, err := media.NewRepository(blobs, cfg.MediaCacheSize, log, m)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	s, err := store.Open(ctx, store.Options{
		Trips:   gormdb.NewTripRepository(db),
		Media:   mediaRepo,
		Session: fsrepo.NewSessionFSStore(cfg.SessionFile),
		Logger:  log,
		Metrics: m,
		Debug:   cfg.Debug,
	})
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("load trip store: %w", err)
	}
	return s, cleanup, nil
}

// NewLogger создаёт zap-логгер: development в режиме отладки, иначе production.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
