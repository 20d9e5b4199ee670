package gormdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// InitDB открывает БД по DSN и выполняет миграции.
// DSN вида postgres://... или postgresql://... открывается драйвером Postgres,
// всё остальное трактуется как путь к файлу SQLite (modernc.org/sqlite).
func InitDB(dsn string, log *zap.SugaredLogger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty database dsn")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	if isPostgresDSN(dsn) {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
		db, err = gorm.Open(dial, cfg)
		if err == nil {
			// SQLite: один писатель, запись и так сериализована хранилищем
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Debugw("database ready", "postgres", isPostgresDSN(dsn))
	return db, nil
}

// Migrate создаёт/обновляет таблицы хранилища.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&tripRow{}, &cardRow{}, &reservationRow{}, &blobRow{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Close закрывает соединение с БД.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
