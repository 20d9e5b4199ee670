package gormdb

import (
	"context"
	"errors"

	"TripKeeper/internal/repo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blobRepo struct {
	db *gorm.DB
}

var _ repo.BlobRepository = (*blobRepo)(nil)

// NewBlobRepository создаёт реализацию хранилища медиа-блобов в таблице media_blobs.
func NewBlobRepository(db *gorm.DB) repo.BlobRepository {
	return &blobRepo{db: db}
}

// CreateIfAbsent создает блоб в БД, если его ещё нет.
func (r *blobRepo) CreateIfAbsent(ctx context.Context, b repo.Blob) (bool, string, error) {
	row := &blobRow{ID: b.ID, Data: b.Data, ContentType: b.ContentType, Digest: b.Digest}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(row)
	if tx.Error != nil {
		return false, "", tx.Error
	}
	return tx.RowsAffected > 0, location(b.ID), nil
}

// Get читает блоб по id.
func (r *blobRepo) Get(ctx context.Context, id string) (*repo.Blob, error) {
	var row blobRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &repo.Blob{
		ID:          row.ID,
		Data:        row.Data,
		ContentType: row.ContentType,
		Digest:      row.Digest,
		Location:    location(row.ID),
	}, nil
}

func location(id string) string { return "db:" + id }
