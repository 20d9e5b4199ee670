package repo

import (
	"context"
	"errors"
)

// ErrBlobNotFound возвращается, если блоба с указанным id нет.
var ErrBlobNotFound = errors.New("blob not found")

// Blob — бинарное содержимое медиа вместе с метаданными.
type Blob struct {
	ID          string
	Data        []byte
	ContentType string
	Digest      string
	Location    string
}

// BlobRepository минимальный контракт хранения медиа-блобов.
type BlobRepository interface {
	// CreateIfAbsent пытается создать запись. Если существует — ничего не делает.
	// Возвращает created=true если запись была создана в этой операции и location содержимого.
	CreateIfAbsent(ctx context.Context, b Blob) (created bool, location string, err error)

	// Get читает блоб по id; ErrBlobNotFound, если его нет.
	Get(ctx context.Context, id string) (*Blob, error)
}
