package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"TripKeeper/internal/repo"
)

// BlobStore хранит медиа-блобы файлами в каталоге root.
// Рядом с каждым файлом лежит sidecar <id>.meta с типом содержимого и дайджестом.
type BlobStore struct {
	root string
}

var _ repo.BlobRepository = (*BlobStore)(nil)

const (
	metaSuffix = ".meta"
	tmpPrefix  = ".tmp-"
)

type blobMeta struct {
	ContentType string `json:"content_type,omitempty"`
	Digest      string `json:"digest"`
}

// NewBlobStore создаёт каталог root при необходимости.
func NewBlobStore(root string) (*BlobStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("empty media dir")
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, err
	}
	return &BlobStore{root: root}, nil
}

// Root возвращает каталог хранилища.
func (s *BlobStore) Root() string { return s.root }

func (s *BlobStore) pathFor(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", errors.New("empty blob id")
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid blob id %q", id)
	}
	// имена sidecar и временных файлов не являются id блобов
	if strings.HasSuffix(id, metaSuffix) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: reserved name %q", repo.ErrBlobNotFound, id)
	}
	return filepath.Join(s.root, id), nil
}

// CreateIfAbsent записывает блоб через временный файл и rename. Существующий файл не перезаписывается.
func (s *BlobStore) CreateIfAbsent(_ context.Context, b repo.Blob) (bool, string, error) {
	dataPath, err := s.pathFor(b.ID)
	if err != nil {
		return false, "", err
	}
	if _, err := os.Stat(dataPath); err == nil {
		return false, dataPath, nil
	}
	tmp, err := os.CreateTemp(s.root, tmpPrefix+"*")
	if err != nil {
		return false, "", err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b.Data); err != nil {
		_ = tmp.Close()
		return false, "", err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return false, "", err
	}
	if err := tmp.Close(); err != nil {
		return false, "", err
	}
	// Link, а не Rename: Link не заменяет существующий файл
	if err := os.Link(tmp.Name(), dataPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, dataPath, nil
		}
		return false, "", err
	}
	meta, err := json.Marshal(blobMeta{ContentType: b.ContentType, Digest: b.Digest})
	if err != nil {
		return true, dataPath, err
	}
	if err := os.WriteFile(dataPath+metaSuffix, meta, 0o600); err != nil {
		return true, dataPath, err
	}
	return true, dataPath, nil
}

// Get читает блоб и его sidecar.
func (s *BlobStore) Get(_ context.Context, id string) (*repo.Blob, error) {
	dataPath, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(dataPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repo.ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	var meta blobMeta
	raw, err := os.ReadFile(dataPath + metaSuffix)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("decode meta %s: %w", id, err)
		}
	}
	return &repo.Blob{
		ID:          id,
		Data:        data,
		ContentType: meta.ContentType,
		Digest:      meta.Digest,
		Location:    dataPath,
	}, nil
}
