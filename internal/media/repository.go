// Package media stores binary image assets by opaque identifier and serves
// decoded images from an in-memory cache.
package media

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"TripKeeper/internal/metrics"
	"TripKeeper/internal/model"
	"TripKeeper/internal/repo"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is used when a non-positive cache size is configured.
const DefaultCacheSize = 256

var (
	// ErrEmptyPayload is returned by Store for zero-length content.
	ErrEmptyPayload = errors.New("empty media payload")

	errAbsent = errors.New("media absent")
)

// Repository stores media payloads in a blob substrate and caches decoded images.
type Repository struct {
	blobs   repo.BlobRepository
	cache   *lru.Cache[string, image.Image]
	loads   singleflight.Group
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

// NewRepository wraps blobs with a decoded-image cache of cacheSize entries.
func NewRepository(blobs repo.BlobRepository, cacheSize int, log *zap.SugaredLogger, m *metrics.Metrics) (*Repository, error) {
	if blobs == nil {
		return nil, errors.New("nil blob repository")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("media cache: %w", err)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Repository{blobs: blobs, cache: cache, log: log, metrics: m}, nil
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Store persists payload under a fresh identifier. Existing content is never overwritten.
func (r *Repository) Store(ctx context.Context, payload []byte) (model.Media, error) {
	if len(payload) == 0 {
		return model.Media{}, ErrEmptyPayload
	}
	b := repo.Blob{
		ID:          uuid.NewString(),
		Data:        payload,
		ContentType: mimetype.Detect(payload).String(),
		Digest:      Digest(payload),
	}
	created, location, err := r.blobs.CreateIfAbsent(ctx, b)
	if err != nil {
		return model.Media{}, fmt.Errorf("store media: %w", err)
	}
	if !created {
		return model.Media{}, fmt.Errorf("store media: id %s already taken", b.ID)
	}
	r.log.Debugw("media stored", "id", b.ID, "size", len(payload), "content_type", b.ContentType)
	return model.Media{
		ID:          b.ID,
		Location:    location,
		ContentType: b.ContentType,
		Size:        int64(len(payload)),
		Digest:      b.Digest,
	}, nil
}

// Load returns the raw content of id. Missing, unreadable or corrupted content is absent.
func (r *Repository) Load(ctx context.Context, id string) ([]byte, bool) {
	if id == "" {
		return nil, false
	}
	b, err := r.blobs.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrBlobNotFound) {
			r.log.Warnw("media read failed", "id", id, "error", err)
		}
		return nil, false
	}
	if b.Digest != "" && Digest(b.Data) != b.Digest {
		r.log.Warnw("media digest mismatch", "id", id, "location", b.Location)
		return nil, false
	}
	return b.Data, true
}

// LoadImage returns the decoded image for id, from cache when possible.
// Concurrent loads of one id share a single read and decode.
func (r *Repository) LoadImage(ctx context.Context, id string) (image.Image, bool) {
	if id == "" {
		return nil, false
	}
	if img, ok := r.cache.Get(id); ok {
		r.metrics.MediaLoad("hit")
		return img, true
	}
	v, err, _ := r.loads.Do(id, func() (any, error) {
		if img, ok := r.cache.Get(id); ok {
			return img, nil
		}
		data, ok := r.Load(ctx, id)
		if !ok {
			return nil, errAbsent
		}
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			r.log.Warnw("media decode failed", "id", id, "error", err)
			return nil, errAbsent
		}
		r.cache.Add(id, img)
		r.log.Debugw("media decoded", "id", id, "format", format)
		return img, nil
	})
	if err != nil {
		r.metrics.MediaLoad("absent")
		return nil, false
	}
	r.metrics.MediaLoad("miss")
	return v.(image.Image), true
}

// Cached reports whether a decoded image for id is in the cache.
func (r *Repository) Cached(id string) bool {
	return r.cache.Contains(id)
}
