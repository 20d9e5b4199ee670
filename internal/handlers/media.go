package handlers

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"net/http"

	"TripKeeper/internal/config"
	"TripKeeper/internal/media"
	"TripKeeper/internal/store"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MediaHandler загружает и отдаёт медиафайлы.
type MediaHandler struct {
	Store  *store.Store
	Logger *zap.SugaredLogger
	Config *config.Config
}

func NewMediaHandler(s *store.Store, logger *zap.SugaredLogger, cfg *config.Config) *MediaHandler {
	return &MediaHandler{Store: s, Logger: logger, Config: cfg}
}

// Upload принимает сырое тело запроса как содержимое медиафайла.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.Config.MediaMaxSizeMB) * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			http.Error(w, "media too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.Logger.Warnw("UploadMedia: failed to read body", "error", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	m, err := h.Store.StoreMedia(data)
	if err != nil {
		if errors.Is(err, media.ErrEmptyPayload) {
			http.Error(w, "empty media", http.StatusBadRequest)
			return
		}
		h.Logger.Errorw("UploadMedia: store failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// Raw отдаёт исходные байты; отсутствующий или повреждённый файл — 404.
func (h *MediaHandler) Raw(w http.ResponseWriter, r *http.Request) {
	data, ok := h.Store.LoadMedia(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "media not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", mimetype.Detect(data).String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Image отдаёт декодированное изображение (через кэш) в PNG.
func (h *MediaHandler) Image(w http.ResponseWriter, r *http.Request) {
	img, ok := h.Store.LoadMediaImage(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		h.Logger.Errorw("MediaImage: encode failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
