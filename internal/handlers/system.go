package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"TripKeeper/internal/seed"
	"TripKeeper/internal/store"

	"go.uber.org/zap"
)

// SystemHandler — состояние хранилища, демо-данные и поток изменений.
type SystemHandler struct {
	Store  *store.Store
	Seeder *seed.Seeder
	Logger *zap.SugaredLogger
}

func NewSystemHandler(s *store.Store, seeder *seed.Seeder, logger *zap.SugaredLogger) *SystemHandler {
	return &SystemHandler{Store: s, Seeder: seeder, Logger: logger}
}

type healthResponse struct {
	PersistenceHealthy bool   `json:"persistence_healthy"`
	LastPersistError   string `json:"last_persist_error,omitempty"`
	Version            uint64 `json:"version"`
	Trips              int    `json:"trips"`
	Cards              int    `json:"cards"`
	Reservations       int    `json:"reservations"`
}

// snapshotEvent — краткая сводка снимка для подписчиков SSE.
type snapshotEvent struct {
	Version      uint64 `json:"version"`
	Trips        int    `json:"trips"`
	Cards        int    `json:"cards"`
	Reservations int    `json:"reservations"`
	ActiveTripID string `json:"active_trip_id,omitempty"`
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	resp := healthResponse{
		PersistenceHealthy: h.Store.PersistenceHealthy(),
		Version:            snap.Version,
		Trips:              len(snap.Trips),
		Cards:              len(snap.Cards),
		Reservations:       len(snap.Reservations),
	}
	if err := h.Store.LastPersistError(); err != nil {
		resp.LastPersistError = err.Error()
	}
	status := http.StatusOK
	if !resp.PersistenceHealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *SystemHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if h.Seeder == nil {
		http.Error(w, "seeding disabled", http.StatusNotImplemented)
		return
	}
	seeded, err := h.Seeder.SeedIfNeeded()
	if err != nil {
		h.Logger.Errorw("Seed: failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"seeded": seeded})
}

// Events публикует каждый зафиксированный снимок как событие SSE до отключения клиента.
func (h *SystemHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	sub := h.Store.Subscribe()
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-sub.C:
			if !ok {
				return
			}
			payload, err := json.Marshal(snapshotEvent{
				Version:      snap.Version,
				Trips:        len(snap.Trips),
				Cards:        len(snap.Cards),
				Reservations: len(snap.Reservations),
				ActiveTripID: snap.ActiveTripID,
			})
			if err != nil {
				h.Logger.Errorw("Events: marshal failed", "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", snap.Version, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
