package handlers

import (
	"net/http"

	"TripKeeper/internal/model"
	"TripKeeper/internal/store"

	"go.uber.org/zap"
)

// SessionHandler — активная поездка.
type SessionHandler struct {
	Store  *store.Store
	Logger *zap.SugaredLogger
}

func NewSessionHandler(s *store.Store, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{Store: s, Logger: logger}
}

type sessionResponse struct {
	ActiveTripID string      `json:"active_trip_id"`
	Trip         *model.Trip `json:"trip,omitempty"`
}

type setSessionRequest struct {
	TripID string `json:"trip_id"`
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{}
	if trip, ok := h.Store.ActiveTrip(); ok {
		resp.ActiveTripID = trip.ID
		resp.Trip = &trip
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("SetActiveTrip: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if _, ok := h.Store.Trip(req.TripID); !ok {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	if writeStoreErr(w, h.Logger, "SetActiveTrip", h.Store.SetActiveTrip(req.TripID)) {
		return
	}
	h.Get(w, r)
}

func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if writeStoreErr(w, h.Logger, "ClearActiveTrip", h.Store.ClearActiveTrip()) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
