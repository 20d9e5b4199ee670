package handlers

import (
	"net/http"

	"TripKeeper/internal/model"
	"TripKeeper/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReservationHandler — бронирования поездки.
type ReservationHandler struct {
	Store  *store.Store
	Logger *zap.SugaredLogger
}

func NewReservationHandler(s *store.Store, logger *zap.SugaredLogger) *ReservationHandler {
	return &ReservationHandler{Store: s, Logger: logger}
}

func (h *ReservationHandler) ListForTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "id")
	if _, ok := h.Store.Trip(tripID); !ok {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.Store.ReservationsForTrip(tripID))
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Reservation
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("AddReservation: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	resv, err := h.Store.AddReservation(chi.URLParam(r, "id"), req)
	if writeStoreErr(w, h.Logger, "AddReservation", err) {
		return
	}
	writeJSON(w, http.StatusCreated, resv)
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var stored model.Reservation
	found := false
	for _, resv := range h.Store.Snapshot().Reservations {
		if resv.ID == id {
			stored, found = resv, true
			break
		}
	}
	if !found {
		http.Error(w, "reservation not found", http.StatusNotFound)
		return
	}
	var req model.Reservation
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("UpdateReservation: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.ID = stored.ID
	req.TripID = stored.TripID
	if writeStoreErr(w, h.Logger, "UpdateReservation", h.Store.UpdateReservation(req)) {
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if writeStoreErr(w, h.Logger, "DeleteReservation", h.Store.DeleteReservation(chi.URLParam(r, "id"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
