package handlers

import (
	"net/http"
	"time"

	"TripKeeper/internal/model"
	"TripKeeper/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TripHandler — CRUD поездок.
type TripHandler struct {
	Store  *store.Store
	Logger *zap.SugaredLogger
}

func NewTripHandler(s *store.Store, logger *zap.SugaredLogger) *TripHandler {
	return &TripHandler{Store: s, Logger: logger}
}

type createTripRequest struct {
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// updateTripRequest — частичное обновление: отсутствующие поля не меняются.
type updateTripRequest struct {
	Name         *string             `json:"name,omitempty"`
	StartDate    *time.Time          `json:"start_date,omitempty"`
	EndDate      *time.Time          `json:"end_date,omitempty"`
	ClearEndDate bool                `json:"clear_end_date,omitempty"`
	Settings     *model.TripSettings `json:"settings,omitempty"`
	CoverMediaID *string             `json:"cover_media_id,omitempty"`
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Trips())
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.Store.Trip(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("CreateTrip: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now().UTC()
	}
	trip, err := h.Store.CreateTrip(req.Name, req.StartDate, req.EndDate)
	if writeStoreErr(w, h.Logger, "CreateTrip", err) {
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.Store.Trip(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("UpdateTrip: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = req.EndDate
	}
	if req.ClearEndDate {
		trip.EndDate = nil
	}
	if req.Settings != nil {
		trip.Settings = *req.Settings
	}
	if req.CoverMediaID != nil {
		trip.CoverMediaID = *req.CoverMediaID
	}
	if writeStoreErr(w, h.Logger, "UpdateTrip", h.Store.UpdateTrip(trip)) {
		return
	}
	updated, ok := h.Store.Trip(trip.ID)
	if !ok {
		// удалена параллельно
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if writeStoreErr(w, h.Logger, "DeleteTrip", h.Store.DeleteTrip(chi.URLParam(r, "id"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
