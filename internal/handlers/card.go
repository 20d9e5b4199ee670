package handlers

import (
	"net/http"
	"time"

	"TripKeeper/internal/model"
	"TripKeeper/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CardHandler — карточки поездки.
type CardHandler struct {
	Store  *store.Store
	Logger *zap.SugaredLogger
}

func NewCardHandler(s *store.Store, logger *zap.SugaredLogger) *CardHandler {
	return &CardHandler{Store: s, Logger: logger}
}

type cardRequest struct {
	Kind    model.CardKind `json:"kind"`
	TakenAt time.Time      `json:"taken_at"`
	Tags    []string       `json:"tags,omitempty"`
	Text    string         `json:"text,omitempty"`
	MediaID string         `json:"media_id,omitempty"`
}

// updateCardRequest — частичное обновление карточки: отсутствующие поля не меняются.
type updateCardRequest struct {
	Kind    *model.CardKind `json:"kind,omitempty"`
	TakenAt *time.Time      `json:"taken_at,omitempty"`
	Tags    *[]string       `json:"tags,omitempty"`
	Text    *string         `json:"text,omitempty"`
	MediaID *string         `json:"media_id,omitempty"`
}

// ListForTrip отдаёт карточки поездки; ?tag= фильтрует по тегу.
func (h *CardHandler) ListForTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "id")
	if _, ok := h.Store.Trip(tripID); !ok {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	cards := h.Store.CardsForTrip(tripID)
	if tag := r.URL.Query().Get("tag"); tag != "" {
		filtered := make([]model.Card, 0, len(cards))
		for _, c := range cards {
			if c.HasTag(tag) {
				filtered = append(filtered, c)
			}
		}
		cards = filtered
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("CreateCard: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.TakenAt.IsZero() {
		req.TakenAt = time.Now().UTC()
	}
	card, err := h.Store.CreateCard(chi.URLParam(r, "id"), req.Kind, req.TakenAt, req.Tags, req.Text, req.MediaID)
	if writeStoreErr(w, h.Logger, "CreateCard", err) {
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stored, ok := findCard(h.Store.Cards(), id)
	if !ok {
		http.Error(w, "card not found", http.StatusNotFound)
		return
	}
	var req updateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("UpdateCard: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Kind != nil {
		stored.Kind = *req.Kind
	}
	if req.TakenAt != nil {
		stored.TakenAt = *req.TakenAt
	}
	if req.Tags != nil {
		stored.Tags = *req.Tags
	}
	if req.Text != nil {
		stored.Text = *req.Text
	}
	if req.MediaID != nil {
		stored.MediaID = *req.MediaID
	}
	if writeStoreErr(w, h.Logger, "UpdateCard", h.Store.UpdateCard(stored)) {
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if writeStoreErr(w, h.Logger, "DeleteCard", h.Store.DeleteCard(chi.URLParam(r, "id"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func findCard(cards []model.Card, id string) (model.Card, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return model.Card{}, false
}
