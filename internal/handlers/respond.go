package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"TripKeeper/internal/store"

	"go.uber.org/zap"
)

// persistHeader помечает ответ, изменение которого применено, но ещё не записано на диск.
const persistHeader = "X-Persist-Status"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeStoreErr маппит ошибку хранилища в HTTP-ответ. Возвращает true, если
// запрос завершён ошибкой; PersistError не прерывает успешный ответ.
func writeStoreErr(w http.ResponseWriter, log *zap.SugaredLogger, op string, err error) bool {
	if err == nil {
		return false
	}
	var (
		pe  *store.PersistError
		ve  *store.ValidationError
		rie *store.ReferentialIntegrityError
	)
	switch {
	case errors.As(err, &pe):
		log.Warnw(op+": change not persisted", "error", err)
		w.Header().Set(persistHeader, "degraded")
		return false
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusBadRequest)
	case errors.As(err, &rie):
		http.Error(w, rie.Error(), http.StatusNotFound)
	default:
		log.Errorw(op+": store error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return true
}
