package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"TripKeeper/internal/bootstrap"
	"TripKeeper/internal/config"
	"TripKeeper/internal/model"
	"TripKeeper/internal/store"

	"go.uber.org/zap"
)

// timeNow подменяется в тестах.
var timeNow = time.Now

// Log — логгер команд; по умолчанию молчит, cmd/client подменяет его.
var Log = zap.NewNop().Sugar()

const dateLayout = "2006-01-02"

var errNoActiveTrip = errors.New("нет активной поездки: выполните use <trip-id>")

// openStore открывает хранилище по конфигурации и возвращает (store, cleanup, error).
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, func() error, error) {
	return bootstrap.OpenStore(ctx, cfg, Log, nil)
}

// reportPersist печатает предупреждение, если изменение применено только в памяти.
// Остальные ошибки возвращаются как есть.
func reportPersist(err error) error {
	var pe *store.PersistError
	if errors.As(err, &pe) {
		fmt.Fprintf(Out, "! изменение не записано на диск: %v\n", pe.Err)
		return nil
	}
	return err
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("дата %q: ожидается формат YYYY-MM-DD", s)
	}
	return t, nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func activeTrip(s *store.Store) (model.Trip, error) {
	trip, ok := s.ActiveTrip()
	if !ok {
		return model.Trip{}, errNoActiveTrip
	}
	return trip, nil
}

func formatDates(t model.Trip) string {
	if t.EndDate == nil {
		return t.StartDate.Format(dateLayout) + " → …"
	}
	return t.StartDate.Format(dateLayout) + " → " + t.EndDate.Format(dateLayout)
}
