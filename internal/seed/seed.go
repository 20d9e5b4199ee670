// Package seed fills an empty store with a demo trip on first launch.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"time"

	"TripKeeper/internal/model"
	"TripKeeper/internal/store"

	"go.uber.org/zap"
)

// TripStore — операции хранилища, которыми пользуется сидер.
type TripStore interface {
	Trips() []model.Trip
	CreateTrip(name string, startDate time.Time, endDate *time.Time) (model.Trip, error)
	SetTripCover(tripID, mediaID string) error
	CreateCard(tripID string, kind model.CardKind, takenAt time.Time, tags []string, text, mediaID string) (model.Card, error)
	AddReservation(tripID string, r model.Reservation) (model.Reservation, error)
	StoreMedia(payload []byte) (model.Media, error)
}

var _ TripStore = (*store.Store)(nil)

// Seeder creates sample data through the regular store operations.
type Seeder struct {
	store TripStore
	log   *zap.SugaredLogger
	now   func() time.Time

	mu sync.Mutex
}

func NewSeeder(s TripStore, log *zap.SugaredLogger) *Seeder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Seeder{store: s, log: log, now: time.Now}
}

// SeedIfNeeded creates the sample trip when the store holds no trips.
// It reports whether the sample was created. Calls are serialized, so two
// concurrent calls seed at most once.
func (sd *Seeder) SeedIfNeeded() (bool, error) {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	if len(sd.store.Trips()) > 0 {
		return false, nil
	}
	if err := sd.seed(); err != nil {
		return false, fmt.Errorf("seed sample trip: %w", err)
	}
	return true, nil
}

func (sd *Seeder) seed() error {
	start := sd.now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -3)
	end := start.AddDate(0, 0, 6)

	trip, err := sd.store.CreateTrip("Weekend in Lisbon", start, &end)
	if err != nil && !tolerable(err) {
		return err
	}

	cover, err := coverPNG(320, 180)
	if err != nil {
		return err
	}
	media, err := sd.store.StoreMedia(cover)
	if err != nil {
		// без обложки поездка всё равно полезна
		sd.log.Warnw("sample cover not stored", "error", err)
	} else if err := sd.store.SetTripCover(trip.ID, media.ID); err != nil && !tolerable(err) {
		return err
	}

	cards := []struct {
		kind    model.CardKind
		offset  time.Duration
		tags    []string
		text    string
		mediaID string
	}{
		{model.CardPhoto, 10 * time.Hour, []string{"tram", "alfama"}, "Tram 28 up the hill", media.ID},
		{model.CardNote, 13 * time.Hour, []string{"food"}, "Pastéis de nata at Manteigaria, go early.", ""},
		{model.CardAudio, 30 * time.Hour, []string{"music"}, "Fado in a tiny bar", ""},
	}
	for _, c := range cards {
		if _, err := sd.store.CreateCard(trip.ID, c.kind, start.Add(c.offset), c.tags, c.text, c.mediaID); err != nil && !tolerable(err) {
			return err
		}
	}

	flight := start.Add(7 * time.Hour)
	checkIn := start.Add(15 * time.Hour)
	reservations := []model.Reservation{
		{Type: model.ReservationFlight, ConfirmationNumber: "TP1351", Provider: "TAP Air Portugal", Date: &flight},
		{Type: model.ReservationHotel, ConfirmationNumber: "LX-88213", Provider: "Casa do Rio", Date: &checkIn, Notes: "Late check-in requested"},
	}
	for _, r := range reservations {
		if _, err := sd.store.AddReservation(trip.ID, r); err != nil && !tolerable(err) {
			return err
		}
	}

	sd.log.Infow("sample trip seeded", "trip_id", trip.ID, "cards", len(cards), "reservations", len(reservations))
	return nil
}

// tolerable reports errors after which the change is still live in memory.
func tolerable(err error) bool {
	var pe *store.PersistError
	return errors.As(err, &pe)
}

// coverPNG renders a simple sunset gradient.
func coverPNG(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		k := uint8(y * 255 / h)
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255 - k/3, G: 120 + k/3, B: 80 + k/2, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
