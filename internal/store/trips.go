package store

import (
	"errors"
	"strings"
	"time"

	"TripKeeper/internal/model"
)

var errEndBeforeStart = errors.New("end date is before start date")

func validateTrip(t model.Trip) error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Entity: "trip", Err: ErrEmptyName}
	}
	if t.EndDate != nil && !t.StartDate.IsZero() && t.EndDate.Before(t.StartDate) {
		return &ValidationError{Entity: "trip", Err: errEndBeforeStart}
	}
	if err := model.Validate(t); err != nil {
		return &ValidationError{Entity: "trip", Err: err}
	}
	return nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Round(0)
	return &v
}

// CreateTrip adds a trip with default settings and returns it.
func (s *Store) CreateTrip(name string, startDate time.Time, endDate *time.Time) (model.Trip, error) {
	trip := model.Trip{
		ID:        s.newID(),
		Name:      strings.TrimSpace(name),
		StartDate: startDate.Round(0),
		EndDate:   normalizeDate(endDate),
		Settings:  model.DefaultTripSettings(),
		CreatedAt: s.now().UTC().Round(0),
	}
	if err := validateTrip(trip); err != nil {
		return model.Trip{}, err
	}
	err := s.commit("create_trip", func(tx *txn) error {
		tx.insertTrip(trip)
		return nil
	})
	trip.Reservations = []model.Reservation{}
	return cloneTrip(trip), err
}

// Trip looks up a committed trip by id.
func (s *Store) Trip(id string) (model.Trip, bool) {
	return s.Snapshot().Trip(id)
}

// UpdateTrip replaces the stored trip's own fields (name, dates, settings,
// cover) with those of trip. The id and creation time never change and the
// owned reservations are left alone. An unknown id is a no-op.
func (s *Store) UpdateTrip(trip model.Trip) error {
	trip.Name = strings.TrimSpace(trip.Name)
	if trip.Settings.DistanceUnit == "" {
		trip.Settings.DistanceUnit = model.DistanceKilometers
	}
	return s.commit("update_trip", func(tx *txn) error {
		stored, ok := tx.state.trips.get(trip.ID)
		if !ok {
			s.unknown("update_trip", trip.ID)
			return nil
		}
		if err := validateTrip(trip); err != nil {
			return err
		}
		stored.Name = trip.Name
		stored.StartDate = trip.StartDate.Round(0)
		stored.EndDate = normalizeDate(trip.EndDate)
		stored.Settings = trip.Settings
		stored.CoverMediaID = trip.CoverMediaID
		tx.replaceTrip(stored)
		return nil
	})
}

// SetTripCover points the trip's cover at mediaID; an empty id removes the cover.
func (s *Store) SetTripCover(tripID, mediaID string) error {
	return s.commit("set_trip_cover", func(tx *txn) error {
		stored, ok := tx.state.trips.get(tripID)
		if !ok {
			s.unknown("set_trip_cover", tripID)
			return nil
		}
		if stored.CoverMediaID == mediaID {
			return nil
		}
		stored.CoverMediaID = mediaID
		tx.replaceTrip(stored)
		return nil
	})
}

// DeleteTrip removes the trip, its cards and reservations, and clears the
// active session if it pointed at the trip, publishing once.
func (s *Store) DeleteTrip(id string) error {
	return s.commit("delete_trip", func(tx *txn) error {
		cards, resvs, ok := tx.removeTrip(id)
		if !ok {
			s.unknown("delete_trip", id)
			return nil
		}
		s.log.Infow("trip deleted", "trip_id", id, "cards", cards, "reservations", resvs)
		return nil
	})
}
