package store

import (
	"errors"

	"TripKeeper/internal/model"
)

func isPersistErr(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}

// SetActiveTrip makes id the current trip of the session. An unknown id is a no-op.
func (s *Store) SetActiveTrip(id string) error {
	return s.commit("set_active_trip", func(tx *txn) error {
		if !tx.state.trips.has(id) {
			s.unknown("set_active_trip", id)
			return nil
		}
		tx.setActiveTrip(id)
		return nil
	})
}

// ClearActiveTrip unsets the session's current trip.
func (s *Store) ClearActiveTrip() error {
	return s.commit("clear_active_trip", func(tx *txn) error {
		tx.setActiveTrip("")
		return nil
	})
}

// ActiveTrip returns the session's current trip, if any.
func (s *Store) ActiveTrip() (model.Trip, bool) {
	snap := s.Snapshot()
	if snap.ActiveTripID == "" {
		return model.Trip{}, false
	}
	return snap.Trip(snap.ActiveTripID)
}
