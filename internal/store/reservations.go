package store

import (
	"TripKeeper/internal/model"
)

func validateReservation(r model.Reservation) error {
	if err := model.Validate(r); err != nil {
		return &ValidationError{Entity: "reservation", Err: err}
	}
	return nil
}

// AddReservation attaches a reservation to an existing trip under a fresh id.
// An unknown trip fails with *ReferentialIntegrityError.
func (s *Store) AddReservation(tripID string, r model.Reservation) (model.Reservation, error) {
	r.ID = s.newID()
	r.TripID = tripID
	r.Date = normalizeDate(r.Date)
	err := s.commit("add_reservation", func(tx *txn) error {
		if !tx.state.trips.has(tripID) {
			return &ReferentialIntegrityError{Entity: "reservation", TripID: tripID}
		}
		if err := validateReservation(r); err != nil {
			return err
		}
		tx.insertReservation(r)
		return nil
	})
	if err != nil && !isPersistErr(err) {
		return model.Reservation{}, err
	}
	return cloneReservation(r), err
}

// ReservationsForTrip returns the trip's reservations ordered by date, undated last.
func (s *Store) ReservationsForTrip(tripID string) []model.Reservation {
	return s.Snapshot().ReservationsForTrip(tripID)
}

// UpdateReservation replaces a stored reservation keeping its owner. An unknown id is a no-op.
func (s *Store) UpdateReservation(r model.Reservation) error {
	return s.commit("update_reservation", func(tx *txn) error {
		stored, ok := tx.state.reservations.get(r.ID)
		if !ok {
			s.unknown("update_reservation", r.ID)
			return nil
		}
		r.TripID = stored.TripID
		r.Date = normalizeDate(r.Date)
		if err := validateReservation(r); err != nil {
			return err
		}
		tx.replaceReservation(r)
		return nil
	})
}

// DeleteReservation removes a reservation. An unknown id is a no-op.
func (s *Store) DeleteReservation(id string) error {
	return s.commit("delete_reservation", func(tx *txn) error {
		if !tx.removeReservation(id) {
			s.unknown("delete_reservation", id)
		}
		return nil
	})
}
