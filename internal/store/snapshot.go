package store

import (
	"sort"
	"time"

	"TripKeeper/internal/model"
)

// Snapshot is a committed, immutable view of the store. Callers must not
// modify it or the slices it holds.
type Snapshot struct {
	Version      uint64
	Trips        []model.Trip        // insertion order, Reservations filled
	Cards        []model.Card        // insertion order
	Reservations []model.Reservation // insertion order
	ActiveTripID string
}

// Trip looks up a trip by id.
func (s *Snapshot) Trip(id string) (model.Trip, bool) {
	for _, t := range s.Trips {
		if t.ID == id {
			return t, true
		}
	}
	return model.Trip{}, false
}

// CardsForTrip returns the trip's cards ordered by TakenAt, ties in insertion order.
// An unknown trip yields an empty slice.
func (s *Snapshot) CardsForTrip(tripID string) []model.Card {
	out := make([]model.Card, 0)
	for _, c := range s.Cards {
		if c.TripID == tripID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TakenAt.Before(out[j].TakenAt) })
	return out
}

// ReservationsForTrip returns the trip's reservations ordered by date, undated last.
func (s *Snapshot) ReservationsForTrip(tripID string) []model.Reservation {
	return reservationsOf(s.Reservations, tripID)
}

func reservationsOf(all []model.Reservation, tripID string) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, r := range all {
		if r.TripID == tripID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out
}

// state is the mutable content guarded by the store's write lock.
type state struct {
	trips        table[model.Trip]
	cards        table[model.Card]
	reservations table[model.Reservation]
	activeTripID string
}

func newState() state {
	return state{
		trips:        newTable[model.Trip](),
		cards:        newTable[model.Card](),
		reservations: newTable[model.Reservation](),
	}
}

func (s state) clone() state {
	return state{
		trips:        s.trips.clone(),
		cards:        s.cards.clone(),
		reservations: s.reservations.clone(),
		activeTripID: s.activeTripID,
	}
}

func (s state) snapshot(version uint64) *Snapshot {
	snap := &Snapshot{Version: version, ActiveTripID: s.activeTripID}

	resRows := s.reservations.ordered()
	snap.Reservations = make([]model.Reservation, 0, len(resRows))
	for _, r := range resRows {
		snap.Reservations = append(snap.Reservations, cloneReservation(r.Value))
	}

	cardRows := s.cards.ordered()
	snap.Cards = make([]model.Card, 0, len(cardRows))
	for _, c := range cardRows {
		snap.Cards = append(snap.Cards, cloneCard(c.Value))
	}

	tripRows := s.trips.ordered()
	snap.Trips = make([]model.Trip, 0, len(tripRows))
	for _, t := range tripRows {
		trip := cloneTrip(t.Value)
		trip.Reservations = reservationsOf(snap.Reservations, trip.ID)
		for i := range trip.Reservations {
			trip.Reservations[i] = cloneReservation(trip.Reservations[i])
		}
		snap.Trips = append(snap.Trips, trip)
	}
	return snap
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneTrip(t model.Trip) model.Trip {
	t.EndDate = cloneTime(t.EndDate)
	return t
}

func cloneReservation(r model.Reservation) model.Reservation {
	r.Date = cloneTime(r.Date)
	return r
}

func cloneCard(c model.Card) model.Card {
	if c.Tags != nil {
		c.Tags = append([]string(nil), c.Tags...)
	}
	return c
}
