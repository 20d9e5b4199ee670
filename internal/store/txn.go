package store

import (
	"TripKeeper/internal/model"
	"TripKeeper/internal/repo"
)

type idSet map[string]struct{}

// txn is one unit of work over a private copy of the state. It records
// touched ids so the durable changeset can be derived at commit.
type txn struct {
	state state

	dirtyTrips        idSet
	dirtyCards        idSet
	dirtyReservations idSet
	sessionChanged    bool
}

func newTxn(st state) *txn {
	return &txn{
		state:             st,
		dirtyTrips:        idSet{},
		dirtyCards:        idSet{},
		dirtyReservations: idSet{},
	}
}

func (tx *txn) changed() bool {
	return len(tx.dirtyTrips) > 0 || len(tx.dirtyCards) > 0 || len(tx.dirtyReservations) > 0 || tx.sessionChanged
}

func (tx *txn) insertTrip(t model.Trip) {
	tx.state.trips.insert(t.ID, t)
	tx.dirtyTrips[t.ID] = struct{}{}
}

func (tx *txn) replaceTrip(t model.Trip) bool {
	if !tx.state.trips.replace(t.ID, t) {
		return false
	}
	tx.dirtyTrips[t.ID] = struct{}{}
	return true
}

func (tx *txn) insertCard(c model.Card) {
	tx.state.cards.insert(c.ID, c)
	tx.dirtyCards[c.ID] = struct{}{}
}

func (tx *txn) replaceCard(c model.Card) bool {
	if !tx.state.cards.replace(c.ID, c) {
		return false
	}
	tx.dirtyCards[c.ID] = struct{}{}
	return true
}

func (tx *txn) removeCard(id string) bool {
	if !tx.state.cards.remove(id) {
		return false
	}
	tx.dirtyCards[id] = struct{}{}
	return true
}

func (tx *txn) insertReservation(r model.Reservation) {
	tx.state.reservations.insert(r.ID, r)
	tx.dirtyReservations[r.ID] = struct{}{}
}

func (tx *txn) replaceReservation(r model.Reservation) bool {
	if !tx.state.reservations.replace(r.ID, r) {
		return false
	}
	tx.dirtyReservations[r.ID] = struct{}{}
	return true
}

func (tx *txn) removeReservation(id string) bool {
	if !tx.state.reservations.remove(id) {
		return false
	}
	tx.dirtyReservations[id] = struct{}{}
	return true
}

func (tx *txn) setActiveTrip(id string) {
	if tx.state.activeTripID == id {
		return
	}
	tx.state.activeTripID = id
	tx.sessionChanged = true
}

// removeTrip deletes a trip together with everything it owns and clears the
// active session when it pointed at the trip. It reports whether the trip existed.
func (tx *txn) removeTrip(id string) (cards, reservations int, ok bool) {
	if !tx.state.trips.has(id) {
		return 0, 0, false
	}
	for _, cid := range tx.state.cards.ids(func(c model.Card) bool { return c.TripID == id }) {
		tx.removeCard(cid)
		cards++
	}
	for _, rid := range tx.state.reservations.ids(func(r model.Reservation) bool { return r.TripID == id }) {
		tx.removeReservation(rid)
		reservations++
	}
	tx.state.trips.remove(id)
	tx.dirtyTrips[id] = struct{}{}
	if tx.state.activeTripID == id {
		tx.setActiveTrip("")
	}
	return cards, reservations, true
}

// changeset turns the touched ids into upserts for rows that still exist and
// deletes for rows that are gone.
func (tx *txn) changeset() repo.Changeset {
	var cs repo.Changeset
	for id := range tx.dirtyTrips {
		if r, ok := tx.state.trips.row(id); ok {
			cs.PutTrips = append(cs.PutTrips, r)
		} else {
			cs.DeleteTrips = append(cs.DeleteTrips, id)
		}
	}
	for id := range tx.dirtyCards {
		if r, ok := tx.state.cards.row(id); ok {
			cs.PutCards = append(cs.PutCards, r)
		} else {
			cs.DeleteCards = append(cs.DeleteCards, id)
		}
	}
	for id := range tx.dirtyReservations {
		if r, ok := tx.state.reservations.row(id); ok {
			cs.PutReservations = append(cs.PutReservations, r)
		} else {
			cs.DeleteReservations = append(cs.DeleteReservations, id)
		}
	}
	return cs
}
