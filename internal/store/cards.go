package store

import (
	"time"

	"TripKeeper/internal/model"
)

func validateCard(c model.Card) error {
	if err := model.Validate(c); err != nil {
		return &ValidationError{Entity: "card", Err: err}
	}
	return nil
}

func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return append([]string(nil), tags...)
}

// CreateCard adds a card to an existing trip. An unknown trip fails with
// *ReferentialIntegrityError and leaves the store untouched.
func (s *Store) CreateCard(tripID string, kind model.CardKind, takenAt time.Time, tags []string, text, mediaID string) (model.Card, error) {
	card := model.Card{
		ID:      s.newID(),
		TripID:  tripID,
		Kind:    kind,
		TakenAt: takenAt.Round(0),
		Tags:    copyTags(tags),
		Text:    text,
		MediaID: mediaID,
	}
	err := s.commit("create_card", func(tx *txn) error {
		if !tx.state.trips.has(tripID) {
			return &ReferentialIntegrityError{Entity: "card", TripID: tripID}
		}
		if err := validateCard(card); err != nil {
			return err
		}
		tx.insertCard(card)
		return nil
	})
	if err != nil && !isPersistErr(err) {
		return model.Card{}, err
	}
	return cloneCard(card), err
}

// CardsForTrip returns a snapshot of the trip's cards ordered by TakenAt.
// An unknown trip yields an empty slice.
func (s *Store) CardsForTrip(tripID string) []model.Card {
	return s.Snapshot().CardsForTrip(tripID)
}

// UpdateCard replaces kind, time, tags, text and media of a stored card.
// The owning trip never changes. An unknown id is a no-op.
func (s *Store) UpdateCard(card model.Card) error {
	return s.commit("update_card", func(tx *txn) error {
		stored, ok := tx.state.cards.get(card.ID)
		if !ok {
			s.unknown("update_card", card.ID)
			return nil
		}
		if card.TripID != "" && card.TripID != stored.TripID {
			s.log.Warnw("card re-parenting ignored", "card_id", card.ID, "trip_id", stored.TripID, "requested", card.TripID)
		}
		card.TripID = stored.TripID
		card.TakenAt = card.TakenAt.Round(0)
		card.Tags = copyTags(card.Tags)
		if err := validateCard(card); err != nil {
			return err
		}
		tx.replaceCard(card)
		return nil
	})
}

// DeleteCard removes a card. An unknown id is a no-op.
func (s *Store) DeleteCard(id string) error {
	return s.commit("delete_card", func(tx *txn) error {
		if !tx.removeCard(id) {
			s.unknown("delete_card", id)
		}
		return nil
	})
}
