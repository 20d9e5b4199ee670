package gormdb

import (
	"context"
	"fmt"

	"TripKeeper/internal/model"
	"TripKeeper/internal/repo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tripRepo struct {
	db *gorm.DB
}

var _ repo.TripRepository = (*tripRepo)(nil)

// NewTripRepository создаёт реализацию репозитория таблиц поездок поверх gorm.
func NewTripRepository(db *gorm.DB) repo.TripRepository {
	return &tripRepo{db: db}
}

// LoadAll читает все таблицы, упорядочивая строки по seq.
func (r *tripRepo) LoadAll(ctx context.Context) (repo.Snapshot, error) {
	var (
		trips []tripRow
		cards []cardRow
		resvs []reservationRow
		snap  repo.Snapshot
	)
	db := r.db.WithContext(ctx)
	if err := db.Order("seq ASC").Find(&trips).Error; err != nil {
		return snap, fmt.Errorf("load trips: %w", err)
	}
	if err := db.Order("seq ASC").Find(&cards).Error; err != nil {
		return snap, fmt.Errorf("load cards: %w", err)
	}
	if err := db.Order("seq ASC").Find(&resvs).Error; err != nil {
		return snap, fmt.Errorf("load reservations: %w", err)
	}
	snap.Trips = make([]repo.Row[model.Trip], 0, len(trips))
	for _, t := range trips {
		snap.Trips = append(snap.Trips, t.toRow())
	}
	snap.Cards = make([]repo.Row[model.Card], 0, len(cards))
	for _, c := range cards {
		snap.Cards = append(snap.Cards, c.toRow())
	}
	snap.Reservations = make([]repo.Row[model.Reservation], 0, len(resvs))
	for _, v := range resvs {
		snap.Reservations = append(snap.Reservations, v.toRow())
	}
	return snap, nil
}

// Apply записывает набор изменений одной транзакцией.
// Сначала upsert, затем удаления: дочерние строки раньше поездок.
func (r *tripRepo) Apply(ctx context.Context, cs repo.Changeset) error {
	if cs.Empty() {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertRows(tx, cs); err != nil {
			return err
		}
		if len(cs.DeleteCards) > 0 {
			if err := tx.Where("id IN ?", cs.DeleteCards).Delete(&cardRow{}).Error; err != nil {
				return fmt.Errorf("delete cards: %w", err)
			}
		}
		if len(cs.DeleteReservations) > 0 {
			if err := tx.Where("id IN ?", cs.DeleteReservations).Delete(&reservationRow{}).Error; err != nil {
				return fmt.Errorf("delete reservations: %w", err)
			}
		}
		if len(cs.DeleteTrips) > 0 {
			if err := tx.Where("id IN ?", cs.DeleteTrips).Delete(&tripRow{}).Error; err != nil {
				return fmt.Errorf("delete trips: %w", err)
			}
		}
		return nil
	})
}

// ReplaceAll очищает таблицы и записывает снимок целиком.
func (r *tripRepo) ReplaceAll(ctx context.Context, s repo.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []any{&cardRow{}, &reservationRow{}, &tripRow{}} {
			if err := all.Delete(m).Error; err != nil {
				return fmt.Errorf("truncate: %w", err)
			}
		}
		return upsertRows(tx, repo.Changeset{
			PutTrips:        s.Trips,
			PutCards:        s.Cards,
			PutReservations: s.Reservations,
		})
	})
}

func upsertRows(tx *gorm.DB, cs repo.Changeset) error {
	upsert := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	})
	if len(cs.PutTrips) > 0 {
		rows := make([]tripRow, 0, len(cs.PutTrips))
		for _, t := range cs.PutTrips {
			rows = append(rows, tripToRow(t))
		}
		if err := upsert.Create(&rows).Error; err != nil {
			return fmt.Errorf("upsert trips: %w", err)
		}
	}
	if len(cs.PutCards) > 0 {
		rows := make([]cardRow, 0, len(cs.PutCards))
		for _, c := range cs.PutCards {
			rows = append(rows, cardToRow(c))
		}
		if err := upsert.Create(&rows).Error; err != nil {
			return fmt.Errorf("upsert cards: %w", err)
		}
	}
	if len(cs.PutReservations) > 0 {
		rows := make([]reservationRow, 0, len(cs.PutReservations))
		for _, v := range cs.PutReservations {
			rows = append(rows, reservationToRow(v))
		}
		if err := upsert.Create(&rows).Error; err != nil {
			return fmt.Errorf("upsert reservations: %w", err)
		}
	}
	return nil
}
