package repo

import (
	"context"

	"TripKeeper/internal/model"
)

// Row — сущность вместе с её порядковым номером вставки.
// Seq сохраняется в БД, чтобы порядок коллекций переживал перезапуск.
type Row[T any] struct {
	Seq   int64
	Value T
}

// Snapshot — полное содержимое постоянного хранилища, строки упорядочены по Seq.
type Snapshot struct {
	Trips        []Row[model.Trip]
	Cards        []Row[model.Card]
	Reservations []Row[model.Reservation]
}

// Changeset — изменения одной транзакции хранилища.
// Применяется целиком или не применяется вовсе.
type Changeset struct {
	PutTrips           []Row[model.Trip]
	PutCards           []Row[model.Card]
	PutReservations    []Row[model.Reservation]
	DeleteTrips        []string
	DeleteCards        []string
	DeleteReservations []string
}

// Empty сообщает, что в наборе нет изменений.
func (c Changeset) Empty() bool {
	return len(c.PutTrips) == 0 && len(c.PutCards) == 0 && len(c.PutReservations) == 0 &&
		len(c.DeleteTrips) == 0 && len(c.DeleteCards) == 0 && len(c.DeleteReservations) == 0
}

// TripRepository определяет порт постоянного хранения таблиц поездок.
type TripRepository interface {
	// LoadAll читает всё содержимое при старте.
	LoadAll(ctx context.Context) (Snapshot, error)

	// Apply записывает набор изменений в одной транзакции.
	Apply(ctx context.Context, cs Changeset) error

	// ReplaceAll перезаписывает хранилище полным снимком.
	ReplaceAll(ctx context.Context, s Snapshot) error
}
