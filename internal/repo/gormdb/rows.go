package gormdb

import (
	"time"

	"TripKeeper/internal/model"
	"TripKeeper/internal/repo"
)

// tripRow — строка таблицы trips.
type tripRow struct {
	ID                 string `gorm:"primaryKey"`
	Seq                int64  `gorm:"not null;index"`
	Name               string `gorm:"not null"`
	StartDate          time.Time
	EndDate            *time.Time
	DistanceUnit       string `gorm:"not null;default:km"`
	GeocodingEnabled   bool
	SuggestionsEnabled bool
	CoverMediaID       string
	CreatedAt          time.Time
}

func (tripRow) TableName() string { return "trips" }

// cardRow — строка таблицы cards.
type cardRow struct {
	ID      string `gorm:"primaryKey"`
	Seq     int64  `gorm:"not null;index"`
	TripID  string `gorm:"not null;index"`
	Kind    string `gorm:"not null"`
	TakenAt time.Time
	Tags    []string `gorm:"serializer:json"`
	Text    string
	MediaID string
}

func (cardRow) TableName() string { return "cards" }

// reservationRow — строка таблицы reservations.
type reservationRow struct {
	ID                 string `gorm:"primaryKey"`
	Seq                int64  `gorm:"not null;index"`
	TripID             string `gorm:"not null;index"`
	Type               string `gorm:"not null"`
	ConfirmationNumber string `gorm:"not null"`
	Provider           string
	Date               *time.Time
	Notes              string
}

func (reservationRow) TableName() string { return "reservations" }

// blobRow — бинарное содержимое медиа в БД.
type blobRow struct {
	ID          string `gorm:"primaryKey"`
	Data        []byte `gorm:"not null"`
	ContentType string
	Digest      string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (blobRow) TableName() string { return "media_blobs" }

func tripToRow(r repo.Row[model.Trip]) tripRow {
	t := r.Value
	return tripRow{
		ID:                 t.ID,
		Seq:                r.Seq,
		Name:               t.Name,
		StartDate:          t.StartDate,
		EndDate:            t.EndDate,
		DistanceUnit:       string(t.Settings.DistanceUnit),
		GeocodingEnabled:   t.Settings.GeocodingEnabled,
		SuggestionsEnabled: t.Settings.SuggestionsEnabled,
		CoverMediaID:       t.CoverMediaID,
		CreatedAt:          t.CreatedAt,
	}
}

func (r tripRow) toRow() repo.Row[model.Trip] {
	return repo.Row[model.Trip]{Seq: r.Seq, Value: model.Trip{
		ID:        r.ID,
		Name:      r.Name,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Settings: model.TripSettings{
			DistanceUnit:       model.DistanceUnit(r.DistanceUnit),
			GeocodingEnabled:   r.GeocodingEnabled,
			SuggestionsEnabled: r.SuggestionsEnabled,
		},
		CoverMediaID: r.CoverMediaID,
		CreatedAt:    r.CreatedAt,
	}}
}

func cardToRow(r repo.Row[model.Card]) cardRow {
	c := r.Value
	return cardRow{
		ID:      c.ID,
		Seq:     r.Seq,
		TripID:  c.TripID,
		Kind:    string(c.Kind),
		TakenAt: c.TakenAt,
		Tags:    c.Tags,
		Text:    c.Text,
		MediaID: c.MediaID,
	}
}

func (r cardRow) toRow() repo.Row[model.Card] {
	return repo.Row[model.Card]{Seq: r.Seq, Value: model.Card{
		ID:      r.ID,
		TripID:  r.TripID,
		Kind:    model.CardKind(r.Kind),
		TakenAt: r.TakenAt,
		Tags:    r.Tags,
		Text:    r.Text,
		MediaID: r.MediaID,
	}}
}

func reservationToRow(r repo.Row[model.Reservation]) reservationRow {
	v := r.Value
	return reservationRow{
		ID:                 v.ID,
		Seq:                r.Seq,
		TripID:             v.TripID,
		Type:               string(v.Type),
		ConfirmationNumber: v.ConfirmationNumber,
		Provider:           v.Provider,
		Date:               v.Date,
		Notes:              v.Notes,
	}
}

func (r reservationRow) toRow() repo.Row[model.Reservation] {
	return repo.Row[model.Reservation]{Seq: r.Seq, Value: model.Reservation{
		ID:                 r.ID,
		TripID:             r.TripID,
		Type:               model.ReservationType(r.Type),
		ConfirmationNumber: r.ConfirmationNumber,
		Provider:           r.Provider,
		Date:               r.Date,
		Notes:              r.Notes,
	}}
}
