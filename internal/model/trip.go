package model

import "time"

// DistanceUnit — единицы измерения расстояний в настройках поездки.
type DistanceUnit string

const (
	DistanceKilometers DistanceUnit = "km"
	DistanceMiles      DistanceUnit = "mi"
)

// TripSettings — пользовательские настройки поездки.
type TripSettings struct {
	DistanceUnit       DistanceUnit `json:"distance_unit" validate:"omitempty,oneof=km mi"`
	GeocodingEnabled   bool         `json:"geocoding_enabled"`
	SuggestionsEnabled bool         `json:"suggestions_enabled"`
}

// DefaultTripSettings возвращает настройки новой поездки.
func DefaultTripSettings() TripSettings {
	return TripSettings{
		DistanceUnit:       DistanceKilometers,
		GeocodingEnabled:   true,
		SuggestionsEnabled: true,
	}
}

// Trip — поездка, владеющая карточками и бронированиями.
// Reservations заполняется хранилищем при чтении (владение, а не хранение inline);
// карточки поездки получаются запросом CardsForTrip.
type Trip struct {
	ID           string        `json:"id"`
	Name         string        `json:"name" validate:"required"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      *time.Time    `json:"end_date,omitempty"` // nil, пока поездка не завершена
	Settings     TripSettings  `json:"settings"`
	CoverMediaID string        `json:"cover_media_id,omitempty"`
	Reservations []Reservation `json:"reservations,omitempty" validate:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}
