package model

import "time"

// ReservationType — вид бронирования.
type ReservationType string

const (
	ReservationFlight     ReservationType = "flight"
	ReservationHotel      ReservationType = "hotel"
	ReservationRestaurant ReservationType = "restaurant"
	ReservationActivity   ReservationType = "activity"
	ReservationCar        ReservationType = "car"
	ReservationOther      ReservationType = "other"
)

// Reservation — бронирование, принадлежащее ровно одной поездке.
type Reservation struct {
	ID                 string          `json:"id"`
	TripID             string          `json:"trip_id" validate:"required"`
	Type               ReservationType `json:"type" validate:"required,oneof=flight hotel restaurant activity car other"`
	ConfirmationNumber string          `json:"confirmation_number" validate:"required"`
	Provider           string          `json:"provider,omitempty"`
	Date               *time.Time      `json:"date,omitempty"`
	Notes              string          `json:"notes,omitempty"`
}
