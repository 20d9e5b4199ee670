package repo

// SessionStore абстракция для хранения подсказки об активной поездке между запусками.
// Значение не авторитетно: хранилище проверяет его при открытии.
type SessionStore interface {
	SaveActiveTrip(tripID string) error
	LoadActiveTrip() (string, error)
	ClearActiveTrip() error
}
