package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"TripKeeper/internal/repo"
)

// SessionFSStore — файловое хранилище подсказки об активной поездке.
type SessionFSStore struct {
	path string
}

var _ repo.SessionStore = SessionFSStore{}

// NewSessionFSStore возвращает хранилище, пишущее в файл path.
func NewSessionFSStore(path string) SessionFSStore {
	return SessionFSStore{path: path}
}

// SaveActiveTrip сохраняет id активной поездки в файл.
func (s SessionFSStore) SaveActiveTrip(tripID string) error {
	if tripID == "" {
		return errors.New("empty trip id")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(tripID), 0o600)
}

// LoadActiveTrip читает id активной поездки. Отсутствующий файл — не ошибка, пустая строка.
func (s SessionFSStore) LoadActiveTrip() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	return strings.TrimRight(string(b), " \t\r\n"), nil
}

// ClearActiveTrip удаляет файл подсказки.
func (s SessionFSStore) ClearActiveTrip() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
