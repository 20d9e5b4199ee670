package model

import "time"

// CardKind — тип карточки.
type CardKind string

const (
	CardPhoto CardKind = "photo"
	CardNote  CardKind = "note"
	CardAudio CardKind = "audio"
)

// Card — одна запись журнала (фото, заметка или аудио), привязанная к поездке.
// TripID задаётся при создании и больше не меняется.
type Card struct {
	ID      string    `json:"id"`
	TripID  string    `json:"trip_id" validate:"required"`
	Kind    CardKind  `json:"kind" validate:"required,oneof=photo note audio"`
	TakenAt time.Time `json:"taken_at"`
	Tags    []string  `json:"tags,omitempty"`
	Text    string    `json:"text,omitempty"`
	MediaID string    `json:"media_id,omitempty"`
}

// HasTag сообщает, помечена ли карточка тегом tag.
func (c Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
