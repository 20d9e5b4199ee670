package model

// Media — сохранённый бинарный ресурс (изображение).
// Location — путь на устройстве (fs) или локатор вида "db:<id>" для хранения в БД.
type Media struct {
	ID          string `json:"id"`
	Location    string `json:"location"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Digest      string `json:"digest"` // BLAKE2b-256, hex
}
