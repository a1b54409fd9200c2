package model

import "time"

// Entry — запись дневника на границе API. Content всегда открытый текст:
// расшифровка/шифрование происходят внутри хранилища.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags"`
}
