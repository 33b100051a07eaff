package models

import "time"

// AuthorID is nil for posts whose author account has been deleted.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  *int64    `json:"author_id,omitempty" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
