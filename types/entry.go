package types

import "time"

// Entry represents a single journal entry owned by a user.
type Entry struct {
	// ID is the unique identifier of the entry.
	ID int `json:"id" db:"id"`

	// UserID is the id of the owning user. It is assigned from the
	// authenticated identity at creation time and never changes.
	UserID int `json:"userId" db:"user_id"`

	// Title is the entry's title.
	Title string `json:"title" db:"title"`

	// Content is the entry's body text.
	Content string `json:"content" db:"content"`

	// Category is a free-form label (e.g. "Work", "Personal").
	Category string `json:"category" db:"category"`

	// Date is the day the entry is about. It defaults to the creation
	// time when the client does not supply one.
	Date time.Time `json:"date" db:"date"`

	// CreatedAt is the timestamp when the entry was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the entry.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
