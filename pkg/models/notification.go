package models

import "time"

// Notification is a process-lifetime feed entry; the feed is not persisted
// and dies with the session.
type Notification struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Unread      bool      `json:"unread"`
	CreatedAt   time.Time `json:"createdAt"`

	// Time is a relative label ("Just now", "5m ago") derived from
	// CreatedAt at read time.
	Time string `json:"time"`
}
