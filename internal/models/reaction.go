package models

import "time"

// Reaction is a toggle relation: the mere existence of a row encodes a
// boolean user-photo relationship. Likes and saves share this shape and
// live in separate tables with a unique (user_id, photo_id) index each.
type Reaction struct {
	ID        string
	UserID    string
	PhotoID   string
	CreatedAt time.Time
}
