package models

import "time"

// Comment holds admitted text only; rejected text is never persisted.
type Comment struct {
	ID        string
	UserID    string
	PhotoID   string
	Text      string
	CreatedAt time.Time
}

type CommentWithAuthor struct {
	Comment
	AuthorUsername string
}
