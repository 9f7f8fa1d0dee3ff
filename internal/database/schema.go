package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Portable DDL: runs unchanged on Postgres and SQLite. Timestamps are
// always written from Go, so no store-side defaults are declared.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS photos (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES users(id),
		title          TEXT NOT NULL,
		caption        TEXT NOT NULL,
		location       TEXT NOT NULL,
		people_present TEXT NOT NULL,
		auto_tags      TEXT NOT NULL,
		url            TEXT NOT NULL,
		uploaded_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id),
		photo_id   TEXT NOT NULL REFERENCES photos(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS likes_user_photo ON likes (user_id, photo_id)`,
	`CREATE TABLE IF NOT EXISTS saves (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id),
		photo_id   TEXT NOT NULL REFERENCES photos(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS saves_user_photo ON saves (user_id, photo_id)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id),
		photo_id   TEXT NOT NULL REFERENCES photos(id),
		body       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS photos_uploaded_at ON photos (uploaded_at)`,
	`CREATE INDEX IF NOT EXISTS comments_photo ON comments (photo_id)`,
}

// EnsureSchema creates all tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
