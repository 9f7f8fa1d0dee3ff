package service

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"photofeed/internal/database"
	"photofeed/internal/ids"
	"photofeed/internal/models"
	"photofeed/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func seedCreator(t *testing.T, db *sql.DB) models.User {
	t.Helper()
	user := models.User{
		ID:           ids.New(),
		Username:     "creator",
		PasswordHash: []byte("hash"),
		Role:         models.UserRoleCreator,
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("seed creator: %v", err)
	}
	return user
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
