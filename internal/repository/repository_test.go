package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"photofeed/internal/database"
	"photofeed/internal/ids"
	"photofeed/internal/models"
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

func seedUser(t *testing.T, repo *UserRepository, username string, role models.UserRole) models.User {
	t.Helper()
	user := models.User{
		ID:           ids.New(),
		Username:     username,
		PasswordHash: []byte("hash"),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedPhoto(t *testing.T, repo *PhotoRepository, owner models.User, title, caption string, uploadedAt time.Time) models.Photo {
	t.Helper()
	photo := models.Photo{
		ID:         ids.New(),
		UserID:     owner.ID,
		Title:      title,
		Caption:    caption,
		AutoTags:   "SD | Neutral | Balanced",
		URL:        "/static/uploads/" + title + ".jpg",
		UploadedAt: uploadedAt,
	}
	if err := repo.Create(context.Background(), photo); err != nil {
		t.Fatalf("seed photo %s: %v", title, err)
	}
	return photo
}
