package repository

import (
	"context"
	"errors"
	"testing"

	"photofeed/internal/models"
)

func TestUserRepositoryRoundtrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := seedUser(t, repo, "alice", models.UserRoleCreator)

	byName, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if byName.ID != created.ID || byName.Role != models.UserRoleCreator {
		t.Errorf("FindByUsername = %+v, want id %s role creator", byName, created.ID)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("GetByID username = %q, want alice", byID.Username)
	}
}

func TestUserRepositoryNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	if _, err := repo.FindByUsername(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindByUsername(nobody) err = %v, want ErrUserNotFound", err)
	}
}
