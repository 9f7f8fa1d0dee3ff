package repository

import (
	"context"
	"database/sql"
	"time"

	"photofeed/internal/ids"
)

// ReactionTable names a toggle relation table. Only the two constants below
// are ever interpolated into SQL.
type ReactionTable string

const (
	LikesTable ReactionTable = "likes"
	SavesTable ReactionTable = "saves"
)

// ReactionRepository manages one toggle relation: at most one row per
// (user, photo) pair, enforced by a unique index.
type ReactionRepository struct {
	db    *sql.DB
	table ReactionTable
}

func NewLikeRepository(db *sql.DB) *ReactionRepository {
	return &ReactionRepository{db: db, table: LikesTable}
}

func NewSaveRepository(db *sql.DB) *ReactionRepository {
	return &ReactionRepository{db: db, table: SavesTable}
}

// Toggle flips the relation and reports the resulting state: true when the
// row now exists, false when it was removed. Delete-else-insert under the
// unique index, no read-modify-write.
func (r *ReactionRepository) Toggle(ctx context.Context, userID, photoID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM `+string(r.table)+` WHERE user_id = $1 AND photo_id = $2`,
		userID, photoID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO `+string(r.table)+` (id, user_id, photo_id, created_at) VALUES ($1, $2, $3, $4)`,
		ids.New(), userID, photoID, time.Now().UTC())
	if err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether the relation row is currently present.
func (r *ReactionRepository) Exists(ctx context.Context, userID, photoID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+string(r.table)+` WHERE user_id = $1 AND photo_id = $2`,
		userID, photoID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the number of rows for the pair; used to assert the
// at-most-one invariant in tests.
func (r *ReactionRepository) Count(ctx context.Context, userID, photoID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+string(r.table)+` WHERE user_id = $1 AND photo_id = $2`,
		userID, photoID).Scan(&count)
	return count, err
}
