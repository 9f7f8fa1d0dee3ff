package repository

import (
	"context"
	"database/sql"

	"photofeed/internal/models"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment models.Comment) error {
	const query = `
		INSERT INTO comments (id, user_id, photo_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.UserID,
		comment.PhotoID,
		comment.Text,
		comment.CreatedAt,
	)
	return err
}

func (r *CommentRepository) ListByPhoto(ctx context.Context, photoID string) ([]models.CommentWithAuthor, error) {
	const query = `
		SELECT c.id, c.user_id, c.photo_id, c.body, c.created_at, u.username
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.photo_id = $1
		ORDER BY c.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, photoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.CommentWithAuthor
	for rows.Next() {
		var c models.CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.UserID, &c.PhotoID, &c.Text, &c.CreatedAt, &c.AuthorUsername); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
