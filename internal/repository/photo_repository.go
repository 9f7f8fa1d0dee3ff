package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"photofeed/internal/models"
)

var ErrPhotoNotFound = errors.New("photo not found")

const photoColumns = `p.id, p.user_id, p.title, p.caption, p.location,
	p.people_present, p.auto_tags, p.url, p.uploaded_at, u.username`

type PhotoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, photo models.Photo) error {
	const query = `
		INSERT INTO photos (
			id, user_id, title, caption, location, people_present,
			auto_tags, url, uploaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		photo.ID,
		photo.UserID,
		photo.Title,
		photo.Caption,
		photo.Location,
		photo.PeoplePresent,
		photo.AutoTags,
		photo.URL,
		photo.UploadedAt,
	)
	return err
}

func (r *PhotoRepository) GetByID(ctx context.Context, id string) (models.Photo, error) {
	const query = `
		SELECT id, user_id, title, caption, location, people_present,
		       auto_tags, url, uploaded_at
		FROM photos WHERE id = $1
	`
	var photo models.Photo
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&photo.ID,
		&photo.UserID,
		&photo.Title,
		&photo.Caption,
		&photo.Location,
		&photo.PeoplePresent,
		&photo.AutoTags,
		&photo.URL,
		&photo.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Photo{}, ErrPhotoNotFound
		}
		return models.Photo{}, err
	}
	return photo, nil
}

// ListNewest returns every photo ordered by upload time, newest first.
func (r *PhotoRepository) ListNewest(ctx context.Context) ([]models.PhotoWithOwner, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos p JOIN users u ON u.id = p.user_id
		ORDER BY p.uploaded_at DESC
	`
	return r.queryPhotos(ctx, query)
}

// Search matches the term case-insensitively against photo title, caption,
// and owning username (logical OR across the three).
func (r *PhotoRepository) Search(ctx context.Context, term string) ([]models.PhotoWithOwner, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos p JOIN users u ON u.id = p.user_id
		WHERE LOWER(p.title) LIKE $1
		   OR LOWER(p.caption) LIKE $2
		   OR LOWER(u.username) LIKE $3
		ORDER BY p.uploaded_at DESC
	`
	pattern := "%" + strings.ToLower(term) + "%"
	return r.queryPhotos(ctx, query, pattern, pattern, pattern)
}

func (r *PhotoRepository) ListByOwner(ctx context.Context, userID string) ([]models.PhotoWithOwner, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos p JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.uploaded_at DESC
	`
	return r.queryPhotos(ctx, query, userID)
}

// ListReactedBy returns the photos a user has liked or saved, depending on
// the relation table, most recent reaction first.
func (r *PhotoRepository) ListReactedBy(ctx context.Context, table ReactionTable, userID string) ([]models.PhotoWithOwner, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos p
		JOIN users u ON u.id = p.user_id
		JOIN ` + string(table) + ` rel ON rel.photo_id = p.id
		WHERE rel.user_id = $1
		ORDER BY rel.created_at DESC
	`
	return r.queryPhotos(ctx, query, userID)
}

func (r *PhotoRepository) queryPhotos(ctx context.Context, query string, args ...any) ([]models.PhotoWithOwner, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.PhotoWithOwner
	for rows.Next() {
		var p models.PhotoWithOwner
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Title,
			&p.Caption,
			&p.Location,
			&p.PeoplePresent,
			&p.AutoTags,
			&p.URL,
			&p.UploadedAt,
			&p.OwnerUsername,
		); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
