package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"

	"photofeed/internal/ids"
	"photofeed/internal/media/tagger"
	"photofeed/internal/models"
	"photofeed/internal/repository"
	"photofeed/internal/storage"
)

// Photos are downscaled so neither dimension exceeds maxDimension, then
// re-encoded as JPEG at jpegQuality regardless of the source format.
const (
	maxDimension = 1080
	jpegQuality  = 85
)

var (
	ErrMissingField = errors.New("photo file and title are required")
	ErrNotAnImage   = errors.New("file is not a decodable image")
)

type UploadInput struct {
	Owner         models.User
	File          io.Reader
	Filename      string
	Title         string
	Caption       string
	Location      string
	PeoplePresent string
}

type UploadService struct {
	photos *repository.PhotoRepository
	sink   storage.Sink
	log    zerolog.Logger
}

func NewUploadService(photos *repository.PhotoRepository, sink storage.Sink, log zerolog.Logger) *UploadService {
	return &UploadService{photos: photos, sink: sink, log: log}
}

// Upload runs the whole pipeline: validate, decode, characterize, downscale,
// re-encode, write to the blob sink, persist the photo row. Any failure
// before the sink write leaves no trace; a failure between sink and store
// may orphan a blob, which is accepted.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (models.Photo, error) {
	if input.File == nil || input.Title == "" {
		return models.Photo{}, ErrMissingField
	}

	img, err := imaging.Decode(input.File)
	if err != nil {
		return models.Photo{}, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	autoTags := tagger.Characterize(img)

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return models.Photo{}, fmt.Errorf("encode jpeg: %w", err)
	}

	now := time.Now().UTC()
	name := objectName(now, input.Filename)

	url, err := s.sink.Put(ctx, name, buf.Bytes(), "image/jpeg")
	if err != nil {
		return models.Photo{}, fmt.Errorf("store photo: %w", err)
	}

	photo := models.Photo{
		ID:            ids.New(),
		UserID:        input.Owner.ID,
		Title:         input.Title,
		Caption:       input.Caption,
		Location:      input.Location,
		PeoplePresent: input.PeoplePresent,
		AutoTags:      autoTags,
		URL:           url,
		UploadedAt:    now,
	}

	if err := s.photos.Create(ctx, photo); err != nil {
		return models.Photo{}, fmt.Errorf("save photo: %w", err)
	}

	s.log.Info().
		Str("photo_id", photo.ID).
		Str("user_id", photo.UserID).
		Str("tags", autoTags).
		Msg("photo uploaded")

	return photo, nil
}

// objectName prefixes the sanitized original filename with a UTC timestamp
// of second granularity, which keeps names collision-resistant enough for
// this system.
func objectName(now time.Time, original string) string {
	return fmt.Sprintf("%s_%s", now.Format("20060102150405"), storage.SanitizeFilename(original))
}
