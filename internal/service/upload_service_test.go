package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"photofeed/internal/repository"
)

type putCall struct {
	name        string
	contentType string
	size        int
}

type fakeSink struct {
	puts []putCall
	err  error
}

func (f *fakeSink) Put(_ context.Context, name string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.puts = append(f.puts, putCall{name: name, contentType: contentType, size: len(data)})
	return "https://blobs.example.com/photos/" + name, nil
}

func pngBytes(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadPersistsPhotoWithTags(t *testing.T) {
	db := newTestDB(t)
	photos := repository.NewPhotoRepository(db)
	sink := &fakeSink{}
	svc := NewUploadService(photos, sink, nopLogger())
	creator := seedCreator(t, db)

	// Uniform red: dark luminance, warm tone, small resolution.
	red := pngBytes(t, color.NRGBA{R: 255, A: 255})

	photo, err := svc.Upload(context.Background(), UploadInput{
		Owner:    creator,
		File:     bytes.NewReader(red),
		Filename: "red square.png",
		Title:    "Red",
		Caption:  "very red",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if photo.AutoTags != "SD | Dark | Warm" {
		t.Errorf("auto tags = %q, want %q", photo.AutoTags, "SD | Dark | Warm")
	}
	if !strings.HasPrefix(photo.URL, "https://blobs.example.com/photos/") {
		t.Errorf("photo URL = %q, want sink URL", photo.URL)
	}

	if len(sink.puts) != 1 {
		t.Fatalf("sink received %d puts, want 1", len(sink.puts))
	}
	put := sink.puts[0]
	if put.contentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", put.contentType)
	}
	if !strings.HasSuffix(put.name, "_red_square.png") {
		t.Errorf("object name = %q, want timestamp prefix and sanitized filename", put.name)
	}

	stored, err := photos.GetByID(context.Background(), photo.ID)
	if err != nil {
		t.Fatalf("photo row missing: %v", err)
	}
	if stored.UserID != creator.ID || stored.Title != "Red" {
		t.Errorf("stored photo = %+v, want owner %s title Red", stored, creator.ID)
	}
}

func TestUploadMissingTitleWritesNothing(t *testing.T) {
	db := newTestDB(t)
	photos := repository.NewPhotoRepository(db)
	sink := &fakeSink{}
	svc := NewUploadService(photos, sink, nopLogger())
	creator := seedCreator(t, db)

	_, err := svc.Upload(context.Background(), UploadInput{
		Owner:    creator,
		File:     bytes.NewReader(pngBytes(t, color.NRGBA{A: 255})),
		Filename: "x.png",
	})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
	if len(sink.puts) != 0 {
		t.Errorf("sink received %d puts, want 0", len(sink.puts))
	}
	assertNoPhotos(t, photos)
}

func TestUploadMissingFileWritesNothing(t *testing.T) {
	db := newTestDB(t)
	photos := repository.NewPhotoRepository(db)
	sink := &fakeSink{}
	svc := NewUploadService(photos, sink, nopLogger())
	creator := seedCreator(t, db)

	_, err := svc.Upload(context.Background(), UploadInput{
		Owner: creator,
		Title: "no file",
	})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
	if len(sink.puts) != 0 {
		t.Errorf("sink received %d puts, want 0", len(sink.puts))
	}
	assertNoPhotos(t, photos)
}

func TestUploadUndecodableFileIsHardError(t *testing.T) {
	db := newTestDB(t)
	photos := repository.NewPhotoRepository(db)
	sink := &fakeSink{}
	svc := NewUploadService(photos, sink, nopLogger())
	creator := seedCreator(t, db)

	_, err := svc.Upload(context.Background(), UploadInput{
		Owner:    creator,
		File:     strings.NewReader("this is not an image"),
		Filename: "notes.txt",
		Title:    "broken",
	})
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("err = %v, want ErrNotAnImage", err)
	}
	if len(sink.puts) != 0 {
		t.Errorf("sink received %d puts, want 0", len(sink.puts))
	}
	assertNoPhotos(t, photos)
}

func TestObjectNameFormat(t *testing.T) {
	at := time.Date(2026, 8, 27, 13, 45, 9, 0, time.UTC)
	got := objectName(at, "my photo.jpg")
	if got != "20260827134509_my_photo.jpg" {
		t.Errorf("objectName = %q, want 20260827134509_my_photo.jpg", got)
	}
}

func assertNoPhotos(t *testing.T, photos *repository.PhotoRepository) {
	t.Helper()
	all, err := photos.ListNewest(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("%d photo rows persisted, want 0", len(all))
	}
}
