package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"photofeed/internal/config"
	"photofeed/internal/database"
	"photofeed/internal/ids"
	"photofeed/internal/models"
	"photofeed/internal/moderation"
	"photofeed/internal/repository"
	"photofeed/internal/security"
	"photofeed/internal/web"
)

// memorySink records blob writes without touching disk or network.
type memorySink struct {
	names []string
}

func (s *memorySink) Put(_ context.Context, name string, _ []byte, _ string) (string, error) {
	s.names = append(s.names, name)
	return "/static/uploads/" + name, nil
}

type testApp struct {
	router *gin.Engine
	db     *sql.DB
	cfg    *config.AppConfig
	sink   *memorySink
}

// newTestApp wires the full handler stack against an in-memory store, a
// recording sink, and a fixed-score moderator.
func newTestApp(t *testing.T, polarity float64) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	cfg := &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			SessionSecret: "handler-test-secret",
			SessionTTL:    time.Hour,
		},
	}

	sink := &memorySink{}
	moderator := moderation.NewWithScorer(
		moderation.ScorerFunc(func(string) float64 { return polarity }),
		zerolog.Nop(),
	)

	router := gin.New()
	router.SetHTMLTemplate(web.Templates())
	NewHandlerSet(zerolog.Nop(), db, sink, moderator, cfg).Register(router)

	return &testApp{router: router, db: db, cfg: cfg, sink: sink}
}

func (a *testApp) seedUser(t *testing.T, username string, role models.UserRole) models.User {
	t.Helper()
	hash, err := security.HashPassword("pw")
	if err != nil {
		t.Fatal(err)
	}
	user := models.User{
		ID:           ids.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repository.NewUserRepository(a.db).Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func (a *testApp) seedPhoto(t *testing.T, owner models.User, title string) models.Photo {
	t.Helper()
	photo := models.Photo{
		ID:         ids.New(),
		UserID:     owner.ID,
		Title:      title,
		URL:        "/static/uploads/" + title + ".jpg",
		UploadedAt: time.Now().UTC(),
	}
	if err := repository.NewPhotoRepository(a.db).Create(context.Background(), photo); err != nil {
		t.Fatalf("seed photo %s: %v", title, err)
	}
	return photo
}

func (a *testApp) sessionCookie(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	token, err := security.GenerateSessionToken(
		a.cfg.Security.SessionSecret,
		user.ID,
		user.Username,
		string(user.Role),
		a.cfg.Security.SessionTTL,
	)
	if err != nil {
		t.Fatalf("session token: %v", err)
	}
	return &http.Cookie{Name: "photofeed_session", Value: token}
}

func (a *testApp) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postMultipart(t *testing.T, path string, fields map[string]string, filename string, file []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for key, val := range fields {
		if err := w.WriteField(key, val); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile("photo", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(file); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 (body %q)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("redirect to %q, want %q", got, location)
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
