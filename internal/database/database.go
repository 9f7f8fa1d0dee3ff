package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"photofeed/internal/config"
)

// Open resolves the relational store from config and connects to it.
// Resolution order: explicit DSN, then a cloud-Postgres connection string
// parsed into a postgres URL, then a local SQLite file as last resort.
func Open(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*sql.DB, error) {
	driver := "pgx"
	dsn := cfg.DSN

	if dsn == "" && cfg.CloudConnString != "" {
		dsn = ParseCloudConnString(cfg.CloudConnString)
	}

	if dsn == "" {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		driver = "sqlite3"
		dsn = cfg.SQLitePath
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite fallback enabled")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if driver == "sqlite3" {
		// SQLite serializes writers; a single connection avoids lock errors.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

// ParseCloudConnString converts a "Server=...;User Id=...;Password=...;
// Database=...;Port=..." style connection string into a postgres URL with
// sslmode=require. Strings that do not carry the expected keys are returned
// unchanged so they can still be tried as a DSN.
func ParseCloudConnString(conn string) string {
	parts := map[string]string{}
	for _, pair := range strings.Split(conn, ";") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		parts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	server := parts["Server"]
	user := parts["User Id"]
	password := parts["Password"]
	dbname := parts["Database"]
	if server == "" || user == "" || password == "" || dbname == "" {
		return conn
	}

	port := parts["Port"]
	if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%s", server, port),
		Path:     "/" + dbname,
		RawQuery: "sslmode=require",
	}
	return u.String()
}
