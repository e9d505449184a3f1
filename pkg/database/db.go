package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DriverName is the database/sql driver every connection is opened with.
const DriverName = "postgres"

type Config struct {
	DSN            string
	MaxConns       int
	Timeout        time.Duration
	TimeZone       string
	ClientEncoding string
}

// Connect opens the process-wide pool and verifies connectivity with a ping.
// The returned handle is owned by the caller and handed to NewSessions.
func Connect(cfg Config) (*sqlx.DB, error) {
	dsn := cfg.DSN
	// SET only affects the connection it runs on, so session settings travel
	// in the DSN's options parameter and apply to every pooled connection.
	if opts := sessionOptions(cfg); opts != "" {
		var err error
		if dsn, err = withOptions(dsn, opts); err != nil {
			return nil, err
		}
	}
	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 5
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// sessionOptions renders the -c flags postgres applies to every new connection.
func sessionOptions(cfg Config) string {
	var parts []string
	if cfg.TimeZone != "" {
		parts = append(parts, "-c TimeZone="+escapeOption(cfg.TimeZone))
	}
	if cfg.ClientEncoding != "" {
		parts = append(parts, "-c client_encoding="+escapeOption(cfg.ClientEncoding))
	}
	return strings.Join(parts, " ")
}

// withOptions appends an options parameter to a URL or key/value DSN.
func withOptions(dsn, opts string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "options=" + url.QueryEscape(opts), nil
	}
	if strings.Contains(dsn, "options=") {
		return "", fmt.Errorf("dsn already sets options; drop DATABASE_TIMEZONE/DATABASE_CLIENT_ENCODING")
	}
	return dsn + " options=" + quoteLiteral(opts), nil
}

// escapeOption backslash-escapes spaces, which separate -c flags.
func escapeOption(s string) string {
	return strings.ReplaceAll(s, " ", `\ `)
}

// quoteLiteral escapes single quotes and wraps the value in single quotes
// for use in a key/value connection string.
func quoteLiteral(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}
