package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Source describes where sensor readings live. User and Password, when set,
// override any credentials embedded in URL.
type Source struct {
	URL      string
	User     string
	Password string
}

// Resolve picks the database/sql driver for the source and builds its DSN.
func (s Source) Resolve() (driver string, dsn string, err error) {
	raw := strings.TrimSpace(s.URL)
	if raw == "" {
		return "", "", fmt.Errorf("data source url is empty")
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "sqlite:"), strings.HasPrefix(lower, "file:"):
		return DriverSQLite, sqliteDSN(raw), nil
	case strings.HasPrefix(lower, "jdbc:postgresql://"),
		strings.HasPrefix(lower, "postgres://"),
		strings.HasPrefix(lower, "postgresql://"):
		if strings.HasPrefix(lower, "jdbc:") {
			raw = raw[len("jdbc:"):]
		}
		dsn, err := postgresURL(raw, s.User, s.Password)
		if err != nil {
			return "", "", err
		}
		return DriverPostgres, dsn, nil
	case strings.Contains(raw, "=") && !strings.Contains(raw, "://"):
		return DriverPostgres, postgresKeywords(raw, s.User, s.Password), nil
	}

	return "", "", fmt.Errorf("unsupported data source url %q", redact(raw))
}

// Open connects to the source and verifies the connection. The returned handle
// holds at most one connection; the caller owns it and must Close it.
func Open(ctx context.Context, s Source) (*sql.DB, error) {
	driver, dsn, err := s.Resolve()
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return conn, nil
}

func postgresURL(raw, user, password string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid postgres url: %w", err)
	}
	if u.Scheme == "postgresql" {
		u.Scheme = "postgres"
	}

	if user != "" {
		if password != "" {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	} else if password != "" && u.User != nil {
		u.User = url.UserPassword(u.User.Username(), password)
	}

	return u.String(), nil
}

// postgresKeywords appends credentials to a "host=... dbname=..." style DSN.
func postgresKeywords(raw, user, password string) string {
	dsn := raw
	if user != "" {
		dsn += " user=" + quoteKeyword(user)
	}
	if password != "" {
		dsn += " password=" + quoteKeyword(password)
	}
	return dsn
}

func quoteKeyword(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
