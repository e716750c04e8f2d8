package db

import (
	"strings"

	// Registers the pure-Go driver under the name "sqlite".
	_ "modernc.org/sqlite"
)

// sqliteDSN turns "sqlite:/path/to/readings.db" or a "file:" URI into a
// modernc.org/sqlite DSN opened in query-only mode.
func sqliteDSN(raw string) string {
	dsn := raw
	if strings.HasPrefix(strings.ToLower(raw), "sqlite:") {
		dsn = raw[len("sqlite:"):]
		dsn = strings.TrimPrefix(dsn, "//")
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=query_only(1)"
}
