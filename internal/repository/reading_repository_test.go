package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"tempcast/db"
)

type openRecorder struct {
	source db.Source
	conns  []*sql.DB
}

func (o *openRecorder) open(ctx context.Context) (*sql.DB, error) {
	conn, err := db.Open(ctx, o.source)
	if err == nil {
		o.conns = append(o.conns, conn)
	}
	return conn, err
}

func seedReadings(t *testing.T, stmts ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "readings.db")
	conn, err := sql.Open(db.DriverSQLite, path)
	if err != nil {
		t.Fatalf("open seed db: %v", err)
	}
	defer conn.Close()

	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("seed %q: %v", stmt, err)
		}
	}
	return path
}

func TestLoadHistoricalSeriesOrdersByTime(t *testing.T) {
	path := seedReadings(t,
		`CREATE TABLE dht11 (id INTEGER PRIMARY KEY, temp REAL, time TEXT)`,
		`INSERT INTO dht11 (temp, time) VALUES (21.6, '08:20:00'), (21.5, '08:00:00'), (21.7, '08:10:00')`,
	)

	rec := &openRecorder{source: db.Source{URL: "sqlite:" + path}}
	repo := NewReadingRepository(rec.open, "dht11")

	series, err := repo.LoadHistoricalSeries(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, "08:00 -> 21.50°C\n08:10 -> 21.70°C\n08:20 -> 21.60°C\n", series)
}

func TestGetReadingsReleasesConnection(t *testing.T) {
	path := seedReadings(t,
		`CREATE TABLE dht11 (temp REAL, time TEXT)`,
		`INSERT INTO dht11 (temp, time) VALUES (19.25, '23:50')`,
	)

	rec := &openRecorder{source: db.Source{URL: "sqlite:" + path}}
	repo := NewReadingRepository(rec.open, "dht11")

	readings, err := repo.GetReadings(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(readings))
	assert.Equal(t, 19.25, readings[0].Temperature)
	assert.Equal(t, 1, len(rec.conns))
	assert.NotEqual(t, nil, rec.conns[0].Ping())
}

func TestGetReadingsEmptyTable(t *testing.T) {
	path := seedReadings(t, `CREATE TABLE dht11 (temp REAL, time TEXT)`)

	rec := &openRecorder{source: db.Source{URL: "sqlite:" + path}}
	repo := NewReadingRepository(rec.open, "dht11")

	series, err := repo.LoadHistoricalSeries(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, "", series)
	assert.NotEqual(t, nil, rec.conns[0].Ping())
}

func TestGetReadingsQueryFailureReleasesConnection(t *testing.T) {
	path := seedReadings(t, `CREATE TABLE other (x INTEGER)`)

	rec := &openRecorder{source: db.Source{URL: "sqlite:" + path}}
	repo := NewReadingRepository(rec.open, "dht11")

	readings, err := repo.GetReadings(context.Background())

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(readings))
	assert.Equal(t, 1, len(rec.conns))
	assert.NotEqual(t, nil, rec.conns[0].Ping())
}

func TestGetReadingsConnectFailure(t *testing.T) {
	boom := errors.New("connection refused")
	repo := NewReadingRepository(func(ctx context.Context) (*sql.DB, error) {
		return nil, boom
	}, "dht11")

	_, err := repo.GetReadings(context.Background())

	assert.Equal(t, true, errors.Is(err, boom))
}

func TestGetReadingsRejectsNullValues(t *testing.T) {
	path := seedReadings(t,
		`CREATE TABLE dht11 (temp REAL, time TEXT)`,
		`INSERT INTO dht11 (temp, time) VALUES (20.0, '08:00'), (NULL, '08:10')`,
	)

	rec := &openRecorder{source: db.Source{URL: "sqlite:" + path}}
	repo := NewReadingRepository(rec.open, "dht11")

	readings, err := repo.GetReadings(context.Background())

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(readings))
}

func TestGetReadingsQuotesTableName(t *testing.T) {
	path := seedReadings(t,
		`CREATE TABLE "sensor readings" (temp REAL, time TEXT)`,
		`INSERT INTO "sensor readings" (temp, time) VALUES (12, '06:00')`,
	)

	rec := &openRecorder{source: db.Source{URL: "sqlite:" + path}}
	repo := NewReadingRepository(rec.open, "sensor readings")

	series, err := repo.LoadHistoricalSeries(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, "06:00 -> 12.00°C\n", series)
}

func TestToReadingConversions(t *testing.T) {
	tests := []struct {
		name string
		temp any
		tod  any
		want string
	}{
		{name: "float and time.Time", temp: 21.5, tod: time.Date(0, 1, 1, 8, 0, 0, 0, time.UTC), want: "08:00 -> 21.50°C"},
		{name: "numeric text", temp: []byte("21.456"), tod: []byte("09:15:00"), want: "09:15 -> 21.46°C"},
		{name: "integer", temp: int64(20), tod: "10:30", want: "10:30 -> 20.00°C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toReading(tt.temp, tt.tod)
			assert.Equal(t, nil, err)
			assert.Equal(t, tt.want, got.Line())
		})
	}

	_, err := toReading("warm", "08:00")
	assert.NotEqual(t, nil, err)
	_, err = toReading(20.0, nil)
	assert.NotEqual(t, nil, err)
	_, err = toReading(20.0, true)
	assert.NotEqual(t, nil, err)
}
