package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"tempcast/internal/model"
	"time"

	"github.com/lib/pq"
)

// Opener acquires a database handle for a single call.
type Opener func(ctx context.Context) (*sql.DB, error)

type ReadingRepository struct {
	open  Opener
	table string
}

func NewReadingRepository(open Opener, table string) *ReadingRepository {
	return &ReadingRepository{open: open, table: table}
}

// GetReadings returns every stored reading ordered by time ascending. The
// connection lives only for this call.
func (r *ReadingRepository) GetReadings(ctx context.Context) ([]model.Reading, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to data source: %w", err)
	}
	defer conn.Close()

	query := fmt.Sprintf(`
		SELECT temp, time
		FROM %s
		ORDER BY time ASC
	`, pq.QuoteIdentifier(r.table))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	var readings []model.Reading
	for rows.Next() {
		var temp, tod any
		if err := rows.Scan(&temp, &tod); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}

		reading, err := toReading(temp, tod)
		if err != nil {
			return nil, fmt.Errorf("reading %d: %w", len(readings)+1, err)
		}
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}

	slog.Info("readings loaded", "count", len(readings), "table", r.table)

	return readings, nil
}

// LoadHistoricalSeries renders the stored readings; an empty string means
// there is no history.
func (r *ReadingRepository) LoadHistoricalSeries(ctx context.Context) (string, error) {
	readings, err := r.GetReadings(ctx)
	if err != nil {
		return "", err
	}
	return model.HistoricalSeries(readings), nil
}

func toReading(temp, tod any) (model.Reading, error) {
	t, err := toTemperature(temp)
	if err != nil {
		return model.Reading{}, err
	}
	at, err := toTimeOfDay(tod)
	if err != nil {
		return model.Reading{}, err
	}
	return model.Reading{Time: at, Temperature: t}, nil
}

func toTemperature(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case []byte:
		return parseTemperature(string(t))
	case string:
		return parseTemperature(t)
	case nil:
		return 0, fmt.Errorf("temperature is NULL")
	}
	return 0, fmt.Errorf("unsupported temperature type %T", v)
}

func parseTemperature(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid temperature %q", s)
	}
	return f, nil
}

func toTimeOfDay(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case []byte:
		return model.ParseTimeOfDay(string(t))
	case string:
		return model.ParseTimeOfDay(t)
	case nil:
		return time.Time{}, fmt.Errorf("time is NULL")
	}
	return time.Time{}, fmt.Errorf("unsupported time type %T", v)
}
