package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jordi-domingo/webdc3/pkg/contracts"

	_ "modernc.org/sqlite"
)

// SQLite is the embedded inventory backend. It provisions its own schema
// and stores epoch boundaries as RFC 3339 UTC strings with a fixed-width
// fractional part, so lexicographic comparison in SQL matches time order
// down to the nanosecond.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open handle and runs the schema migration.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS stream_epochs (
		network     TEXT NOT NULL,
		station     TEXT NOT NULL,
		channel     TEXT NOT NULL,
		location    TEXT NOT NULL,
		latitude    REAL NOT NULL,
		longitude   REAL NOT NULL,
		elevation   REAL NOT NULL,
		sample_rate REAL NOT NULL,
		start_time  DATETIME NOT NULL,
		end_time    DATETIME,
		PRIMARY KEY (network, station, channel, location, start_time)
	);`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

// Add inserts epochs. Re-inserting an existing (key, start) pair replaces
// the row, which is what reloading an inventory wants.
func (s *SQLite) Add(ctx context.Context, epochs ...StreamEpoch) error {
	query := `INSERT OR REPLACE INTO stream_epochs (
		network, station, channel, location, latitude, longitude, elevation, sample_rate, start_time, end_time
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, e := range epochs {
		var endTime any
		if !e.End.IsZero() {
			endTime = formatSQLiteTime(e.End)
		}
		_, err := s.db.ExecContext(ctx, query,
			e.Key.Network, e.Key.Station, e.Key.Channel, e.Key.Location,
			e.Latitude, e.Longitude, e.Elevation, e.SampleRate,
			formatSQLiteTime(e.Start), endTime,
		)
		if err != nil {
			return fmt.Errorf("insert epoch %s: %w", e.Key, err)
		}
	}
	return nil
}

// StreamInfo implements Cache.
func (s *SQLite) StreamInfo(ctx context.Context, start, end time.Time, key contracts.ChannelKey) (*contracts.StreamInfo, error) {
	query := `
		SELECT latitude, longitude, elevation, sample_rate, start_time, end_time
		FROM stream_epochs
		WHERE network = ? AND station = ? AND channel = ? AND location = ?
		  AND start_time <= ?
		  AND (end_time IS NULL OR end_time >= ?)
		ORDER BY start_time
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query,
		key.Network, key.Station, key.Channel, key.Location,
		formatSQLiteTime(end), formatSQLiteTime(start))

	var e StreamEpoch
	var startStr string
	var endStr sql.NullString
	err := row.Scan(&e.Latitude, &e.Longitude, &e.Elevation, &e.SampleRate, &startStr, &endStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("inventory lookup %s: %w", key, err)
	}
	return e.Info(start, end), nil
}

// List implements Cache.
func (s *SQLite) List(ctx context.Context, start, end time.Time, pattern contracts.ChannelKey) ([]StreamEpoch, error) {
	query := `
		SELECT network, station, channel, location, latitude, longitude, elevation, sample_rate, start_time, end_time
		FROM stream_epochs
		WHERE (? = '' OR network = ?)
		  AND (? = '' OR station = ?)
		  AND (? = '' OR channel = ?)
		  AND (? = '' OR location = ?)
		  AND start_time <= ?
		  AND (end_time IS NULL OR end_time >= ?)
		ORDER BY network, station, channel, location, start_time
	`
	rows, err := s.db.QueryContext(ctx, query,
		pattern.Network, pattern.Network,
		pattern.Station, pattern.Station,
		pattern.Channel, pattern.Channel,
		pattern.Location, pattern.Location,
		formatSQLiteTime(end), formatSQLiteTime(start))
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []StreamEpoch
	for rows.Next() {
		var e StreamEpoch
		var startStr string
		var endStr sql.NullString
		if err := rows.Scan(&e.Key.Network, &e.Key.Station, &e.Key.Channel, &e.Key.Location,
			&e.Latitude, &e.Longitude, &e.Elevation, &e.SampleRate, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("inventory list: %w", err)
		}
		e.Start = parseSQLiteTime(startStr)
		if endStr.Valid {
			e.End = parseSQLiteTime(endStr.String)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	return out, nil
}

// The fractional part is fixed-width: RFC3339Nano trims trailing zeros,
// which would break lexicographic ordering across rows.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseSQLiteTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
