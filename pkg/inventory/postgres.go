package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// Postgres serves inventory lookups from a stream_epochs table. The
// schema is provisioned by the deployment (see the lib/pq driver import
// at the binary); this type only reads:
//
//	CREATE TABLE stream_epochs (
//	    network     TEXT NOT NULL,
//	    station     TEXT NOT NULL,
//	    channel     TEXT NOT NULL,
//	    location    TEXT NOT NULL,
//	    latitude    DOUBLE PRECISION NOT NULL,
//	    longitude   DOUBLE PRECISION NOT NULL,
//	    elevation   DOUBLE PRECISION NOT NULL,
//	    sample_rate DOUBLE PRECISION NOT NULL,
//	    start_time  TIMESTAMPTZ NOT NULL,
//	    end_time    TIMESTAMPTZ,
//	    PRIMARY KEY (network, station, channel, location, start_time)
//	);
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// StreamInfo implements Cache.
func (p *Postgres) StreamInfo(ctx context.Context, start, end time.Time, key contracts.ChannelKey) (*contracts.StreamInfo, error) {
	query := `
		SELECT latitude, longitude, elevation, sample_rate, start_time, end_time
		FROM stream_epochs
		WHERE network = $1 AND station = $2 AND channel = $3 AND location = $4
		  AND start_time <= $5
		  AND (end_time IS NULL OR end_time >= $6)
		ORDER BY start_time
		LIMIT 1
	`
	row := p.db.QueryRowContext(ctx, query, key.Network, key.Station, key.Channel, key.Location, end, start)

	var e StreamEpoch
	var endTime sql.NullTime
	err := row.Scan(&e.Latitude, &e.Longitude, &e.Elevation, &e.SampleRate, &e.Start, &endTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("inventory lookup %s: %w", key, err)
	}
	return e.Info(start, end), nil
}

// List implements Cache.
func (p *Postgres) List(ctx context.Context, start, end time.Time, pattern contracts.ChannelKey) ([]StreamEpoch, error) {
	query := `
		SELECT network, station, channel, location, latitude, longitude, elevation, sample_rate, start_time, end_time
		FROM stream_epochs
		WHERE ($1 = '' OR network = $1)
		  AND ($2 = '' OR station = $2)
		  AND ($3 = '' OR channel = $3)
		  AND ($4 = '' OR location = $4)
		  AND start_time <= $5
		  AND (end_time IS NULL OR end_time >= $6)
		ORDER BY network, station, channel, location, start_time
	`
	rows, err := p.db.QueryContext(ctx, query, pattern.Network, pattern.Station, pattern.Channel, pattern.Location, end, start)
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []StreamEpoch
	for rows.Next() {
		var e StreamEpoch
		var endTime sql.NullTime
		if err := rows.Scan(&e.Key.Network, &e.Key.Station, &e.Key.Channel, &e.Key.Location,
			&e.Latitude, &e.Longitude, &e.Elevation, &e.SampleRate, &e.Start, &endTime); err != nil {
			return nil, fmt.Errorf("inventory list: %w", err)
		}
		if endTime.Valid {
			e.End = endTime.Time
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	return out, nil
}
