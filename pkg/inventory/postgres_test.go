package inventory

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

const pgInfoColumns = "latitude, longitude, elevation, sample_rate, start_time, end_time"

func TestPostgresStreamInfo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := NewPostgres(db)
	ctx := context.Background()

	start := time.Date(2013, 8, 14, 6, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)

	rows := sqlmock.NewRows([]string{"latitude", "longitude", "elevation", "sample_rate", "start_time", "end_time"}).
		AddRow(37.07, 25.52, 620.0, 20.0, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+pgInfoColumns)).
		WithArgs("GE", "APE", "BHZ", "", end, start).
		WillReturnRows(rows)

	info, err := p.StreamInfo(ctx, start, end, apeBHZ)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 37.07, info.Latitude)
	assert.Equal(t, int64(12000), info.Size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStreamInfoAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+pgInfoColumns)).
		WillReturnRows(sqlmock.NewRows([]string{"latitude", "longitude", "elevation", "sample_rate", "start_time", "end_time"}))

	info, err := NewPostgres(db).StreamInfo(context.Background(), time.Now(), time.Now(), apeBHZ)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestPostgresStreamInfoBackendError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + pgInfoColumns)).WillReturnError(boom)

	info, err := NewPostgres(db).StreamInfo(context.Background(), time.Now(), time.Now(), apeBHZ)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, info)
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	epochStart := time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC)
	epochEnd := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"network", "station", "channel", "location",
		"latitude", "longitude", "elevation", "sample_rate", "start_time", "end_time"}).
		AddRow("GE", "APE", "BHZ", "", 37.07, 25.52, 620.0, 20.0, epochStart, nil).
		AddRow("NL", "HGN", "BHN", "02", 50.76, 5.93, 135.0, 40.0, epochStart, epochEnd)

	start := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT network, station, channel, location")).
		WithArgs("", "", "", "", end, start).
		WillReturnRows(rows)

	epochs, err := NewPostgres(db).List(context.Background(), start, end, contracts.ChannelKey{})
	require.NoError(t, err)
	require.Len(t, epochs, 2)
	assert.Equal(t, apeBHZ, epochs[0].Key)
	assert.True(t, epochs[0].End.IsZero())
	assert.Equal(t, hgnBHN, epochs[1].Key)
	assert.Equal(t, epochEnd, epochs[1].End)
	assert.NoError(t, mock.ExpectationsWereMet())
}
