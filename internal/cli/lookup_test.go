package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

func sampleFlight(t *testing.T) model.Flight {
	t.Helper()
	f := model.Flight{
		FlightNumber:        "SQ327",
		AirlineName:         "Singapore Airlines",
		OriginAirport:       "Singapore Changi Airport",
		DestinationAirport:  "San Francisco International Airport",
		OriginCode:          "SIN",
		DestinationCode:     "SFO",
		OriginTimezone:      "Asia/Singapore",
		DestinationTimezone: "America/Los_Angeles",
		ScheduledDeparture:  time.Date(2024, 10, 23, 14, 30, 0, 0, time.UTC),
		ScheduledArrival:    time.Date(2024, 10, 24, 6, 15, 0, 0, time.UTC),
	}
	require.NoError(t, f.Localize())
	return f
}

func TestFormatFlightTable(t *testing.T) {
	scheduled := sampleFlight(t)
	guess := sampleFlight(t)
	guess.IsGuess = true

	out := FormatFlightTable([]model.Flight{scheduled, guess})

	assert.Contains(t, out, "FLIGHT")
	assert.Contains(t, out, "SQ327")
	assert.Contains(t, out, "Singapore Airlines")
	assert.Contains(t, out, "SIN → SFO")
	assert.Contains(t, out, "2024-10-23 22:30")
	assert.Contains(t, out, "scheduled")
	assert.Contains(t, out, "guess")
}

func TestFormatFlightTable_Empty(t *testing.T) {
	assert.Equal(t, "No flights found.\n", FormatFlightTable(nil))
}

func TestFormatFlightTable_TruncatesLongAirlineNames(t *testing.T) {
	f := sampleFlight(t)
	f.AirlineName = "An Extremely Long Airline Name That Overflows The Column"

	out := FormatFlightTable([]model.Flight{f})

	assert.NotContains(t, out, "Overflows")
	assert.Contains(t, out, "…")
}

func TestResolveDate(t *testing.T) {
	t.Run("explicit date", func(t *testing.T) {
		date, err := resolveDate("2024-10-23")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 10, 23, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("empty means today", func(t *testing.T) {
		date, err := resolveDate("")
		require.NoError(t, err)
		now := time.Now().UTC()
		assert.Equal(t, now.Format(model.DateFormat), date.Format(model.DateFormat))
		assert.Equal(t, 0, date.Hour())
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := resolveDate("23/10/2024")
		assert.Error(t, err)
	})
}
