package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

func sq327() model.Flight {
	return model.Flight{
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
}

// TestCalendar verifies the document structure and the flight details a
// calendar app needs to show the event correctly.
func TestCalendar(t *testing.T) {
	f := sq327()
	data, err := calendarAt(&f, time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "END:VEVENT")
	assert.Contains(t, out, "METHOD:REQUEST")
	assert.Contains(t, out, "CALSCALE:GREGORIAN")
	assert.Contains(t, out, "STATUS:CONFIRMED")

	assert.Contains(t, out, "SQ327")
	assert.Contains(t, out, "Singapore Airlines")
	assert.Contains(t, out, "SIN")
	assert.Contains(t, out, "SFO")

	// Schedule times are rendered in airport-local wall-clock time with
	// the zone attached: 14:30 UTC is 22:30 in Singapore.
	assert.Contains(t, out, "DTSTART;TZID=Asia/Singapore:20241023T223000")
	assert.Contains(t, out, "DTEND;TZID=America/Los_Angeles:20241023T231500")

	// Exactly one event per file.
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}

// TestCalendar_LocalizedInputIsStable verifies that feeding an
// already-localized flight produces the same wall-clock times: Localize is
// idempotent on the underlying instants.
func TestCalendar_LocalizedInputIsStable(t *testing.T) {
	f := sq327()
	require.NoError(t, f.Localize())

	data, err := calendarAt(&f, time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTSTART;TZID=Asia/Singapore:20241023T223000")
}

// TestCalendar_UnknownZone propagates the invalid-input error.
func TestCalendar_UnknownZone(t *testing.T) {
	f := sq327()
	f.DestinationTimezone = "Nowhere/Special"

	_, err := Calendar(&f)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitInvalidInput, cliErr.Code)
}

// TestFilename verifies the download filename convention.
func TestFilename(t *testing.T) {
	f := sq327()
	assert.Equal(t, "SQ327.ics", Filename(&f))
}
