package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/flightcal/internal/store"
)

func TestFormatHistoryTable(t *testing.T) {
	records := []store.LookupRecord{
		{CreatedAt: time.Now().Add(-time.Hour), FlightNumber: "SQ327", Date: "2024-10-23", Matches: 1},
		{CreatedAt: time.Now().Add(-48 * time.Hour), FlightNumber: "BA5", Date: "2024-10-20", Matches: 2, Guess: true},
	}

	out := FormatHistoryTable(records)

	assert.Contains(t, out, "SQ327")
	assert.Contains(t, out, "2024-10-23")
	assert.Contains(t, out, "schedule")
	assert.Contains(t, out, "guess")
	assert.Contains(t, out, "ago")
}

func TestFormatHistoryTable_Empty(t *testing.T) {
	assert.Equal(t, "No lookup history.\n", FormatHistoryTable(nil))
}
