// The lookup command resolves the candidate flights for a designator on a
// date and presents them as a text table or JSON array, depending on the
// --json flag. Guessed schedules (reconstructed from route history when
// the requested date has no entry) are marked in the output.

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

// lookupFlags holds the flag values for the lookup command.
type lookupFlags struct {
	// date is the requested departure date in YYYY-MM-DD form.
	// Empty means today (UTC).
	date string
}

// NewLookupCommand creates the "lookup" cobra command.
func NewLookupCommand() *cobra.Command {
	flags := &lookupFlags{}

	cmd := &cobra.Command{
		Use:   "lookup <flight-number>",
		Short: "Look up candidate flights for a designator and date",
		Long: `Look up the scheduled flights for a flight number on a date.

The flight number is canonicalized first ("sq 0327" becomes SQ327). When
no schedule entry departs on the requested date, candidates are guessed
from the route's history and marked as such.

Examples:
  flightcal lookup SQ327
  flightcal lookup SQ327 --date 2024-10-23
  flightcal lookup BA5 --date 2024-10-23 --json`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.date, "date", "",
		"Departure date as YYYY-MM-DD (default: today, UTC)")

	return cmd
}

// runLookup is the main logic function for the lookup command.
func runLookup(ctx context.Context, flightNumber string, flags *lookupFlags) error {
	date, err := resolveDate(flags.date)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	flights, err := a.service.Lookup(ctx, flightNumber, date)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		printJSON(map[string]interface{}{"flights": flights})
		return nil
	}
	fmt.Print(FormatFlightTable(flights))
	return nil
}

// resolveDate parses the --date flag, defaulting to today in UTC.
func resolveDate(flag string) (time.Time, error) {
	if flag == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return model.ParseDate(flag)
}

// FormatFlightTable renders flights as an aligned text table with one row
// per candidate. Exported for testing purposes (tested in lookup_test.go).
//
// The table format is:
//
//	#  FLIGHT  AIRLINE             ROUTE      DEPARTS (LOCAL)   ARRIVES (LOCAL)   SOURCE
//	0  SQ327   Singapore Airlines  SIN → SFO  2024-10-23 22:30  2024-10-23 23:15  scheduled
func FormatFlightTable(flights []model.Flight) string {
	if len(flights) == 0 {
		return "No flights found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-3s %-8s %-28s %-11s %-17s %-17s %s\n",
		"#", "FLIGHT", "AIRLINE", "ROUTE", "DEPARTS (LOCAL)", "ARRIVES (LOCAL)", "SOURCE")

	for i := range flights {
		f := &flights[i]
		fmt.Fprintf(&b, "%-3d %-8s %-28s %-11s %-17s %-17s %s\n",
			i,
			f.FlightNumber,
			truncate(f.AirlineName, 28),
			f.Route(),
			f.NiceDeparture(),
			f.NiceArrival(),
			f.Source(),
		)
	}
	return b.String()
}

// truncate shortens a string to at most n runes, marking the cut with an
// ellipsis so table columns stay aligned for long airline names.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
