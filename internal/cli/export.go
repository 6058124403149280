// The export command runs a lookup, picks one candidate by index and
// writes its iCalendar file to disk.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/flightcal/internal/ical"
	"github.com/mmr-tortoise/flightcal/internal/model"
)

// exportFlags holds the flag values for the export command.
type exportFlags struct {
	date   string
	index  int
	output string
}

// NewExportCommand creates the "export" cobra command.
func NewExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <flight-number>",
		Short: "Write an .ics calendar file for a flight",
		Long: `Look up a flight and write its iCalendar (.ics) file.

When the lookup returns several candidates (multiple departures per day,
or guessed schedules), --index selects one; run "flightcal lookup" first
to see the candidates.

Examples:
  flightcal export SQ327 --date 2024-10-23
  flightcal export BA5 --date 2024-10-23 --index 1 --output ~/ba5.ics`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.date, "date", "",
		"Departure date as YYYY-MM-DD (default: today, UTC)")
	cmd.Flags().IntVar(&flags.index, "index", 0,
		"Candidate index from the lookup table (default: 0)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output path (default: <FLIGHT>.ics in the current directory)")

	return cmd
}

// runExport is the main logic function for the export command.
func runExport(ctx context.Context, flightNumber string, flags *exportFlags) error {
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

	if flags.index < 0 || flags.index >= len(flights) {
		return model.NewCLIError(model.ExitInvalidInput,
			fmt.Sprintf("candidate index %d out of range (0-%d)", flags.index, len(flights)-1))
	}
	flight := flights[flags.index]

	data, err := ical.Calendar(&flight)
	if err != nil {
		return err
	}

	output := flags.output
	if output == "" {
		output = ical.Filename(&flight)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to write calendar file %s", output), err)
	}

	if IsJSONOutput() {
		printJSON(map[string]interface{}{
			"file":   output,
			"flight": flight,
		})
		return nil
	}
	fmt.Printf("Wrote %s (%s %s, departs %s)\n",
		output, flight.AirlineName, flight.FlightNumber, flight.NiceDeparture())
	if flight.IsGuess {
		fmt.Println("Note: schedule guessed from route history; verify the times.")
	}
	return nil
}
