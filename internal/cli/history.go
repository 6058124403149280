package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/flightcal/internal/store"
)

// historyFlags holds the flag values for the history command.
type historyFlags struct {
	limit int
}

// NewHistoryCommand creates the "history" cobra command, which shows the
// most recent lookups recorded in the local history database.
func NewHistoryCommand() *cobra.Command {
	flags := &historyFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent flight lookups",
		Long: `Show the most recent flight lookups, newest first.

Every successful lookup (CLI or web UI) records the designator, the
requested date, how many candidates were found, and whether the schedule
had to be guessed from route history.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(flags)
		},
	}

	cmd.Flags().IntVar(&flags.limit, "limit", 20, "Maximum number of entries to show")

	return cmd
}

func runHistory(flags *historyFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	records, err := st.Recent(flags.limit)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		printJSON(map[string]interface{}{"history": records})
		return nil
	}
	fmt.Print(FormatHistoryTable(records))
	return nil
}

// FormatHistoryTable renders history rows as an aligned text table.
// Exported for testing purposes (tested in history_test.go).
func FormatHistoryTable(records []store.LookupRecord) string {
	if len(records) == 0 {
		return "No lookup history.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-12s %-8s %-10s %s\n",
		"FLIGHT", "DATE", "MATCHES", "SOURCE", "WHEN")

	for _, r := range records {
		source := "schedule"
		if r.Guess {
			source = "guess"
		}
		fmt.Fprintf(&b, "%-8s %-12s %-8d %-10s %s\n",
			r.FlightNumber, r.Date, r.Matches, source, humanize.Time(r.CreatedAt))
	}
	return b.String()
}
