package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/flightcal/internal/tzinfo"
)

// NewTimezonesCommand creates the "timezones" cobra command, which lists
// the IANA zones accepted by manual entry, with their current UTC offsets.
func NewTimezonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "timezones",
		Short: "List the supported IANA timezones",
		Long: `List the IANA timezones accepted for manual flight entry, together
with their UTC offset at the current moment (daylight saving included).`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimezones()
		},
	}
}

func runTimezones() error {
	zones := tzinfo.Zones(time.Now())

	if IsJSONOutput() {
		printJSON(map[string]interface{}{"timezones": zones})
		return nil
	}
	for _, z := range zones {
		fmt.Println(z.Label)
	}
	return nil
}
