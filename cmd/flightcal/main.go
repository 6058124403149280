// Command flightcal looks up scheduled flights by flight number and turns
// them into iCalendar (.ics) events, from the command line or through a
// small web UI.
package main

import (
	"github.com/mmr-tortoise/flightcal/internal/cli"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
