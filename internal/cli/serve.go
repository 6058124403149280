package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/flightcal/internal/web"
)

// serveFlags holds the flag values for the serve command.
type serveFlags struct {
	addr string
}

// NewServeCommand creates the "serve" cobra command, which runs the
// browser UI.
func NewServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the flightcal web UI",
		Long: `Run the flightcal web UI: a lookup form, a selection page with
editable candidate flights, and a manual entry form. Submissions download
ready-to-import .ics files.

The server runs until interrupted (Ctrl-C) and then drains in-flight
requests before exiting.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "",
		"Listen address (default: from config, normally 127.0.0.1:8080)")

	return cmd
}

func runServe(ctx context.Context, flags *serveFlags) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	addr := flags.addr
	if addr == "" {
		addr = a.cfg.ListenAddr
	}

	server, err := web.NewServer(a.service, a.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("flightcal web UI on http://%s\n", addr)
	if err := server.Run(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
