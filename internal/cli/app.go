package cli

import (
	"go.uber.org/zap"

	"github.com/mmr-tortoise/flightcal/internal/config"
	"github.com/mmr-tortoise/flightcal/internal/flightdata"
	"github.com/mmr-tortoise/flightcal/internal/logging"
	"github.com/mmr-tortoise/flightcal/internal/model"
	"github.com/mmr-tortoise/flightcal/internal/schedule"
	"github.com/mmr-tortoise/flightcal/internal/store"
)

// app bundles the wired-up dependencies a subcommand needs: config,
// logger, API client, history store and the lookup service.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	client  *flightdata.Client
	store   *store.Store
	service *schedule.Service
}

// loadConfig honors the --config flag, falling back to the standard
// config locations.
func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefault()
}

// newApp wires the application together. The history store is best
// effort: when it cannot be opened, lookups still work and history is
// simply not recorded.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile, verbose)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to initialize logging", err)
	}

	client := flightdata.NewClient(flightdata.Options{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.HTTPTimeout(),
		RetryMax: cfg.RetryMax,
	}, logger)

	// The recorder interface must stay nil when the store is absent;
	// a typed-nil *store.Store would pass the nil check inside the
	// service and then panic on use.
	var recorder schedule.Recorder
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Warn("history store unavailable", zap.Error(err))
		st = nil
	} else {
		recorder = st
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		store:   st,
		service: schedule.NewService(client, recorder, logger),
	}, nil
}

// close releases every resource the app holds.
func (a *app) close() {
	a.client.Close()
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = a.logger.Sync()
}
