// Package schedule orchestrates flight lookups: it queries the flight-data
// API, falls back to schedule-history guessing when the requested date has
// no match, localizes the schedule times and records the lookup in the
// history store.
package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mmr-tortoise/flightcal/internal/flightdata"
	"github.com/mmr-tortoise/flightcal/internal/model"
)

// FlightLister is the subset of the flightdata client the service needs.
// Declared here so tests can substitute a stub without HTTP.
type FlightLister interface {
	ListFlights(ctx context.Context, flightNumber string) ([]model.Flight, error)
}

// Recorder persists one row per successful lookup. Implemented by
// store.Store; a nil Recorder disables history.
type Recorder interface {
	RecordLookup(flightNumber string, date time.Time, matches int, guess bool) error
}

// Service wires the lookup flow together.
type Service struct {
	api      FlightLister
	recorder Recorder
	logger   *zap.Logger
}

// NewService creates a lookup service. recorder may be nil to disable
// history; a nil logger disables logging.
func NewService(api FlightLister, recorder Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, recorder: recorder, logger: logger}
}

// Lookup resolves the candidate flights for a designator on a date.
//
// The flow mirrors what travellers actually need:
//  1. Schedule entries departing on the requested UTC date are exact
//     matches (IsGuess=false).
//  2. With no exact match, the route's history is deduplicated by
//     departure slot and each candidate is shifted onto the requested
//     date (IsGuess=true). Airlines rarely move a long-haul slot by much,
//     so the guess is usually right, but it is flagged everywhere.
//  3. Nothing at all → flight-not-found error.
//
// All returned flights have airport-local schedule times.
func (s *Service) Lookup(ctx context.Context, flightNumber string, date time.Time) ([]model.Flight, error) {
	number := model.ParseFlightNumber(flightNumber)

	all, err := s.api.ListFlights(ctx, number)
	if err != nil {
		return nil, err
	}

	flights := flightdata.ByDate(all, date)
	guess := false
	if len(flights) == 0 {
		flights = flightdata.DedupeByDepartureTime(all)
		if len(flights) == 0 {
			return nil, model.NewCLIError(model.ExitFlightNotFound,
				fmt.Sprintf("no flight information found for flight number %s", number))
		}
		guess = true
		for i := range flights {
			flights[i].IsGuess = true
			flights[i].MoveToDate(date)
		}
		s.logger.Info("no exact schedule match, guessing from history",
			zap.String("flight", number),
			zap.String("date", date.Format(model.DateFormat)),
			zap.Int("candidates", len(flights)),
		)
	}

	for i := range flights {
		if err := flights[i].Localize(); err != nil {
			return nil, err
		}
	}

	if s.recorder != nil {
		if err := s.recorder.RecordLookup(number, date, len(flights), guess); err != nil {
			// History is best effort: a broken database must not block
			// the lookup result the user asked for.
			s.logger.Warn("failed to record lookup history", zap.Error(err))
		}
	}

	s.logger.Debug("lookup complete",
		zap.String("flight", number),
		zap.Int("candidates", len(flights)),
		zap.Bool("guess", guess),
	)
	return flights, nil
}
