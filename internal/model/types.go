// Package model defines the domain types for the flightcal CLI and web UI.
//
// A Flight is the central entity: a single scheduled flight leg with its
// carrier, airports, IANA timezones and scheduled departure/arrival times.
// Flights are reconstructed at runtime from flight-data API responses and
// are never persisted as-is (only lookup history is stored, see the store
// package).
package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	// Embedded timezone database so airport zone lookups work on hosts
	// without a system zoneinfo directory (containers, Windows).
	_ "time/tzdata"
)

// DateFormat is the wire format for calendar dates accepted from users
// (CLI --date flag and web forms).
const DateFormat = "2006-01-02"

// NiceTimeFormat is the human-readable schedule time format used in CLI
// tables, web pages and editable form fields.
const NiceTimeFormat = "2006-01-02 15:04"

// FlightSource describes how a flight candidate was obtained.
type FlightSource string

const (
	// SourceScheduled means the flight was found in the API results for
	// the exact requested date.
	SourceScheduled FlightSource = "scheduled"

	// SourceGuess means no flight matched the requested date, so the
	// candidate was reconstructed from the route's schedule history and
	// shifted onto the requested date. Guessed times may be wrong if the
	// airline changed its schedule.
	SourceGuess FlightSource = "guess"
)

// String returns the string representation of FlightSource.
func (s FlightSource) String() string {
	return string(s)
}

// IsValid checks whether the FlightSource value is one of the defined sources.
func (s FlightSource) IsValid() bool {
	switch s {
	case SourceScheduled, SourceGuess:
		return true
	default:
		return false
	}
}

// ParseFlightSource converts a string to a FlightSource.
// Returns an error if the string does not match any valid source.
func ParseFlightSource(s string) (FlightSource, error) {
	source := FlightSource(strings.ToLower(s))
	if !source.IsValid() {
		return "", fmt.Errorf("invalid flight source: %q (valid: scheduled, guess)", s)
	}
	return source, nil
}

// Flight represents one scheduled flight leg.
//
// ScheduledDeparture and ScheduledArrival arrive from the API in UTC.
// Localize converts them into the origin and destination airport zones;
// every user-visible rendering happens after that conversion.
type Flight struct {
	// FlightNumber is the canonical flight designator, e.g. "SQ327".
	// Always produced by ParseFlightNumber before use.
	FlightNumber string `json:"flightNumber"`

	// AirlineName is the marketing carrier name. When the API omits it,
	// the name is derived from the carrier prefix of the flight number.
	AirlineName string `json:"airlineName"`

	// OriginAirport and DestinationAirport are full airport names.
	OriginAirport      string `json:"originAirport"`
	DestinationAirport string `json:"destinationAirport"`

	// OriginCode and DestinationCode are three-letter IATA codes.
	OriginCode      string `json:"originCode"`
	DestinationCode string `json:"destinationCode"`

	// OriginTimezone and DestinationTimezone are IANA zone names for the
	// two airports, e.g. "Asia/Singapore".
	OriginTimezone      string `json:"originTimezone"`
	DestinationTimezone string `json:"destinationTimezone"`

	// ScheduledDeparture and ScheduledArrival are the scheduled times.
	// UTC until Localize is called, airport-local afterwards.
	ScheduledDeparture time.Time `json:"scheduledDeparture"`
	ScheduledArrival   time.Time `json:"scheduledArrival"`

	// IsGuess is true when this candidate was reconstructed from schedule
	// history rather than matched on the requested date.
	IsGuess bool `json:"isGuess"`
}

// Source returns the FlightSource corresponding to the IsGuess flag.
func (f *Flight) Source() FlightSource {
	if f.IsGuess {
		return SourceGuess
	}
	return SourceScheduled
}

// Localize converts the scheduled times into the origin and destination
// airport zones. Returns an invalid-input error when either zone name is
// unknown to the timezone database.
func (f *Flight) Localize() error {
	origin, err := time.LoadLocation(f.OriginTimezone)
	if err != nil {
		return WrapCLIError(ExitInvalidInput,
			fmt.Sprintf("unknown origin timezone %q", f.OriginTimezone), err)
	}
	destination, err := time.LoadLocation(f.DestinationTimezone)
	if err != nil {
		return WrapCLIError(ExitInvalidInput,
			fmt.Sprintf("unknown destination timezone %q", f.DestinationTimezone), err)
	}
	f.ScheduledDeparture = f.ScheduledDeparture.In(origin)
	f.ScheduledArrival = f.ScheduledArrival.In(destination)
	return nil
}

// MoveToDate shifts the departure onto the given calendar date, moving the
// arrival by the same number of whole days. The time of day never changes,
// and an overnight arrival keeps its day offset relative to departure
// (dep 23rd / arr 24th moved to the 25th becomes dep 25th / arr 26th).
func (f *Flight) MoveToDate(date time.Time) {
	loc := f.ScheduledDeparture.Location()
	depDay := time.Date(
		f.ScheduledDeparture.Year(), f.ScheduledDeparture.Month(), f.ScheduledDeparture.Day(),
		0, 0, 0, 0, loc)
	targetDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	days := int(targetDay.Sub(depDay).Hours() / 24)
	if days == 0 {
		return
	}
	f.ScheduledDeparture = f.ScheduledDeparture.AddDate(0, 0, days)
	f.ScheduledArrival = f.ScheduledArrival.AddDate(0, 0, days)
}

// Duration returns the scheduled block time of the flight.
func (f *Flight) Duration() time.Duration {
	return f.ScheduledArrival.Sub(f.ScheduledDeparture)
}

// NiceDeparture returns the departure time formatted for display.
func (f *Flight) NiceDeparture() string {
	return f.ScheduledDeparture.Format(NiceTimeFormat)
}

// NiceArrival returns the arrival time formatted for display.
func (f *Flight) NiceArrival() string {
	return f.ScheduledArrival.Format(NiceTimeFormat)
}

// Route returns a short "SIN → SFO" style route description.
func (f *Flight) Route() string {
	return fmt.Sprintf("%s → %s", f.OriginCode, f.DestinationCode)
}

// flightNumberRegex splits a cleaned designator into carrier letters and
// flight number digits.
var flightNumberRegex = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// carrierPrefixRegex extracts the leading letters of a flight designator.
var carrierPrefixRegex = regexp.MustCompile(`^([A-Z]+)`)

// nonAlnumRegex matches everything that is not a letter or digit.
var nonAlnumRegex = regexp.MustCompile(`[^A-Za-z0-9]`)

// ParseFlightNumber canonicalizes a user-supplied flight designator:
// separators are stripped, letters uppercased and leading zeros removed
// from the numeric part ("sq 0327" → "SQ327"). Inputs that do not follow
// the letters-then-digits shape are returned uppercased as-is, so the API
// still gets a chance to resolve them.
func ParseFlightNumber(input string) string {
	cleaned := strings.ToUpper(nonAlnumRegex.ReplaceAllString(input, ""))

	m := flightNumberRegex.FindStringSubmatch(cleaned)
	if m == nil {
		return strings.ToUpper(input)
	}
	letters, digits := m[1], m[2]
	return letters + strings.TrimLeft(digits, "0")
}

// CarrierPrefix returns the leading letters of a canonical flight number,
// e.g. "SQ" for "SQ327". Empty when the number has no alpha prefix.
func CarrierPrefix(flightNumber string) string {
	m := carrierPrefixRegex.FindStringSubmatch(flightNumber)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseDate parses a "YYYY-MM-DD" date string in UTC.
func ParseDate(input string) (time.Time, error) {
	date, err := time.Parse(DateFormat, input)
	if err != nil {
		return time.Time{}, WrapCLIError(ExitInvalidInput,
			fmt.Sprintf("invalid date %q: expected format %s", input, DateFormat), err)
	}
	return date, nil
}

// airportCodeRegex validates IATA airport codes: exactly three uppercase
// ASCII letters.
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateAirportCode checks that the given string is a well-formed IATA
// airport code.
func ValidateAirportCode(code string) error {
	if !airportCodeRegex.MatchString(code) {
		return NewCLIError(ExitInvalidInput,
			fmt.Sprintf("invalid airport code %q: must be 3 uppercase letters", code))
	}
	return nil
}

// ExitCode defines standard CLI exit codes. These codes allow scripts and
// CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitFlightNotFound indicates no flight information could be found
	// for the requested flight number.
	ExitFlightNotFound ExitCode = 2

	// ExitAPIUnavailable indicates the flight-data API could not be
	// reached or returned a non-success status.
	ExitAPIUnavailable ExitCode = 3

	// ExitInvalidInput indicates user-supplied input failed validation
	// (date, airport code, timezone, selection index).
	ExitInvalidInput ExitCode = 4

	// ExitConfigError indicates the configuration file could not be
	// loaded or failed validation.
	ExitConfigError ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
