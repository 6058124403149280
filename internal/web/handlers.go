package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmr-tortoise/flightcal/internal/ical"
	"github.com/mmr-tortoise/flightcal/internal/model"
	"github.com/mmr-tortoise/flightcal/internal/tzinfo"
)

// indexData feeds the index template.
type indexData struct {
	Error string
}

// selectData feeds the selection template.
type selectData struct {
	FlightNumber string
	Flights      []model.Flight
}

// manualData feeds the manual entry template.
type manualData struct {
	Error  string
	Zones  []tzinfo.Zone
	Values map[string]string
}

// handleIndex renders the lookup form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", indexData{})
}

// handleCreateEvent runs a lookup and renders the candidate selection
// page. Lookup failures land back on the index form with the error shown,
// mirroring how a traveller retries a typo'd flight number.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	flightNumber := r.FormValue("flight_number")
	date, err := model.ParseDate(r.FormValue("flight_date"))
	if err != nil {
		s.render(w, "index.html", indexData{Error: err.Error()})
		return
	}

	flights, err := s.svc.Lookup(r.Context(), flightNumber, date)
	if err != nil {
		s.logger.Info("lookup failed",
			zap.String("flight", flightNumber), zap.Error(err))
		s.render(w, "index.html", indexData{Error: err.Error()})
		return
	}

	id := s.sessions.put(flights)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.render(w, "select_flight.html", selectData{
		FlightNumber: model.ParseFlightNumber(flightNumber),
		Flights:      flights,
	})
}

// overridableFields are the selection-page form fields a user may edit
// before downloading. Empty values leave the looked-up data untouched.
var overridableFields = []string{
	"flight_number",
	"airline_name",
	"origin_airport",
	"origin_airport_code",
	"destination_airport",
	"destination_airport_code",
	"scheduled_departure",
	"scheduled_arrival",
	"origin_timezone",
	"destination_timezone",
}

// handleCreateEventSelected produces the .ics download for one candidate,
// applying any field edits from the selection form first.
func (s *Server) handleCreateEventSelected(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		http.Error(w, "No flight data found", http.StatusBadRequest)
		return
	}
	flights, ok := s.sessions.get(cookie.Value)
	if !ok {
		http.Error(w, "No flight data found", http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 || index >= len(flights) {
		http.Error(w, "Invalid flight selection", http.StatusBadRequest)
		return
	}

	flight := flights[index]
	if err := applyOverrides(&flight, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := ical.Calendar(&flight)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeICS(w, &flight, data)
}

// applyOverrides copies non-empty form fields onto the flight. Timezone
// overrides are applied before re-parsing time overrides, so an edited
// departure time is interpreted in the (possibly edited) airport zone.
func applyOverrides(flight *model.Flight, r *http.Request) error {
	values := map[string]string{}
	for _, field := range overridableFields {
		if v := strings.TrimSpace(r.FormValue(field)); v != "" {
			values[field] = v
		}
	}

	if v, ok := values["flight_number"]; ok {
		flight.FlightNumber = model.ParseFlightNumber(v)
	}
	if v, ok := values["airline_name"]; ok {
		flight.AirlineName = v
	}
	if v, ok := values["origin_airport"]; ok {
		flight.OriginAirport = v
	}
	if v, ok := values["origin_airport_code"]; ok {
		flight.OriginCode = v
	}
	if v, ok := values["destination_airport"]; ok {
		flight.DestinationAirport = v
	}
	if v, ok := values["destination_airport_code"]; ok {
		flight.DestinationCode = v
	}
	if v, ok := values["origin_timezone"]; ok {
		flight.OriginTimezone = v
	}
	if v, ok := values["destination_timezone"]; ok {
		flight.DestinationTimezone = v
	}

	if v, ok := values["scheduled_departure"]; ok {
		t, err := parseLocalTime(v, flight.OriginTimezone)
		if err != nil {
			return err
		}
		flight.ScheduledDeparture = t
	}
	if v, ok := values["scheduled_arrival"]; ok {
		t, err := parseLocalTime(v, flight.DestinationTimezone)
		if err != nil {
			return err
		}
		flight.ScheduledArrival = t
	}
	return nil
}

// handleManualEntry renders the manual entry form with the timezone
// picker.
func (s *Server) handleManualEntry(w http.ResponseWriter, r *http.Request) {
	s.render(w, "manual_entry.html", manualData{
		Zones:  tzinfo.Zones(time.Now()),
		Values: map[string]string{},
	})
}

// requiredManualFields lists every field the manual form must supply,
// in the order validation reports them.
var requiredManualFields = []string{
	"flight_number",
	"airline_name",
	"origin_airport",
	"origin_airport_code",
	"destination_airport",
	"destination_airport_code",
	"scheduled_departure",
	"scheduled_arrival",
	"origin_timezone",
	"destination_timezone",
}

// handleCreateManualEvent validates the manual form and produces the .ics
// download. Validation errors re-render the form with the submitted values
// preserved.
func (s *Server) handleCreateManualEvent(w http.ResponseWriter, r *http.Request) {
	values := map[string]string{}
	for _, field := range requiredManualFields {
		values[field] = strings.TrimSpace(r.FormValue(field))
	}

	flight, err := manualFlight(values)
	if err != nil {
		s.render(w, "manual_entry.html", manualData{
			Error:  err.Error(),
			Zones:  tzinfo.Zones(time.Now()),
			Values: values,
		})
		return
	}

	data, err := ical.Calendar(flight)
	if err != nil {
		s.render(w, "manual_entry.html", manualData{
			Error:  err.Error(),
			Zones:  tzinfo.Zones(time.Now()),
			Values: values,
		})
		return
	}
	s.writeICS(w, flight, data)
}

// manualFlight validates the submitted fields and builds the flight.
func manualFlight(values map[string]string) (*model.Flight, error) {
	for _, field := range requiredManualFields {
		if values[field] == "" {
			return nil, model.NewCLIError(model.ExitInvalidInput,
				fmt.Sprintf("Missing required field: %s", field))
		}
	}
	if err := model.ValidateAirportCode(values["origin_airport_code"]); err != nil {
		return nil, err
	}
	if err := model.ValidateAirportCode(values["destination_airport_code"]); err != nil {
		return nil, err
	}

	departure, err := parseLocalTime(values["scheduled_departure"], values["origin_timezone"])
	if err != nil {
		return nil, err
	}
	arrival, err := parseLocalTime(values["scheduled_arrival"], values["destination_timezone"])
	if err != nil {
		return nil, err
	}

	return &model.Flight{
		FlightNumber:        model.ParseFlightNumber(values["flight_number"]),
		AirlineName:         values["airline_name"],
		OriginAirport:       values["origin_airport"],
		DestinationAirport:  values["destination_airport"],
		OriginCode:          values["origin_airport_code"],
		DestinationCode:     values["destination_airport_code"],
		OriginTimezone:      values["origin_timezone"],
		DestinationTimezone: values["destination_timezone"],
		ScheduledDeparture:  departure,
		ScheduledArrival:    arrival,
	}, nil
}

// parseLocalTime parses a "2006-01-02 15:04" wall-clock string in the
// named zone. Browsers' datetime-local inputs submit a "T" separator,
// which is accepted too.
func parseLocalTime(value, tzName string) (time.Time, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, model.WrapCLIError(model.ExitInvalidInput,
			fmt.Sprintf("unknown timezone %q", tzName), err)
	}

	normalized := strings.Replace(value, "T", " ", 1)
	t, err := time.ParseInLocation(model.NiceTimeFormat, normalized, loc)
	if err != nil {
		return time.Time{}, model.WrapCLIError(model.ExitInvalidInput,
			"Invalid datetime format. Use: yyyy-mm-dd hh:mm", err)
	}
	return t, nil
}

// writeICS sends the calendar bytes as a file download.
func (s *Server) writeICS(w http.ResponseWriter, flight *model.Flight, data []byte) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", ical.Filename(flight)))
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write calendar response", zap.Error(err))
	}
}

// render executes a template, logging failures. Template errors after
// headers are sent cannot be reported to the client anymore.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed",
			zap.String("template", name), zap.Error(err))
	}
}
