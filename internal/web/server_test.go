package web

import (
	"context"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

// stubLookuper returns canned flights or an error.
type stubLookuper struct {
	flights []model.Flight
	err     error
}

func (s *stubLookuper) Lookup(_ context.Context, _ string, _ time.Time) ([]model.Flight, error) {
	return s.flights, s.err
}

// localizedSQ327 returns the reference flight as the schedule service
// would hand it to the web layer: airport-local times, not a guess.
func localizedSQ327(t *testing.T) model.Flight {
	t.Helper()
	f := model.Flight{
		FlightNumber:        "SQ327",
		AirlineName:         "Singapore Airlines",
		OriginAirport:       "Singapore Changi Airport",
		DestinationAirport:  "San Francisco International Airport",
		OriginCode:          "SIN",
		DestinationCode:     "SFO",
		OriginTimezone:      "Asia/Singapore",
		DestinationTimezone: "America/Los_Angeles",
		ScheduledDeparture:  time.Date(2024, 10, 23, 14, 30, 0, 0, time.UTC),
		ScheduledArrival:    time.Date(2024, 10, 24, 6, 15, 0, 0, time.UTC),
	}
	require.NoError(t, f.Localize())
	return f
}

func newTestServer(t *testing.T, svc Lookuper) *Server {
	t.Helper()
	s, err := NewServer(svc, nil)
	require.NoError(t, err)
	return s
}

// postForm sends an application/x-www-form-urlencoded POST through the
// server and returns the recorder.
func postForm(s *Server, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestHandleIndex serves the lookup form.
func TestHandleIndex(t *testing.T) {
	s := newTestServer(t, &stubLookuper{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flightcal")
	assert.Contains(t, rec.Body.String(), `action="/create_event"`)
}

// TestHandleCreateEvent_Success renders the selection page and issues a
// session cookie holding the candidates.
func TestHandleCreateEvent_Success(t *testing.T) {
	s := newTestServer(t, &stubLookuper{flights: []model.Flight{localizedSQ327(t)}})

	rec := postForm(s, "/create_event", url.Values{
		"flight_number": {"sq 327"},
		"flight_date":   {"2024-10-23"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "SQ327")
	assert.Contains(t, body, "Singapore Airlines")
	assert.Contains(t, body, "2024-10-23 22:30")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)
}

// TestHandleCreateEvent_GuessBadge marks guessed schedules on the
// selection page.
func TestHandleCreateEvent_GuessBadge(t *testing.T) {
	guess := localizedSQ327(t)
	guess.IsGuess = true
	s := newTestServer(t, &stubLookuper{flights: []model.Flight{guess}})

	rec := postForm(s, "/create_event", url.Values{
		"flight_number": {"SQ327"},
		"flight_date":   {"2024-10-23"},
	})
	assert.Contains(t, rec.Body.String(), "guessed schedule")
}

// TestHandleCreateEvent_LookupError lands back on the index form with the
// error shown.
func TestHandleCreateEvent_LookupError(t *testing.T) {
	s := newTestServer(t, &stubLookuper{
		err: model.NewCLIError(model.ExitFlightNotFound, "no flight information found for flight number XX1"),
	})

	rec := postForm(s, "/create_event", url.Values{
		"flight_number": {"XX1"},
		"flight_date":   {"2024-10-23"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no flight information found")
	assert.Contains(t, rec.Body.String(), `action="/create_event"`)
}

// TestHandleCreateEvent_BadDate rejects malformed dates on the index form.
func TestHandleCreateEvent_BadDate(t *testing.T) {
	s := newTestServer(t, &stubLookuper{})

	rec := postForm(s, "/create_event", url.Values{
		"flight_number": {"SQ327"},
		"flight_date":   {"23/10/2024"},
	})
	assert.Contains(t, rec.Body.String(), "invalid date")
}

// lookupAndCookie runs a lookup and returns the session cookie for the
// follow-up selection request.
func lookupAndCookie(t *testing.T, s *Server) *http.Cookie {
	t.Helper()
	rec := postForm(s, "/create_event", url.Values{
		"flight_number": {"SQ327"},
		"flight_date":   {"2024-10-23"},
	})
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

// TestHandleCreateEventSelected_Download completes the two-step flow and
// checks the .ics attachment headers and content.
func TestHandleCreateEventSelected_Download(t *testing.T) {
	s := newTestServer(t, &stubLookuper{flights: []model.Flight{localizedSQ327(t)}})
	cookie := lookupAndCookie(t, s)

	rec := postForm(s, "/create_event/0", url.Values{}, cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="SQ327.ics"`)

	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SQ327")
	assert.Contains(t, body, "DTSTART;TZID=Asia/Singapore:20241023T223000")
}

// TestHandleCreateEventSelected_Overrides applies edited fields before
// generating the calendar.
func TestHandleCreateEventSelected_Overrides(t *testing.T) {
	s := newTestServer(t, &stubLookuper{flights: []model.Flight{localizedSQ327(t)}})
	cookie := lookupAndCookie(t, s)

	rec := postForm(s, "/create_event/0", url.Values{
		"flight_number":       {"SQ328"},
		"scheduled_departure": {"2024-10-23 23:00"},
	}, cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="SQ328.ics"`)
	assert.Contains(t, rec.Body.String(), "DTSTART;TZID=Asia/Singapore:20241023T230000")
}

// TestHandleCreateEventSelected_NoSession rejects the selection without a
// live session.
func TestHandleCreateEventSelected_NoSession(t *testing.T) {
	s := newTestServer(t, &stubLookuper{flights: []model.Flight{localizedSQ327(t)}})

	rec := postForm(s, "/create_event/0", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No flight data found")
}

// TestHandleCreateEventSelected_BadIndex rejects out-of-range selections.
func TestHandleCreateEventSelected_BadIndex(t *testing.T) {
	s := newTestServer(t, &stubLookuper{flights: []model.Flight{localizedSQ327(t)}})
	cookie := lookupAndCookie(t, s)

	assert.Equal(t, http.StatusBadRequest, postForm(s, "/create_event/5", url.Values{}, cookie).Code)
	assert.Equal(t, http.StatusBadRequest, postForm(s, "/create_event/notanumber", url.Values{}, cookie).Code)
}

// TestHandleManualEntry renders the form with the timezone picker.
// html/template entity-escapes the option labels ("+" becomes "&#43;"),
// so the body is unescaped before asserting on the display text.
func TestHandleManualEntry(t *testing.T) {
	s := newTestServer(t, &stubLookuper{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manual_entry", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="Asia/Singapore"`)
	assert.Contains(t, html.UnescapeString(rec.Body.String()), "Asia/Singapore (UTC+08:00)")
}

// manualForm returns a complete valid manual-entry submission.
func manualForm() url.Values {
	return url.Values{
		"flight_number":            {"UA123"},
		"airline_name":             {"United Airlines"},
		"origin_airport":           {"San Francisco International Airport"},
		"origin_airport_code":      {"SFO"},
		"destination_airport":      {"Los Angeles International Airport"},
		"destination_airport_code": {"LAX"},
		"scheduled_departure":      {"2024-10-23T14:30"},
		"scheduled_arrival":        {"2024-10-23 16:45"},
		"origin_timezone":          {"America/Los_Angeles"},
		"destination_timezone":     {"America/Los_Angeles"},
	}
}

// TestHandleCreateManualEvent_Success downloads an .ics built purely from
// the form, accepting both datetime separators.
func TestHandleCreateManualEvent_Success(t *testing.T) {
	s := newTestServer(t, &stubLookuper{})

	rec := postForm(s, "/create_manual_event", manualForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="UA123.ics"`)

	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "UA123")
	assert.Contains(t, body, "DTSTART;TZID=America/Los_Angeles:20241023T143000")
}

// TestHandleCreateManualEvent_MissingField re-renders the form naming the
// first absent field.
func TestHandleCreateManualEvent_MissingField(t *testing.T) {
	s := newTestServer(t, &stubLookuper{})

	form := manualForm()
	form.Del("airline_name")
	rec := postForm(s, "/create_manual_event", form)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required field: airline_name")
	// Submitted values survive the round trip.
	assert.Contains(t, rec.Body.String(), "UA123")
}

// TestHandleCreateManualEvent_BadAirportCode enforces the 3-letter rule.
func TestHandleCreateManualEvent_BadAirportCode(t *testing.T) {
	s := newTestServer(t, &stubLookuper{})

	form := manualForm()
	form.Set("origin_airport_code", "sfo")
	rec := postForm(s, "/create_manual_event", form)

	assert.Contains(t, rec.Body.String(), "must be 3 uppercase letters")
}

// TestHandleCreateManualEvent_BadDatetime reports the expected format.
func TestHandleCreateManualEvent_BadDatetime(t *testing.T) {
	s := newTestServer(t, &stubLookuper{})

	form := manualForm()
	form.Set("scheduled_departure", "23/10/2024 14:30")
	rec := postForm(s, "/create_manual_event", form)

	assert.Contains(t, rec.Body.String(), "Invalid datetime format")
}

// TestSessionStore_Expiry verifies that expired sessions are gone.
func TestSessionStore_Expiry(t *testing.T) {
	store := newSessionStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	id := store.put([]model.Flight{{FlightNumber: "SQ327"}})
	_, ok := store.get(id)
	assert.True(t, ok)

	current = current.Add(sessionTTL + time.Minute)
	_, ok = store.get(id)
	assert.False(t, ok)
}
