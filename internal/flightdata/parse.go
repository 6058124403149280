package flightdata

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

// listResponse mirrors the envelope of the flight list endpoint. Only the
// fields flightcal consumes are declared; everything else is ignored.
type listResponse struct {
	Result struct {
		Response struct {
			Data flightList `json:"data"`
		} `json:"response"`
	} `json:"result"`
}

// flightList tolerates both payload shapes the endpoint produces: usually a
// JSON array, but occasionally an object keyed by row index. Object entries
// are ordered by scheduled departure after collection, since JSON object
// key order is not meaningful.
type flightList []rawFlight

// UnmarshalJSON implements the array-or-object tolerance.
func (l *flightList) UnmarshalJSON(data []byte) error {
	var asList []rawFlight
	if err := json.Unmarshal(data, &asList); err == nil {
		*l = asList
		return nil
	}

	var asMap map[string]rawFlight
	if err := json.Unmarshal(data, &asMap); err != nil {
		return err
	}
	entries := lo.Values(asMap)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Time.Scheduled.Departure < entries[j].Time.Scheduled.Departure
	})
	*l = entries
	return nil
}

// rawFlight is one schedule entry as the endpoint reports it.
type rawFlight struct {
	Identification struct {
		Number struct {
			Default string `json:"default"`
		} `json:"number"`
	} `json:"identification"`

	// Airline may be absent entirely for historical entries.
	Airline *struct {
		Name string `json:"name"`
	} `json:"airline"`

	Airport struct {
		Origin      *rawAirport `json:"origin"`
		Destination *rawAirport `json:"destination"`
	} `json:"airport"`

	Time struct {
		Scheduled struct {
			// Departure and Arrival are Unix seconds in UTC.
			Departure int64 `json:"departure"`
			Arrival   int64 `json:"arrival"`
		} `json:"scheduled"`
	} `json:"time"`
}

// rawAirport is the airport sub-object of a schedule entry.
type rawAirport struct {
	Name string `json:"name"`
	Code struct {
		IATA string `json:"iata"`
	} `json:"code"`
	Timezone struct {
		Name string `json:"name"`
	} `json:"timezone"`
}

// Flights converts the decoded payload into model.Flight values. Entries
// missing either airport or a scheduled departure are skipped: they are
// diverted/cancelled placeholders the calendar flow cannot use.
func (r *listResponse) Flights() []model.Flight {
	entries := r.Result.Response.Data
	flights := make([]model.Flight, 0, len(entries))
	for i := range entries {
		if f, ok := entries[i].toFlight(); ok {
			flights = append(flights, f)
		}
	}
	return flights
}

// toFlight maps one raw entry to the domain type. The boolean reports
// whether the entry carried enough data to be usable.
func (r *rawFlight) toFlight() (model.Flight, bool) {
	if r.Airport.Origin == nil || r.Airport.Destination == nil {
		return model.Flight{}, false
	}
	if r.Time.Scheduled.Departure == 0 {
		return model.Flight{}, false
	}

	number := r.Identification.Number.Default
	apiAirline := ""
	if r.Airline != nil {
		apiAirline = r.Airline.Name
	}

	return model.Flight{
		FlightNumber:        number,
		AirlineName:         model.ResolveAirlineName(apiAirline, number),
		OriginAirport:       r.Airport.Origin.Name,
		DestinationAirport:  r.Airport.Destination.Name,
		OriginCode:          r.Airport.Origin.Code.IATA,
		DestinationCode:     r.Airport.Destination.Code.IATA,
		OriginTimezone:      r.Airport.Origin.Timezone.Name,
		DestinationTimezone: r.Airport.Destination.Timezone.Name,
		ScheduledDeparture:  time.Unix(r.Time.Scheduled.Departure, 0).UTC(),
		ScheduledArrival:    time.Unix(r.Time.Scheduled.Arrival, 0).UTC(),
	}, true
}

// ByDate filters flights to those departing on the given UTC calendar date.
func ByDate(flights []model.Flight, date time.Time) []model.Flight {
	want := date.UTC().Format("20060102")
	return lo.Filter(flights, func(f model.Flight, _ int) bool {
		return f.ScheduledDeparture.UTC().Format("20060102") == want
	})
}

// DedupeByDepartureTime keeps the first flight per distinct departure time
// of day, ignoring the date. Schedule history repeats the same rotation
// daily; one representative per departure slot is enough to guess from.
func DedupeByDepartureTime(flights []model.Flight) []model.Flight {
	return lo.UniqBy(flights, func(f model.Flight) string {
		return f.ScheduledDeparture.UTC().Format("1504")
	})
}
