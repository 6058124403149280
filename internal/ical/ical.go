// Package ical renders flights as RFC 5545 iCalendar documents that
// calendar apps import as a single confirmed event.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

// prodID identifies the calendar generator. Kept byte-compatible with the
// files this tool has always produced so calendar apps dedupe re-imports.
const prodID = "-//eluceo/ical//2.0/EN"

// localTimeLayout is the iCalendar local date-time form used together with
// a TZID parameter.
const localTimeLayout = "20060102T150405"

// Calendar renders one flight as a serialized VCALENDAR with a single
// VEVENT. Departure and arrival carry their respective airport zones as
// TZID parameters, so the event displays correctly however the viewer's
// clock is set.
func Calendar(f *model.Flight) ([]byte, error) {
	return calendarAt(f, time.Now().UTC())
}

// calendarAt is Calendar with an injectable DTSTAMP clock for tests.
func calendarAt(f *model.Flight, now time.Time) ([]byte, error) {
	if err := f.Localize(); err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodRequest)

	event := cal.AddEvent(eventUID(f))
	event.SetSummary(fmt.Sprintf("🛫 %s %s ➡️ %s %s",
		f.AirlineName, f.OriginCode, f.DestinationCode, f.FlightNumber))
	event.SetLocation(f.OriginAirport)
	event.SetDescription(fmt.Sprintf("%s flight %s / Departs %s, %s",
		f.AirlineName, f.FlightNumber, f.OriginAirport, f.OriginCode))
	event.SetDtStampTime(now)
	event.SetStatus(ics.ObjectStatusConfirmed)

	event.SetProperty(ics.ComponentPropertyDtStart,
		f.ScheduledDeparture.Format(localTimeLayout),
		&ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{f.OriginTimezone}})
	event.SetProperty(ics.ComponentPropertyDtEnd,
		f.ScheduledArrival.Format(localTimeLayout),
		&ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{f.DestinationTimezone}})

	return []byte(cal.Serialize()), nil
}

// eventUID builds a stable event identifier from the flight number and
// departure date, so re-importing an updated file replaces the old event
// instead of duplicating it.
func eventUID(f *model.Flight) string {
	return fmt.Sprintf("%s-%s@flightcal",
		f.FlightNumber, f.ScheduledDeparture.Format("20060102"))
}

// Filename returns the download filename for a flight's calendar file.
func Filename(f *model.Flight) string {
	return f.FlightNumber + ".ics"
}
