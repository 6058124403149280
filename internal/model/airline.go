package model

import "fmt"

// airlineNames maps IATA carrier prefixes to marketing names. Used as a
// fallback when the flight-data API does not include the airline for a
// schedule entry, which happens regularly for historical records.
var airlineNames = map[string]string{
	"AA": "American Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"AS": "Alaska Airlines",
	"AZ": "Alitalia",
	"BA": "British Airways",
	"BE": "Brussels Airlines",
	"CA": "Air China",
	"CI": "China Airlines",
	"CM": "China Eastern Airlines",
	"CX": "Cathay Pacific",
	"CZ": "China Southern Airlines",
	"DL": "Delta Air Lines",
	"EK": "Emirates",
	"EY": "Etihad Airways",
	"FI": "Icelandair",
	"G3": "GOL",
	"GA": "Garuda Indonesia",
	"HA": "Hawaiian Airlines",
	"IB": "Iberia",
	"JL": "Japan Airlines",
	"KL": "KLM",
	"LA": "LATAM Airlines",
	"LH": "Lufthansa",
	"LX": "Swiss International Air Lines",
	"MH": "Malaysia Airlines",
	"NH": "All Nippon Airways",
	"NZ": "Air New Zealand",
	"OS": "Austrian Airlines",
	"PR": "Philippine Airlines",
	"QF": "Qantas",
	"QR": "Qatar Airways",
	"RJ": "Royal Jordanian",
	"SK": "SAS",
	"SN": "Brussels Airlines",
	"SQ": "Singapore Airlines",
	"SW": "Southwest Airlines",
	"TG": "Thai Airways",
	"TK": "Turkish Airlines",
	"TP": "TAP Air Portugal",
	"UA": "United Airlines",
	"VN": "Vietnam Airlines",
	"VX": "Virgin America",
	"WN": "Southwest Airlines",
}

// ResolveAirlineName picks the airline name for a flight. The name reported
// by the API wins when present (some records carry a literal "None" string,
// which counts as absent). Otherwise the carrier prefix of the flight number
// is mapped through the known-carrier table; unmapped prefixes render as
// "Airline (XX)" and numbers without a prefix as "Unknown Airline".
func ResolveAirlineName(apiName, flightNumber string) string {
	if apiName != "" && apiName != "None" {
		return apiName
	}

	prefix := CarrierPrefix(flightNumber)
	if prefix == "" {
		return "Unknown Airline"
	}
	if name, ok := airlineNames[prefix]; ok {
		return name
	}
	return fmt.Sprintf("Airline (%s)", prefix)
}
