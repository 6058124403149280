// Package tzinfo provides the IANA timezone catalogue used by the manual
// entry form's timezone picker.
//
// The zone names are embedded (zones.txt) rather than enumerated from the
// host, because Go deliberately offers no way to list the zones in its
// timezone database and the host zoneinfo directory may not exist at all.
// Offsets are computed at request time, so daylight saving transitions are
// reflected automatically.
package tzinfo

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"time"

	// Embedded timezone database so every catalogue entry resolves even
	// when the host has no zoneinfo directory.
	_ "time/tzdata"
)

//go:embed zones.txt
var zonesRaw string

// Zone is one catalogue entry.
type Zone struct {
	// Name is the IANA zone name, e.g. "Asia/Singapore".
	Name string `json:"name"`

	// Offset is the zone's UTC offset at the reference instant.
	Offset time.Duration `json:"offset"`

	// Label is the picker display form, e.g. "Asia/Singapore (UTC+08:00)".
	Label string `json:"label"`
}

// Zones returns the catalogue with offsets valid at the given instant,
// sorted by offset and then by name. Zone names the timezone database
// cannot resolve are silently skipped so a trimmed database never breaks
// the picker.
func Zones(now time.Time) []Zone {
	names := strings.Split(strings.TrimSpace(zonesRaw), "\n")

	zones := make([]Zone, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			continue
		}
		_, offsetSecs := now.In(loc).Zone()
		offset := time.Duration(offsetSecs) * time.Second
		zones = append(zones, Zone{
			Name:   name,
			Offset: offset,
			Label:  fmt.Sprintf("%s (%s)", name, FormatOffset(offset)),
		})
	}

	sort.Slice(zones, func(i, j int) bool {
		if zones[i].Offset != zones[j].Offset {
			return zones[i].Offset < zones[j].Offset
		}
		return zones[i].Name < zones[j].Name
	})
	return zones
}

// FormatOffset renders a UTC offset as "UTC+08:00" / "UTC-03:30".
func FormatOffset(offset time.Duration) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := int(offset.Hours())
	minutes := int(offset.Minutes()) % 60
	return fmt.Sprintf("UTC%s%02d:%02d", sign, hours, minutes)
}
