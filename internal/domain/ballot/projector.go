package ballot

import (
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/quiniela/internal/domain/match"
)

const DefaultTimezone = "America/Mexico_City"

// Project renders a ballot as a row aligned with header.
//
// Header cells that do not resolve to a match get NotSelected; selections for
// matches without a column are dropped. The row always has len(header) cells.
func Project(header []string, b Ballot, matches []match.Match, loc *time.Location) []string {
	row := make([]string, len(header))
	if len(row) == 0 {
		return row
	}

	row[0] = b.SubmitterName
	if len(row) == 1 {
		return row
	}

	resolver := match.NewResolver(matches)
	for i := 1; i < len(header)-1; i++ {
		m, ok := resolver.Resolve(header[i])
		if !ok {
			row[i] = NotSelected
			continue
		}
		row[i] = b.Pick(m.ID)
	}
	row[len(row)-1] = FormatTimestamp(b.SubmittedAt, loc)

	return row
}

// FormatTimestamp renders t as "dd/mm/yyyy, hh:mm a.m." in loc.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)

	meridiem := "a.m."
	if local.Hour() >= 12 {
		meridiem = "p.m."
	}

	return local.Format("02/01/2006, 03:04") + " " + meridiem
}

// LoadLocation resolves a timezone name, falling back to DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	return time.LoadLocation(name)
}
