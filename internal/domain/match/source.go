package match

import "strings"

// Source column order of a match sheet; row 0 is a header and is skipped.
const (
	colID = iota
	colHomeTeam
	colAwayTeam
	colLeague
	colRound
	colDate
)

// ParseRows converts raw sheet rows into matches. The first row is a header.
// Rows failing Validate are skipped; missing cells read as empty strings.
// Team names are kept verbatim since existing round sheet headers were built
// from them.
func ParseRows(rows [][]string) []Match {
	if len(rows) <= 1 {
		return nil
	}

	out := make([]Match, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := Match{
			ID:       strings.TrimSpace(cell(row, colID)),
			HomeTeam: cell(row, colHomeTeam),
			AwayTeam: cell(row, colAwayTeam),
			League:   cell(row, colLeague),
			RoundID:  strings.TrimSpace(cell(row, colRound)),
			Date:     cell(row, colDate),
		}
		if m.Validate() != nil {
			continue
		}
		out = append(out, m)
	}

	return out
}

// FilterByRound keeps matches of the round. Matches that carry no round id are
// kept too, since international sheets often leave the jornada column empty.
func FilterByRound(matches []Match, roundID string) []Match {
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return matches
	}

	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.RoundID == "" || m.RoundID == roundID {
			out = append(out, m)
		}
	}

	return out
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
