package match

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelSeparator joins home and away team names in a header label.
const LabelSeparator = " vs "

// Match is one fixture listed in a source sheet for a round.
type Match struct {
	ID       string
	HomeTeam string
	AwayTeam string
	League   string
	RoundID  string
	Date     string
}

// Label returns the header label for the match.
func (m Match) Label() string {
	return m.HomeTeam + LabelSeparator + m.AwayTeam
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.HomeTeam) == "" {
		return fmt.Errorf("match home team is required")
	}
	if strings.TrimSpace(m.AwayTeam) == "" {
		return fmt.Errorf("match away team is required")
	}

	return nil
}

// Labels derives one header label per match, in input order.
//
// When several matches share a home/away pair, the one with the lowest id keeps
// the plain label and the others get their id appended, so a label always names
// the same match however the source sheet is ordered.
func Labels(matches []Match) []string {
	owner := make(map[string]int, len(matches))
	for i, m := range matches {
		label := m.Label()
		if j, ok := owner[label]; !ok || lessID(m.ID, matches[j].ID) {
			owner[label] = i
		}
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		label := m.Label()
		if owner[label] != i {
			label = fmt.Sprintf("%s (#%s)", label, m.ID)
		}
		out[i] = label
	}

	return out
}

// IndexByLabel maps each derived label to its match.
func IndexByLabel(matches []Match) map[string]Match {
	labels := Labels(matches)
	out := make(map[string]Match, len(matches))
	for i, label := range labels {
		if _, taken := out[label]; !taken {
			out[label] = matches[i]
		}
	}

	return out
}

// Resolver finds the match a header cell stands for.
type Resolver struct {
	byLabel map[string]Match
	byID    map[string]Match
}

func NewResolver(matches []Match) Resolver {
	byID := make(map[string]Match, len(matches))
	for _, m := range matches {
		if _, taken := byID[m.ID]; !taken {
			byID[m.ID] = m
		}
	}
	return Resolver{byLabel: IndexByLabel(matches), byID: byID}
}

// Resolve looks a header cell up. A cell ending in "(#<id>)" whose id is a
// known match resolves to that match; anything else is matched by label.
func (r Resolver) Resolve(header string) (Match, bool) {
	if id, ok := LabelID(header); ok {
		if m, found := r.byID[id]; found && strings.HasPrefix(header, m.Label()+" ") {
			return m, true
		}
	}
	m, ok := r.byLabel[header]
	return m, ok
}

// LabelID extracts the id of a disambiguated "<home> vs <away> (#<id>)" label.
func LabelID(label string) (string, bool) {
	if !strings.HasSuffix(label, ")") {
		return "", false
	}
	open := strings.LastIndex(label, " (#")
	if open < 0 {
		return "", false
	}
	id := label[open+len(" (#") : len(label)-1]
	if id == "" {
		return "", false
	}
	return id, true
}

func lessID(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}
