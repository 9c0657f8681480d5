package roundsheet

import (
	"slices"

	"github.com/riskibarqy/quiniela/internal/domain/match"
)

// Reconciliation is the header a round sheet must have after a submission.
type Reconciliation struct {
	Header   []string
	Created  bool
	Inserted []string
}

// Changed reports whether the physical header row has to be rewritten.
func (r Reconciliation) Changed() bool {
	return r.Created || len(r.Inserted) > 0
}

// Reconcile computes the header required to store ballots for matches.
//
// Without an existing header a full one is built. Otherwise labels not yet present
// are inserted right before the trailing timestamp column (or appended when that
// column is missing); existing cells never move relative to each other.
func Reconcile(existing []string, matches []match.Match) Reconciliation {
	labels := match.Labels(matches)

	if len(existing) == 0 {
		header := make([]string, 0, len(labels)+2)
		header = append(header, SubmitterLabel)
		header = append(header, labels...)
		header = append(header, SubmittedAtLabel)
		return Reconciliation{Header: header, Created: true}
	}

	present := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		present[h] = struct{}{}
	}

	var missing []string
	for _, label := range labels {
		if _, ok := present[label]; ok {
			continue
		}
		present[label] = struct{}{}
		missing = append(missing, label)
	}

	header := slices.Clone(existing)
	if len(missing) == 0 {
		return Reconciliation{Header: header}
	}

	insertAt := slices.Index(header, SubmittedAtLabel)
	if insertAt < 0 {
		insertAt = len(header)
	}
	header = slices.Insert(header, insertAt, missing...)

	return Reconciliation{Header: header, Inserted: missing}
}
