package ballot

import (
	"fmt"
	"strings"
	"time"
)

// Selection maps a match id to the raw outcome token picked for it.
type Selection map[string]string

// Ballot is one submitter's predictions for a round.
type Ballot struct {
	SubmitterName string
	Selections    Selection
	RoundID       string
	League        string
	SubmittedAt   time.Time
}

func (b Ballot) Validate() error {
	if strings.TrimSpace(b.SubmitterName) == "" {
		return fmt.Errorf("submitter name is required")
	}
	if strings.TrimSpace(b.RoundID) == "" {
		return fmt.Errorf("round id is required")
	}
	if b.SubmittedAt.IsZero() {
		return fmt.Errorf("submission time is required")
	}

	return nil
}

// Pick returns the normalized outcome for a match id.
func (b Ballot) Pick(matchID string) string {
	if b.Selections == nil {
		return NotSelected
	}
	return Normalize(b.Selections[matchID])
}
