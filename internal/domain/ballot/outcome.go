package ballot

import (
	"regexp"
	"strings"
)

// Display values written to round sheet cells.
const (
	Home        = "Local"
	Draw        = "Empate"
	Away        = "Visitante"
	NotSelected = "No seleccionado"
)

// Raw selection tokens. The form posts gana_local_<team> / empate /
// gana_visitante_<team>; home_win / draw / away_win are accepted too.
const (
	TokenHomeWin     = "home_win"
	TokenDraw        = "draw"
	TokenAwayWin     = "away_win"
	tokenHomePrefix  = "gana_local_"
	tokenDrawSpanish = "empate"
	tokenAwayPrefix  = "gana_visitante_"
)

var exactScoreRe = regexp.MustCompile(`^\d+-\d+$`)

// Normalize maps a raw selection token to the value stored in the sheet.
// Unknown or empty tokens map to NotSelected.
func Normalize(raw string) string {
	switch {
	case raw == "":
		return NotSelected
	case strings.HasPrefix(raw, tokenHomePrefix), raw == TokenHomeWin:
		return Home
	case raw == tokenDrawSpanish, raw == TokenDraw:
		return Draw
	case strings.HasPrefix(raw, tokenAwayPrefix), raw == TokenAwayWin:
		return Away
	case IsExactScore(raw):
		return raw
	default:
		return NotSelected
	}
}

// IsExactScore reports whether raw is a "<home>-<away>" score prediction.
func IsExactScore(raw string) bool {
	return exactScoreRe.MatchString(raw)
}
