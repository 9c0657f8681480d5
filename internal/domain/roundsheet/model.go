package roundsheet

import "strings"

// Fixed header labels of a round sheet.
const (
	SubmitterLabel   = "Nombre"
	SubmittedAtLabel = "Fecha de envío"
)

const (
	DefaultPrefix  = "J"
	DefaultRows    = 1000
	DefaultColumns = 50
)

// SheetInfo identifies one tab of the spreadsheet.
type SheetInfo struct {
	ID    int64
	Title string
}

// Color is an RGB triple in the 0..1 range used by the Sheets API.
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// HeaderStyle is applied to row 1 of a freshly created round sheet.
type HeaderStyle struct {
	Bold       bool
	Foreground Color
	Background Color
}

var DefaultHeaderStyle = HeaderStyle{
	Bold:       true,
	Foreground: Color{Red: 1, Green: 1, Blue: 1},
	Background: Color{Red: 0.2, Green: 0.6, Blue: 1},
}

// Name returns the tab title holding the ballots of a round.
func Name(prefix, roundID string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + strings.TrimSpace(roundID)
}

func FindByTitle(sheets []SheetInfo, title string) (SheetInfo, bool) {
	for _, s := range sheets {
		if s.Title == title {
			return s, true
		}
	}
	return SheetInfo{}, false
}
