package ballot

import (
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
)

func mexicoCity(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadLocation("")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestProject_SingleMatchScenario(t *testing.T) {
	loc := mexicoCity(t)
	matches := []match.Match{{ID: "1", HomeTeam: "Cruz Azul", AwayTeam: "Toluca"}}
	header := roundsheet.Reconcile(nil, matches).Header
	b := Ballot{
		SubmitterName: "Ana",
		Selections:    Selection{"1": TokenHomeWin},
		RoundID:       "10",
		SubmittedAt:   time.Date(2026, 10, 14, 21, 5, 0, 0, time.UTC),
	}

	got := Project(header, b, matches, loc)
	want := []string{"Ana", "Local", "14/10/2026, 03:05 p.m."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Project()=%v want=%v", got, want)
	}
}

func TestProject_ExactScoreAndMissingSelections(t *testing.T) {
	matches := []match.Match{
		{ID: "1", HomeTeam: "A", AwayTeam: "B"},
		{ID: "2", HomeTeam: "C", AwayTeam: "D"},
	}
	header := []string{"Nombre", "A vs B", "X vs Y", "C vs D", "Fecha de envío"}
	b := Ballot{
		SubmitterName: "Luis",
		Selections:    Selection{"1": "3-2", "99": "home_win"},
		SubmittedAt:   time.Date(2026, 10, 14, 6, 0, 0, 0, time.UTC),
	}

	got := Project(header, b, matches, mexicoCity(t))
	if len(got) != len(header) {
		t.Fatalf("row length %d, want %d", len(got), len(header))
	}
	if got[1] != "3-2" {
		t.Fatalf("exact score cell=%q", got[1])
	}
	if got[2] != NotSelected {
		t.Fatalf("unknown column cell=%q", got[2])
	}
	if got[3] != NotSelected {
		t.Fatalf("unselected match cell=%q", got[3])
	}
	if got[4] != "14/10/2026, 12:00 a.m." {
		t.Fatalf("timestamp cell=%q", got[4])
	}
}

func TestProject_EmptyBallotFillsSentinel(t *testing.T) {
	matches := []match.Match{
		{ID: "1", HomeTeam: "A", AwayTeam: "B"},
		{ID: "2", HomeTeam: "C", AwayTeam: "D"},
		{ID: "3", HomeTeam: "E", AwayTeam: "F"},
	}
	header := roundsheet.Reconcile(nil, matches).Header
	b := Ballot{SubmitterName: "Eva", SubmittedAt: time.Now()}

	got := Project(header, b, matches, time.UTC)
	if len(got) != len(header) {
		t.Fatalf("row length %d, want %d", len(got), len(header))
	}
	for i := 1; i < len(got)-1; i++ {
		if got[i] != NotSelected {
			t.Fatalf("cell %d=%q want sentinel", i, got[i])
		}
	}
	if got[0] != "Eva" || got[len(got)-1] == "" {
		t.Fatalf("unexpected fixed cells: %v", got)
	}
}

func TestProject_DegenerateHeaders(t *testing.T) {
	b := Ballot{SubmitterName: "Ana", SubmittedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)}

	if got := Project(nil, b, nil, time.UTC); len(got) != 0 {
		t.Fatalf("expected empty row, got %v", got)
	}
	if got := Project([]string{"Nombre"}, b, nil, time.UTC); !reflect.DeepEqual(got, []string{"Ana"}) {
		t.Fatalf("unexpected one-cell row %v", got)
	}
	if got := Project([]string{"Nombre", "Fecha de envío"}, b, nil, time.UTC); !reflect.DeepEqual(got, []string{"Ana", "02/01/2026, 03:04 p.m."}) {
		t.Fatalf("unexpected two-cell row %v", got)
	}
}

func TestProject_RepeatedFixtureUsesOwnSelection(t *testing.T) {
	matches := []match.Match{
		{ID: "1", HomeTeam: "A", AwayTeam: "B"},
		{ID: "7", HomeTeam: "A", AwayTeam: "B"},
	}
	header := roundsheet.Reconcile(nil, matches).Header
	b := Ballot{
		SubmitterName: "Ana",
		Selections:    Selection{"1": "empate", "7": "gana_visitante_b"},
		SubmittedAt:   time.Now(),
	}

	got := Project(header, b, matches, time.UTC)
	if got[1] != Draw || got[2] != Away {
		t.Fatalf("unexpected row %v", got)
	}
}

func TestFormatTimestamp_Noon(t *testing.T) {
	ts := time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)
	if got := FormatTimestamp(ts, mexicoCity(t)); got != "14/10/2026, 12:30 p.m." {
		t.Fatalf("FormatTimestamp()=%q", got)
	}
	if got := FormatTimestamp(ts, nil); got != "14/10/2026, 06:30 p.m." {
		t.Fatalf("FormatTimestamp(nil loc)=%q", got)
	}
}

func TestProject_RepeatedFixtureSurvivesSourceReorder(t *testing.T) {
	loc := mexicoCity(t)
	first := []match.Match{
		{ID: "1", HomeTeam: "A", AwayTeam: "B"},
		{ID: "7", HomeTeam: "A", AwayTeam: "B"},
	}
	header := roundsheet.Reconcile(nil, first).Header

	reordered := []match.Match{first[1], first[0]}
	rec := roundsheet.Reconcile(header, reordered)
	if rec.Changed() {
		t.Fatalf("reordered source should not change header, inserted=%v", rec.Inserted)
	}

	b := Ballot{
		SubmitterName: "Ana",
		Selections:    Selection{"1": TokenHomeWin, "7": TokenAwayWin},
		SubmittedAt:   time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC),
	}
	got := Project(rec.Header, b, reordered, loc)
	want := []string{"Ana", Home, Away, "14/10/2026, 12:00 p.m."}
	if !reflect.DeepEqual(rec.Header, []string{"Nombre", "A vs B", "A vs B (#7)", "Fecha de envío"}) {
		t.Fatalf("unexpected header: %v", rec.Header)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Project()=%v want=%v", got, want)
	}
}

func TestProject_ResolvesDisambiguatedHeaderByID(t *testing.T) {
	// Match 2 has since been removed from the source sheet, so match 9 now
	// derives the plain label but its column is still the suffixed one.
	header := []string{"Nombre", "A vs B", "A vs B (#9)", "Fecha de envío"}
	matches := []match.Match{{ID: "9", HomeTeam: "A", AwayTeam: "B"}}
	b := Ballot{
		SubmitterName: "Luis",
		Selections:    Selection{"9": "2-1"},
		SubmittedAt:   time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC),
	}

	got := Project(header, b, matches, mexicoCity(t))
	if got[2] != "2-1" {
		t.Fatalf("suffixed column cell=%q, want 2-1 (row %v)", got[2], got)
	}
}
