package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/quiniela/internal/domain/ballot"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

// jornada is the round id; the form posts it as a string or a bare number.
type jornada string

func (j *jornada) UnmarshalJSON(raw []byte) error {
	text := strings.TrimSpace(string(raw))
	switch {
	case text == "null":
		*j = ""
		return nil
	case strings.HasPrefix(text, `"`):
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return err
		}
		*j = jornada(s)
		return nil
	case text != "" && (text[0] == '-' || (text[0] >= '0' && text[0] <= '9')):
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("jornada must be a string or a number: %w", err)
		}
		*j = jornada(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	default:
		return fmt.Errorf("jornada must be a string or a number, got %s", text)
	}
}

// Field names follow the form posted by the quiniela frontend.
type quinielaRequest struct {
	Nombre             string            `json:"nombre" validate:"required,max=200"`
	Selecciones        map[string]string `json:"selecciones"`
	Jornada            jornada           `json:"jornada" validate:"required,max=50"`
	Liga               string            `json:"liga" validate:"omitempty,max=100"`
	SourceSheet        string            `json:"sourceSheet" validate:"omitempty,max=100"`
	IncludeBothLeagues bool              `json:"includeBothLeagues"`
	Fecha              string            `json:"fecha"`
}

type quinielaBatchRequest struct {
	Jornada            jornada                 `json:"jornada" validate:"required,max=50"`
	Liga               string                  `json:"liga" validate:"omitempty,max=100"`
	SourceSheet        string                  `json:"sourceSheet" validate:"omitempty,max=100"`
	IncludeBothLeagues bool                    `json:"includeBothLeagues"`
	Ballots            []quinielaBallotRequest `json:"ballots" validate:"required,min=1,max=200,dive"`
}

type quinielaBallotRequest struct {
	Nombre      string            `json:"nombre" validate:"required,max=200"`
	Selecciones map[string]string `json:"selecciones"`
	Fecha       string            `json:"fecha"`
}

type submitQuinielaDTO struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	SheetName       string   `json:"sheetName"`
	SheetID         int64    `json:"sheetId"`
	SubmissionID    string   `json:"submissionId"`
	CreatedSheet    bool     `json:"createdSheet"`
	InsertedColumns []string `json:"insertedColumns,omitempty"`
	Header          []string `json:"header"`
	Data            any      `json:"data"`
}

type shareQuinielaDTO struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}

type sheetValuesDTO struct {
	Message  string     `json:"message"`
	Sheet    string     `json:"sheet"`
	Range    string     `json:"range"`
	Data     [][]string `json:"data"`
	RowCount int        `json:"rowCount"`
}

type matchDTO struct {
	MatchID  string `json:"match_id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	League   string `json:"league"`
	Jornada  string `json:"jornada"`
	Date     string `json:"date,omitempty"`
	Label    string `json:"label"`
}

type roundMatchesDTO struct {
	Jornada string     `json:"jornada"`
	Count   int        `json:"count"`
	Matches []matchDTO `json:"matches"`
}

func (r quinielaRequest) source() usecase.SourceRequest {
	return usecase.SourceRequest{
		SourceSheet:        r.SourceSheet,
		League:             r.Liga,
		IncludeBothLeagues: r.IncludeBothLeagues,
	}
}

func (r quinielaBatchRequest) source() usecase.SourceRequest {
	return usecase.SourceRequest{
		SourceSheet:        r.SourceSheet,
		League:             r.Liga,
		IncludeBothLeagues: r.IncludeBothLeagues,
	}
}

// parseSubmittedAt reads the client timestamp; an empty value means now.
func parseSubmittedAt(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha must be an RFC 3339 timestamp: %q", usecase.ErrInvalidInput, raw)
	}

	return t, nil
}

func toBallot(nombre string, selecciones map[string]string, jornada, liga string, submittedAt time.Time) ballot.Ballot {
	return ballot.Ballot{
		SubmitterName: nombre,
		Selections:    ballot.Selection(selecciones),
		RoundID:       jornada,
		League:        liga,
		SubmittedAt:   submittedAt,
	}
}

func submitResultToDTO(result usecase.SubmitResult, message string, data any) submitQuinielaDTO {
	return submitQuinielaDTO{
		Success:         true,
		Message:         message,
		SheetName:       result.SheetName,
		SheetID:         result.SheetID,
		SubmissionID:    result.SubmissionID,
		CreatedSheet:    result.CreatedSheet,
		InsertedColumns: result.InsertedColumns,
		Header:          result.Header,
		Data:            data,
	}
}

func matchesToDTO(matches []match.Match) []matchDTO {
	labels := match.Labels(matches)
	out := make([]matchDTO, 0, len(matches))
	for i, m := range matches {
		out = append(out, matchDTO{
			MatchID:  m.ID,
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,
			League:   m.League,
			Jornada:  m.RoundID,
			Date:     m.Date,
			Label:    labels[i],
		})
	}

	return out
}
