package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/ballot"
	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
	idgen "github.com/riskibarqy/quiniela/internal/platform/id"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
)

const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// SubmissionRecorder receives submission counters; observability implements it.
type SubmissionRecorder interface {
	SubmissionFinished(outcome string, ballots int)
	HeaderColumnsAdded(count int)
}

type nopRecorder struct{}

func (nopRecorder) SubmissionFinished(string, int) {}
func (nopRecorder) HeaderColumnsAdded(int)         {}

type SubmissionConfig struct {
	SheetPrefix string
	Location    *time.Location
	HeaderStyle roundsheet.HeaderStyle
	GridRows    int
	GridColumns int
}

// SubmitInput is one network submission: the pending ballots of a round.
type SubmitInput struct {
	RoundID string
	Source  SourceRequest
	Ballots []ballot.Ballot
}

type SubmitResult struct {
	SubmissionID    string
	SheetName       string
	SheetID         int64
	Header          []string
	Rows            [][]string
	CreatedSheet    bool
	InsertedColumns []string
}

// SubmissionService writes ballots to the round sheet.
//
// The pipeline is list/read -> reconcile -> project -> append. Steps are not
// rolled back: a failed append after a header update leaves the new header in
// place, and a retry reconciles to the same header before appending again.
// Submissions for one round sheet are serialized inside this process only.
type SubmissionService struct {
	gateway  roundsheet.Gateway
	matches  *MatchLoader
	locks    *resilience.KeyedMutex
	ids      idgen.Generator
	recorder SubmissionRecorder
	cfg      SubmissionConfig
	logger   *logging.Logger
}

func NewSubmissionService(
	gateway roundsheet.Gateway,
	matches *MatchLoader,
	ids idgen.Generator,
	recorder SubmissionRecorder,
	cfg SubmissionConfig,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.SheetPrefix == "" {
		cfg.SheetPrefix = roundsheet.DefaultPrefix
	}
	if cfg.HeaderStyle == (roundsheet.HeaderStyle{}) {
		cfg.HeaderStyle = roundsheet.DefaultHeaderStyle
	}
	if cfg.GridRows <= 0 {
		cfg.GridRows = roundsheet.DefaultRows
	}
	if cfg.GridColumns <= 0 {
		cfg.GridColumns = roundsheet.DefaultColumns
	}

	return &SubmissionService{
		gateway:  gateway,
		matches:  matches,
		locks:    &resilience.KeyedMutex{},
		ids:      ids,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, input SubmitInput) (SubmitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Submit")
	defer span.End()

	ballots, err := s.prepareBallots(input)
	if err != nil {
		s.recorder.SubmissionFinished(OutcomeInvalid, len(input.Ballots))
		return SubmitResult{}, err
	}

	result, err := s.submit(ctx, strings.TrimSpace(input.RoundID), input.Source, ballots)
	if err != nil {
		s.recorder.SubmissionFinished(OutcomeFailed, len(ballots))
		return SubmitResult{}, err
	}
	s.recorder.SubmissionFinished(OutcomeSuccess, len(ballots))

	return result, nil
}

func (s *SubmissionService) prepareBallots(input SubmitInput) ([]ballot.Ballot, error) {
	roundID := strings.TrimSpace(input.RoundID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	if len(input.Ballots) == 0 {
		return nil, fmt.Errorf("%w: at least one ballot is required", ErrInvalidInput)
	}

	out := make([]ballot.Ballot, 0, len(input.Ballots))
	for i, b := range input.Ballots {
		b.SubmitterName = strings.TrimSpace(b.SubmitterName)
		if strings.TrimSpace(b.RoundID) == "" {
			b.RoundID = roundID
		}
		if b.League == "" {
			b.League = input.Source.League
		}
		if strings.TrimSpace(b.RoundID) != roundID {
			return nil, fmt.Errorf("%w: ballot %d belongs to round %q, batch is for round %q", ErrInvalidInput, i, b.RoundID, roundID)
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%w: ballot %d: %v", ErrInvalidInput, i, err)
		}
		out = append(out, b)
	}

	return out, nil
}

func (s *SubmissionService) submit(ctx context.Context, roundID string, source SourceRequest, ballots []ballot.Ballot) (SubmitResult, error) {
	submissionID, err := s.ids.NewID()
	if err != nil {
		return SubmitResult{}, fmt.Errorf("generate submission id: %w", err)
	}
	sheetName := roundsheet.Name(s.cfg.SheetPrefix, roundID)
	logger := s.logger.With("submission_id", submissionID, "sheet", sheetName)

	unlock, err := s.locks.Lock(ctx, sheetName)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("wait for round sheet %s: %w", sheetName, err)
	}
	defer unlock()

	matches, err := s.matches.Load(ctx, source)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("load matches: %w", err)
	}

	sheets, err := s.gateway.ListSheets(ctx)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("list sheets: %w", err)
	}
	info, exists := roundsheet.FindByTitle(sheets, sheetName)

	var existing []string
	if exists {
		rows, err := s.gateway.ReadRange(ctx, sheetName, "1:1")
		if err != nil {
			return SubmitResult{}, fmt.Errorf("read header of %s: %w", sheetName, err)
		}
		if len(rows) > 0 {
			existing = rows[0]
		}
	}

	rec := roundsheet.Reconcile(existing, matches)
	if !exists {
		sheetID, err := s.gateway.CreateSheet(ctx, sheetName, s.cfg.GridRows, s.cfg.GridColumns)
		if err != nil {
			return SubmitResult{}, fmt.Errorf("create sheet %s: %w", sheetName, err)
		}
		info = roundsheet.SheetInfo{ID: sheetID, Title: sheetName}
		logger.InfoContext(ctx, "round sheet created", "sheet_id", sheetID)
	}
	if rec.Changed() {
		if err := s.gateway.WriteHeader(ctx, sheetName, rec.Header); err != nil {
			return SubmitResult{}, fmt.Errorf("write header of %s: %w", sheetName, err)
		}
		s.recorder.HeaderColumnsAdded(len(rec.Inserted))
		logger.InfoContext(ctx, "round sheet header written",
			"columns", len(rec.Header),
			"created", rec.Created,
			"inserted", rec.Inserted,
		)
	}
	if rec.Created {
		if err := s.gateway.StyleHeader(ctx, info.ID, len(rec.Header), s.cfg.HeaderStyle); err != nil {
			return SubmitResult{}, fmt.Errorf("style header of %s: %w", sheetName, err)
		}
	}

	rows := make([][]string, 0, len(ballots))
	for _, b := range ballots {
		rows = append(rows, ballot.Project(rec.Header, b, matches, s.cfg.Location))
	}

	if err := s.gateway.AppendRows(ctx, sheetName, rows); err != nil {
		return SubmitResult{}, fmt.Errorf("append rows to %s: %w", sheetName, err)
	}
	logger.InfoContext(ctx, "ballots appended", "rows", len(rows), "matches", len(matches))

	return SubmitResult{
		SubmissionID:    submissionID,
		SheetName:       sheetName,
		SheetID:         info.ID,
		Header:          rec.Header,
		Rows:            rows,
		CreatedSheet:    !exists,
		InsertedColumns: rec.Inserted,
	}, nil
}
