package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
)

// SheetValues is a raw read of a sheet range.
type SheetValues struct {
	Sheet string
	Range string
	Rows  [][]string
}

type SheetService struct {
	gateway roundsheet.Gateway
	matches *MatchLoader
}

func NewSheetService(gateway roundsheet.Gateway, matches *MatchLoader) *SheetService {
	return &SheetService{gateway: gateway, matches: matches}
}

// ReadValues reads cells of a sheet; empty arguments fall back to the default
// source sheet and range.
func (s *SheetService) ReadValues(ctx context.Context, sheetName, cells string) (SheetValues, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.ReadValues")
	defer span.End()

	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = s.matches.cfg.DefaultSheet
	}
	cells = strings.TrimSpace(cells)
	if cells == "" {
		cells = s.matches.cfg.Range
	}
	if strings.Contains(cells, "!") {
		return SheetValues{}, fmt.Errorf("%w: range must not include a sheet name", ErrInvalidInput)
	}

	rows, err := s.gateway.ReadRange(ctx, sheetName, cells)
	if err != nil {
		return SheetValues{}, fmt.Errorf("read %s!%s: %w", sheetName, cells, err)
	}
	if rows == nil {
		rows = [][]string{}
	}

	return SheetValues{Sheet: sheetName, Range: cells, Rows: rows}, nil
}

// ListRoundMatches returns the source matches that belong to roundID.
func (s *SheetService) ListRoundMatches(ctx context.Context, roundID string, source SourceRequest) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.ListRoundMatches")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	matches, err := s.matches.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	return match.FilterByRound(matches, roundID), nil
}
