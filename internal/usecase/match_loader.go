package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
	"github.com/riskibarqy/quiniela/internal/platform/cache"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultSourceSheet        = "Liga MX"
	DefaultInternationalSheet = "Ligas internacionales"
	DefaultSourceRange        = "A1:Z1000"
)

// SourceRequest selects which match sheets feed a submission.
type SourceRequest struct {
	SourceSheet        string
	League             string
	IncludeBothLeagues bool
}

type MatchLoaderConfig struct {
	DefaultSheet       string
	InternationalSheet string
	Range              string
	// CacheTTL keeps parsed source sheets for that long; zero reads the
	// sheets again on every call.
	CacheTTL time.Duration
}

// MatchLoader reads the organizer-maintained match sheets.
type MatchLoader struct {
	gateway roundsheet.Gateway
	cfg     MatchLoaderConfig
	cache   *cache.Store[[]match.Match]
}

func NewMatchLoader(gateway roundsheet.Gateway, cfg MatchLoaderConfig) *MatchLoader {
	if strings.TrimSpace(cfg.DefaultSheet) == "" {
		cfg.DefaultSheet = DefaultSourceSheet
	}
	if strings.TrimSpace(cfg.InternationalSheet) == "" {
		cfg.InternationalSheet = DefaultInternationalSheet
	}
	if strings.TrimSpace(cfg.Range) == "" {
		cfg.Range = DefaultSourceRange
	}

	l := &MatchLoader{gateway: gateway, cfg: cfg}
	if cfg.CacheTTL > 0 {
		l.cache = cache.NewStore[[]match.Match](cfg.CacheTTL)
	}
	return l
}

// Sheets lists the source sheets a request reads, in concatenation order.
func (l *MatchLoader) Sheets(req SourceRequest) []string {
	if req.IncludeBothLeagues {
		return []string{l.cfg.DefaultSheet, l.cfg.InternationalSheet}
	}
	for _, candidate := range []string{req.SourceSheet, req.League} {
		if v := strings.TrimSpace(candidate); v != "" {
			return []string{v}
		}
	}
	return []string{l.cfg.DefaultSheet}
}

// Load returns the matches of every source sheet of req, sheet by sheet.
func (l *MatchLoader) Load(ctx context.Context, req SourceRequest) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchLoader.Load")
	defer span.End()

	sheets := l.Sheets(req)
	perSheet := make([][]match.Match, len(sheets))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, sheetName := range sheets {
		p.Go(func(ctx context.Context) error {
			matches, err := l.loadSheet(ctx, sheetName)
			if err != nil {
				return fmt.Errorf("read source sheet %q: %w", sheetName, err)
			}
			perSheet[i] = matches
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, items := range perSheet {
		total += len(items)
	}
	out := make([]match.Match, 0, total)
	for _, items := range perSheet {
		out = append(out, items...)
	}

	return out, nil
}

func (l *MatchLoader) loadSheet(ctx context.Context, sheetName string) ([]match.Match, error) {
	read := func(ctx context.Context) ([]match.Match, error) {
		rows, err := l.gateway.ReadRange(ctx, sheetName, l.cfg.Range)
		if err != nil {
			return nil, err
		}
		return match.ParseRows(rows), nil
	}
	if l.cache == nil {
		return read(ctx)
	}
	return l.cache.GetOrLoad(ctx, sheetName, read)
}
