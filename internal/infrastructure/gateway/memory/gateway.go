package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

type sheet struct {
	id      int64
	title   string
	rows    [][]string
	style   *roundsheet.HeaderStyle
	columns int
}

// Gateway keeps a spreadsheet in memory. It is used for local runs and tests.
type Gateway struct {
	mu     sync.RWMutex
	sheets []*sheet
	nextID int64
}

func NewGateway() *Gateway {
	return &Gateway{nextID: 1}
}

// Seed replaces the content of title, creating the tab when needed.
func (g *Gateway) Seed(title string, rows [][]string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.find(title)
	if s == nil {
		s = &sheet{id: g.nextID, title: title}
		g.nextID++
		g.sheets = append(g.sheets, s)
	}
	s.rows = cloneRows(rows)
}

// Rows returns a copy of every stored row of title.
func (g *Gateway) Rows(title string) [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := g.find(title)
	if s == nil {
		return nil
	}
	return cloneRows(s.rows)
}

// HeaderStyle returns the style applied to the header of title, if any.
func (g *Gateway) HeaderStyle(title string) (roundsheet.HeaderStyle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := g.find(title)
	if s == nil || s.style == nil {
		return roundsheet.HeaderStyle{}, false
	}
	return *s.style, true
}

func (g *Gateway) ListSheets(ctx context.Context) ([]roundsheet.SheetInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]roundsheet.SheetInfo, 0, len(g.sheets))
	for _, s := range g.sheets {
		out = append(out, roundsheet.SheetInfo{ID: s.id, Title: s.title})
	}
	return out, nil
}

func (g *Gateway) CreateSheet(ctx context.Context, title string, _, columns int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.find(title) != nil {
		return 0, fmt.Errorf("%w: sheet %q already exists", usecase.ErrInvalidInput, title)
	}
	s := &sheet{id: g.nextID, title: title, columns: columns}
	g.nextID++
	g.sheets = append(g.sheets, s)

	return s.id, nil
}

func (g *Gateway) ReadRange(ctx context.Context, title, cells string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bounds, err := roundsheet.ParseCells(cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	s := g.find(title)
	if s == nil {
		return nil, fmt.Errorf("%w: sheet %q", usecase.ErrNotFound, title)
	}

	return bounds.Slice(s.rows), nil
}

func (g *Gateway) WriteHeader(ctx context.Context, title string, header []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.find(title)
	if s == nil {
		return fmt.Errorf("%w: sheet %q", usecase.ErrNotFound, title)
	}
	if len(s.rows) == 0 {
		s.rows = append(s.rows, nil)
	}
	row := s.rows[0]
	if len(row) < len(header) {
		row = append(row, make([]string, len(header)-len(row))...)
	}
	copy(row, header)
	s.rows[0] = row

	return nil
}

func (g *Gateway) StyleHeader(ctx context.Context, sheetID int64, _ int, style roundsheet.HeaderStyle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, s := range g.sheets {
		if s.id == sheetID {
			s.style = &style
			return nil
		}
	}
	return fmt.Errorf("%w: sheet id %d", usecase.ErrNotFound, sheetID)
}

func (g *Gateway) AppendRows(ctx context.Context, title string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.find(title)
	if s == nil {
		return fmt.Errorf("%w: sheet %q", usecase.ErrNotFound, title)
	}
	s.rows = append(s.rows, cloneRows(rows)...)

	return nil
}

func (g *Gateway) find(title string) *sheet {
	for _, s := range g.sheets {
		if s.title == title {
			return s
		}
	}
	return nil
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out
}
