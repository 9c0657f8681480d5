package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
)

// fakeGateway is a minimal in-memory spreadsheet that counts calls.
type fakeGateway struct {
	mu        sync.Mutex
	titles    []string
	ids       map[string]int64
	rows      map[string][][]string
	styled    map[int64]roundsheet.HeaderStyle
	calls     map[string]int
	appendErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		ids:    map[string]int64{},
		rows:   map[string][][]string{},
		styled: map[int64]roundsheet.HeaderStyle{},
		calls:  map[string]int{},
	}
}

func (f *fakeGateway) seed(title string, rows ...[]string) *fakeGateway {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ids[title]; !ok {
		f.titles = append(f.titles, title)
		f.ids[title] = int64(len(f.titles) * 100)
	}
	f.rows[title] = rows
	return f
}

func (f *fakeGateway) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeGateway) stored(title string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, 0, len(f.rows[title]))
	for _, row := range f.rows[title] {
		out = append(out, slices.Clone(row))
	}
	return out
}

func (f *fakeGateway) ListSheets(context.Context) ([]roundsheet.SheetInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListSheets"]++
	out := make([]roundsheet.SheetInfo, 0, len(f.titles))
	for _, title := range f.titles {
		out = append(out, roundsheet.SheetInfo{ID: f.ids[title], Title: title})
	}
	return out, nil
}

func (f *fakeGateway) CreateSheet(_ context.Context, title string, _, _ int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateSheet"]++
	if _, ok := f.ids[title]; ok {
		return 0, fmt.Errorf("sheet %q already exists", title)
	}
	f.titles = append(f.titles, title)
	f.ids[title] = int64(len(f.titles) * 100)
	return f.ids[title], nil
}

func (f *fakeGateway) ReadRange(_ context.Context, title, cells string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ReadRange"]++
	if _, ok := f.ids[title]; !ok {
		return nil, fmt.Errorf("%w: sheet %q", ErrNotFound, title)
	}
	bounds, err := roundsheet.ParseCells(cells)
	if err != nil {
		return nil, err
	}
	return bounds.Slice(f.rows[title]), nil
}

func (f *fakeGateway) WriteHeader(_ context.Context, title string, header []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["WriteHeader"]++
	rows := f.rows[title]
	if len(rows) == 0 {
		rows = [][]string{nil}
	}
	rows[0] = slices.Clone(header)
	f.rows[title] = rows
	return nil
}

func (f *fakeGateway) StyleHeader(_ context.Context, sheetID int64, _ int, style roundsheet.HeaderStyle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["StyleHeader"]++
	f.styled[sheetID] = style
	return nil
}

func (f *fakeGateway) AppendRows(_ context.Context, title string, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["AppendRows"]++
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows[title] = append(f.rows[title], rows...)
	return nil
}
