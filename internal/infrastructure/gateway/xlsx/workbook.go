package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
	"github.com/riskibarqy/quiniela/internal/usecase"
	"github.com/xuri/excelize/v2"
)

// Workbook implements roundsheet.Gateway on a local .xlsx file. Every call
// opens the file, applies the change and saves it again.
type Workbook struct {
	mu   sync.Mutex
	path string
}

func NewWorkbook(path string) *Workbook {
	return &Workbook{path: strings.TrimSpace(path)}
}

func (w *Workbook) ListSheets(ctx context.Context) ([]roundsheet.SheetInfo, error) {
	var out []roundsheet.SheetInfo
	err := w.view(ctx, func(f *excelize.File) error {
		for _, name := range f.GetSheetList() {
			idx, err := f.GetSheetIndex(name)
			if err != nil {
				return crerr.Wrapf(err, "index of sheet %s", name)
			}
			out = append(out, roundsheet.SheetInfo{ID: int64(idx), Title: name})
		}
		return nil
	})
	return out, err
}

func (w *Workbook) CreateSheet(ctx context.Context, title string, _, _ int) (int64, error) {
	var id int64
	err := w.update(ctx, func(f *excelize.File) error {
		if idx, _ := f.GetSheetIndex(title); idx >= 0 {
			return fmt.Errorf("%w: sheet %q already exists", usecase.ErrInvalidInput, title)
		}
		idx, err := f.NewSheet(title)
		if err != nil {
			return crerr.Wrapf(err, "new sheet %s", title)
		}
		id = int64(idx)
		return nil
	})
	return id, err
}

func (w *Workbook) ReadRange(ctx context.Context, title, cells string) ([][]string, error) {
	bounds, err := roundsheet.ParseCells(cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	var out [][]string
	err = w.view(ctx, func(f *excelize.File) error {
		rows, err := readRows(f, title)
		if err != nil {
			return err
		}
		out = bounds.Slice(rows)
		return nil
	})
	return out, err
}

func (w *Workbook) WriteHeader(ctx context.Context, title string, header []string) error {
	return w.update(ctx, func(f *excelize.File) error {
		if _, err := readRows(f, title); err != nil {
			return err
		}
		return setRow(f, title, 1, header)
	})
}

func (w *Workbook) StyleHeader(ctx context.Context, sheetID int64, columns int, style roundsheet.HeaderStyle) error {
	return w.update(ctx, func(f *excelize.File) error {
		title := f.GetSheetName(int(sheetID))
		if title == "" {
			return fmt.Errorf("%w: sheet id %d", usecase.ErrNotFound, sheetID)
		}
		styleID, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: style.Bold, Color: hexColor(style.Foreground)},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(style.Background)}},
		})
		if err != nil {
			return crerr.Wrap(err, "new header style")
		}
		last, err := excelize.CoordinatesToCellName(max(columns, 1), 1)
		if err != nil {
			return crerr.Wrapf(err, "header span of %s", title)
		}
		if err := f.SetCellStyle(title, "A1", last, styleID); err != nil {
			return crerr.Wrapf(err, "style header of %s", title)
		}
		return nil
	})
}

func (w *Workbook) AppendRows(ctx context.Context, title string, rows [][]string) error {
	return w.update(ctx, func(f *excelize.File) error {
		existing, err := readRows(f, title)
		if err != nil {
			return err
		}
		next := len(existing) + 1
		for i, row := range rows {
			if err := setRow(f, title, next+i, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Workbook) view(ctx context.Context, fn func(f *excelize.File) error) error {
	return w.with(ctx, false, fn)
}

func (w *Workbook) update(ctx context.Context, fn func(f *excelize.File) error) error {
	return w.with(ctx, true, fn)
}

func (w *Workbook) with(ctx context.Context, save bool, fn func(f *excelize.File) error) error {
	if w.path == "" {
		return fmt.Errorf("%w: XLSX_PATH is not set", usecase.ErrMisconfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		f = excelize.NewFile()
	case err != nil:
		return crerr.Wrapf(usecase.ErrDependencyUnavailable, "open workbook %s: %v", w.path, err)
	}
	defer func() { _ = f.Close() }()

	if err := fn(f); err != nil {
		return err
	}
	if !save {
		return nil
	}
	if err := f.SaveAs(w.path); err != nil {
		return crerr.Wrapf(usecase.ErrDependencyUnavailable, "save workbook %s: %v", w.path, err)
	}
	return nil
}

func readRows(f *excelize.File, title string) ([][]string, error) {
	if idx, _ := f.GetSheetIndex(title); idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q", usecase.ErrNotFound, title)
	}
	rows, err := f.GetRows(title)
	if err != nil {
		return nil, crerr.Wrapf(err, "read rows of %s", title)
	}
	return rows, nil
}

func setRow(f *excelize.File, title string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return crerr.Wrapf(err, "row %d of %s", row, title)
	}
	if err := f.SetSheetRow(title, start, &cells); err != nil {
		return crerr.Wrapf(err, "write row %d of %s", row, title)
	}
	return nil
}

func hexColor(c roundsheet.Color) string {
	channel := func(v float64) int {
		return int(min(max(v, 0), 1)*255 + 0.5)
	}
	return fmt.Sprintf("%02X%02X%02X", channel(c.Red), channel(c.Green), channel(c.Blue))
}

