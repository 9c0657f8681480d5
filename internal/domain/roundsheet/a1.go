package roundsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnName converts a 1-based column number to its A1 letters (1 -> A, 27 -> AA).
// Numbers outside the sheet grid are clamped to it.
func ColumnName(n int) string {
	name, _ := excelize.ColumnNumberToName(min(max(n, 1), excelize.MaxColumns))
	return name
}

// QuoteSheet quotes a tab title for use in an A1 range when needed.
func QuoteSheet(title string) string {
	plain := title != ""
	for _, r := range title {
		if !(r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			plain = false
			break
		}
	}
	if plain {
		return title
	}
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// Range joins a sheet title and a cell range ("A1:Z1000", "1:1").
func Range(title, cells string) string {
	if cells == "" {
		return QuoteSheet(title)
	}
	return QuoteSheet(title) + "!" + cells
}

// HeaderRange is the row-1 range covering columns cells.
func HeaderRange(title string, columns int) string {
	return Range(title, fmt.Sprintf("A1:%s1", ColumnName(columns)))
}

// AppendRange is the column span rows are appended to.
func AppendRange(title string, columns int) string {
	if columns < 26 {
		columns = 26
	}
	return Range(title, "A:"+ColumnName(columns))
}

// Bounds is a parsed cell range. Zero values mean unbounded; rows and columns
// are 1-based and inclusive.
type Bounds struct {
	FirstRow, LastRow int
	FirstCol, LastCol int
}

// ContainsRow reports whether the 1-based row lies within b.
func (b Bounds) ContainsRow(row int) bool {
	if b.FirstRow > 0 && row < b.FirstRow {
		return false
	}
	return b.LastRow == 0 || row <= b.LastRow
}

// Contains reports whether the 1-based cell (row, col) lies within b.
func (b Bounds) Contains(row, col int) bool {
	if !b.ContainsRow(row) {
		return false
	}
	if b.FirstCol > 0 && col < b.FirstCol {
		return false
	}
	if b.LastCol > 0 && col > b.LastCol {
		return false
	}
	return true
}

// Slice cuts rows to b the way the values API reports them: trailing empty
// cells and trailing empty rows are dropped.
func (b Bounds) Slice(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		r := i + 1
		if !b.ContainsRow(r) {
			continue
		}
		cells := make([]string, 0, len(row))
		for j, v := range row {
			if b.Contains(r, j+1) {
				cells = append(cells, v)
			}
		}
		end := len(cells)
		for end > 0 && cells[end-1] == "" {
			end--
		}
		out = append(out, cells[:end])
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// ParseCells parses the cell part of an A1 range: "A1:Z1000", "1:1", "A:Z", "B2".
func ParseCells(cells string) (Bounds, error) {
	cells = strings.ToUpper(strings.TrimSpace(cells))
	if cells == "" {
		return Bounds{}, nil
	}

	start, end, isSpan := strings.Cut(cells, ":")
	if !isSpan {
		end = start
	}
	firstCol, firstRow, err := parseCell(start)
	if err != nil {
		return Bounds{}, err
	}
	lastCol, lastRow, err := parseCell(end)
	if err != nil {
		return Bounds{}, err
	}
	b := Bounds{FirstRow: firstRow, LastRow: lastRow, FirstCol: firstCol, LastCol: lastCol}
	if (b.LastRow > 0 && b.FirstRow > b.LastRow) || (b.LastCol > 0 && b.FirstCol > b.LastCol) {
		return Bounds{}, fmt.Errorf("invalid range %q", cells)
	}

	return b, nil
}

// parseCell reads a cell ("B2"), a bare column ("B") or a bare row ("2").
func parseCell(ref string) (col, row int, err error) {
	letters, digits := ref, ""
	if i := strings.IndexFunc(ref, func(r rune) bool { return r < 'A' || r > 'Z' }); i >= 0 {
		letters, digits = ref[:i], ref[i:]
	}

	switch {
	case letters != "" && digits != "":
		col, row, err = excelize.CellNameToCoordinates(ref)
	case letters != "":
		col, err = excelize.ColumnNameToNumber(letters)
	case strings.Trim(digits, "0123456789") == "" && digits != "":
		row, err = strconv.Atoi(digits)
		if err == nil && row < 1 {
			err = fmt.Errorf("row must be positive")
		}
	default:
		err = fmt.Errorf("not a cell, column or row")
	}
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}

	return col, row, nil
}
