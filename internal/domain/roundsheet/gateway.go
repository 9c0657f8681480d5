package roundsheet

import "context"

// Gateway is the remote tabular store holding source and round sheets.
type Gateway interface {
	ListSheets(ctx context.Context) ([]SheetInfo, error)
	CreateSheet(ctx context.Context, title string, rows, columns int) (int64, error)
	ReadRange(ctx context.Context, title, cells string) ([][]string, error)
	WriteHeader(ctx context.Context, title string, header []string) error
	StyleHeader(ctx context.Context, sheetID int64, columns int, style HeaderStyle) error
	AppendRows(ctx context.Context, title string, rows [][]string) error
}
