package googlesheets

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
	"github.com/riskibarqy/quiniela/internal/usecase"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

const (
	valueInputUserEntered = "USER_ENTERED"
	insertRows            = "INSERT_ROWS"
	headerFormatFields    = "userEnteredFormat(backgroundColor,textFormat)"
	sheetListFields       = "sheets.properties(sheetId,title)"
)

type ClientConfig struct {
	SpreadsheetID   string
	CredentialsJSON string
	// HTTPClient and Endpoint replace the default transport; credentials are
	// not used when HTTPClient is set.
	HTTPClient     *http.Client
	Endpoint       string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements roundsheet.Gateway on the Google Sheets v4 API.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	timeout       time.Duration
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	flight        resilience.SingleFlight[any]
	configErr     error
}

// NewClient never fails: configuration problems are reported by every call so
// the process can start without credentials.
func NewClient(ctx context.Context, cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	c := &Client{
		spreadsheetID: strings.TrimSpace(cfg.SpreadsheetID),
		timeout:       timeout,
		logger:        logger,
	}
	if cfg.CircuitBreaker.Enabled {
		breakerCfg := cfg.CircuitBreaker
		breakerCfg.Name = "google_sheets"
		breakerCfg.IsFailure = isCircuitFailure
		breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}
		c.breaker = resilience.NewCircuitBreaker(breakerCfg)
	}

	if c.spreadsheetID == "" {
		c.configErr = fmt.Errorf("%w: GOOGLE_SHEET_ID is not set", usecase.ErrMisconfigured)
		return c
	}

	opts := make([]option.ClientOption, 0, 2)
	switch {
	case cfg.HTTPClient != nil:
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	default:
		c.configErr = fmt.Errorf("%w: GOOGLE_SERVICE_ACCOUNT is not set", usecase.ErrMisconfigured)
		return c
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		c.configErr = fmt.Errorf("%w: init sheets service: %v", usecase.ErrMisconfigured, err)
		return c
	}
	c.service = service

	return c
}

func (c *Client) ListSheets(ctx context.Context) ([]roundsheet.SheetInfo, error) {
	out, err := c.call(ctx, "list sheets", "", func(ctx context.Context) (any, error) {
		return c.service.Spreadsheets.Get(c.spreadsheetID).Fields(sheetListFields).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	spreadsheet := out.(*sheets.Spreadsheet)
	items := make([]roundsheet.SheetInfo, 0, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		if s == nil || s.Properties == nil {
			continue
		}
		items = append(items, roundsheet.SheetInfo{ID: s.Properties.SheetId, Title: s.Properties.Title})
	}

	return items, nil
}

func (c *Client) CreateSheet(ctx context.Context, title string, rows, columns int) (int64, error) {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    int64(rows),
						ColumnCount: int64(columns),
					},
				},
			},
		}},
	}

	out, err := c.call(ctx, "create sheet "+title, "", func(ctx context.Context) (any, error) {
		return c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	})
	if err != nil {
		return 0, err
	}

	resp := out.(*sheets.BatchUpdateSpreadsheetResponse)
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, crerr.Newf("create sheet %s: empty addSheet reply", title)
	}

	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func (c *Client) ReadRange(ctx context.Context, title, cells string) ([][]string, error) {
	rng := roundsheet.Range(title, cells)
	out, err := c.call(ctx, "read "+rng, "read:"+rng, func(ctx context.Context) (any, error) {
		return c.service.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	return toRows(out.(*sheets.ValueRange).Values), nil
}

func (c *Client) WriteHeader(ctx context.Context, title string, header []string) error {
	rng := roundsheet.HeaderRange(title, len(header))
	body := &sheets.ValueRange{Values: toValues([][]string{header})}

	_, err := c.call(ctx, "write header "+rng, "", func(ctx context.Context) (any, error) {
		return c.service.Spreadsheets.Values.Update(c.spreadsheetID, rng, body).
			ValueInputOption(valueInputUserEntered).
			Context(ctx).
			Do()
	})
	return err
}

func (c *Client) StyleHeader(ctx context.Context, sheetID int64, columns int, style roundsheet.HeaderStyle) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(columns),
					ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: toColor(style.Background),
						TextFormat: &sheets.TextFormat{
							Bold:            style.Bold,
							ForegroundColor: toColor(style.Foreground),
						},
					},
				},
				Fields: headerFormatFields,
			},
		}},
	}

	_, err := c.call(ctx, fmt.Sprintf("style header sheet_id=%d", sheetID), "", func(ctx context.Context) (any, error) {
		return c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	})
	return err
}

func (c *Client) AppendRows(ctx context.Context, title string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	rng := roundsheet.AppendRange(title, width)
	body := &sheets.ValueRange{Values: toValues(rows)}

	_, err := c.call(ctx, "append "+rng, "", func(ctx context.Context) (any, error) {
		return c.service.Spreadsheets.Values.Append(c.spreadsheetID, rng, body).
			ValueInputOption(valueInputUserEntered).
			InsertDataOption(insertRows).
			Context(ctx).
			Do()
	})
	return err
}

// call runs fn behind the breaker; flightKey deduplicates concurrent reads.
func (c *Client) call(ctx context.Context, op, flightKey string, fn func(ctx context.Context) (any, error)) (any, error) {
	if c.configErr != nil {
		return nil, c.configErr
	}

	run := func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		if c.breaker == nil {
			return fn(callCtx)
		}
		var out any
		err := c.breaker.Execute(func() error {
			var err error
			out, err = fn(callCtx)
			return err
		})
		return out, err
	}

	var (
		out any
		err error
	)
	if flightKey != "" {
		out, _, err = c.flight.Do(flightKey, run)
	} else {
		out, err = run()
	}
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "google sheets circuit breaker rejected request", "op", op, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: google sheets is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		mapped := mapError(op, err)
		c.logger.WarnContext(ctx, "google sheets request failed", "op", op, "error", mapped)
		return nil, mapped
	}

	return out, nil
}

func mapError(op string, err error) error {
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.Message)
		if apiErr.Code == http.StatusNotFound ||
			(apiErr.Code == http.StatusBadRequest && strings.Contains(msg, "Unable to parse range")) {
			return crerr.WithSecondaryError(crerr.Wrapf(usecase.ErrNotFound, "%s: %s", op, msg), err)
		}
		return crerr.WithSecondaryError(crerr.Wrapf(usecase.ErrDependencyUnavailable, "%s: status=%d %s", op, apiErr.Code, msg), err)
	}
	return crerr.WithSecondaryError(crerr.Wrapf(usecase.ErrDependencyUnavailable, "%s: %v", op, err), err)
}

func isCircuitFailure(err error) bool {
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return !stderrors.Is(err, context.Canceled)
}

func toRows(values [][]interface{}) [][]string {
	out := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			if v == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, fmt.Sprint(v))
		}
		out = append(out, cells)
	}
	return out
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, v := range row {
			cells = append(cells, v)
		}
		out = append(out, cells)
	}
	return out
}

func toColor(c roundsheet.Color) *sheets.Color {
	return &sheets.Color{
		Red:             c.Red,
		Green:           c.Green,
		Blue:            c.Blue,
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}
}
