package googlesheets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

type fakeSheetsAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	handle   func(w http.ResponseWriter, r recordedRequest)
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
	for key := range r.URL.Query() {
		rec.Query[key] = r.URL.Query().Get(key)
	}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = sonic.Unmarshal(raw, &rec.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	f.handle(w, rec)
}

func (f *fakeSheetsAPI) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, handle func(w http.ResponseWriter, r recordedRequest)) (*Client, *fakeSheetsAPI) {
	t.Helper()

	api := &fakeSheetsAPI{handle: handle}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client := NewClient(context.Background(), ClientConfig{
		SpreadsheetID: "sheet-1",
		HTTPClient:    srv.Client(),
		Endpoint:      srv.URL + "/",
		Timeout:       2 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	if client.configErr != nil {
		t.Fatalf("unexpected config error: %v", client.configErr)
	}
	return client, api
}

func TestClient_ReadRangeQuotesSheetTitle(t *testing.T) {
	client, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		_, _ = io.WriteString(w, `{"range":"'Liga MX'!A1:Z1000","values":[["id","local","visitante"],["1","América","Chivas"]]}`)
	})

	rows, err := client.ReadRange(context.Background(), "Liga MX", "A1:Z1000")
	if err != nil {
		t.Fatalf("read range: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "América" {
		t.Fatalf("unexpected rows: %v", rows)
	}

	req := api.last()
	if req.Method != http.MethodGet || req.Path != "/v4/spreadsheets/sheet-1/values/'Liga MX'!A1:Z1000" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
}

func TestClient_ListSheets(t *testing.T) {
	client, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		_, _ = io.WriteString(w, `{"sheets":[{"properties":{"title":"Liga MX"}},{"properties":{"sheetId":42,"title":"J10"}}]}`)
	})

	items, err := client.ListSheets(context.Background())
	if err != nil {
		t.Fatalf("list sheets: %v", err)
	}
	if len(items) != 2 || items[0].ID != 0 || items[1].ID != 42 || items[1].Title != "J10" {
		t.Fatalf("unexpected sheets: %+v", items)
	}
	if got := api.last().Query["fields"]; got != sheetListFields {
		t.Fatalf("unexpected fields mask: %q", got)
	}
}

func TestClient_WriteHeaderUsesUserEnteredFromA1(t *testing.T) {
	client, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		_, _ = io.WriteString(w, `{}`)
	})

	header := []string{"Nombre", "A vs B", "Fecha de envío"}
	if err := client.WriteHeader(context.Background(), "J10", header); err != nil {
		t.Fatalf("write header: %v", err)
	}

	req := api.last()
	if req.Method != http.MethodPut || req.Path != "/v4/spreadsheets/sheet-1/values/J10!A1:C1" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
	if req.Query["valueInputOption"] != valueInputUserEntered {
		t.Fatalf("unexpected value input option: %v", req.Query)
	}
	values, _ := req.Body["values"].([]any)
	if len(values) != 1 {
		t.Fatalf("unexpected body: %v", req.Body)
	}
}

func TestClient_AppendRows(t *testing.T) {
	client, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		_, _ = io.WriteString(w, `{}`)
	})

	rows := [][]string{{"Ana", "Local", "ts"}, {"Beto", "Empate", "ts"}}
	if err := client.AppendRows(context.Background(), "J10", rows); err != nil {
		t.Fatalf("append rows: %v", err)
	}

	req := api.last()
	if req.Method != http.MethodPost || !strings.HasSuffix(req.Path, "/values/J10!A:Z:append") {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
	if req.Query["valueInputOption"] != valueInputUserEntered || req.Query["insertDataOption"] != insertRows {
		t.Fatalf("unexpected query: %v", req.Query)
	}
	values, _ := req.Body["values"].([]any)
	if len(values) != 2 {
		t.Fatalf("expected both rows in one call, got %v", req.Body)
	}
}

func TestClient_CreateSheetAndStyleHeader(t *testing.T) {
	client, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		_, _ = io.WriteString(w, `{"replies":[{"addSheet":{"properties":{"sheetId":77,"title":"J10"}}}]}`)
	})

	id, err := client.CreateSheet(context.Background(), "J10", roundsheet.DefaultRows, roundsheet.DefaultColumns)
	if err != nil {
		t.Fatalf("create sheet: %v", err)
	}
	if id != 77 {
		t.Fatalf("unexpected sheet id: %d", id)
	}
	create := api.last()
	if create.Path != "/v4/spreadsheets/sheet-1:batchUpdate" {
		t.Fatalf("unexpected create path: %s", create.Path)
	}

	if err := client.StyleHeader(context.Background(), id, 3, roundsheet.DefaultHeaderStyle); err != nil {
		t.Fatalf("style header: %v", err)
	}
	style := api.last()
	requests, _ := style.Body["requests"].([]any)
	if len(requests) != 1 {
		t.Fatalf("unexpected style body: %v", style.Body)
	}
	repeat, _ := requests[0].(map[string]any)["repeatCell"].(map[string]any)
	if repeat["fields"] != headerFormatFields {
		t.Fatalf("unexpected repeatCell fields: %v", repeat["fields"])
	}
	grid, _ := repeat["range"].(map[string]any)
	if grid["endRowIndex"] != float64(1) || grid["endColumnIndex"] != float64(3) || grid["sheetId"] != float64(77) {
		t.Fatalf("unexpected grid range: %v", grid)
	}
}

func TestClient_ServerErrorsMapToDependencyUnavailableAndOpenCircuit(t *testing.T) {
	client, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"code":503,"message":"backend unavailable","status":"UNAVAILABLE"}}`)
	})

	for i := 0; i < 2; i++ {
		_, err := client.ListSheets(context.Background())
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected dependency unavailable, got %v", i, err)
		}
		if !strings.Contains(err.Error(), "backend unavailable") {
			t.Fatalf("expected cause in message, got %q", err.Error())
		}
	}

	before := len(api.requests)
	_, err := client.ListSheets(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit error, got %v", err)
	}
	if len(api.requests) != before {
		t.Fatalf("expected open circuit to skip the request")
	}
}

func TestClient_UnknownRangeMapsToNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"Unable to parse range: Missing!A1:Z1000","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := client.ReadRange(context.Background(), "Missing", "A1:Z1000")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClient_CallerErrorsDoNotOpenCircuit(t *testing.T) {
	client, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"Unable to parse range: Missing!A1:Z1000","status":"INVALID_ARGUMENT"}}`)
	})

	for i := 0; i < 4; i++ {
		if _, err := client.ReadRange(context.Background(), "Missing", "A1:Z1000"); !errors.Is(err, usecase.ErrNotFound) {
			t.Fatalf("attempt %d: expected not found, got %v", i, err)
		}
	}
	if len(api.requests) != 4 {
		t.Fatalf("expected every request to reach the API, got %d", len(api.requests))
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func TestNewClient_MissingConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfg  ClientConfig
	}{
		{name: "missing sheet id", cfg: ClientConfig{CredentialsJSON: `{}`}},
		{name: "missing credentials", cfg: ClientConfig{SpreadsheetID: "sheet-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(context.Background(), tt.cfg)
			if _, err := client.ListSheets(context.Background()); !errors.Is(err, usecase.ErrMisconfigured) {
				t.Fatalf("expected misconfigured error, got %v", err)
			}
		})
	}
}
