package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := NewMetrics()
	m.SubmissionFinished("success", 3)
	m.SubmissionFinished("invalid", 1)
	m.HeaderColumnsAdded(2)
	m.ObserveGatewayCall("append_rows", 25*time.Millisecond, nil)
	m.ObserveGatewayCall("list_sheets", time.Millisecond, errors.New("boom"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	body, _ := io.ReadAll(rec.Body)
	text := string(body)
	for _, want := range []string{
		`quiniela_submissions_total{outcome="success"} 1`,
		`quiniela_ballots_total{outcome="success"} 3`,
		`quiniela_header_columns_added_total 2`,
		`quiniela_gateway_request_duration_seconds_count{op="list_sheets",outcome="error"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}
