package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"go.uber.org/zap/zapcore"
)

func TestRequestLogging_RecordsStatusAndPath(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONTo(zapcore.AddSync(&buf), logging.LevelInfo)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	rec := httptest.NewRecorder()
	RequestLogging(logger, next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quinielas", nil))

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "http_request" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["http_path"] != "/v1/quinielas" || entry["http_method"] != http.MethodPost {
		t.Fatalf("unexpected request fields: %v", entry)
	}
	if status, _ := entry["http_status"].(float64); status != http.StatusCreated {
		t.Fatalf("expected http_status=201, got %v", entry["http_status"])
	}
}
