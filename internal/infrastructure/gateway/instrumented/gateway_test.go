package instrumented

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/quiniela/internal/infrastructure/gateway/memory"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

type call struct {
	op  string
	err error
}

type recordingObserver struct {
	calls []call
}

func (r *recordingObserver) ObserveGatewayCall(op string, _ time.Duration, err error) {
	r.calls = append(r.calls, call{op: op, err: err})
}

func TestGateway_ObservesEveryCall(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	g := Wrap(memory.NewGateway(), "memory", obs)

	if _, err := g.CreateSheet(ctx, "J10", 10, 10); err != nil {
		t.Fatalf("create sheet: %v", err)
	}
	if err := g.AppendRows(ctx, "J10", [][]string{{"Ana"}}); err != nil {
		t.Fatalf("append rows: %v", err)
	}
	if _, err := g.ReadRange(ctx, "Liga MX", "A1:Z1000"); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if len(obs.calls) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(obs.calls))
	}
	if obs.calls[0].op != "create_sheet" || obs.calls[1].op != "append_rows" {
		t.Fatalf("unexpected ops: %+v", obs.calls)
	}
	if obs.calls[2].err == nil {
		t.Fatalf("expected read error to be observed")
	}
}

func TestGateway_NilObserver(t *testing.T) {
	g := Wrap(memory.NewGateway(), "memory", nil)
	if _, err := g.ListSheets(context.Background()); err != nil {
		t.Fatalf("list sheets: %v", err)
	}
}
