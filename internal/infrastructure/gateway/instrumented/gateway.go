package instrumented

import (
	"context"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("quiniela/internal/infrastructure/gateway")

// Observer receives one observation per gateway call.
type Observer interface {
	ObserveGatewayCall(op string, elapsed time.Duration, err error)
}

// Gateway decorates a roundsheet.Gateway with spans and latency observations.
type Gateway struct {
	next     roundsheet.Gateway
	observer Observer
	driver   string
	now      func() time.Time
}

func Wrap(next roundsheet.Gateway, driver string, observer Observer) *Gateway {
	return &Gateway{next: next, observer: observer, driver: driver, now: time.Now}
}

func (g *Gateway) ListSheets(ctx context.Context) (out []roundsheet.SheetInfo, err error) {
	ctx, done := g.start(ctx, "list_sheets")
	defer func() { done(err) }()
	return g.next.ListSheets(ctx)
}

func (g *Gateway) CreateSheet(ctx context.Context, title string, rows, columns int) (id int64, err error) {
	ctx, done := g.start(ctx, "create_sheet", attribute.String("sheet.title", title))
	defer func() { done(err) }()
	return g.next.CreateSheet(ctx, title, rows, columns)
}

func (g *Gateway) ReadRange(ctx context.Context, title, cells string) (out [][]string, err error) {
	ctx, done := g.start(ctx, "read_range", attribute.String("sheet.title", title), attribute.String("sheet.range", cells))
	defer func() { done(err) }()
	return g.next.ReadRange(ctx, title, cells)
}

func (g *Gateway) WriteHeader(ctx context.Context, title string, header []string) (err error) {
	ctx, done := g.start(ctx, "write_header", attribute.String("sheet.title", title), attribute.Int("sheet.columns", len(header)))
	defer func() { done(err) }()
	return g.next.WriteHeader(ctx, title, header)
}

func (g *Gateway) StyleHeader(ctx context.Context, sheetID int64, columns int, style roundsheet.HeaderStyle) (err error) {
	ctx, done := g.start(ctx, "style_header", attribute.Int64("sheet.id", sheetID))
	defer func() { done(err) }()
	return g.next.StyleHeader(ctx, sheetID, columns, style)
}

func (g *Gateway) AppendRows(ctx context.Context, title string, rows [][]string) (err error) {
	ctx, done := g.start(ctx, "append_rows", attribute.String("sheet.title", title), attribute.Int("sheet.rows", len(rows)))
	defer func() { done(err) }()
	return g.next.AppendRows(ctx, title, rows)
}

func (g *Gateway) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	started := g.now()

	var span trace.Span
	if trace.SpanFromContext(ctx).SpanContext().IsValid() {
		attrs = append(attrs, attribute.String("gateway.driver", g.driver))
		ctx, span = tracer.Start(ctx, "gateway."+op, trace.WithAttributes(attrs...))
	}

	return ctx, func(err error) {
		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}
		if g.observer != nil {
			g.observer.ObserveGatewayCall(op, g.now().Sub(started), err)
		}
	}
}
