package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/quiniela/internal/config"
	"github.com/riskibarqy/quiniela/internal/domain/roundsheet"
	"github.com/riskibarqy/quiniela/internal/infrastructure/gateway/googlesheets"
	"github.com/riskibarqy/quiniela/internal/infrastructure/gateway/instrumented"
	"github.com/riskibarqy/quiniela/internal/infrastructure/gateway/memory"
	"github.com/riskibarqy/quiniela/internal/infrastructure/gateway/xlsx"
	"github.com/riskibarqy/quiniela/internal/interfaces/httpapi"
	"github.com/riskibarqy/quiniela/internal/observability"
	idgen "github.com/riskibarqy/quiniela/internal/platform/id"
	"github.com/riskibarqy/quiniela/internal/platform/logging"
	"github.com/riskibarqy/quiniela/internal/platform/resilience"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

var sourceHeader = []string{"match_id", "home_team", "away_team", "league", "jornada", "date"}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	gateway, err := newGateway(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var (
		recorder       usecase.SubmissionRecorder
		observer       instrumented.Observer
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics()
		recorder, observer, metricsHandler = metrics, metrics, metrics.Handler()
	}
	gateway = instrumented.Wrap(gateway, cfg.GatewayDriver, observer)

	matchLoader := usecase.NewMatchLoader(gateway, usecase.MatchLoaderConfig{
		DefaultSheet:       cfg.DefaultSourceSheet,
		InternationalSheet: cfg.InternationalSheet,
		Range:              cfg.SourceRange,
		CacheTTL:           cfg.SourceCacheTTL,
	})
	submissionSvc := usecase.NewSubmissionService(
		gateway,
		matchLoader,
		idgen.NewRandomGenerator(),
		recorder,
		usecase.SubmissionConfig{
			SheetPrefix: cfg.SheetPrefix,
			Location:    cfg.Location(),
		},
		logger,
	)
	sheetSvc := usecase.NewSheetService(gateway, matchLoader)
	shareSvc := usecase.NewShareService(matchLoader, cfg.WhatsAppPhone)

	handler := httpapi.NewHandler(submissionSvc, sheetSvc, shareSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, metricsHandler)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func newGateway(ctx context.Context, cfg config.Config, logger *logging.Logger) (roundsheet.Gateway, error) {
	switch cfg.GatewayDriver {
	case config.GatewaySheets:
		return googlesheets.NewClient(ctx, googlesheets.ClientConfig{
			SpreadsheetID:   cfg.GoogleSheetID,
			CredentialsJSON: cfg.GoogleServiceAccount,
			Timeout:         cfg.SheetsTimeout,
			Logger:          logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SheetsCircuitEnabled,
				FailureThreshold: cfg.SheetsCircuitFailureCount,
				OpenTimeout:      cfg.SheetsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SheetsCircuitHalfOpenMaxReq,
			},
		}), nil
	case config.GatewayXLSX:
		return xlsx.NewWorkbook(cfg.XLSXPath), nil
	case config.GatewayMemory:
		gw := memory.NewGateway()
		// Source sheets start empty so reads succeed before anything is seeded.
		gw.Seed(cfg.DefaultSourceSheet, [][]string{sourceHeader})
		gw.Seed(cfg.InternationalSheet, [][]string{sourceHeader})
		logger.Warn("in-memory gateway selected, ballots are lost on restart")
		return gw, nil
	default:
		return nil, fmt.Errorf("unsupported gateway driver %q", cfg.GatewayDriver)
	}
}
