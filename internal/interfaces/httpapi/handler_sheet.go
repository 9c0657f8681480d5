package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/quiniela/internal/usecase"
)

func (h *Handler) GetSheetValues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSheetValues")
	defer span.End()

	h.getSheetValues(ctx, w, r, envelopeResponder{})
}

// LegacyGetSheetValues serves GET /api/quiniela with the flat response body.
func (h *Handler) LegacyGetSheetValues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LegacyGetSheetValues")
	defer span.End()

	h.getSheetValues(ctx, w, r, legacyResponder{summary: "Failed to fetch Google Sheets data"})
}

func (h *Handler) getSheetValues(ctx context.Context, w http.ResponseWriter, r *http.Request, out responder) {
	query := r.URL.Query()
	values, err := h.sheetService.ReadValues(ctx, query.Get("sheet"), query.Get("range"))
	if err != nil {
		h.logger.WarnContext(ctx, "read sheet values failed", "sheet", query.Get("sheet"), "error", err)
		out.failure(ctx, w, err)
		return
	}

	out.success(ctx, w, http.StatusOK, sheetValuesDTO{
		Message:  "Data fetched successfully",
		Sheet:    values.Sheet,
		Range:    values.Range,
		Data:     values.Rows,
		RowCount: len(values.Rows),
	})
}

func (h *Handler) ListRoundMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoundMatches")
	defer span.End()

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	query := r.URL.Query()

	includeBoth := false
	if raw := strings.TrimSpace(query.Get("includeBothLeagues")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: includeBothLeagues must be a boolean", usecase.ErrInvalidInput))
			return
		}
		includeBoth = v
	}

	matches, err := h.sheetService.ListRoundMatches(ctx, roundID, usecase.SourceRequest{
		SourceSheet:        query.Get("sheet"),
		League:             query.Get("liga"),
		IncludeBothLeagues: includeBoth,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list round matches failed", "jornada", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := matchesToDTO(matches)
	writeSuccess(ctx, w, http.StatusOK, roundMatchesDTO{
		Jornada: roundID,
		Count:   len(items),
		Matches: items,
	})
}
