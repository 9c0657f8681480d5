package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/quiniela/internal/domain/ballot"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

func (h *Handler) SubmitQuiniela(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitQuiniela")
	defer span.End()

	h.submitQuiniela(ctx, w, r, envelopeResponder{})
}

// LegacySubmitQuiniela serves POST /api/quiniela with the flat response body
// older form clients read (response.success, response.data).
func (h *Handler) LegacySubmitQuiniela(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LegacySubmitQuiniela")
	defer span.End()

	h.submitQuiniela(ctx, w, r, legacyResponder{summary: "Failed to save data"})
}

func (h *Handler) submitQuiniela(ctx context.Context, w http.ResponseWriter, r *http.Request, out responder) {
	var req quinielaRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		out.failure(ctx, w, err)
		return
	}
	submittedAt, err := parseSubmittedAt(req.Fecha, h.now())
	if err != nil {
		out.failure(ctx, w, err)
		return
	}

	roundID := string(req.Jornada)
	result, err := h.submissionService.Submit(ctx, usecase.SubmitInput{
		RoundID: roundID,
		Source:  req.source(),
		Ballots: []ballot.Ballot{toBallot(req.Nombre, req.Selecciones, roundID, req.Liga, submittedAt)},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit quiniela failed", "jornada", roundID, "error", err)
		out.failure(ctx, w, err)
		return
	}

	var row []string
	if len(result.Rows) > 0 {
		row = result.Rows[0]
	}
	message := fmt.Sprintf("Quiniela de %s guardada en hoja %s", req.Nombre, result.SheetName)
	out.success(ctx, w, http.StatusOK, submitResultToDTO(result, message, row))
}

func (h *Handler) SubmitQuinielaBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitQuinielaBatch")
	defer span.End()

	var req quinielaBatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	now := h.now()
	ballots := make([]ballot.Ballot, 0, len(req.Ballots))
	for i, item := range req.Ballots {
		submittedAt, err := parseSubmittedAt(item.Fecha, now)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("ballot %d: %w", i, err))
			return
		}
		ballots = append(ballots, toBallot(item.Nombre, item.Selecciones, string(req.Jornada), req.Liga, submittedAt))
	}

	result, err := h.submissionService.Submit(ctx, usecase.SubmitInput{
		RoundID: string(req.Jornada),
		Source:  req.source(),
		Ballots: ballots,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit quiniela batch failed", "jornada", string(req.Jornada), "ballots", len(ballots), "error", err)
		writeError(ctx, w, err)
		return
	}

	message := fmt.Sprintf("%d quinielas guardadas en hoja %s", len(result.Rows), result.SheetName)
	writeSuccess(ctx, w, http.StatusOK, submitResultToDTO(result, message, result.Rows))
}

func (h *Handler) ShareQuiniela(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ShareQuiniela")
	defer span.End()

	var req quinielaRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.shareService.Compose(ctx, usecase.ShareInput{
		Ballot: toBallot(req.Nombre, req.Selecciones, string(req.Jornada), req.Liga, h.now()),
		Source: req.source(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "share quiniela failed", "jornada", string(req.Jornada), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, shareQuinielaDTO{
		Message:     result.Message,
		WhatsAppURL: result.WhatsAppURL,
	})
}
