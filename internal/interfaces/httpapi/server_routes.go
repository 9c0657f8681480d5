package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler == nil {
		return
	}

	mux.Handle("GET /metrics", metricsHandler)
}

func registerSheetRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sheets/values", handler.GetSheetValues)
	mux.HandleFunc("GET /v1/rounds/{roundID}/matches", handler.ListRoundMatches)
	// Legacy read used by the first version of the form.
	mux.HandleFunc("GET /api/quiniela", handler.LegacyGetSheetValues)
}

func registerQuinielaRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/quinielas", handler.SubmitQuiniela)
	mux.HandleFunc("POST /v1/quinielas/batch", handler.SubmitQuinielaBatch)
	mux.HandleFunc("POST /v1/quinielas/share", handler.ShareQuiniela)
	mux.HandleFunc("POST /api/quiniela", handler.LegacySubmitQuiniela)
}
