package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerReconcileRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/reconcile/teams", handler.ReconcileTeams)
	mux.HandleFunc("POST /v1/reconcile/games", handler.ReconcileGames)
	mux.HandleFunc("POST /v1/games/live", handler.ListLiveGames)
	mux.HandleFunc("GET /v1/cache/stats", handler.CacheStats)
}
