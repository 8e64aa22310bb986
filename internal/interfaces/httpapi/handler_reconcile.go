package httpapi

import "net/http"

func (h *Handler) ReconcileTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReconcileTeams")
	defer span.End()

	var req reconcileTeamsRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reconcileService.ReconcileTeams(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile teams failed", "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ReconcileGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReconcileGames")
	defer span.End()

	var req reconcileGamesRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reconcileService.ReconcileGames(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile games failed", "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListLiveGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveGames")
	defer span.End()

	var req liveGamesRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.reconcileService.ListLiveGames(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "list live games failed", "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, liveGamesResponse{Games: games})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CacheStats")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.reconcileService.CacheStats())
}
