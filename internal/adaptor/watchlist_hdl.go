package adaptor

import (
	"net/http"

	"cineticket/internal/dto/request"
	"cineticket/internal/usecase"
	"cineticket/pkg/utils"

	"go.uber.org/zap"
)

type WatchlistHandler struct {
	service usecase.WatchlistService
	log     *zap.Logger
}

func NewWatchlistHandler(service usecase.WatchlistService, log *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
		log:     log.With(zap.String("handler", "watchlist")),
	}
}

// GetWatchlist handles GET /api/watchlist?lang=
func (h *WatchlistHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), userID, langFrom(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get watchlist")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// AddToWatchlist handles POST /api/watchlist
func (h *WatchlistHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.WatchlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.service.Add(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to watchlist")
		return
	}

	utils.ResponseCreated(w, "Movie added to watchlist", item)
}

// RemoveFromWatchlist handles DELETE /api/watchlist/{movieId}
func (h *WatchlistHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := urlUUID(w, r, "movieId")
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), userID, movieID); err != nil {
		handleServiceError(w, h.log, err, "remove from watchlist")
		return
	}

	utils.ResponseSuccess(w, "Movie removed from watchlist", nil)
}
