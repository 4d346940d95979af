package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/news-channel/internal/apperror"
	"github.com/sakif/news-channel/internal/service"
)

// NewsHandler exposes the cached news proxy.
type NewsHandler struct {
	news   *service.NewsService
	logger *slog.Logger
}

func NewNewsHandler(news *service.NewsService, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{news: news, logger: logger}
}

// HandleGetNews proxies a news query through the cache.
//
// HTTP: GET /api/news?category=&search=&page=
//
// The response body is the upstream payload verbatim (cached or fresh). An
// upstream application error passes its message through with a 400; a
// transport failure is a generic 500 — the client learns the fetch failed,
// not why.
func (h *NewsHandler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	search := q.Get("search")

	page := 1
	if pageStr := q.Get("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			writeError(w, apperror.ValidationFailed("page", "Invalid page number"))
			return
		}
		page = p
	}

	payload, err := h.news.GetNews(r.Context(), category, search, page)
	if err != nil {
		if errors.Is(err, apperror.ErrUpstream) {
			writeError(w, err)
			return
		}
		h.logger.Error("news fetch failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch news"})
		return
	}

	writeRawJSON(w, http.StatusOK, payload)
}
