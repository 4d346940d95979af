package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/news-channel/internal/apperror"
	"github.com/sakif/news-channel/internal/auth"
	"github.com/sakif/news-channel/internal/service"
)

// FavoritesHandler exposes the saved-articles endpoints. All three routes sit
// behind RequireAuth; the owning user always comes from the verified token in
// the request context.
type FavoritesHandler struct {
	favorites *service.FavoriteService
	logger    *slog.Logger
}

func NewFavoritesHandler(favorites *service.FavoriteService, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites, logger: logger}
}

type addFavoriteRequest struct {
	ArticleURL   string `json:"article_url"`
	ArticleTitle string `json:"article_title"`
	ArticleImage string `json:"article_image"`
}

type addFavoriteResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type removeFavoriteResponse struct {
	Success bool `json:"success"`
}

// HandleList returns the user's favorites, newest first.
//
// HTTP: GET /api/favorites (auth required)
func (h *FavoritesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but fail closed anyway.
		writeError(w, apperror.Unauthorized("No token provided"))
		return
	}

	favs, err := h.favorites.List(r.Context(), ident.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favs)
}

// HandleAdd saves an article for the user.
//
// HTTP: POST /api/favorites (auth required)
func (h *FavoritesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("No token provided"))
		return
	}

	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("article_url", "Article URL required"))
		return
	}

	fav, err := h.favorites.Add(r.Context(), ident.UserID, req.ArticleURL, req.ArticleTitle, req.ArticleImage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addFavoriteResponse{Success: true, ID: fav.ID})
}

// HandleRemove deletes a favorite if the user owns it. Removing a missing or
// foreign favorite still reports success — the endpoint is idempotent.
//
// HTTP: DELETE /api/favorites/{id} (auth required)
func (h *FavoritesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("No token provided"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "Invalid favorite id"))
		return
	}

	if err := h.favorites.Remove(r.Context(), id, ident.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, removeFavoriteResponse{Success: true})
}
