package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/news-channel/internal/apperror"
	"github.com/sakif/news-channel/internal/model"
	"github.com/sakif/news-channel/internal/repository"
)

// FavoriteService handles saved-article business logic. Every operation is
// scoped to the authenticated user — the userID always comes from a verified
// token, never from the request body.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	logger    *slog.Logger
}

func NewFavoriteService(favorites repository.FavoriteRepository, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		logger:    logger,
	}
}

// List returns the user's favorites, most recently saved first.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]model.Favorite, error) {
	favs, err := s.favorites.ListFavorites(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list favorites",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	return favs, nil
}

// Add saves an article for the user. The URL is required; title and image are
// optional. Saving a URL the user already has fails with a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID int64, url, title, image string) (*model.Favorite, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperror.ValidationFailed("article_url", "Article URL required")
	}

	fav := &model.Favorite{
		UserID:       userID,
		ArticleURL:   url,
		ArticleTitle: strings.TrimSpace(title),
		ArticleImage: strings.TrimSpace(image),
	}
	if err := s.favorites.CreateFavorite(ctx, fav); err != nil {
		return nil, fmt.Errorf("adding favorite: %w", err)
	}

	s.logger.Info("favorite added",
		slog.Int64("userID", userID),
		slog.Int64("favoriteID", fav.ID),
	)

	return fav, nil
}

// Remove deletes the favorite if it exists and belongs to the user. Missing
// or foreign ids are a reported success — the operation is idempotent.
func (s *FavoriteService) Remove(ctx context.Context, id, userID int64) error {
	if err := s.favorites.DeleteFavorite(ctx, id, userID); err != nil {
		s.logger.Error("failed to remove favorite",
			slog.Int64("userID", userID),
			slog.Int64("favoriteID", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("removing favorite: %w", err)
	}
	return nil
}
