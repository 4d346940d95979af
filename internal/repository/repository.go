package repository

import (
	"context"

	"github.com/sakif/news-channel/internal/model"
)

type UserRepository interface {
	// CreateUser inserts a new user. The store assigns ID and CreatedAt.
	// Returns apperror.ErrConflict if the username or email is taken.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByEmail returns the full record, including the password hash.
	// Returns apperror.ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type FavoriteRepository interface {
	// ListFavorites returns the user's favorites, most recently saved first.
	ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error)
	// CreateFavorite inserts a favorite. The store assigns ID and SavedAt.
	// Returns apperror.ErrConflict if (user, URL) is already saved.
	CreateFavorite(ctx context.Context, fav *model.Favorite) error
	// DeleteFavorite removes the favorite only if it belongs to userID.
	// Deleting a missing or foreign row is a successful no-op.
	DeleteFavorite(ctx context.Context, id, userID int64) error
}
