package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/news-channel/internal/apperror"
	"github.com/sakif/news-channel/internal/model"
	"github.com/sakif/news-channel/internal/repository"
)

// compile-time check that *DB implements repository.FavoriteRepository
var _ repository.FavoriteRepository = (*DB)(nil)

// ListFavorites returns the user's saved articles, newest first. The id
// tiebreak keeps the order stable when two saves land inside the same
// timestamp.
func (db *DB) ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, article_url, article_title, article_image, saved_at
		 FROM favorites
		 WHERE user_id = ?
		 ORDER BY saved_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites for user %d: %w", userID, err)
	}
	defer rows.Close()

	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.ArticleURL, &f.ArticleTitle, &f.ArticleImage, &f.SavedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite row: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorites: %w", err)
	}

	return favorites, nil
}

// CreateFavorite inserts a favorite and fills in the assigned ID and SavedAt.
//
// The UNIQUE(user_id, article_url) constraint makes the duplicate check
// atomic: either the row is inserted or the conflict error comes back, and a
// duplicate row can never persist.
func (db *DB) CreateFavorite(ctx context.Context, fav *model.Favorite) error {
	fav.SavedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO favorites (user_id, article_url, article_title, article_image, saved_at)
		 VALUES (?, ?, ?, ?, ?)`,
		fav.UserID,
		fav.ArticleURL,
		fav.ArticleTitle,
		fav.ArticleImage,
		fav.SavedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Already favorited")
		}
		return fmt.Errorf("sqlite: inserting favorite for user %d: %w", fav.UserID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading favorite insert id: %w", err)
	}
	fav.ID = id

	return nil
}

// DeleteFavorite removes a favorite, but only if it belongs to userID.
//
// The ownership check lives in the WHERE clause, so the delete is a single
// atomic statement. Zero rows affected — wrong owner or no such id — is not
// an error: the contract is "deleted if present and owned", and either way
// the row is gone from the caller's perspective.
func (db *DB) DeleteFavorite(ctx context.Context, id, userID int64) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting favorite %d: %w", id, err)
	}
	return nil
}
