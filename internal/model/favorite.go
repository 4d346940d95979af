package model

import "time"

// Favorite is a user's saved reference to an article.
//
// The pair (UserID, ArticleURL) is UNIQUE in the database — a user cannot
// favorite the same URL twice. Title and image are optional and stored as
// empty strings rather than NULLs. Favorites are created and deleted, never
// updated.
type Favorite struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ArticleURL   string    `json:"article_url"`
	ArticleTitle string    `json:"article_title"`
	ArticleImage string    `json:"article_image"`
	SavedAt      time.Time `json:"saved_at"`
}
