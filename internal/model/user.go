// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Both username and email carry UNIQUE constraints in the database — the
// registration flow relies on the constraint (not a pre-check) to reject
// duplicates atomically.
//
// PasswordHash holds the bcrypt output of the user's password. The plaintext
// is never stored, and the hash is excluded from JSON with the `json:"-"` tag
// so it can never leak into an API response by accident.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
