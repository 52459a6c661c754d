package model

// Package model contains domain models/data structures.
// These are pure structs shared across layers (HTTP, service, repository)
// with no database-specific dependencies or tags.

// DefaultUserPhoto is the placeholder avatar assigned at registration.
const DefaultUserPhoto = "https://placehold.co/40x40/cccccc/ffffff?text=User"

// User is a registered account. Email is unique across all users and serves
// as the login key. PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Photo        string `json:"photo"`
}
