package model

import "time"

// Folder groups documents. Names are not required to be unique; documents
// reference folders by ID and the reference is advisory only (no FK).
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
