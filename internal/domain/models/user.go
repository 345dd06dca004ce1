// internal/domain/models/user.go
package models

import "github.com/google/uuid"

// User is created lazily on the first bookmark written for its id.
// Bookmarks behave as a set keyed by FilmID.
type User struct {
	ID        uuid.UUID  `bson:"_id" json:"id"`
	Bookmarks []Bookmark `bson:"bookmarks" json:"bookmarks"`
}

type Bookmark struct {
	FilmID uuid.UUID `bson:"film_id" json:"film_id"`
}
