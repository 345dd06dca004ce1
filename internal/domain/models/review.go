// internal/domain/models/review.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's text about a film. The store enforces at most one
// review per (Author, FilmID).
type Review struct {
	ID      uuid.UUID `bson:"_id" json:"id"`
	Author  uuid.UUID `bson:"author" json:"author"`
	FilmID  uuid.UUID `bson:"film_id" json:"film_id"`
	Text    string    `bson:"text" json:"text"`
	PubDate time.Time `bson:"pub_date" json:"pub_date"`
	Rating  Rating    `bson:"rating" json:"rating"`
}
