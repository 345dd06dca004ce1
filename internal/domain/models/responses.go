// internal/domain/models/responses.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// BookmarkList is one page of a user's bookmarks.
type BookmarkList struct {
	Items []Bookmark `json:"items"`
}

// RatingSummary is the derived view of a vote list. The votes themselves
// are never exposed. AverageRating is nil when nobody has voted, which is
// different from an average of zero.
type RatingSummary struct {
	Likes         int  `json:"likes"`
	Dislikes      int  `json:"dislikes"`
	AverageRating *int `json:"average_rating"`
}

// ReviewItem is a review as returned by a film's review listing, with the
// author's own film score joined in and the review's rating derived.
type ReviewItem struct {
	ID            uuid.UUID `json:"id"`
	Author        uuid.UUID `json:"author"`
	FilmID        uuid.UUID `json:"film_id"`
	Text          string    `json:"text"`
	PubDate       time.Time `json:"pub_date"`
	FilmScore     *string   `json:"film_score"`
	Likes         int       `json:"likes"`
	Dislikes      int       `json:"dislikes"`
	AverageRating *int      `json:"average_rating"`
}
