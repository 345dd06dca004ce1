// internal/domain/models/vote.go
package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Score is the value a user assigns to a film or a review.
// Only Like and Dislike are valid.
type Score int

const (
	Dislike Score = 0
	Like    Score = 10
)

// String returns "like" or "dislike"; any other value renders as its number.
func (s Score) String() string {
	switch s {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	}
	return fmt.Sprintf("Score(%d)", int(s))
}

// Valid reports whether s is one of the defined scores.
func (s Score) Valid() bool {
	return s == Like || s == Dislike
}

// Vote is one user's opinion, embedded in the vote list of exactly one
// target (a Film or a Review). A target holds at most one Vote per UserID.
type Vote struct {
	UserID uuid.UUID `bson:"user_id" json:"user_id"`
	Score  Score     `bson:"score" json:"score"`
}

// Rating wraps the embedded vote list of a target.
type Rating struct {
	Votes []Vote `bson:"votes" json:"votes"`
}
