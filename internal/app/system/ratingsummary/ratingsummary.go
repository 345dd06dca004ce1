// Package ratingsummary derives likes, dislikes and the average score from
// a target's vote list. The list itself never reaches the caller.
package ratingsummary

import (
	"math"

	"github.com/dalemusser/ugchub/internal/domain/models"
)

// Summarize counts likes and dislikes and computes the truncated mean of
// all scores. With no votes AverageRating stays nil.
func Summarize(votes []models.Vote) models.RatingSummary {
	var s models.RatingSummary
	total := 0
	for _, v := range votes {
		switch v.Score {
		case models.Like:
			s.Likes++
		case models.Dislike:
			s.Dislikes++
		}
		total += int(v.Score)
	}

	n := s.Likes + s.Dislikes
	if n == 0 {
		return s
	}
	avg := total / n
	s.AverageRating = &avg
	return s
}

// Truncate converts a store-computed mean (a $avg result, nil when the
// list was empty) to the same integer form Summarize produces.
func Truncate(avg *float64) *int {
	if avg == nil || math.IsNaN(*avg) {
		return nil
	}
	n := int(math.Floor(*avg))
	return &n
}
