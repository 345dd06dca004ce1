// Package reviewlist compiles a film's review listing into an aggregation
// pipeline. Each review is joined with its author's own vote on the film,
// and its likes, dislikes and average score are derived from its votes.
package reviewlist

import (
	"fmt"
	"time"

	"github.com/dalemusser/ugchub/internal/app/system/paging"
	"github.com/dalemusser/ugchub/internal/app/system/ratingsummary"
	"github.com/dalemusser/ugchub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sort selects the listing order.
type Sort string

const (
	SortTop Sort = "top" // average_rating descending
	SortNew Sort = "new" // pub_date descending
	SortOld Sort = "old" // pub_date ascending
)

// ParseSort accepts "top", "new" or "old". An empty string means SortTop.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "":
		return SortTop, nil
	case SortTop, SortNew, SortOld:
		return Sort(s), nil
	}
	return "", fmt.Errorf("invalid sort %q: want top, new or old", s)
}

// Key returns the $sort document for the mode. Equal keys fall back to
// _id ascending so repeated reads page the same way.
func (s Sort) Key() bson.D {
	var primary bson.E
	switch s {
	case SortNew:
		primary = bson.E{Key: "pub_date", Value: -1}
	case SortOld:
		primary = bson.E{Key: "pub_date", Value: 1}
	default:
		primary = bson.E{Key: "average_rating", Value: -1}
	}
	return bson.D{primary, {Key: "_id", Value: 1}}
}

// Compile returns the listing pipeline for one page of filmID's reviews.
// Stage order: match, correlated lookup, derived fields, sort, skip, limit,
// then a projection that drops the lookup scratch field.
func Compile(filmID uuid.UUID, sort Sort, page paging.Page) mongo.Pipeline {
	return mongo.Pipeline{
		matchFilm(filmID),
		lookupAuthorVote(filmID),
		deriveFields(),
		{{Key: "$sort", Value: sort.Key()}},
		{{Key: "$skip", Value: page.Offset()}},
		{{Key: "$limit", Value: page.Limit()}},
		{{Key: "$project", Value: bson.M{"films": 0}}},
	}
}

func matchFilm(filmID uuid.UUID) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{"film_id": filmID}}}
}

// lookupAuthorVote attaches, as "films", the author's vote row on the
// film: zero or one element.
func lookupAuthorVote(filmID uuid.UUID) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": "films",
		"let":  bson.M{"author": "$author"},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{"_id": filmID}},
			bson.M{"$unwind": "$rating.votes"},
			bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$rating.votes.user_id", "$$author"}}}},
		},
		"as": "films",
	}}}
}

func deriveFields() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.M{
		"film_score":     bson.M{"$first": "$films.rating.votes.score"},
		"likes":          countScore(models.Like),
		"dislikes":       countScore(models.Dislike),
		"average_rating": bson.M{"$avg": "$rating.votes.score"},
	}}}
}

func countScore(score models.Score) bson.M {
	return bson.M{"$size": bson.M{"$filter": bson.M{
		"input": bson.M{"$ifNull": bson.A{"$rating.votes", bson.A{}}},
		"cond":  bson.M{"$eq": bson.A{"$$this.score", int(score)}},
	}}}
}

// Row is one pipeline result as the store returns it.
type Row struct {
	ID            uuid.UUID     `bson:"_id"`
	Author        uuid.UUID     `bson:"author"`
	FilmID        uuid.UUID     `bson:"film_id"`
	Text          string        `bson:"text"`
	PubDate       time.Time     `bson:"pub_date"`
	FilmScore     *models.Score `bson:"film_score,omitempty"`
	Likes         int           `bson:"likes"`
	Dislikes      int           `bson:"dislikes"`
	AverageRating *float64      `bson:"average_rating,omitempty"`
}

// Item converts a row to the response shape: the author's film score as
// its name and the average truncated like ratingsummary.Summarize does.
func (r Row) Item() models.ReviewItem {
	item := models.ReviewItem{
		ID:            r.ID,
		Author:        r.Author,
		FilmID:        r.FilmID,
		Text:          r.Text,
		PubDate:       r.PubDate,
		Likes:         r.Likes,
		Dislikes:      r.Dislikes,
		AverageRating: ratingsummary.Truncate(r.AverageRating),
	}
	if r.FilmScore != nil && r.FilmScore.Valid() {
		name := r.FilmScore.String()
		item.FilmScore = &name
	}
	return item
}
