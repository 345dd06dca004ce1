// Package descriptor turns UGC commands into data-only descriptions of a
// single store operation. Nothing here talks to the store; the gateway
// package executes what Compile returns.
package descriptor

import (
	"fmt"

	"github.com/dalemusser/ugchub/internal/app/store/queries/reviewlist"
	"github.com/dalemusser/ugchub/internal/app/store/votes"
	"github.com/dalemusser/ugchub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names.
const (
	Users   = "users"
	Films   = "films"
	Reviews = "reviews"
)

// Kind is the store operation a descriptor asks for.
type Kind int

const (
	KindInsert Kind = iota + 1
	KindFind
	KindUpdate
	KindDelete
	KindAggregate
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindFind:
		return "find"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	case KindAggregate:
		return "aggregate"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Descriptor is one store operation. Which fields are set depends on Kind:
//
//	insert:    Filter, Replacement, Upsert (always true)
//	find:      Filter
//	update:    Filter, Mutation, Upsert
//	delete:    Filter
//	aggregate: Pipeline
type Descriptor struct {
	Kind        Kind
	Collection  string
	Filter      bson.D
	Replacement interface{}
	Mutation    interface{} // bson.D update document or mongo.Pipeline
	Upsert      bool
	Pipeline    mongo.Pipeline
}

// Compile builds the descriptor for cmd. It is pure: the same command
// always compiles to the same descriptor.
func Compile(cmd Command) Descriptor {
	switch c := cmd.(type) {
	case AddBookmark:
		return update(Users, c.UserID, bson.D{{Key: "$addToSet", Value: bson.M{
			"bookmarks": models.Bookmark{FilmID: c.FilmID},
		}}}, true)

	case RemoveBookmark:
		return update(Users, c.UserID, bson.D{{Key: "$pull", Value: bson.M{
			"bookmarks": bson.M{"film_id": c.FilmID},
		}}}, false)

	case AddRating:
		return update(c.Target.Collection(), c.TargetID, votes.Cast(c.UserID, c.Score), true)

	case RemoveRating:
		return update(c.Target.Collection(), c.TargetID, votes.Retract(c.UserID), false)

	case CreateReview:
		return Descriptor{
			Kind:       KindInsert,
			Collection: Reviews,
			Filter:     byID(c.ID),
			Replacement: models.Review{
				ID:      c.ID,
				Author:  c.Author,
				FilmID:  c.FilmID,
				Text:    c.Text,
				PubDate: c.PubDate,
				Rating:  models.Rating{Votes: []models.Vote{}},
			},
			Upsert: true,
		}

	case DestroyReview:
		return Descriptor{
			Kind:       KindDelete,
			Collection: Reviews,
			Filter:     bson.D{{Key: "_id", Value: c.ID}, {Key: "author", Value: c.Author}},
		}

	case ListReviews:
		return Descriptor{
			Kind:       KindAggregate,
			Collection: Reviews,
			Pipeline:   reviewlist.Compile(c.FilmID, c.Sort, c.Page),
		}
	}
	panic(fmt.Sprintf("descriptor: unhandled command %T", cmd))
}

// FindByID describes a direct lookup of one document.
func FindByID(collection string, id uuid.UUID) Descriptor {
	return Descriptor{Kind: KindFind, Collection: collection, Filter: byID(id)}
}

func update(collection string, id uuid.UUID, mutation interface{}, upsert bool) Descriptor {
	return Descriptor{
		Kind:       KindUpdate,
		Collection: collection,
		Filter:     byID(id),
		Mutation:   mutation,
		Upsert:     upsert,
	}
}

func byID(id uuid.UUID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}
