// Package votes expresses the vote ledger rules as single-document update
// expressions. A target (film or review) keeps its votes in rating.votes
// and holds at most one entry per user.
//
// Cast and Retract are evaluated by the store inside one update, so two
// concurrent calls never interleave a read with a write.
package votes

import (
	"github.com/dalemusser/ugchub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Field is the dotted path of the embedded vote list on every target.
const Field = "rating.votes"

// Cast returns an update pipeline that sets the vote list to
// [{user_id, score}] followed by the existing votes of every other user.
// A missing list (including an upserted document) counts as empty.
func Cast(userID uuid.UUID, score models.Score) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			Field: bson.M{"$concatArrays": bson.A{
				bson.A{bson.D{
					{Key: "user_id", Value: userID},
					{Key: "score", Value: int(score)},
				}},
				bson.M{"$filter": bson.M{
					"input": bson.M{"$ifNull": bson.A{"$" + Field, bson.A{}}},
					"cond":  bson.M{"$ne": bson.A{"$$this.user_id", userID}},
				}},
			}},
		}}},
	}
}

// Retract returns an update document pulling the user's vote. Retracting
// a vote that is not there leaves the document unchanged.
func Retract(userID uuid.UUID) bson.D {
	return bson.D{
		{Key: "$pull", Value: bson.M{
			Field: bson.M{"user_id": bson.M{"$eq": userID}},
		}},
	}
}
