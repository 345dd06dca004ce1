// Package schema creates the UGC collections with $jsonSchema validators.
// Running it again updates the validators in place (collMod), so it is
// safe to call on every start.
package schema

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// codeNamespaceExists is returned by create when the collection is there.
const codeNamespaceExists = 48

var voteList = bson.M{
	"bsonType": "array",
	"items": bson.M{
		"bsonType": "object",
		"required": bson.A{"user_id", "score"},
		"properties": bson.M{
			"user_id": bson.M{"bsonType": "binData"},
			"score":   bson.M{"bsonType": "number"},
		},
	},
}

var ratingField = bson.M{
	"bsonType":   "object",
	"required":   bson.A{"votes"},
	"properties": bson.M{"votes": voteList},
}

// Validators maps each collection to its $jsonSchema.
var Validators = map[string]bson.M{
	"users": {
		"bsonType": "object",
		"required": bson.A{"_id", "bookmarks"},
		"properties": bson.M{
			"_id": bson.M{"bsonType": "binData"},
			"bookmarks": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType":   "object",
					"required":   bson.A{"film_id"},
					"properties": bson.M{"film_id": bson.M{"bsonType": "binData"}},
				},
			},
		},
	},
	"films": {
		"bsonType": "object",
		"required": bson.A{"_id", "rating"},
		"properties": bson.M{
			"_id":    bson.M{"bsonType": "binData"},
			"rating": ratingField,
		},
	},
	"reviews": {
		"bsonType": "object",
		"required": bson.A{"_id", "rating"},
		"properties": bson.M{
			"_id":      bson.M{"bsonType": "binData"},
			"author":   bson.M{"bsonType": "binData"},
			"film_id":  bson.M{"bsonType": "binData"},
			"text":     bson.M{"bsonType": "string"},
			"pub_date": bson.M{"bsonType": "date"},
			"rating":   ratingField,
		},
	},
}

// order keeps startup logs stable.
var order = []string{"users", "films", "reviews"}

// EnsureCollections creates missing collections and refreshes validators
// on existing ones. All problems are collected before returning.
func EnsureCollections(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string
	for _, name := range order {
		if err := ensureCollection(ctx, db, name, Validators[name], logger); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, jsonSchema bson.M, logger *zap.Logger) error {
	validator := bson.M{"$jsonSchema": jsonSchema}

	err := db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(validator))
	if err == nil {
		logger.Info("collection created", zap.String("collection", name))
		return nil
	}
	if !isNamespaceExists(err) {
		return err
	}

	res := db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	})
	if err := res.Err(); err != nil {
		return err
	}
	logger.Info("collection validator refreshed", zap.String("collection", name))
	return nil
}

func isNamespaceExists(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == codeNamespaceExists {
		return true
	}
	return strings.Contains(err.Error(), "NamespaceExists")
}
