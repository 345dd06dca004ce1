// internal/domain/models/film.go
package models

import "github.com/google/uuid"

// Film documents are owned by the catalog ingestion pipeline. This service
// only touches the embedded rating; a film first seen through a vote is
// stored as a shell holding just its id and votes.
type Film struct {
	ID     uuid.UUID `bson:"_id" json:"id"`
	Rating Rating    `bson:"rating" json:"rating"`
}
