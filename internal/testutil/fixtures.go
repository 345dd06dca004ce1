package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/ugchub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given bookmarks.
func (f *Fixtures) CreateUser(ctx context.Context, filmIDs ...uuid.UUID) models.User {
	f.t.Helper()

	u := models.User{ID: uuid.New(), Bookmarks: []models.Bookmark{}}
	for _, id := range filmIDs {
		u.Bookmarks = append(u.Bookmarks, models.Bookmark{FilmID: id})
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateFilm inserts a film carrying the given votes.
func (f *Fixtures) CreateFilm(ctx context.Context, votes ...models.Vote) models.Film {
	f.t.Helper()

	if votes == nil {
		votes = []models.Vote{}
	}
	film := models.Film{ID: uuid.New(), Rating: models.Rating{Votes: votes}}
	if _, err := f.db.Collection("films").InsertOne(ctx, film); err != nil {
		f.t.Fatalf("failed to create test film: %v", err)
	}
	return film
}

// CreateReview inserts a review by author on film, published at pubDate.
func (f *Fixtures) CreateReview(ctx context.Context, author, filmID uuid.UUID, text string, pubDate time.Time, votes ...models.Vote) models.Review {
	f.t.Helper()

	if votes == nil {
		votes = []models.Vote{}
	}
	r := models.Review{
		ID:      uuid.New(),
		Author:  author,
		FilmID:  filmID,
		Text:    text,
		PubDate: pubDate.UTC().Truncate(time.Millisecond),
		Rating:  models.Rating{Votes: votes},
	}
	if _, err := f.db.Collection("reviews").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test review: %v", err)
	}
	return r
}

// Like and Dislike build votes for fixtures.
func Like(user uuid.UUID) models.Vote    { return models.Vote{UserID: user, Score: models.Like} }
func Dislike(user uuid.UUID) models.Vote { return models.Vote{UserID: user, Score: models.Dislike} }
