// Package ugc is the upward surface of the UGC core: bookmarks, votes on
// films and reviews, and reviews themselves. Every method validates its
// command, compiles it to a descriptor and performs exactly one store
// round trip; derived fields are computed afterwards by reducers.
package ugc

import (
	"context"
	"errors"

	"github.com/dalemusser/ugchub/internal/app/store/descriptor"
	"github.com/dalemusser/ugchub/internal/app/store/queries/reviewlist"
	"github.com/dalemusser/ugchub/internal/app/system/paging"
	"github.com/dalemusser/ugchub/internal/app/system/ratingsummary"
	"github.com/dalemusser/ugchub/internal/app/system/ugcerrors"
	"github.com/dalemusser/ugchub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store executes one descriptor. *gateway.Gateway satisfies it.
type Store interface {
	Execute(ctx context.Context, d descriptor.Descriptor, out interface{}) error
}

// Service is safe for concurrent use and holds no state besides its
// collaborators.
type Service struct {
	store Store
	log   *zap.Logger
}

func New(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, log: logger}
}

// AddBookmark adds filmID to the user's bookmark set, creating the user on
// first write, and returns the resulting set.
func (s *Service) AddBookmark(ctx context.Context, userID, filmID uuid.UUID) (models.BookmarkList, error) {
	return s.bookmarkWrite(ctx, descriptor.AddBookmark{UserID: userID, FilmID: filmID})
}

// RemoveBookmark removes filmID from the set. Removing a film that was not
// bookmarked, or removing for a user with no document, is a no-op; the
// user document is never created here.
func (s *Service) RemoveBookmark(ctx context.Context, userID, filmID uuid.UUID) (models.BookmarkList, error) {
	list, err := s.bookmarkWrite(ctx, descriptor.RemoveBookmark{UserID: userID, FilmID: filmID})
	if errors.Is(err, ugcerrors.ErrNotFound) {
		return bookmarkList(nil), nil
	}
	return list, err
}

func (s *Service) bookmarkWrite(ctx context.Context, cmd descriptor.Command) (models.BookmarkList, error) {
	var user models.User
	if err := s.run(ctx, cmd, &user); err != nil {
		return models.BookmarkList{}, err
	}
	return bookmarkList(user.Bookmarks), nil
}

// ListBookmarks returns one page of the user's bookmarks. A user with no
// document yet has an empty list.
func (s *Service) ListBookmarks(ctx context.Context, userID uuid.UUID, page paging.Page) (models.BookmarkList, error) {
	if err := page.Validate(); err != nil {
		return models.BookmarkList{}, ugcerrors.Invalid(err, "validate")
	}
	if userID == uuid.Nil {
		return models.BookmarkList{}, ugcerrors.Invalid(errors.New("user_id is required"), "validate")
	}

	var user models.User
	err := s.store.Execute(ctx, descriptor.FindByID(descriptor.Users, userID), &user)
	if errors.Is(err, ugcerrors.ErrNotFound) {
		return bookmarkList(nil), nil
	}
	if err != nil {
		return models.BookmarkList{}, err
	}
	return bookmarkList(paging.Slice(user.Bookmarks, page)), nil
}

// AddRating casts userID's vote on a film or review, replacing any earlier
// vote by the same user. The target is created if absent.
func (s *Service) AddRating(ctx context.Context, userID uuid.UUID, target descriptor.Target, targetID uuid.UUID, score models.Score) (models.RatingSummary, error) {
	return s.ratingWrite(ctx, descriptor.AddRating{UserID: userID, Target: target, TargetID: targetID, Score: score})
}

// RemoveRating retracts userID's vote. Retracting a vote that does not
// exist returns the unchanged summary; an absent target is ErrNotFound.
func (s *Service) RemoveRating(ctx context.Context, userID uuid.UUID, target descriptor.Target, targetID uuid.UUID) (models.RatingSummary, error) {
	return s.ratingWrite(ctx, descriptor.RemoveRating{UserID: userID, Target: target, TargetID: targetID})
}

func (s *Service) ratingWrite(ctx context.Context, cmd descriptor.Command) (models.RatingSummary, error) {
	var doc struct {
		Rating models.Rating `bson:"rating"`
	}
	if err := s.run(ctx, cmd, &doc); err != nil {
		return models.RatingSummary{}, err
	}
	return ratingsummary.Summarize(doc.Rating.Votes), nil
}

// FilmRating summarizes the votes on a film.
func (s *Service) FilmRating(ctx context.Context, filmID uuid.UUID) (models.RatingSummary, error) {
	return s.ratingRead(ctx, descriptor.Films, filmID)
}

// ReviewRating summarizes the votes on a review.
func (s *Service) ReviewRating(ctx context.Context, reviewID uuid.UUID) (models.RatingSummary, error) {
	return s.ratingRead(ctx, descriptor.Reviews, reviewID)
}

func (s *Service) ratingRead(ctx context.Context, collection string, id uuid.UUID) (models.RatingSummary, error) {
	if id == uuid.Nil {
		return models.RatingSummary{}, ugcerrors.Invalid(errors.New("id is required"), "validate")
	}
	var doc struct {
		Rating models.Rating `bson:"rating"`
	}
	if err := s.store.Execute(ctx, descriptor.FindByID(collection, id), &doc); err != nil {
		return models.RatingSummary{}, err
	}
	return ratingsummary.Summarize(doc.Rating.Votes), nil
}

// CreateReview stores a new review of filmID by author. The text is kept
// exactly as given; escaping is the renderer's job. A second review of the same film by the same author
// fails with ErrConstraintViolation.
func (s *Service) CreateReview(ctx context.Context, author, filmID uuid.UUID, text string) (models.ReviewItem, error) {
	cmd := descriptor.NewCreateReview(author, filmID, text)

	var stored models.Review
	if err := s.run(ctx, cmd, &stored); err != nil {
		if errors.Is(err, ugcerrors.ErrConstraintViolation) {
			s.log.Info("duplicate review rejected",
				zap.String("author", author.String()),
				zap.String("film_id", filmID.String()))
		}
		return models.ReviewItem{}, err
	}

	s.log.Info("review created",
		zap.String("review_id", stored.ID.String()),
		zap.String("film_id", stored.FilmID.String()))
	return reviewItem(stored), nil
}

// DestroyReview deletes a review written by author. A review that does not
// exist and one written by someone else both yield ErrPermissionDenied.
func (s *Service) DestroyReview(ctx context.Context, reviewID, author uuid.UUID) error {
	err := s.run(ctx, descriptor.DestroyReview{ID: reviewID, Author: author}, nil)
	if errors.Is(err, ugcerrors.ErrNotFound) {
		return ugcerrors.New(ugcerrors.ErrPermissionDenied, descriptor.KindDelete.String(), descriptor.Reviews)
	}
	if err != nil {
		return err
	}
	s.log.Info("review deleted", zap.String("review_id", reviewID.String()))
	return nil
}

// ListReviews returns one page of a film's reviews in the requested order,
// each with its author's film score and its own rating.
func (s *Service) ListReviews(ctx context.Context, filmID uuid.UUID, sort reviewlist.Sort, page paging.Page) ([]models.ReviewItem, error) {
	if sort == "" {
		sort = reviewlist.SortTop
	}
	var rows []reviewlist.Row
	if err := s.run(ctx, descriptor.ListReviews{FilmID: filmID, Sort: sort, Page: page}, &rows); err != nil {
		return nil, err
	}

	items := make([]models.ReviewItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.Item())
	}
	return items, nil
}

// run validates, compiles and executes cmd.
func (s *Service) run(ctx context.Context, cmd descriptor.Command, out interface{}) error {
	if err := descriptor.Validate(cmd); err != nil {
		return ugcerrors.Invalid(err, "validate")
	}
	d := descriptor.Compile(cmd)
	s.log.Debug("ugc command",
		zap.String("kind", d.Kind.String()),
		zap.String("collection", d.Collection))
	return s.store.Execute(ctx, d, out)
}

func bookmarkList(items []models.Bookmark) models.BookmarkList {
	if items == nil {
		items = []models.Bookmark{}
	}
	return models.BookmarkList{Items: items}
}

func reviewItem(r models.Review) models.ReviewItem {
	sum := ratingsummary.Summarize(r.Rating.Votes)
	return models.ReviewItem{
		ID:            r.ID,
		Author:        r.Author,
		FilmID:        r.FilmID,
		Text:          r.Text,
		PubDate:       r.PubDate,
		Likes:         sum.Likes,
		Dislikes:      sum.Dislikes,
		AverageRating: sum.AverageRating,
	}
}
