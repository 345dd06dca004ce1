// internal/app/store/descriptor/commands.go
package descriptor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/ugchub/internal/app/store/queries/reviewlist"
	"github.com/dalemusser/ugchub/internal/app/system/paging"
	"github.com/dalemusser/ugchub/internal/domain/models"
	"github.com/google/uuid"
)

// Command is one of the seven UGC intents. The set is closed: only the
// types in this file implement it.
type Command interface {
	command()
}

// Target names the kind of entity that owns a vote list.
type Target int

const (
	TargetFilm Target = iota + 1
	TargetReview
)

// Collection returns the collection holding targets of this kind.
func (t Target) Collection() string {
	switch t {
	case TargetFilm:
		return Films
	case TargetReview:
		return Reviews
	}
	return ""
}

func (t Target) String() string {
	switch t {
	case TargetFilm:
		return "film"
	case TargetReview:
		return "review"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

type AddBookmark struct {
	UserID uuid.UUID
	FilmID uuid.UUID
}

type RemoveBookmark struct {
	UserID uuid.UUID
	FilmID uuid.UUID
}

// AddRating casts (or replaces) UserID's vote on a film or review.
type AddRating struct {
	UserID   uuid.UUID
	Target   Target
	TargetID uuid.UUID
	Score    models.Score
}

// RemoveRating retracts UserID's vote on a film or review.
type RemoveRating struct {
	UserID   uuid.UUID
	Target   Target
	TargetID uuid.UUID
}

// CreateReview carries a fully formed new review. Use NewCreateReview to
// get a fresh id and publication date.
type CreateReview struct {
	ID      uuid.UUID
	Author  uuid.UUID
	FilmID  uuid.UUID
	Text    string
	PubDate time.Time
}

// DestroyReview deletes review ID only if Author wrote it.
type DestroyReview struct {
	ID     uuid.UUID
	Author uuid.UUID
}

type ListReviews struct {
	FilmID uuid.UUID
	Sort   reviewlist.Sort
	Page   paging.Page
}

func (AddBookmark) command()    {}
func (RemoveBookmark) command() {}
func (AddRating) command()      {}
func (RemoveRating) command()   {}
func (CreateReview) command()   {}
func (DestroyReview) command()  {}
func (ListReviews) command()    {}

// NewCreateReview stamps a new review with a random id and the current
// time, truncated to the millisecond precision the store keeps.
func NewCreateReview(author, filmID uuid.UUID, text string) CreateReview {
	return CreateReview{
		ID:      uuid.New(),
		Author:  author,
		FilmID:  filmID,
		Text:    text,
		PubDate: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid command")

// Validate checks the fields a command needs before it is compiled.
func Validate(cmd Command) error {
	var problems []string
	need := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	switch c := cmd.(type) {
	case AddBookmark:
		need(c.UserID != uuid.Nil, "user_id is required")
		need(c.FilmID != uuid.Nil, "film_id is required")
	case RemoveBookmark:
		need(c.UserID != uuid.Nil, "user_id is required")
		need(c.FilmID != uuid.Nil, "film_id is required")
	case AddRating:
		need(c.UserID != uuid.Nil, "user_id is required")
		need(c.Target.Collection() != "", "target must be film or review")
		need(c.TargetID != uuid.Nil, "target id is required")
		need(c.Score.Valid(), "score must be like (10) or dislike (0)")
	case RemoveRating:
		need(c.UserID != uuid.Nil, "user_id is required")
		need(c.Target.Collection() != "", "target must be film or review")
		need(c.TargetID != uuid.Nil, "target id is required")
	case CreateReview:
		need(c.ID != uuid.Nil, "id is required")
		need(c.Author != uuid.Nil, "author is required")
		need(c.FilmID != uuid.Nil, "film_id is required")
		need(strings.TrimSpace(c.Text) != "", "text is required")
		need(!c.PubDate.IsZero(), "pub_date is required")
	case DestroyReview:
		need(c.ID != uuid.Nil, "id is required")
		need(c.Author != uuid.Nil, "author is required")
	case ListReviews:
		need(c.FilmID != uuid.Nil, "film_id is required")
		if _, err := reviewlist.ParseSort(string(c.Sort)); err != nil {
			problems = append(problems, err.Error())
		}
		if err := c.Page.Validate(); err != nil {
			problems = append(problems, err.Error())
		}
	case nil:
		problems = append(problems, "command is nil")
	default:
		problems = append(problems, fmt.Sprintf("unknown command %T", cmd))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
