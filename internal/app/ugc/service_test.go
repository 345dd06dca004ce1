package ugc_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dalemusser/ugchub/internal/app/store/descriptor"
	"github.com/dalemusser/ugchub/internal/app/store/queries/reviewlist"
	"github.com/dalemusser/ugchub/internal/app/system/paging"
	"github.com/dalemusser/ugchub/internal/app/system/ugcerrors"
	"github.com/dalemusser/ugchub/internal/app/system/uuidcodec"
	"github.com/dalemusser/ugchub/internal/app/ugc"
	"github.com/dalemusser/ugchub/internal/domain/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// fakeStore records descriptors and answers with a canned document,
// round-tripped through BSON the way the gateway decodes.
type fakeStore struct {
	calls []descriptor.Descriptor
	doc   interface{}
	rows  []reviewlist.Row
	err   error
}

func (f *fakeStore) Execute(_ context.Context, d descriptor.Descriptor, out interface{}) error {
	f.calls = append(f.calls, d)
	if f.err != nil {
		return f.err
	}
	if rows, ok := out.(*[]reviewlist.Row); ok {
		*rows = f.rows
		return nil
	}
	if out == nil || f.doc == nil {
		return nil
	}
	raw, err := bson.MarshalWithRegistry(uuidcodec.Registry(), f.doc)
	if err != nil {
		return err
	}
	return bson.UnmarshalWithRegistry(uuidcodec.Registry(), raw, out)
}

func newService(store *fakeStore) *ugc.Service {
	return ugc.New(store, zap.NewNop())
}

func intPtr(v int) *int                     { return &v }
func strPtr(v string) *string               { return &v }
func scorePtr(v models.Score) *models.Score { return &v }

func TestAddRating_Summarizes(t *testing.T) {
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()
	film := models.Film{ID: uuid.New(), Rating: models.Rating{Votes: []models.Vote{
		{UserID: u1, Score: models.Like},
		{UserID: u2, Score: models.Like},
		{UserID: u3, Score: models.Dislike},
	}}}
	store := &fakeStore{doc: film}

	got, err := newService(store).AddRating(context.Background(), u3, descriptor.TargetFilm, film.ID, models.Dislike)
	if err != nil {
		t.Fatalf("AddRating: %v", err)
	}
	want := models.RatingSummary{Likes: 2, Dislikes: 1, AverageRating: intPtr(6)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	if len(store.calls) != 1 {
		t.Fatalf("expected one round trip, got %d", len(store.calls))
	}
	d := store.calls[0]
	if d.Kind != descriptor.KindUpdate || d.Collection != descriptor.Films || !d.Upsert {
		t.Errorf("unexpected descriptor %+v", d)
	}
}

func TestAddRating_InvalidScoreNeverReachesStore(t *testing.T) {
	store := &fakeStore{}
	_, err := newService(store).AddRating(context.Background(), uuid.New(), descriptor.TargetReview, uuid.New(), models.Score(5))
	if !errors.Is(err, ugcerrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if !errors.Is(err, descriptor.ErrInvalid) {
		t.Errorf("expected descriptor.ErrInvalid to stay reachable, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("store called %d times", len(store.calls))
	}
}

func TestRemoveRating_NotFoundPassesThrough(t *testing.T) {
	store := &fakeStore{err: ugcerrors.New(ugcerrors.ErrNotFound, "update", descriptor.Films)}
	_, err := newService(store).RemoveRating(context.Background(), uuid.New(), descriptor.TargetFilm, uuid.New())
	if !errors.Is(err, ugcerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFilmRating_NoVotes(t *testing.T) {
	store := &fakeStore{doc: models.Film{ID: uuid.New(), Rating: models.Rating{Votes: []models.Vote{}}}}
	got, err := newService(store).FilmRating(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("FilmRating: %v", err)
	}
	if got.AverageRating != nil || got.Likes != 0 || got.Dislikes != 0 {
		t.Errorf("expected empty summary, got %+v", got)
	}
	if store.calls[0].Kind != descriptor.KindFind {
		t.Errorf("expected find, got %v", store.calls[0].Kind)
	}
}

func TestReviewRating_RequiresID(t *testing.T) {
	_, err := newService(&fakeStore{}).ReviewRating(context.Background(), uuid.Nil)
	if !errors.Is(err, ugcerrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCreateReview_StoresTextVerbatim(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"comparison signs", "if a<b and c>d the plot holds"},
		{"escaped markup", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"ampersand", "Tom & Jerry"},
		{"tags", "<p>Great <b>cast</b></p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			author, film := uuid.New(), uuid.New()
			store := &fakeStore{}
			if _, err := newService(store).CreateReview(context.Background(), author, film, tt.text); err != nil {
				t.Fatalf("CreateReview: %v", err)
			}
			if len(store.calls) != 1 {
				t.Fatalf("expected one round trip, got %d", len(store.calls))
			}
			r, ok := store.calls[0].Replacement.(models.Review)
			if !ok {
				t.Fatalf("replacement is %T", store.calls[0].Replacement)
			}
			if r.Text != tt.text {
				t.Errorf("stored text = %q, want %q", r.Text, tt.text)
			}
			if r.Author != author || r.FilmID != film {
				t.Errorf("unexpected review %+v", r)
			}
		})
	}
}

func TestCreateReview_ReturnsStoredReview(t *testing.T) {
	stored := models.Review{
		ID: uuid.New(), Author: uuid.New(), FilmID: uuid.New(),
		Text: "fine", Rating: models.Rating{Votes: []models.Vote{}},
	}
	got, err := newService(&fakeStore{doc: stored}).CreateReview(context.Background(), stored.Author, stored.FilmID, "fine")
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if got.ID != stored.ID || got.AverageRating != nil || got.FilmScore != nil {
		t.Errorf("unexpected item %+v", got)
	}
}

func TestCreateReview_BlankTextIsInvalid(t *testing.T) {
	store := &fakeStore{}
	_, err := newService(store).CreateReview(context.Background(), uuid.New(), uuid.New(), "  \n\t ")
	if !errors.Is(err, ugcerrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("store called %d times", len(store.calls))
	}
}

func TestCreateReview_Duplicate(t *testing.T) {
	store := &fakeStore{err: ugcerrors.New(ugcerrors.ErrConstraintViolation, "insert", descriptor.Reviews)}
	_, err := newService(store).CreateReview(context.Background(), uuid.New(), uuid.New(), "again")
	if !errors.Is(err, ugcerrors.ErrConstraintViolation) {
		t.Errorf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestDestroyReview_NoMatchIsPermissionDenied(t *testing.T) {
	store := &fakeStore{err: ugcerrors.New(ugcerrors.ErrNotFound, "delete", descriptor.Reviews)}
	err := newService(store).DestroyReview(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ugcerrors.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
	if errors.Is(err, ugcerrors.ErrNotFound) {
		t.Error("permission denied must not also match not found")
	}
}

func TestDestroyReview_TransportPassesThrough(t *testing.T) {
	store := &fakeStore{err: ugcerrors.New(ugcerrors.ErrTransport, "delete", descriptor.Reviews)}
	err := newService(store).DestroyReview(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ugcerrors.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestListBookmarks_UnknownUserIsEmpty(t *testing.T) {
	store := &fakeStore{err: ugcerrors.New(ugcerrors.ErrNotFound, "find", descriptor.Users)}
	got, err := newService(store).ListBookmarks(context.Background(), uuid.New(), paging.First())
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if got.Items == nil || len(got.Items) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got.Items)
	}
}

func TestListBookmarks_Pages(t *testing.T) {
	user := models.User{ID: uuid.New()}
	for i := 0; i < 5; i++ {
		user.Bookmarks = append(user.Bookmarks, models.Bookmark{FilmID: uuid.New()})
	}
	svc := newService(&fakeStore{doc: user})

	got, err := svc.ListBookmarks(context.Background(), user.ID, paging.New(2, 2))
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if diff := cmp.Diff(user.Bookmarks[2:4], got.Items); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}

	got, err = svc.ListBookmarks(context.Background(), user.ID, paging.New(4, 2))
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(got.Items) != 0 {
		t.Errorf("expected empty page past the end, got %d items", len(got.Items))
	}
}

func TestListBookmarks_InvalidPage(t *testing.T) {
	_, err := newService(&fakeStore{}).ListBookmarks(context.Background(), uuid.New(), paging.New(-1, 10))
	if !errors.Is(err, ugcerrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRemoveBookmark_UnknownUserIsEmpty(t *testing.T) {
	store := &fakeStore{err: ugcerrors.New(ugcerrors.ErrNotFound, "update", descriptor.Users)}
	got, err := newService(store).RemoveBookmark(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("RemoveBookmark: %v", err)
	}
	if got.Items == nil || len(got.Items) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got.Items)
	}
	if d := store.calls[0]; d.Upsert {
		t.Error("RemoveBookmark must not upsert")
	}
}

func TestRemoveBookmark_TransportPassesThrough(t *testing.T) {
	store := &fakeStore{err: ugcerrors.New(ugcerrors.ErrTransport, "update", descriptor.Users)}
	if _, err := newService(store).RemoveBookmark(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ugcerrors.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestAddBookmark_ReturnsSet(t *testing.T) {
	film := uuid.New()
	user := models.User{ID: uuid.New(), Bookmarks: []models.Bookmark{{FilmID: film}}}
	store := &fakeStore{doc: user}

	got, err := newService(store).AddBookmark(context.Background(), user.ID, film)
	if err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}
	if diff := cmp.Diff(user.Bookmarks, got.Items); diff != "" {
		t.Errorf("bookmarks mismatch (-want +got):\n%s", diff)
	}
	if d := store.calls[0]; d.Collection != descriptor.Users || !d.Upsert {
		t.Errorf("unexpected descriptor %+v", d)
	}
}

func TestListReviews_ConvertsRows(t *testing.T) {
	avg := 6.67
	row := reviewlist.Row{
		ID: uuid.New(), Author: uuid.New(), FilmID: uuid.New(), Text: "ok",
		FilmScore: scorePtr(models.Dislike), Likes: 2, Dislikes: 1, AverageRating: &avg,
	}
	store := &fakeStore{rows: []reviewlist.Row{row}}

	got, err := newService(store).ListReviews(context.Background(), row.FilmID, "", paging.First())
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	want := []models.ReviewItem{{
		ID: row.ID, Author: row.Author, FilmID: row.FilmID, Text: "ok",
		FilmScore: strPtr("dislike"), Likes: 2, Dislikes: 1, AverageRating: intPtr(6),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if k := store.calls[0].Kind; k != descriptor.KindAggregate {
		t.Errorf("expected aggregate, got %v", k)
	}
}

func TestListReviews_OverflowingPageIsInvalid(t *testing.T) {
	store := &fakeStore{}
	_, err := newService(store).ListReviews(context.Background(), uuid.New(), reviewlist.SortNew, paging.New(math.MaxInt64/50, 100))
	if !errors.Is(err, ugcerrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("store called %d times", len(store.calls))
	}
}

func TestListReviews_UnknownSort(t *testing.T) {
	_, err := newService(&fakeStore{}).ListReviews(context.Background(), uuid.New(), reviewlist.Sort("best"), paging.First())
	if !errors.Is(err, ugcerrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
