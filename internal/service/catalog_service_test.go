package service

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/models"
	"marketplace/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func newCatalogService(listings repository.Listings, users repository.Users, reviews repository.Reviews, events *mockEvents) *CatalogService {
	return NewCatalogService(listings, users, reviews, events, Config{})
}

func TestCatalogAdd(t *testing.T) {
	ctx := context.Background()
	ownerID := bson.NewObjectID()
	listingID := bson.NewObjectID()

	users := &mockUsers{
		getByIDFn: func(ctx context.Context, id bson.ObjectID) (*models.User, error) {
			if id != ownerID {
				return nil, repository.ErrNotFound
			}
			return &models.User{ID: ownerID, UserName: "Kuldeep"}, nil
		},
	}
	var created *models.Listing
	listings := &mockListings{
		createFn: func(ctx context.Context, l *models.Listing) (bson.ObjectID, error) {
			created = l
			return listingID, nil
		},
	}
	events := &mockEvents{}
	s := newCatalogService(listings, users, &mockReviewsRepo{}, events)

	id, err := s.Add(ctx, ownerID.Hex(), ListingParams{Title: "Bike", Price: 120, Image: "http://img", Category: "sports", Description: "Fast"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id != listingID.Hex() {
		t.Fatalf("id: got %q, want %q", id, listingID.Hex())
	}
	if created.Owner != ownerID || created.Title != "Bike" {
		t.Fatalf("unexpected listing: %+v", created)
	}
	if len(users.appendedProducts) != 1 || users.appendedProducts[0] != [2]bson.ObjectID{ownerID, listingID} {
		t.Fatalf("product ref not appended: %v", users.appendedProducts)
	}
	if events.lastEventType() != models.EventListingAdded {
		t.Fatalf("expected a listing-added event, got %q", events.lastEventType())
	}
}

func TestCatalogAdd_Errors(t *testing.T) {
	ctx := context.Background()
	s := newCatalogService(&mockListings{}, &mockUsers{}, &mockReviewsRepo{}, &mockEvents{})

	if _, err := s.Add(ctx, "not-a-hex-id", ListingParams{}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	// owner id is well-formed but no such user exists
	if _, err := s.Add(ctx, bson.NewObjectID().Hex(), ListingParams{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCatalogShow_Populates(t *testing.T) {
	ctx := context.Background()
	ownerID := bson.NewObjectID()
	reviewerID := bson.NewObjectID()
	listingID := bson.NewObjectID()
	r1 := bson.NewObjectID()
	rGone := bson.NewObjectID()
	r2 := bson.NewObjectID()

	users := &mockUsers{
		getByIDFn: func(ctx context.Context, id bson.ObjectID) (*models.User, error) {
			switch id {
			case ownerID:
				return &models.User{ID: ownerID, UserName: "Kuldeep"}, nil
			case reviewerID:
				return &models.User{ID: reviewerID, UserName: "Asha"}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	listings := &mockListings{
		getByIDFn: func(ctx context.Context, id bson.ObjectID) (*models.Listing, error) {
			if id != listingID {
				return nil, repository.ErrNotFound
			}
			return &models.Listing{
				ID:      listingID,
				Title:   "Bike",
				Owner:   ownerID,
				Reviews: []bson.ObjectID{r1, rGone, r2},
			}, nil
		},
	}
	reviews := &mockReviewsRepo{
		getByIDsFn: func(ctx context.Context, ids []bson.ObjectID) ([]models.Review, error) {
			// rGone has been deleted; the $in query simply doesn't return it
			return []models.Review{
				{ID: r2, Rating: 3, Comment: "ok", Owner: reviewerID},
				{ID: r1, Rating: 5, Comment: "great", Owner: reviewerID},
			}, nil
		},
	}
	s := newCatalogService(listings, users, reviews, &mockEvents{})

	detail, err := s.Show(ctx, listingID.Hex())
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if detail.Owner == nil || detail.Owner.UserName != "Kuldeep" {
		t.Fatalf("owner not populated: %+v", detail.Owner)
	}
	// dangling ref skipped, listing order preserved
	if len(detail.Reviews) != 2 || detail.Reviews[0].ID != r1 || detail.Reviews[1].ID != r2 {
		t.Fatalf("unexpected reviews: %+v", detail.Reviews)
	}
	if detail.Reviews[0].Owner == nil || detail.Reviews[0].Owner.UserName != "Asha" {
		t.Fatalf("review owner not populated: %+v", detail.Reviews[0].Owner)
	}
}

func TestCatalogShow_OwnerGone(t *testing.T) {
	ctx := context.Background()
	listingID := bson.NewObjectID()
	listings := &mockListings{
		getByIDFn: func(ctx context.Context, id bson.ObjectID) (*models.Listing, error) {
			return &models.Listing{ID: listingID, Title: "Bike", Owner: bson.NewObjectID()}, nil
		},
	}
	s := newCatalogService(listings, &mockUsers{}, &mockReviewsRepo{}, &mockEvents{})

	detail, err := s.Show(ctx, listingID.Hex())
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if detail.Owner != nil {
		t.Fatalf("dangling owner must resolve to nil, got %+v", detail.Owner)
	}
}

func TestCatalogShow_Errors(t *testing.T) {
	ctx := context.Background()
	s := newCatalogService(&mockListings{}, &mockUsers{}, &mockReviewsRepo{}, &mockEvents{})

	if _, err := s.Show(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := s.Show(ctx, bson.NewObjectID().Hex()); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestCatalogEdit(t *testing.T) {
	ctx := context.Background()
	listingID := bson.NewObjectID()
	var gotID bson.ObjectID
	var gotFields repository.ListingFields
	listings := &mockListings{
		updateFn: func(ctx context.Context, id bson.ObjectID, fields repository.ListingFields) error {
			gotID = id
			gotFields = fields
			return nil
		},
	}
	events := &mockEvents{}
	s := newCatalogService(listings, &mockUsers{}, &mockReviewsRepo{}, events)

	err := s.Edit(ctx, listingID.Hex(), ListingParams{Title: "Bike v2", Price: 150, Image: "http://img2", Category: "sports", Description: "Faster"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if gotID != listingID || gotFields.Title != "Bike v2" || gotFields.Price != 150 {
		t.Fatalf("update not forwarded: id=%v fields=%+v", gotID, gotFields)
	}
	if events.lastEventType() != models.EventListingEdited {
		t.Fatalf("expected a listing-edited event, got %q", events.lastEventType())
	}

	if err := s.Edit(ctx, "bad", ListingParams{}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestCatalogDelete(t *testing.T) {
	ctx := context.Background()
	listingID := bson.NewObjectID()
	var gotID bson.ObjectID
	listings := &mockListings{
		deleteFn: func(ctx context.Context, id bson.ObjectID) error {
			gotID = id
			return nil
		},
	}
	events := &mockEvents{}
	s := newCatalogService(listings, &mockUsers{}, &mockReviewsRepo{}, events)

	if err := s.Delete(ctx, listingID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotID != listingID {
		t.Fatalf("delete not forwarded: %v", gotID)
	}
	if events.lastEventType() != models.EventListingDeleted {
		t.Fatalf("expected a listing-deleted event, got %q", events.lastEventType())
	}

	if err := s.Delete(ctx, "bad"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestCatalogList(t *testing.T) {
	ctx := context.Background()
	listings := &mockListings{
		listFn: func(ctx context.Context) ([]models.Listing, error) {
			return []models.Listing{{Title: "Bike"}, {Title: "Desk"}}, nil
		},
	}
	s := newCatalogService(listings, &mockUsers{}, &mockReviewsRepo{}, &mockEvents{})

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[1].Title != "Desk" {
		t.Fatalf("unexpected listings: %+v", got)
	}
}

func TestCatalogAdd_RecordFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	ownerID := bson.NewObjectID()
	users := &mockUsers{
		getByIDFn: func(ctx context.Context, id bson.ObjectID) (*models.User, error) {
			return &models.User{ID: ownerID}, nil
		},
	}
	events := &mockEvents{
		appendFn: func(ctx context.Context, e models.Event) error {
			return errors.New("events collection unavailable")
		},
	}
	s := newCatalogService(&mockListings{}, users, &mockReviewsRepo{}, events)

	if _, err := s.Add(ctx, ownerID.Hex(), ListingParams{Title: "Bike"}); err != nil {
		t.Fatalf("event append failure must not fail the write: %v", err)
	}
}
