package service

import (
	"context"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository mocks used across the service tests. Unset function fields fall
// back to "not found" for reads and success for writes.

type mockUsers struct {
	createFn     func(ctx context.Context, u *models.User) (bson.ObjectID, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	getByIDFn    func(ctx context.Context, id bson.ObjectID) (*models.User, error)
	listFn       func(ctx context.Context) ([]models.User, error)

	appendedProducts [][2]bson.ObjectID
	pulledProducts   [][2]bson.ObjectID
}

func (m *mockUsers) Create(ctx context.Context, u *models.User) (bson.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	return bson.NewObjectID(), nil
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUsers) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUsers) AppendProduct(ctx context.Context, userID, listingID bson.ObjectID) error {
	m.appendedProducts = append(m.appendedProducts, [2]bson.ObjectID{userID, listingID})
	return nil
}

func (m *mockUsers) PullProduct(ctx context.Context, userID, listingID bson.ObjectID) error {
	m.pulledProducts = append(m.pulledProducts, [2]bson.ObjectID{userID, listingID})
	return nil
}

type mockListings struct {
	createFn      func(ctx context.Context, l *models.Listing) (bson.ObjectID, error)
	getByIDFn     func(ctx context.Context, id bson.ObjectID) (*models.Listing, error)
	listFn        func(ctx context.Context) ([]models.Listing, error)
	updateFn      func(ctx context.Context, id bson.ObjectID, fields repository.ListingFields) error
	deleteFn      func(ctx context.Context, id bson.ObjectID) error
	existingIDsFn func(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]bool, error)

	appendedReviews [][2]bson.ObjectID
	pulledReviews   [][2]bson.ObjectID
}

func (m *mockListings) Create(ctx context.Context, l *models.Listing) (bson.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, l)
	}
	return bson.NewObjectID(), nil
}

func (m *mockListings) GetByID(ctx context.Context, id bson.ObjectID) (*models.Listing, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockListings) List(ctx context.Context) ([]models.Listing, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockListings) Update(ctx context.Context, id bson.ObjectID, fields repository.ListingFields) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil
}

func (m *mockListings) Delete(ctx context.Context, id bson.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockListings) AppendReview(ctx context.Context, listingID, reviewID bson.ObjectID) error {
	m.appendedReviews = append(m.appendedReviews, [2]bson.ObjectID{listingID, reviewID})
	return nil
}

func (m *mockListings) PullReview(ctx context.Context, listingID, reviewID bson.ObjectID) error {
	m.pulledReviews = append(m.pulledReviews, [2]bson.ObjectID{listingID, reviewID})
	return nil
}

func (m *mockListings) ExistingIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	if m.existingIDsFn != nil {
		return m.existingIDsFn(ctx, ids)
	}
	return map[bson.ObjectID]bool{}, nil
}

type mockReviewsRepo struct {
	createFn      func(ctx context.Context, r *models.Review) (bson.ObjectID, error)
	getByIDsFn    func(ctx context.Context, ids []bson.ObjectID) ([]models.Review, error)
	deleteFn      func(ctx context.Context, id bson.ObjectID) error
	existingIDsFn func(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]bool, error)

	deleted []bson.ObjectID
}

func (m *mockReviewsRepo) Create(ctx context.Context, r *models.Review) (bson.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	return bson.NewObjectID(), nil
}

func (m *mockReviewsRepo) GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Review, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockReviewsRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	m.deleted = append(m.deleted, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockReviewsRepo) ExistingIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	if m.existingIDsFn != nil {
		return m.existingIDsFn(ctx, ids)
	}
	return map[bson.ObjectID]bool{}, nil
}

type mockEvents struct {
	appendFn func(ctx context.Context, e models.Event) error
	listFn   func(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error)

	appended []models.Event
}

func (m *mockEvents) Append(ctx context.Context, e models.Event) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, e)
	}
	m.appended = append(m.appended, e)
	return nil
}

func (m *mockEvents) List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx, from, to, typ)
	}
	return nil, nil
}

// lastEventType returns the type of the most recently appended event.
func (m *mockEvents) lastEventType() string {
	if len(m.appended) == 0 {
		return ""
	}
	return m.appended[len(m.appended)-1].Type
}
