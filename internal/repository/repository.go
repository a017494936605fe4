package repository

import (
	"context"
	"time"

	"marketplace/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type Users interface {
	Create(ctx context.Context, u *models.User) (bson.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	AppendProduct(ctx context.Context, userID, listingID bson.ObjectID) error
	PullProduct(ctx context.Context, userID, listingID bson.ObjectID) error
}

type Listings interface {
	Create(ctx context.Context, l *models.Listing) (bson.ObjectID, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Listing, error)
	List(ctx context.Context) ([]models.Listing, error)
	Update(ctx context.Context, id bson.ObjectID, fields ListingFields) error
	Delete(ctx context.Context, id bson.ObjectID) error
	AppendReview(ctx context.Context, listingID, reviewID bson.ObjectID) error
	PullReview(ctx context.Context, listingID, reviewID bson.ObjectID) error
	ExistingIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]bool, error)
}

type Reviews interface {
	Create(ctx context.Context, r *models.Review) (bson.ObjectID, error)
	GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Review, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	ExistingIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]bool, error)
}

type Events interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error)
}

// ListingFields is the full set of mutable listing fields. Edit overwrites
// all of them at once.
type ListingFields struct {
	Title       string
	Description string
	Price       float64
	Image       string
	Category    string
}

type Repository struct {
	Users    Users
	Listings Listings
	Reviews  Reviews
	Events   Events
}

func NewRepository(database *mongo.Database) *Repository {
	return &Repository{
		Users:    NewUsersMongo(database.Collection("users")),
		Listings: NewListingsMongo(database.Collection("listings")),
		Reviews:  NewReviewsMongo(database.Collection("reviews")),
		Events:   NewEventsMongo(database.Collection("events")),
	}
}
