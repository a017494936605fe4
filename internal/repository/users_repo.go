package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Sentinel store errors shared by the repositories.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UsersMongo struct {
	coll *mongo.Collection
}

func NewUsersMongo(coll *mongo.Collection) *UsersMongo { return &UsersMongo{coll: coll} }

var _ Users = (*UsersMongo)(nil)

// Create inserts a new user and returns its generated id.
// A duplicate email (unique index) maps to ErrDuplicate.
func (r *UsersMongo) Create(ctx context.Context, u *models.User) (bson.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bson.ObjectID{}, ErrDuplicate
		}
		return bson.ObjectID{}, fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *UsersMongo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email %q: %w", email, err)
	}
	return &u, nil
}

func (r *UsersMongo) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", id.Hex(), err)
	}
	return &u, nil
}

func (r *UsersMongo) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.User, 0, 64)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return out, nil
}

// AppendProduct pushes a listing reference onto the user's products list.
func (r *UsersMongo) AppendProduct(ctx context.Context, userID, listingID bson.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"products": listingID}},
	)
	if err != nil {
		return fmt.Errorf("append product to user %s: %w", userID.Hex(), err)
	}
	return nil
}

// PullProduct removes a listing reference from the user's products list.
func (r *UsersMongo) PullProduct(ctx context.Context, userID, listingID bson.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"products": listingID}},
	)
	if err != nil {
		return fmt.Errorf("pull product from user %s: %w", userID.Hex(), err)
	}
	return nil
}
