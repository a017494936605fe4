package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ListingsMongo struct {
	coll *mongo.Collection
}

func NewListingsMongo(coll *mongo.Collection) *ListingsMongo { return &ListingsMongo{coll: coll} }

var _ Listings = (*ListingsMongo)(nil)

func (r *ListingsMongo) Create(ctx context.Context, l *models.Listing) (bson.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, l)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert listing %q: %w", l.Title, err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *ListingsMongo) GetByID(ctx context.Context, id bson.ObjectID) (*models.Listing, error) {
	var l models.Listing
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find listing %s: %w", id.Hex(), err)
	}
	return &l, nil
}

func (r *ListingsMongo) List(ctx context.Context) ([]models.Listing, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Listing, 0, 64)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return out, nil
}

// Update overwrites every mutable field. There is no existence check; a
// missing document is a no-op, matching the edit route contract.
func (r *ListingsMongo) Update(ctx context.Context, id bson.ObjectID, fields ListingFields) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":       fields.Title,
			"description": fields.Description,
			"price":       fields.Price,
			"image":       fields.Image,
			"category":    fields.Category,
		}},
	)
	if err != nil {
		return fmt.Errorf("update listing %s: %w", id.Hex(), err)
	}
	return nil
}

// Delete removes a listing. Deleting an absent id is not an error.
func (r *ListingsMongo) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete listing %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *ListingsMongo) AppendReview(ctx context.Context, listingID, reviewID bson.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": listingID},
		bson.M{"$push": bson.M{"reviews": reviewID}},
	)
	if err != nil {
		return fmt.Errorf("append review to listing %s: %w", listingID.Hex(), err)
	}
	return nil
}

func (r *ListingsMongo) PullReview(ctx context.Context, listingID, reviewID bson.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": listingID},
		bson.M{"$pull": bson.M{"reviews": reviewID}},
	)
	if err != nil {
		return fmt.Errorf("pull review from listing %s: %w", listingID.Hex(), err)
	}
	return nil
}

// ExistingIDs reports which of the given listing ids still exist.
func (r *ListingsMongo) ExistingIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	return existingIDs(ctx, r.coll, ids)
}

// existingIDs is shared by the listings and reviews repositories.
func existingIDs(ctx context.Context, coll *mongo.Collection, ids []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	out := make(map[bson.ObjectID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find existing ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode existing ids: %w", err)
	}
	for _, d := range docs {
		out[d.ID] = true
	}
	return out, nil
}
