package repository

import (
	"context"
	"fmt"

	"marketplace/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ReviewsMongo struct {
	coll *mongo.Collection
}

func NewReviewsMongo(coll *mongo.Collection) *ReviewsMongo { return &ReviewsMongo{coll: coll} }

var _ Reviews = (*ReviewsMongo)(nil)

func (r *ReviewsMongo) Create(ctx context.Context, rv *models.Review) (bson.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, rv)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert review: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// GetByIDs fetches the reviews whose ids are listed. Missing ids are simply
// absent from the result; the caller decides whether that matters.
func (r *ReviewsMongo) GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Review, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Review, 0, len(ids))
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return out, nil
}

// Delete removes a review. Deleting an absent id is not an error.
func (r *ReviewsMongo) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete review %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *ReviewsMongo) ExistingIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	return existingIDs(ctx, r.coll, ids)
}
