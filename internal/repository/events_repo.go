package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type EventsMongo struct {
	coll *mongo.Collection
}

func NewEventsMongo(coll *mongo.Collection) *EventsMongo { return &EventsMongo{coll: coll} }

var _ Events = (*EventsMongo)(nil)

// Append inserts a new event. If EventID or OccurredAt are empty, they're set.
func (r *EventsMongo) Append(ctx context.Context, e models.Event) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}
	e.Type = strings.ToUpper(strings.TrimSpace(e.Type))

	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert event %s: %w", e.Type, err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or type, ordered
// by occurrence time ascending.
func (r *EventsMongo) List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error) {
	filter := bson.M{}

	timeCond := bson.M{}
	if !from.IsZero() {
		timeCond["$gte"] = from.UTC()
	}
	if !to.IsZero() {
		timeCond["$lte"] = to.UTC()
	}
	if len(timeCond) > 0 {
		filter["occurred_at"] = timeCond
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		filter["type"] = typ
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Event, 0, 64)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return out, nil
}
