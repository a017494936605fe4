package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Listing maps to the listings collection. Owner and Reviews hold references
// that are resolved on demand (see ListingDetail).
type Listing struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string          `bson:"title" json:"title"`
	Description string          `bson:"description" json:"description"`
	Price       float64         `bson:"price" json:"price"`
	Image       string          `bson:"image" json:"image"`
	Category    string          `bson:"category" json:"category"`
	Owner       bson.ObjectID   `bson:"owner,omitempty" json:"owner,omitempty"`
	Reviews     []bson.ObjectID `bson:"reviews,omitempty" json:"reviews,omitempty"`
}

// ListingDetail is a Listing with its references populated.
type ListingDetail struct {
	ID          bson.ObjectID  `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Image       string         `json:"image"`
	Category    string         `json:"category"`
	Owner       *User          `json:"owner,omitempty"`
	Reviews     []ReviewDetail `json:"reviews"`
}
