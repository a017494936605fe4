package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Review maps to the reviews collection.
type Review struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Rating  float64       `bson:"rating" json:"rating"`
	Comment string        `bson:"comment" json:"comment"`
	Owner   bson.ObjectID `bson:"owner,omitempty" json:"owner,omitempty"`
}

// ReviewDetail is a Review with its owner populated.
type ReviewDetail struct {
	ID      bson.ObjectID `json:"id"`
	Rating  float64       `json:"rating"`
	Comment string        `json:"comment"`
	Owner   *User         `json:"owner,omitempty"`
}
