package models

import "go.mongodb.org/mongo-driver/v2/bson"

// User maps to the users collection. Password holds the bcrypt hash and is
// never serialized to clients.
type User struct {
	ID       bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserName string          `bson:"userName" json:"userName"`
	Email    string          `bson:"email" json:"email"`
	Password string          `bson:"password" json:"-"`
	Products []bson.ObjectID `bson:"products,omitempty" json:"products,omitempty"`
}
