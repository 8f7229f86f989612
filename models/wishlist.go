package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// WishlistEntry is unique per (userEmail, bookId).
type WishlistEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	BookID    string             `bson:"bookId" json:"bookId"`
	BookName  string             `bson:"bookName,omitempty" json:"bookName,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
}
