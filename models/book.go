package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookStatusDraft     = "draft"
	BookStatusPublished = "published"
)

type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookName    string             `bson:"bookName" json:"bookName"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Status      string             `bson:"status" json:"status"` // draft or published
	Photo       string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"` // librarian email
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
