package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID        string             `bson:"bookId" json:"bookId"`
	ReviewerName  string             `bson:"reviewerName" json:"reviewerName"`
	ReviewerEmail string             `bson:"reviewerEmail" json:"reviewerEmail"`
	ReviewerPhoto string             `bson:"reviewerPhoto,omitempty" json:"reviewerPhoto,omitempty"`
	Rating        int                `bson:"rating" json:"rating"`
	Comment       string             `bson:"comment,omitempty" json:"comment,omitempty"`
	ReviewedAt    time.Time          `bson:"reviewedAt" json:"reviewedAt"`
}
