package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invoice is written exactly once per transaction id when a payment is
// confirmed.
type Invoice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	BookID        string             `bson:"bookId" json:"bookId"`
	BookName      string             `bson:"bookName" json:"bookName"`
	BuyerEmail    string             `bson:"buyerEmail" json:"buyerEmail"`
	BuyerName     string             `bson:"buyerName,omitempty" json:"buyerName,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
}
