package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Order references its book by the hex string id the client submitted, not an
// ObjectID; the cascade delete in the books handler relies on that.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	UserName      string             `bson:"userName,omitempty" json:"userName,omitempty"`
	BookID        string             `bson:"bookId" json:"bookId"`
	BookName      string             `bson:"bookName,omitempty" json:"bookName,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	Owner         string             `bson:"owner" json:"owner"` // librarian email
	OrderStatus   string             `bson:"orderStatus" json:"orderStatus"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID *string            `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	CancelledAt   *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}
