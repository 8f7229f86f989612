package store

import (
	"context"

	"github.com/bookcourier/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InvoiceByTransactionID(ctx context.Context, transactionID string) (*models.Invoice, error) {
	var inv models.Invoice
	err := db.Invoices().FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (db *DB) InsertInvoice(ctx context.Context, inv *models.Invoice) (primitive.ObjectID, error) {
	res, err := db.Invoices().InsertOne(ctx, inv)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) InvoicesByBuyer(ctx context.Context, email string) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.M{"paidAt": -1})
	cur, err := db.Invoices().Find(ctx, bson.M{"buyerEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	invoices := []models.Invoice{}
	if err := cur.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}
