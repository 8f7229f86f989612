package store

import (
	"context"
	"time"

	"github.com/bookcourier/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertOrder(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	res, err := db.Orders().InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// OrdersByOwner returns a page of the orders placed against a librarian's
// books plus the total page count.
func (db *DB) OrdersByOwner(ctx context.Context, owner string, page, limit int64) ([]models.Order, int64, error) {
	filter := bson.M{"owner": owner}
	count, err := db.Orders().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cur, err := db.Orders().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, TotalPages(count, limit), nil
}

func (db *DB) OrdersByUser(ctx context.Context, email string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cur, err := db.Orders().Find(ctx, bson.M{"userEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (db *DB) OrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := db.Orders().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder flips a pending order to cancelled. The filter only matches
// documents still in pending, so a repeat call (or a cancel after delivery
// started) matches zero documents; callers inspect the counts.
func (db *DB) CancelOrder(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	filter := bson.M{"_id": id, "orderStatus": models.OrderStatusPending}
	update := bson.M{"$set": bson.M{
		"orderStatus": models.OrderStatusCancelled,
		"cancelledAt": time.Now(),
	}}
	return db.Orders().UpdateOne(ctx, filter, update)
}

// UpdateOrderStatus sets orderStatus unconditionally by id.
func (db *DB) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error) {
	return db.Orders().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"orderStatus": status}})
}

// MarkOrderPaid records the transaction id and flips paymentStatus to paid.
// Setting the same values twice is a no-op by value, which keeps the payment
// confirmation endpoint safe to retry.
func (db *DB) MarkOrderPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (*mongo.UpdateResult, error) {
	update := bson.M{"$set": bson.M{
		"transactionId": transactionID,
		"paymentStatus": models.PaymentStatusPaid,
	}}
	return db.Orders().UpdateOne(ctx, bson.M{"_id": id}, update)
}

// MonthStat is one bucket of the order-count aggregation.
type MonthStat struct {
	Month string `bson:"_id" json:"month"`
	Total int64  `bson:"total" json:"total"`
}

// MonthlyOrderStats counts orders grouped by calendar month of createdAt,
// ascending by month.
func (db *DB) MonthlyOrderStats(ctx context.Context) ([]MonthStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date":   "$createdAt",
			}},
			"total": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cur, err := db.Orders().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	stats := []MonthStat{}
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
