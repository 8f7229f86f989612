package store

import (
	"context"

	"github.com/bookcourier/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const latestReviewsLimit = 5

func (db *DB) InsertReview(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
	res, err := db.Reviews().InsertOne(ctx, review)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// LatestReviewsForBook returns the 5 most recent reviews for a book, newest
// first.
func (db *DB) LatestReviewsForBook(ctx context.Context, bookID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.M{"reviewedAt": -1}).SetLimit(latestReviewsLimit)
	cur, err := db.Reviews().Find(ctx, bson.M{"bookId": bookID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
