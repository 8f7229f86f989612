package store

import (
	"context"

	"github.com/bookcourier/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WishlistEntryExists reports whether the user already wished for the book.
func (db *DB) WishlistEntryExists(ctx context.Context, userEmail, bookID string) (bool, error) {
	err := db.Wishlist().FindOne(ctx, bson.M{"userEmail": userEmail, "bookId": bookID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (db *DB) InsertWishlistEntry(ctx context.Context, entry *models.WishlistEntry) (primitive.ObjectID, error) {
	res, err := db.Wishlist().InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) DeleteWishlistEntry(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := db.Wishlist().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (db *DB) WishlistByEmail(ctx context.Context, email string) ([]models.WishlistEntry, error) {
	cur, err := db.Wishlist().Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	entries := []models.WishlistEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
