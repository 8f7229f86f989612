package store

import (
	"context"

	"github.com/bookcourier/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const relatedBooksLimit = 4

func (db *DB) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	res, err := db.Books().InsertOne(ctx, book)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// SearchBooks runs the paginated storefront query and returns the page of
// books plus the total page count for the matching set.
func (db *DB) SearchBooks(ctx context.Context, search, category, sort string, page, limit int64) ([]models.Book, int64, error) {
	filter := BookSearchFilter(search, category)
	count, err := db.Books().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(BookSearchSort(sort)).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cur, err := db.Books().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	books := []models.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, 0, err
	}
	return books, TotalPages(count, limit), nil
}

// RelatedBooks returns up to 4 other published books in the same category,
// newest first.
func (db *DB) RelatedBooks(ctx context.Context, id primitive.ObjectID, category string) ([]models.Book, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(relatedBooksLimit)
	cur, err := db.Books().Find(ctx, RelatedBooksFilter(id, category), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	books := []models.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) AllBooks(ctx context.Context) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	books := []models.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// BooksByCreator returns the books a librarian published, newest first.
func (db *DB) BooksByCreator(ctx context.Context, email string) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, bson.M{"createdBy": email}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	books := []models.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// LatestBooks returns the n most recently created books regardless of status.
func (db *DB) LatestBooks(ctx context.Context, n int64) ([]models.Book, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(n)
	cur, err := db.Books().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	books := []models.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) UpdateBookStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error) {
	return db.Books().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
}

// UpdateBookFields merges the given fields into the book document.
func (db *DB) UpdateBookFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error) {
	return db.Books().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
}

// DeleteBookCascade removes the book, then every order referencing it by its
// hex id. The two deletes are independent operations; a failure after the
// first leaves orphaned orders (accepted, see DESIGN.md). Returns the book
// deletion count only.
func (db *DB) DeleteBookCascade(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := db.Books().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if _, err := db.Orders().DeleteMany(ctx, bson.M{"bookId": id.Hex()}); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}
