package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sort keywords accepted by the public book search.
const (
	SortPriceLowToHigh = "low-to-high"
	SortPriceHighToLow = "high-to-low"
)

// BookSearchFilter matches published books whose name contains search
// case-insensitively, optionally narrowed to a category.
func BookSearchFilter(search, category string) bson.M {
	filter := bson.M{"status": "published"}
	if search != "" {
		filter["bookName"] = bson.M{"$regex": search, "$options": "i"}
	}
	if category != "" {
		filter["category"] = category
	}
	return filter
}

// BookSearchSort maps the sort query parameter to a sort document. Price sorts
// tie-break on createdAt descending; anything else falls back to newest first.
func BookSearchSort(sort string) bson.D {
	switch sort {
	case SortPriceLowToHigh:
		return bson.D{{Key: "price", Value: 1}, {Key: "createdAt", Value: -1}}
	case SortPriceHighToLow:
		return bson.D{{Key: "price", Value: -1}, {Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// TotalPages is ceil(count/limit); limit must be positive.
func TotalPages(count, limit int64) int64 {
	return (count + limit - 1) / limit
}

// RelatedBooksFilter matches published books sharing the given book's
// category, excluding the book itself.
func RelatedBooksFilter(id primitive.ObjectID, category string) bson.M {
	return bson.M{
		"_id":      bson.M{"$ne": id},
		"category": category,
		"status":   "published",
	}
}
