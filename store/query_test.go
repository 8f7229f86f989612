package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBookSearchFilter(t *testing.T) {
	t.Run("always restricts to published", func(t *testing.T) {
		f := BookSearchFilter("", "")
		assert.Equal(t, bson.M{"status": "published"}, f)
	})

	t.Run("search adds case-insensitive regex", func(t *testing.T) {
		f := BookSearchFilter("foo", "")
		require.Contains(t, f, "bookName")
		assert.Equal(t, bson.M{"$regex": "foo", "$options": "i"}, f["bookName"])
	})

	t.Run("category narrows the match", func(t *testing.T) {
		f := BookSearchFilter("foo", "fiction")
		assert.Equal(t, "fiction", f["category"])
		assert.Equal(t, "published", f["status"])
	})
}

func TestBookSearchSort(t *testing.T) {
	t.Run("low to high sorts price ascending with createdAt tiebreak", func(t *testing.T) {
		sort := BookSearchSort(SortPriceLowToHigh)
		require.Len(t, sort, 2)
		assert.Equal(t, bson.E{Key: "price", Value: 1}, sort[0])
		assert.Equal(t, bson.E{Key: "createdAt", Value: -1}, sort[1])
	})

	t.Run("high to low sorts price descending", func(t *testing.T) {
		sort := BookSearchSort(SortPriceHighToLow)
		require.Len(t, sort, 2)
		assert.Equal(t, bson.E{Key: "price", Value: -1}, sort[0])
		assert.Equal(t, bson.E{Key: "createdAt", Value: -1}, sort[1])
	})

	t.Run("anything else falls back to newest first", func(t *testing.T) {
		for _, s := range []string{"", "bogus", "price"} {
			sort := BookSearchSort(s)
			require.Len(t, sort, 1)
			assert.Equal(t, bson.E{Key: "createdAt", Value: -1}, sort[0])
		}
	})
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		count, limit, want int64
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{10, 5, 2},
		{11, 5, 3},
		{7, 1, 7},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TotalPages(c.count, c.limit), "count=%d limit=%d", c.count, c.limit)
	}
}

func TestRelatedBooksFilter(t *testing.T) {
	id := primitive.NewObjectID()
	f := RelatedBooksFilter(id, "history")
	assert.Equal(t, bson.M{"$ne": id}, f["_id"])
	assert.Equal(t, "history", f["category"])
	assert.Equal(t, "published", f["status"])
}
