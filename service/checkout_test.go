package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceCents(t *testing.T) {
	assert.Equal(t, int64(0), PriceCents(0))
	assert.Equal(t, int64(100), PriceCents(1))
	assert.Equal(t, int64(1999), PriceCents(19.99))
	// Rounds instead of truncating float artifacts.
	assert.Equal(t, int64(1010), PriceCents(10.1))
	assert.Equal(t, int64(5), PriceCents(0.049999999))
}
