package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sambhai-backend/internal/models"
)

func TestMergeCartItem(t *testing.T) {
	tests := []struct {
		name          string
		existing      []models.CartItem
		add           models.CartItem
		expectedLines int
		expectedQty   int
	}{
		{
			name:          "same product and size increments quantity",
			existing:      []models.CartItem{{ProductID: "p1", Size: "M", Quantity: 1}},
			add:           models.CartItem{ProductID: "p1", Size: "M", Quantity: 1},
			expectedLines: 1,
			expectedQty:   2,
		},
		{
			name:          "same product different size adds a line",
			existing:      []models.CartItem{{ProductID: "p1", Size: "M", Quantity: 1}},
			add:           models.CartItem{ProductID: "p1", Size: "L", Quantity: 1},
			expectedLines: 2,
			expectedQty:   1,
		},
		{
			name:          "different product adds a line",
			existing:      []models.CartItem{{ProductID: "p1", Size: "M", Quantity: 2}},
			add:           models.CartItem{ProductID: "p2", Size: "M", Quantity: 3},
			expectedLines: 2,
			expectedQty:   2,
		},
		{
			name:          "empty cart gets first line",
			existing:      nil,
			add:           models.CartItem{ProductID: "p1", Size: "S", Quantity: 1},
			expectedLines: 1,
			expectedQty:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := mergeCartItem(tt.existing, tt.add)
			assert.Len(t, merged, tt.expectedLines)
			assert.Equal(t, tt.expectedQty, merged[0].Quantity)
		})
	}
}

func TestSetCartQuantity(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 2},
		{ProductID: "p1", Size: "L", Quantity: 1},
	}

	updated, found := setCartQuantity(items, "p1", "M", 5)
	assert.True(t, found)
	assert.Equal(t, 5, updated[0].Quantity)
	assert.Equal(t, 1, updated[1].Quantity, "other size line untouched")

	updated, found = setCartQuantity(updated, "p1", "L", 0)
	assert.True(t, found)
	assert.Len(t, updated, 1, "zero quantity removes the line")

	_, found = setCartQuantity(updated, "p1", "XL", 3)
	assert.False(t, found)
}

func TestRemoveCartItemMatchesSize(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 2},
		{ProductID: "p1", Size: "L", Quantity: 1},
	}

	updated, found := removeCartItem(items, "p1", "L")
	assert.True(t, found)
	assert.Len(t, updated, 1)
	assert.Equal(t, "M", updated[0].Size)

	_, found = removeCartItem(updated, "p2", "M")
	assert.False(t, found)
}

func TestCartTotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: 499, Quantity: 2},
		{ProductID: "p2", Price: 999, Quantity: 1},
	}
	assert.Equal(t, 1997.0, cartTotal(items))
	assert.Equal(t, 0.0, cartTotal(nil))
}
