package handlers

import "sambhai-backend/internal/models"

// mergeCartItem folds a new line into the cart. Lines are keyed by
// (productId, size): an existing pair gets its quantity incremented, a new
// size for the same product becomes a separate line.
func mergeCartItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].ProductID == item.ProductID && items[i].Size == item.Size {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

// setCartQuantity replaces the quantity of the (productId, size) line; a
// quantity of zero or less removes it. The second return reports whether the
// line existed.
func setCartQuantity(items []models.CartItem, productID, size string, quantity int) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			if quantity <= 0 {
				return append(items[:i], items[i+1:]...), true
			}
			items[i].Quantity = quantity
			return items, true
		}
	}
	return items, false
}

func removeCartItem(items []models.CartItem, productID, size string) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

func cartTotal(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
