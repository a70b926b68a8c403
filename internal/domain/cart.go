package domain

import "time"

// LineItem is one product (and optional variant) in the cart.
type LineItem struct {
	ProductID  string          `json:"product_id"`
	Product    ProductSnapshot `json:"product"`
	Quantity   int             `json:"quantity"`
	VariantID  string          `json:"variant_id,omitempty"`
	IsSelected bool            `json:"is_selected"`
	AddedAt    time.Time       `json:"added_at"`
}

// LineTotal is unit price times quantity.
func (li LineItem) LineTotal() Money {
	return li.Product.Price.Times(li.Quantity)
}

// SnapshotVersion is the current persisted layout.
const SnapshotVersion = 1

// Snapshot is the persisted part of a session's state. The cart panel flag
// is never part of it.
type Snapshot struct {
	Version   int        `json:"version"`
	Items     []LineItem `json:"items"`
	Favorites []string   `json:"favorites"`
}

// FindItemIndex returns the index of the line for (productID, variantID), or -1.
func FindItemIndex(items []LineItem, productID, variantID string) int {
	for i := range items {
		if items[i].ProductID == productID && items[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

// ItemCount sums quantities.
func ItemCount(items []LineItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
