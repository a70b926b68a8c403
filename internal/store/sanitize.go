package store

import (
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// Sanitize repairs a snapshot read from storage: lines without a product id
// or with a non-positive quantity are dropped, duplicate (product, variant)
// lines are merged, and duplicate or empty favorites are removed. Order is kept.
func Sanitize(snap domain.Snapshot) domain.Snapshot {
	out := domain.Snapshot{
		Version:   domain.SnapshotVersion,
		Items:     make([]domain.LineItem, 0, len(snap.Items)),
		Favorites: make([]string, 0, len(snap.Favorites)),
	}

	for _, li := range snap.Items {
		if strings.TrimSpace(li.ProductID) == "" || li.Quantity <= 0 {
			continue
		}
		if i := domain.FindItemIndex(out.Items, li.ProductID, li.VariantID); i >= 0 {
			out.Items[i].Quantity += li.Quantity
			continue
		}
		out.Items = append(out.Items, li)
	}

	seen := make(map[string]struct{}, len(snap.Favorites))
	for _, id := range snap.Favorites {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out.Favorites = append(out.Favorites, id)
	}

	return out
}
