package recommendation

import (
	"strings"

	"preben-prepper/entities"
)

// Partition splits the catalog into entries a home already stocks and
// entries it does not. Both keep catalog order.
type Partition struct {
	Followed   []*entities.RecommendedInventoryItem
	Unfollowed []*entities.RecommendedInventoryItem
}

func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Reconcile matches catalog entries to inventory by normalized name only.
// Quantities are ignored: one unit covers any suggested amount.
func Reconcile(items []*entities.InventoryItem, catalog []*entities.RecommendedInventoryItem) Partition {
	stocked := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if name := NormalizeName(item.Name); name != "" {
			stocked[name] = struct{}{}
		}
	}

	p := Partition{
		Followed:   make([]*entities.RecommendedInventoryItem, 0),
		Unfollowed: make([]*entities.RecommendedInventoryItem, 0),
	}
	for _, rec := range catalog {
		if rec == nil {
			continue
		}
		name := NormalizeName(rec.Name)
		if _, ok := stocked[name]; ok && name != "" {
			p.Followed = append(p.Followed, rec)
			continue
		}
		p.Unfollowed = append(p.Unfollowed, rec)
	}
	return p
}
