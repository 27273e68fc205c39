package recommendation

import (
	"math/rand"
	"testing"

	"preben-prepper/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inv(name string, qty int) *entities.InventoryItem {
	return &entities.InventoryItem{Name: name, Quantity: qty}
}

func rec(id uint, name string, qty int) *entities.RecommendedInventoryItem {
	return &entities.RecommendedInventoryItem{ID: id, Name: name, Quantity: qty}
}

func names(items []*entities.RecommendedInventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "rice", NormalizeName("  RICE  "))
	assert.Equal(t, "water (per person)", NormalizeName("\tWater (Per Person)\n"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestReconcile(t *testing.T) {
	t.Run("case and whitespace insensitive", func(t *testing.T) {
		p := Reconcile([]*entities.InventoryItem{inv("  RICE  ", 1)}, []*entities.RecommendedInventoryItem{rec(1, "rice", 1)})
		assert.Equal(t, []string{"rice"}, names(p.Followed))
		assert.Empty(t, p.Unfollowed)
	})

	t.Run("quantity blind", func(t *testing.T) {
		p := Reconcile([]*entities.InventoryItem{inv("Water", 1)}, []*entities.RecommendedInventoryItem{rec(1, "Water", 1000)})
		assert.Len(t, p.Followed, 1)
	})

	t.Run("empty catalog name never matches", func(t *testing.T) {
		p := Reconcile(
			[]*entities.InventoryItem{inv("", 1), inv("   ", 1)},
			[]*entities.RecommendedInventoryItem{rec(1, "", 1), rec(2, "  ", 1)},
		)
		assert.Empty(t, p.Followed)
		assert.Len(t, p.Unfollowed, 2)
	})

	t.Run("duplicate inventory names collapse", func(t *testing.T) {
		p := Reconcile(
			[]*entities.InventoryItem{inv("Beans", 1), inv("beans ", 3)},
			[]*entities.RecommendedInventoryItem{rec(1, "Beans", 4)},
		)
		assert.Len(t, p.Followed, 1)
	})

	t.Run("catalog order preserved", func(t *testing.T) {
		catalog := []*entities.RecommendedInventoryItem{
			rec(1, "Water", 1), rec(2, "Candles", 1), rec(3, "Rice", 1), rec(4, "Batteries", 1),
		}
		p := Reconcile([]*entities.InventoryItem{inv("rice", 1), inv("water", 1)}, catalog)
		assert.Equal(t, []string{"Water", "Rice"}, names(p.Followed))
		assert.Equal(t, []string{"Candles", "Batteries"}, names(p.Unfollowed))
	})

	t.Run("empty inputs", func(t *testing.T) {
		p := Reconcile(nil, nil)
		assert.NotNil(t, p.Followed)
		assert.NotNil(t, p.Unfollowed)
		assert.Empty(t, p.Followed)
		assert.Empty(t, p.Unfollowed)
	})
}

func TestReconcilePartitionIsExhaustiveAndDisjoint(t *testing.T) {
	pool := []string{"Water", " water", "RICE", "rice ", "Candles", "", "Batteries", "First aid kit"}
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		var items []*entities.InventoryItem
		for j := r.Intn(6); j > 0; j-- {
			items = append(items, inv(pool[r.Intn(len(pool))], r.Intn(5)))
		}
		var catalog []*entities.RecommendedInventoryItem
		for j := r.Intn(8); j > 0; j-- {
			catalog = append(catalog, rec(uint(len(catalog)+1), pool[r.Intn(len(pool))], 1))
		}

		p := Reconcile(items, catalog)
		require.Equal(t, len(catalog), len(p.Followed)+len(p.Unfollowed))

		seen := map[uint]bool{}
		for _, c := range append(append([]*entities.RecommendedInventoryItem{}, p.Followed...), p.Unfollowed...) {
			require.False(t, seen[c.ID], "catalog entry %d in both partitions", c.ID)
			seen[c.ID] = true
		}
		for _, c := range catalog {
			require.True(t, seen[c.ID])
		}
	}
}
