package catalog

import (
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func product(name string, price float64) *domain.Product {
	return &domain.Product{ID: uuid.New(), Name: name, Category: "men", Price: price, InStock: true}
}

func prices(ps []*domain.Product) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Price
	}
	return out
}

func TestFilterSort_PriceLowScenario(t *testing.T) {
	products := []*domain.Product{product("a", 3000), product("b", 1000), product("c", 2000)}

	cfg := DefaultConfig()
	cfg.Sort = SortPriceLow

	assert.Equal(t, []float64{1000, 2000, 3000}, prices(FilterSort(products, cfg)))
	assert.Equal(t, []float64{3000, 1000, 2000}, prices(products))
}

func TestFilterSort_SearchIgnoresMissingDescription(t *testing.T) {
	shirt := product("Blue Shirt", 1000)
	pants := product("Blue Pants", 1000)

	cfg := DefaultConfig()
	cfg.Search = "shirt"

	result := FilterSort([]*domain.Product{shirt, pants}, cfg)
	assert.Equal(t, []*domain.Product{shirt}, result)
}

func TestFilterSort_SearchMatchesSubcategoryAndDescription(t *testing.T) {
	bySub := product("Item One", 100)
	bySub.Subcategory = domain.StringPtr("T-Shirts")
	byDesc := product("Item Two", 100)
	byDesc.Description = domain.StringPtr("A soft SHIRT for summer")
	neither := product("Item Three", 100)

	cfg := DefaultConfig()
	cfg.Search = "  Shirt "

	result := FilterSort([]*domain.Product{bySub, byDesc, neither}, cfg)
	assert.ElementsMatch(t, []*domain.Product{bySub, byDesc}, result)
}

func TestFilterSort_PriceBoundsAreInclusive(t *testing.T) {
	low, mid, high, over := product("low", 500), product("mid", 700), product("high", 1000), product("over", 1000.01)

	cfg := DefaultConfig()
	cfg.Price = PriceRange{Min: 500, Max: 1000}

	result := FilterSort([]*domain.Product{low, mid, high, over}, cfg)
	assert.ElementsMatch(t, []*domain.Product{low, mid, high}, result)
}

func TestFilterSort_CategoryAndSubcategory(t *testing.T) {
	menShirt := product("m shirt", 10)
	menShirt.Subcategory = domain.StringPtr("shirts")
	menJeans := product("m jeans", 10)
	menJeans.Subcategory = domain.StringPtr("jeans")
	women := product("w", 10)
	women.Category = "women"
	noSub := product("plain", 10)

	all := []*domain.Product{menShirt, menJeans, women, noSub}

	cfg := DefaultConfig()
	cfg.Category = "men"
	assert.ElementsMatch(t, []*domain.Product{menShirt, menJeans, noSub}, FilterSort(all, cfg))

	cfg.Subcategory = "shirts"
	assert.Equal(t, []*domain.Product{menShirt}, FilterSort(all, cfg))
}

func TestFilterSort_EmptyResultIsNotNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search = "nothing matches this"

	result := FilterSort([]*domain.Product{product("a", 1)}, cfg)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestFilterSort_FeaturedThenSortOrder(t *testing.T) {
	a := product("a", 1)
	a.SortOrder = 3
	b := product("b", 1)
	b.SortOrder = 1
	b.Featured = true
	c := product("c", 1)
	c.SortOrder = 2
	d := product("d", 1)
	d.SortOrder = 0

	result := FilterSort([]*domain.Product{a, b, c, d}, DefaultConfig())
	assert.Equal(t, []*domain.Product{b, d, c, a}, result)
}

func TestFilterSort_Newest(t *testing.T) {
	now := time.Now()
	old := product("old", 1)
	old.CreatedAt = now.Add(-48 * time.Hour)
	fresh := product("fresh", 1)
	fresh.CreatedAt = now

	cfg := DefaultConfig()
	cfg.Sort = SortNewest
	assert.Equal(t, []*domain.Product{fresh, old}, FilterSort([]*domain.Product{old, fresh}, cfg))
}

func TestSubcategories(t *testing.T) {
	a := product("a", 1)
	a.Subcategory = domain.StringPtr("shirts")
	b := product("b", 1)
	c := product("c", 1)
	c.Subcategory = domain.StringPtr("jeans")
	d := product("d", 1)
	d.Subcategory = domain.StringPtr("shirts")

	assert.Equal(t, []string{"shirts", "jeans"}, Subcategories([]*domain.Product{a, b, c, d}))
	assert.Empty(t, Subcategories(nil))
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]SortKey{
		"price-low":  SortPriceLow,
		"price-high": SortPriceHigh,
		"newest":     SortNewest,
		"featured":   SortFeatured,
		"":           SortFeatured,
		"bogus":      SortFeatured,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseSortKey(in), in)
	}
}
