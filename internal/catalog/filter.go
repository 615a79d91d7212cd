// Package catalog derives the visible product listing from the products
// fetched from the store.
package catalog

import (
	"sort"
	"strings"

	"storefront/internal/domain"
)

// All is the selector value that disables the category or subcategory filter
const All = "all"

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 50000
)

// SortKey selects the ordering of a listing
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a raw value onto a known key, falling back to SortFeatured
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceLow, SortPriceHigh, SortNewest:
		return SortKey(s)
	default:
		return SortFeatured
	}
}

// PriceRange is an inclusive price interval
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether min <= price <= max
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterSortConfig is the visitor's current view of the catalog
type FilterSortConfig struct {
	Category    string
	Subcategory string
	Search      string
	Price       PriceRange
	Sort        SortKey
}

// DefaultConfig returns a config that shows every product in featured order
func DefaultConfig() FilterSortConfig {
	return FilterSortConfig{
		Category:    All,
		Subcategory: All,
		Price:       PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		Sort:        SortFeatured,
	}
}

func selects(selector, value string) bool {
	return selector == "" || selector == All || selector == value
}

func matchesSearch(p *domain.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if p.Subcategory != nil && strings.Contains(strings.ToLower(*p.Subcategory), query) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), query)
}

// Matches reports whether a product passes every active filter of cfg
func Matches(p *domain.Product, cfg FilterSortConfig) bool {
	if !selects(cfg.Category, p.Category) {
		return false
	}
	if cfg.Subcategory != "" && cfg.Subcategory != All {
		if p.Subcategory == nil || *p.Subcategory != cfg.Subcategory {
			return false
		}
	}
	if query := strings.ToLower(strings.TrimSpace(cfg.Search)); query != "" && !matchesSearch(p, query) {
		return false
	}
	return cfg.Price.Contains(p.Price)
}

// FilterSort returns a new slice holding the products that match cfg, in the
// order requested by cfg.Sort. The input slice is left untouched.
func FilterSort(products []*domain.Product, cfg FilterSortConfig) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, cfg) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, less(out, cfg.Sort))
	return out
}

func less(ps []*domain.Product, key SortKey) func(i, j int) bool {
	switch key {
	case SortPriceLow:
		return func(i, j int) bool { return ps[i].Price < ps[j].Price }
	case SortPriceHigh:
		return func(i, j int) bool { return ps[i].Price > ps[j].Price }
	case SortNewest:
		return func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) }
	default:
		return func(i, j int) bool {
			if ps[i].Featured != ps[j].Featured {
				return ps[i].Featured
			}
			return ps[i].SortOrder < ps[j].SortOrder
		}
	}
}

// Subcategories lists the distinct non-null subcategories of products in
// first-seen order
func Subcategories(products []*domain.Product) []string {
	seen := make(map[string]struct{})
	subs := []string{}
	for _, p := range products {
		if p.Subcategory == nil {
			continue
		}
		if _, ok := seen[*p.Subcategory]; ok {
			continue
		}
		seen[*p.Subcategory] = struct{}{}
		subs = append(subs, *p.Subcategory)
	}
	return subs
}
