// Package catalog implements the read path over the service catalog: a pure
// filter/sort engine recomputed on demand from the full reference list.
package catalog

import (
	"sort"
	"strings"

	"github.com/hoangtrn/fest-go/internal/domain"
)

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortPopular   SortKey = "popular"
	// SortNewest orders by descending ID; catalog rows carry no creation
	// timestamp, so the serial ID stands in for recency.
	SortNewest SortKey = "newest"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortName, SortPriceLow, SortPriceHigh, SortRating, SortPopular, SortNewest:
		return SortKey(s), true
	default:
		return "", false
	}
}

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Filter is the full browse configuration. The zero value matches everything
// except that PriceMax must be set; use NewFilter for a usable default.
type Filter struct {
	Search   string
	Category string
	PriceMin int64
	PriceMax int64
	Location string
	Sort     SortKey
}

func NewFilter() Filter {
	return Filter{
		Category: CategoryAll,
		PriceMax: maxPrice,
		Sort:     SortName,
	}
}

const maxPrice = int64(1) << 62

// Matches reports whether a single item passes every predicate of the
// filter. The search term matches case-insensitively against the name, the
// description, or any feature tag; the empty term matches everything.
func (f Filter) Matches(it domain.CatalogItem) bool {
	if f.Category != "" && f.Category != CategoryAll && it.Category != f.Category {
		return false
	}
	if it.Price < f.PriceMin || it.Price > f.PriceMax {
		return false
	}
	if f.Location != "" && it.Location != f.Location {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(it.Name), term) ||
		strings.Contains(strings.ToLower(it.Description), term) {
		return true
	}
	for _, tag := range it.Features {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Apply returns the visible subset of items under the filter, sorted by the
// filter's sort key. The sort is stable: items with equal keys keep their
// original relative order. The input slice is not modified, and an empty
// result is a valid outcome, not an error.
func Apply(items []domain.CatalogItem, f Filter) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}

	less := lessFunc(f.Sort)
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}

	return out
}

func lessFunc(key SortKey) func(a, b domain.CatalogItem) bool {
	switch key {
	case SortName:
		return func(a, b domain.CatalogItem) bool { return a.Name < b.Name }
	case SortPriceLow:
		return func(a, b domain.CatalogItem) bool { return a.Price < b.Price }
	case SortPriceHigh:
		return func(a, b domain.CatalogItem) bool { return a.Price > b.Price }
	case SortRating:
		return func(a, b domain.CatalogItem) bool { return a.Rating > b.Rating }
	case SortPopular:
		return func(a, b domain.CatalogItem) bool { return a.ReviewCount > b.ReviewCount }
	case SortNewest:
		return func(a, b domain.CatalogItem) bool { return a.ID > b.ID }
	default:
		return nil
	}
}
