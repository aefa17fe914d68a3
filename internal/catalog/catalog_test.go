package catalog

import (
	"testing"

	"github.com/hoangtrn/fest-go/internal/domain"
)

func sample() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: 1, Name: "Tiệc Cưới", Description: "wedding banquet", Category: "wedding", Price: 1000, Rating: 4.8, ReviewCount: 120, Features: []string{"catering", "decoration"}, Location: "Hà Nội"},
		{ID: 2, Name: "Sinh Nhật", Description: "birthday party", Category: "birthday", Price: 500, Rating: 4.2, ReviewCount: 300, Features: []string{"cake", "balloons"}, Location: "Đà Nẵng"},
		{ID: 3, Name: "Gala Dinner", Description: "corporate gala", Category: "corporate", Price: 2500, Rating: 4.8, ReviewCount: 80, Features: []string{"catering", "stage"}, Location: "Hà Nội"},
	}
}

func ids(items []domain.CatalogItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_FilterConjunction(t *testing.T) {
	f := NewFilter()
	f.Category = "wedding"
	f.PriceMin, f.PriceMax = 0, 2000

	got := Apply(sample(), f)
	if !equalIDs(ids(got), 1) {
		t.Fatalf("expected [1], got %v", ids(got))
	}

	f.PriceMax = 500
	got = Apply(sample(), f)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestApply_SearchMatchesNameDescriptionAndTags(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []int64
	}{
		{"empty matches all, sorted by name", "", []int64{3, 2, 1}},
		{"name, case-insensitive", "tiệc", []int64{1}},
		{"description", "CORPORATE", []int64{3}},
		{"feature tag", "catering", []int64{3, 1}},
		{"miss everywhere", "no-such-thing", []int64{}},
	}
	for _, tt := range tests {
		f := NewFilter()
		f.Search = tt.search
		got := ids(Apply(sample(), f))
		if !equalIDs(got, tt.want...) {
			t.Errorf("%s: search %q: expected %v, got %v", tt.name, tt.search, tt.want, got)
		}
	}
}

func TestApply_LocationExactMatch(t *testing.T) {
	f := NewFilter()
	f.Location = "Hà Nội"
	got := ids(Apply(sample(), f))
	if !equalIDs(got, 3, 1) {
		t.Fatalf("expected [3 1], got %v", got)
	}
}

func TestApply_SortKeys(t *testing.T) {
	tests := []struct {
		sort SortKey
		want []int64
	}{
		{SortName, []int64{3, 2, 1}},
		{SortPriceLow, []int64{2, 1, 3}},
		{SortPriceHigh, []int64{3, 1, 2}},
		{SortPopular, []int64{2, 1, 3}},
		{SortNewest, []int64{3, 2, 1}},
	}
	for _, tt := range tests {
		f := NewFilter()
		f.Sort = tt.sort
		got := ids(Apply(sample(), f))
		if !equalIDs(got, tt.want...) {
			t.Errorf("sort %q: expected %v, got %v", tt.sort, tt.want, got)
		}
	}
}

func TestApply_StableSortPreservesOrderOnEqualKeys(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Name: "B"},
		{ID: 2, Name: "A"},
		{ID: 3, Name: "A"},
	}
	f := NewFilter()
	f.Sort = SortName
	got := ids(Apply(items, f))
	if !equalIDs(got, 2, 3, 1) {
		t.Fatalf("expected [2 3 1], got %v", got)
	}

	// Equal ratings keep catalog order too.
	f.Sort = SortRating
	got = ids(Apply(sample(), f))
	if !equalIDs(got, 1, 3, 2) {
		t.Fatalf("expected [1 3 2], got %v", got)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := sample()
	f := NewFilter()
	f.Sort = SortPriceHigh
	Apply(items, f)
	if !equalIDs(ids(items), 1, 2, 3) {
		t.Fatalf("input reordered: %v", ids(items))
	}
}

func TestParseSortKey(t *testing.T) {
	if _, ok := ParseSortKey("price-low"); !ok {
		t.Fatal("price-low should parse")
	}
	if _, ok := ParseSortKey("cheapest"); ok {
		t.Fatal("cheapest should not parse")
	}
}
