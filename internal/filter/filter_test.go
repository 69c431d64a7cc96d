package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessaro/storefront/internal/domain"
)

func catalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Steel Hammer", Description: "claw hammer", Category: "tools", Brand: "Forge", Price: 500, InStock: true, Tags: []string{"hand-tool"}},
		{ID: "p2", Name: "Screwdriver", Category: "tools", Brand: "Forge", Price: 100, InStock: false},
		{ID: "p3", Name: "Desk Lamp", Description: "warm light", Category: "home", Brand: "Lumen", Price: 300, InStock: true, Tags: []string{"lighting"}},
	}
}

func TestVisible_SortAscendingIsDefault(t *testing.T) {
	got := Visible(catalog(), "", domain.DefaultFilter())

	require.Len(t, got, 3)
	assert.Equal(t, []int64{100, 300, 500}, prices(got))
}

func TestVisible_SortDescending(t *testing.T) {
	f := domain.DefaultFilter()
	f.SortBy = domain.SortPriceDesc

	got := Visible(catalog(), "", f)
	assert.Equal(t, []int64{500, 300, 100}, prices(got))
}

func TestVisible_StableSortKeepsCatalogOrderOnTies(t *testing.T) {
	cat := []domain.Product{
		{ID: "a", Price: 200, InStock: true},
		{ID: "b", Price: 200, InStock: true},
		{ID: "c", Price: 100, InStock: true},
	}
	got := Visible(cat, "", domain.DefaultFilter())

	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID, "equal prices keep catalog order")
	assert.Equal(t, "b", got[2].ID)
}

func TestVisible_Deterministic(t *testing.T) {
	f := domain.DefaultFilter()
	f.SortBy = domain.SortPriceDesc

	first := Visible(catalog(), "forge", f)
	second := Visible(catalog(), "forge", f)
	assert.Equal(t, first, second, "identical inputs must yield identically ordered output")
}

func TestVisible_QueryMatchesAcrossFields(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"product name", "hammer", []string{"p1"}},
		{"case insensitive", "HAMMER", []string{"p1"}},
		{"description", "warm", []string{"p3"}},
		{"brand", "forge", []string{"p2", "p1"}}, // sorted ascending by price
		{"category", "home", []string{"p3"}},
		{"tag", "lighting", []string{"p3"}},
		{"whitespace trimmed", "  hammer  ", []string{"p1"}},
		{"no match", "tractor", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(catalog(), tt.query, domain.DefaultFilter())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestVisible_CategoryFilter(t *testing.T) {
	f := domain.DefaultFilter()
	f.Category = "tools"

	got := Visible(catalog(), "", f)
	assert.Equal(t, []string{"p2", "p1"}, ids(got))

	// The sentinel lifts the restriction.
	f.Category = domain.CategoryAll
	assert.Len(t, Visible(catalog(), "", f), 3)
}

func TestVisible_PriceRangeInclusive(t *testing.T) {
	f := domain.DefaultFilter()
	f.MinPrice, f.MaxPrice = 100, 300

	got := Visible(catalog(), "", f)
	assert.Equal(t, []string{"p2", "p3"}, ids(got), "bounds are inclusive on both ends")
}

func TestVisible_InStockOnly(t *testing.T) {
	f := domain.DefaultFilter()
	f.InStockOnly = true

	got := Visible(catalog(), "", f)
	assert.Equal(t, []string{"p3", "p1"}, ids(got))
}

func TestVisible_StagesCompose(t *testing.T) {
	f := domain.DefaultFilter()
	f.Category = "tools"
	f.InStockOnly = true
	f.MinPrice, f.MaxPrice = 0, 1000

	got := Visible(catalog(), "forge", f)
	assert.Equal(t, []string{"p1"}, ids(got))
}

func TestVisible_EmptyCatalog(t *testing.T) {
	got := Visible(nil, "anything", domain.DefaultFilter())
	assert.Empty(t, got)
}

func TestVisible_DoesNotMutateCatalog(t *testing.T) {
	cat := catalog()
	f := domain.DefaultFilter()
	f.SortBy = domain.SortPriceDesc
	_ = Visible(cat, "", f)

	assert.Equal(t, "p1", cat[0].ID, "input catalog order must be untouched")
	assert.Equal(t, "p2", cat[1].ID)
	assert.Equal(t, "p3", cat[2].ID)
}

func prices(ps []domain.Product) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.Price
	}
	return out
}

func ids(ps []domain.Product) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
