package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastPage(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		perPage int
		want    int
	}{
		{"exact multiple", 40, 10, 4},
		{"partial last page", 41, 10, 5},
		{"empty result", 0, 10, 1},
		{"single item", 1, 10, 1},
		{"zero per page guards", 10, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PaginatedListings{TotalCount: tt.total, PerPage: tt.perPage}
			assert.Equal(t, tt.want, p.LastPage())
		})
	}
}

func TestParseCategoryKind(t *testing.T) {
	k, ok := ParseCategoryKind("real_estate")
	assert.True(t, ok)
	assert.Equal(t, KindRealEstate, k)

	_, ok = ParseCategoryKind("boats")
	assert.False(t, ok)
}

func TestAttributeTables(t *testing.T) {
	assert.Equal(t, "vehicle_attributes", KindVehicle.AttributeTable())
	assert.Equal(t, "bid_attributes", KindBid.AttributeTable())
	assert.Equal(t, "", CategoryKind("boats").AttributeTable())
}

func TestSortColumnsMergeBaseAndKind(t *testing.T) {
	cols := KindRealEstate.SortColumns()
	assert.Equal(t, "l.created_at", cols["created_at"])
	assert.Equal(t, "d.bedrooms", cols["bedrooms"])

	serviceCols := KindService.SortColumns()
	assert.Equal(t, "l.price", serviceCols["price"])
	assert.NotContains(t, serviceCols, "bedrooms")
}

func TestFacetNames(t *testing.T) {
	fs := FilterSet{
		Predicates: []Predicate{
			{Facet: "city"},
			{Facet: "price"},
		},
		Geo: &GeoFilter{Lat: 1, Lng: 2, RadiusKm: 3},
	}
	assert.Equal(t, []string{"city", "price", "radius"}, fs.FacetNames())
}
