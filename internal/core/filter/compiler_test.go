package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-service/internal/core/domain"
)

func kindPtr(k domain.CategoryKind) *domain.CategoryKind {
	return &k
}

func findPredicates(fs domain.FilterSet, facet string) []domain.Predicate {
	var out []domain.Predicate
	for _, p := range fs.Predicates {
		if p.Facet == facet {
			out = append(out, p)
		}
	}
	return out
}

func requireValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*domain.ValidationError)
	require.True(t, ok, "expected *domain.ValidationError, got %T", err)
	return verr
}

func TestCompileDefaults(t *testing.T) {
	fs, err := Compile(nil, url.Values{})
	require.NoError(t, err)

	assert.Nil(t, fs.Kind)
	assert.Empty(t, fs.Predicates)
	assert.Nil(t, fs.Geo)
	assert.Equal(t, 1, fs.Page.Page)
	assert.Equal(t, DefaultPerPage, fs.Page.PerPage)
	assert.Equal(t, "l.created_at", fs.Sort.Column)
	assert.Equal(t, "DESC", fs.Sort.Direction)
	assert.False(t, fs.Sort.Explicit)
	assert.False(t, fs.StatusPinned)
}

func TestCompileUnknownParamsIgnored(t *testing.T) {
	fs, err := Compile(nil, url.Values{
		"utm_source": {"newsletter"},
		"foo":        {"bar"},
	})
	require.NoError(t, err)
	assert.Empty(t, fs.Predicates)
}

func TestCompileBaseFacets(t *testing.T) {
	fs, err := Compile(nil, url.Values{
		"city":      {"Riyadh"},
		"purpose":   {"rent"},
		"min_price": {"500"},
		"max_price": {"1500.50"},
		"keyword":   {"  sea view  "},
	})
	require.NoError(t, err)

	city := findPredicates(fs, "city")
	require.Len(t, city, 1)
	assert.Equal(t, domain.OpEq, city[0].Op)
	assert.Equal(t, "l.city", city[0].Column)
	assert.Equal(t, "Riyadh", city[0].Value)

	price := findPredicates(fs, "price")
	require.Len(t, price, 2)
	assert.Equal(t, domain.OpGTE, price[0].Op)
	assert.Equal(t, 500.0, price[0].Value)
	assert.Equal(t, domain.OpLTE, price[1].Op)
	assert.Equal(t, 1500.50, price[1].Value)

	kw := findPredicates(fs, "keyword")
	require.Len(t, kw, 1)
	assert.Equal(t, domain.OpKeyword, kw[0].Op)
	assert.Equal(t, "sea view", kw[0].Value)
}

func TestCompileEnumRejectsUnknownValue(t *testing.T) {
	_, err := Compile(nil, url.Values{"purpose": {"lease"}})
	verr := requireValidationError(t, err)
	assert.Contains(t, verr.Fields, "purpose")
}

func TestCompileStatusPinsStatus(t *testing.T) {
	fs, err := Compile(nil, url.Values{"status": {"sold"}})
	require.NoError(t, err)
	assert.True(t, fs.StatusPinned)

	status := findPredicates(fs, "status")
	require.Len(t, status, 1)
	assert.Equal(t, "sold", status[0].Value)
}

func TestCompileIntRangeShapes(t *testing.T) {
	kind := kindPtr(domain.KindRealEstate)

	t.Run("exact value", func(t *testing.T) {
		fs, err := Compile(kind, url.Values{"bedrooms": {"3"}})
		require.NoError(t, err)
		preds := findPredicates(fs, "bedrooms")
		require.Len(t, preds, 1)
		assert.Equal(t, domain.OpEq, preds[0].Op)
		assert.Equal(t, 3, preds[0].Value)
	})

	t.Run("open-ended N+", func(t *testing.T) {
		fs, err := Compile(kind, url.Values{"bedrooms": {"4+"}})
		require.NoError(t, err)
		preds := findPredicates(fs, "bedrooms")
		require.Len(t, preds, 1)
		assert.Equal(t, domain.OpGTE, preds[0].Op)
		assert.Equal(t, 4, preds[0].Value)
	})

	t.Run("min and max pair", func(t *testing.T) {
		fs, err := Compile(kind, url.Values{
			"min_bathrooms": {"1"},
			"max_bathrooms": {"3"},
		})
		require.NoError(t, err)
		preds := findPredicates(fs, "bathrooms")
		require.Len(t, preds, 2)
		assert.Equal(t, domain.OpGTE, preds[0].Op)
		assert.Equal(t, domain.OpLTE, preds[1].Op)
	})

	t.Run("non-numeric rejected", func(t *testing.T) {
		_, err := Compile(kind, url.Values{"bedrooms": {"many"}})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "bedrooms")
	})
}

func TestCompileBoolFacet(t *testing.T) {
	kind := kindPtr(domain.KindRealEstate)

	fs, err := Compile(kind, url.Values{"furnished": {"true"}})
	require.NoError(t, err)
	preds := findPredicates(fs, "furnished")
	require.Len(t, preds, 1)
	assert.Equal(t, true, preds[0].Value)

	_, err = Compile(kind, url.Values{"furnished": {"yes"}})
	verr := requireValidationError(t, err)
	assert.Contains(t, verr.Fields, "furnished")
}

func TestCompileArrayFacet(t *testing.T) {
	fs, err := Compile(kindPtr(domain.KindRealEstate), url.Values{
		"amenities":   {"pool", "gym"},
		"amenities[]": {"parking"},
	})
	require.NoError(t, err)

	preds := findPredicates(fs, "amenities")
	require.Len(t, preds, 3)
	for _, p := range preds {
		assert.Equal(t, domain.OpContains, p.Op)
	}
	assert.Equal(t, "pool", preds[0].Value)
	assert.Equal(t, "parking", preds[2].Value)
}

func TestCompileCategoryFacetWithoutCategory(t *testing.T) {
	_, err := Compile(nil, url.Values{"bedrooms": {"3"}})
	verr := requireValidationError(t, err)
	assert.Equal(t, "facet requires a category", verr.Fields["bedrooms"])

	_, err = Compile(nil, url.Values{"min_year": {"2015"}})
	verr = requireValidationError(t, err)
	assert.Contains(t, verr.Fields, "min_year")
}

func TestCompileGeo(t *testing.T) {
	t.Run("full triple", func(t *testing.T) {
		fs, err := Compile(nil, url.Values{
			"lat": {"24.7136"}, "lng": {"46.6753"}, "radius": {"10"},
		})
		require.NoError(t, err)
		require.NotNil(t, fs.Geo)
		assert.Equal(t, 24.7136, fs.Geo.Lat)
		assert.Equal(t, 46.6753, fs.Geo.Lng)
		assert.Equal(t, 10.0, fs.Geo.RadiusKm)
		assert.True(t, fs.Sort.ByDistance)
	})

	t.Run("partial triple is skipped", func(t *testing.T) {
		fs, err := Compile(nil, url.Values{"lat": {"24.7"}, "lng": {"46.7"}})
		require.NoError(t, err)
		assert.Nil(t, fs.Geo)
		assert.False(t, fs.Sort.ByDistance)
	})

	t.Run("present but malformed is rejected", func(t *testing.T) {
		_, err := Compile(nil, url.Values{"lat": {"north"}})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "lat")
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := Compile(nil, url.Values{
			"lat": {"95"}, "lng": {"46.7"}, "radius": {"10"},
		})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "lat")

		_, err = Compile(nil, url.Values{
			"lat": {"24.7"}, "lng": {"46.7"}, "radius": {"0"},
		})
		verr = requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "radius")
	})

	t.Run("explicit sort wins over distance", func(t *testing.T) {
		fs, err := Compile(nil, url.Values{
			"lat": {"24.7"}, "lng": {"46.7"}, "radius": {"10"},
			"sort_by": {"price"},
		})
		require.NoError(t, err)
		require.NotNil(t, fs.Geo)
		assert.False(t, fs.Sort.ByDistance)
		assert.Equal(t, "l.price", fs.Sort.Column)
	})
}

func TestCompileSort(t *testing.T) {
	t.Run("explicit sort defaults ascending", func(t *testing.T) {
		fs, err := Compile(nil, url.Values{"sort_by": {"price"}})
		require.NoError(t, err)
		assert.Equal(t, "l.price", fs.Sort.Column)
		assert.Equal(t, "ASC", fs.Sort.Direction)
		assert.True(t, fs.Sort.Explicit)
	})

	t.Run("direction override", func(t *testing.T) {
		fs, err := Compile(nil, url.Values{
			"sort_by": {"views_count"}, "sort_direction": {"desc"},
		})
		require.NoError(t, err)
		assert.Equal(t, "l.views_count", fs.Sort.Column)
		assert.Equal(t, "DESC", fs.Sort.Direction)
	})

	t.Run("kind-specific sort key", func(t *testing.T) {
		fs, err := Compile(kindPtr(domain.KindVehicle), url.Values{"sort_by": {"mileage"}})
		require.NoError(t, err)
		assert.Equal(t, "d.mileage", fs.Sort.Column)
	})

	t.Run("kind-specific key rejected without kind", func(t *testing.T) {
		_, err := Compile(nil, url.Values{"sort_by": {"mileage"}})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "sort_by")
	})

	t.Run("unknown column rejected", func(t *testing.T) {
		_, err := Compile(nil, url.Values{"sort_by": {"owner_id"}})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "sort_by")
	})

	t.Run("bad direction rejected", func(t *testing.T) {
		_, err := Compile(nil, url.Values{"sort_direction": {"sideways"}})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "sort_direction")
	})
}

func TestCompilePagination(t *testing.T) {
	t.Run("valid page and size", func(t *testing.T) {
		fs, err := Compile(nil, url.Values{"page": {"3"}, "per_page": {"25"}})
		require.NoError(t, err)
		assert.Equal(t, 3, fs.Page.Page)
		assert.Equal(t, 25, fs.Page.PerPage)
		assert.Equal(t, 50, fs.Page.Offset())
	})

	t.Run("oversized per_page clamps", func(t *testing.T) {
		fs, err := Compile(nil, url.Values{"per_page": {"500"}})
		require.NoError(t, err)
		assert.Equal(t, MaxPerPage, fs.Page.PerPage)
	})

	t.Run("zero and negative rejected", func(t *testing.T) {
		_, err := Compile(nil, url.Values{"page": {"0"}})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "page")

		_, err = Compile(nil, url.Values{"per_page": {"-5"}})
		verr = requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "per_page")
	})

	t.Run("non-numeric rejected", func(t *testing.T) {
		_, err := Compile(nil, url.Values{"page": {"first"}})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "page")
	})
}

func TestCompileIDFacets(t *testing.T) {
	fs, err := Compile(nil, url.Values{
		"category_id":    {"7"},
		"subcategory_id": {"42"},
	})
	require.NoError(t, err)

	cat := findPredicates(fs, "category_id")
	require.Len(t, cat, 1)
	assert.Equal(t, int64(7), cat[0].Value)

	sub := findPredicates(fs, "subcategory_id")
	require.Len(t, sub, 1)
	assert.Equal(t, "l.subcategory_id", sub[0].Column)

	_, err = Compile(nil, url.Values{"category_id": {"-1"}})
	verr := requireValidationError(t, err)
	assert.Contains(t, verr.Fields, "category_id")
}

func TestCompileCollectsAllFieldErrors(t *testing.T) {
	_, err := Compile(nil, url.Values{
		"purpose": {"lease"},
		"page":    {"zero"},
		"lat":     {"north"},
	})
	verr := requireValidationError(t, err)
	assert.Len(t, verr.Fields, 3)
}
