package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-service/internal/core/domain"
)

// splitSimilaritySQL cuts the query at its top-level WHERE and ORDER BY. The
// enrichment lateral subquery carries its own WHERE, so the last one before
// ORDER BY is the main clause.
func splitSimilaritySQL(t *testing.T, query string) (where, order string) {
	t.Helper()
	orderIdx := strings.LastIndex(query, "ORDER BY")
	require.Greater(t, orderIdx, 0)
	whereIdx := strings.LastIndex(query[:orderIdx], "WHERE")
	require.Greater(t, whereIdx, 0)
	return query[whereIdx:orderIdx], query[orderIdx:]
}

func TestBuildSimilaritySQLBaseConditions(t *testing.T) {
	query, args, err := buildSimilaritySQL(domain.SimilarityQuery{
		ReferenceID: 7,
		CategoryID:  3,
		Kind:        domain.KindVehicle,
		Limit:       6,
	})
	require.NoError(t, err)

	where, order := splitSimilaritySQL(t, query)
	assert.Contains(t, query, "JOIN vehicle_attributes d ON d.listing_id = l.id")
	assert.Contains(t, where, "l.status = 'active'")
	assert.Contains(t, where, "l.id <> $1")
	assert.Contains(t, where, "l.category_id = $2")
	assert.Contains(t, order, "l.created_at DESC, l.id ASC")
	assert.Equal(t, []interface{}{int64(7), int64(3), 6}, args)
}

// Location never excludes a candidate that passed the hard filters. The
// geohash neighborhood only boosts nearby rows in the ordering, so a match
// 100 km away still shows up when nothing closer exists.
func TestBuildSimilaritySQLGeohashOrdersButNeverFilters(t *testing.T) {
	lat, lng := 24.7136, 46.6753
	query, args, err := buildSimilaritySQL(domain.SimilarityQuery{
		ReferenceID: 7,
		CategoryID:  3,
		Kind:        domain.KindRealEstate,
		Lat:         &lat,
		Lng:         &lng,
		Limit:       6,
	})
	require.NoError(t, err)

	where, order := splitSimilaritySQL(t, query)
	assert.NotContains(t, where, "geohash")
	assert.Contains(t, order, "= ANY(")
	assert.Contains(t, order, "l.geohash IS NOT NULL AND left(l.geohash, 4)")

	// Nearby bucket ranks before distance, distance before recency.
	neighborhoodIdx := strings.Index(order, "l.geohash")
	distanceIdx := strings.Index(order, "acos")
	recencyIdx := strings.Index(order, "l.created_at DESC")
	assert.Greater(t, distanceIdx, neighborhoodIdx)
	assert.Greater(t, recencyIdx, distanceIdx)

	// Cell plus its eight neighbors bound as one array argument.
	var prefixes []string
	for _, a := range args {
		if p, ok := a.([]string); ok {
			prefixes = p
		}
	}
	require.Len(t, prefixes, 9)
	for _, p := range prefixes {
		assert.Len(t, p, 4)
	}
}

func TestBuildSimilaritySQLWithoutCoordinates(t *testing.T) {
	query, _, err := buildSimilaritySQL(domain.SimilarityQuery{
		ReferenceID: 7,
		CategoryID:  3,
		Kind:        domain.KindJob,
		Limit:       6,
	})
	require.NoError(t, err)

	assert.NotContains(t, query, "geohash")
	assert.Contains(t, query, "NULL::float8 AS distance_km")
}

func TestBuildSimilaritySQLSoftPriorities(t *testing.T) {
	subID := int64(11)
	query, args, err := buildSimilaritySQL(domain.SimilarityQuery{
		ReferenceID:   7,
		CategoryID:    3,
		Kind:          domain.KindService,
		SubcategoryID: &subID,
		City:          "Jeddah",
		Limit:         6,
	})
	require.NoError(t, err)

	where, order := splitSimilaritySQL(t, query)
	assert.NotContains(t, where, "l.subcategory_id")
	assert.NotContains(t, where, "l.city")
	assert.Contains(t, order, "(l.subcategory_id = $3)::int DESC")
	assert.Contains(t, order, "(l.city = $4)::int DESC")
	assert.Contains(t, args, int64(11))
	assert.Contains(t, args, "Jeddah")
}
