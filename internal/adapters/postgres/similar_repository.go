package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcloughlin/geohash"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/port"
)

// geohashNeighborhoodPrecision sizes the "nearby" bucket used as a sort
// priority: the reference's geohash cell and its eight neighbors (precision 4
// cells are roughly 39x20 km). Candidates outside the bucket still qualify,
// they just rank after the nearby ones.
const geohashNeighborhoodPrecision = 4

// buildSimilaritySQL assembles the candidate query for a similarity request:
// hard filters and tolerance bands ANDed in WHERE, subcategory, city and the
// geohash neighborhood as soft sort priorities, distance or recency as the
// final ordering.
func buildSimilaritySQL(q domain.SimilarityQuery) (string, []interface{}, error) {
	qb := newQueryBuilder()
	qb.addCondition("l.status = 'active'")
	qb.addCondition(fmt.Sprintf("l.id <> %s", qb.nextArg(q.ReferenceID)))
	qb.addCondition(fmt.Sprintf("l.category_id = %s", qb.nextArg(q.CategoryID)))
	qb.addJoin(fmt.Sprintf("JOIN %s d ON d.listing_id = l.id", q.Kind.AttributeTable()))

	for _, p := range q.Filters {
		if err := qb.applyPredicate(p); err != nil {
			return "", nil, &domain.StoreError{Op: "build similarity query", Err: err}
		}
	}

	// Price band: candidates inside the reference's ±20% window, plus
	// candidates with no price at all.
	if q.PriceMin != nil && q.PriceMax != nil {
		qb.addCondition(fmt.Sprintf("(l.price IS NULL OR (l.price >= %s AND l.price <= %s))",
			qb.nextArg(*q.PriceMin), qb.nextArg(*q.PriceMax)))
	}

	var orderParts []string
	if q.SubcategoryID != nil {
		orderParts = append(orderParts,
			fmt.Sprintf("(l.subcategory_id = %s)::int DESC", qb.nextArg(*q.SubcategoryID)))
	}
	if q.City != "" {
		orderParts = append(orderParts,
			fmt.Sprintf("(l.city = %s)::int DESC", qb.nextArg(q.City)))
	}

	distanceSelect := "NULL::float8 AS distance_km"
	if q.HasCoordinates() {
		cell := geohash.EncodeWithPrecision(*q.Lat, *q.Lng, geohashNeighborhoodPrecision)
		prefixes := append(geohash.Neighbors(cell), cell)
		orderParts = append(orderParts,
			fmt.Sprintf("(l.geohash IS NOT NULL AND left(l.geohash, %d) = ANY(%s))::int DESC",
				geohashNeighborhoodPrecision, qb.nextArg(prefixes)))

		latArg := qb.nextArg(*q.Lat)
		lngArg := qb.nextArg(*q.Lng)
		qb.distanceExpr = fmt.Sprintf(haversineSQL, latArg, lngArg)
		distanceSelect = qb.distanceExpr + " AS distance_km"
		orderParts = append(orderParts, qb.distanceExpr+" ASC NULLS LAST")
	}
	orderParts = append(orderParts, "l.created_at DESC", "l.id ASC")

	query := fmt.Sprintf(`SELECT %s, %s
		FROM listings l %s %s
		%s
		ORDER BY %s
		LIMIT %s`,
		cardColumns, distanceSelect,
		qb.joinClause(), enrichmentJoins,
		qb.whereClause(),
		strings.Join(orderParts, ", "),
		qb.nextArg(q.Limit),
	)
	return query, qb.args, nil
}

// FindSimilar returns candidates for a similarity query. Matching rows are
// never excluded by location; coordinates only influence ordering.
func (r *ListingRepository) FindSimilar(ctx context.Context, q domain.SimilarityQuery) ([]domain.ListingCard, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":    "ListingRepository",
		"method":       "FindSimilar",
		"reference_id": q.ReferenceID,
	})

	query, args, err := buildSimilaritySQL(q)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Similarity query failed", err, nil)
		return nil, &domain.StoreError{Op: "query similar listings", Err: err}
	}
	defer rows.Close()

	cards, err := scanCards(rows, repoLogger)
	if err != nil {
		return nil, &domain.StoreError{Op: "scan similar listings", Err: err}
	}
	if cards == nil {
		cards = []domain.ListingCard{}
	}

	repoLogger.Debug("Similarity candidates fetched", port.Fields{"count": len(cards)})
	return cards, nil
}
