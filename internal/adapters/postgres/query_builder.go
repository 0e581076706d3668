package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	"search-service/internal/core/domain"
)

// haversineSQL is the great-circle distance in kilometers between the request
// point and a listing row. The acos argument is clamped to [-1, 1] so two
// identical points yield exactly 0 instead of acos of a float just above 1.
// Placeholders: latitude arg (referenced twice), longitude arg.
const haversineSQL = "(6371 * acos(LEAST(1.0, GREATEST(-1.0, " +
	"cos(radians(%[1]s)) * cos(radians(l.latitude)) * " +
	"cos(radians(l.longitude) - radians(%[2]s)) + " +
	"sin(radians(%[1]s)) * sin(radians(l.latitude))))))"

type queryBuilder struct {
	joins        []string
	conditions   []string
	args         []interface{}
	argID        int
	distanceExpr string
	sort         domain.SortSpec
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argID:      1,
		conditions: []string{"l.deleted_at IS NULL"},
	}
}

// nextArg registers a positional argument and returns its placeholder.
func (qb *queryBuilder) nextArg(value interface{}) string {
	placeholder := fmt.Sprintf("$%d", qb.argID)
	qb.args = append(qb.args, value)
	qb.argID++
	return placeholder
}

func (qb *queryBuilder) addCondition(condition string) {
	qb.conditions = append(qb.conditions, condition)
}

func (qb *queryBuilder) addJoin(join string) {
	qb.joins = append(qb.joins, join)
}

// applyFilterSet turns a compiled filter set into query parts. Column names
// inside the predicates come from the facet registries, never from request
// input.
func applyFilterSet(fs domain.FilterSet) (*queryBuilder, error) {
	qb := newQueryBuilder()
	qb.sort = fs.Sort

	if !fs.StatusPinned {
		qb.addCondition("l.status = 'active'")
	}

	if fs.Kind != nil {
		// The kind join uses its own alias: the enrichment joins already bind
		// `categories c` and the data query carries both.
		qb.addJoin(fmt.Sprintf("JOIN %s d ON d.listing_id = l.id", fs.Kind.AttributeTable()))
		qb.addJoin("JOIN categories kc ON kc.id = l.category_id")
		qb.addCondition(fmt.Sprintf("kc.kind = %s", qb.nextArg(string(*fs.Kind))))
	}

	for _, p := range fs.Predicates {
		if err := qb.applyPredicate(p); err != nil {
			return nil, err
		}
	}

	if fs.Geo != nil {
		latArg := qb.nextArg(fs.Geo.Lat)
		lngArg := qb.nextArg(fs.Geo.Lng)
		qb.distanceExpr = fmt.Sprintf(haversineSQL, latArg, lngArg)
		qb.addCondition("l.latitude IS NOT NULL AND l.longitude IS NOT NULL")
		qb.addCondition(fmt.Sprintf("%s <= %s", qb.distanceExpr, qb.nextArg(fs.Geo.RadiusKm)))
	}

	return qb, nil
}

func (qb *queryBuilder) applyPredicate(p domain.Predicate) error {
	switch p.Op {
	case domain.OpEq:
		qb.addCondition(fmt.Sprintf("%s = %s", p.Column, qb.nextArg(p.Value)))
	case domain.OpGTE:
		qb.addCondition(fmt.Sprintf("%s >= %s", p.Column, qb.nextArg(p.Value)))
	case domain.OpLTE:
		qb.addCondition(fmt.Sprintf("%s <= %s", p.Column, qb.nextArg(p.Value)))
	case domain.OpContains:
		// jsonb array containment: the listing's array must hold the value.
		// Requested values are ANDed, one condition each.
		element, err := json.Marshal([]interface{}{p.Value})
		if err != nil {
			return fmt.Errorf("marshal containment value for %s: %w", p.Facet, err)
		}
		qb.addCondition(fmt.Sprintf("%s @> %s::jsonb", p.Column, qb.nextArg(string(element))))
	case domain.OpKeyword:
		kw, ok := p.Value.(string)
		if !ok {
			return fmt.Errorf("keyword predicate value must be a string")
		}
		arg := qb.nextArg("%" + escapeLike(kw) + "%")
		qb.addCondition(fmt.Sprintf("(l.title ILIKE %[1]s OR l.description ILIKE %[1]s)", arg))
	default:
		return fmt.Errorf("unsupported predicate op %q for facet %s", p.Op, p.Facet)
	}
	return nil
}

func (qb *queryBuilder) joinClause() string {
	return strings.Join(qb.joins, " ")
}

func (qb *queryBuilder) whereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

// orderClause applies the sort spec; a radius search without an explicit sort
// orders by ascending distance. l.id breaks ties so pages stay stable.
func (qb *queryBuilder) orderClause() string {
	if qb.sort.ByDistance && qb.distanceExpr != "" {
		return fmt.Sprintf("ORDER BY %s ASC, l.id ASC", qb.distanceExpr)
	}
	return fmt.Sprintf("ORDER BY %s %s, l.id ASC", qb.sort.Column, qb.sort.Direction)
}

// limitClause registers limit/offset args and returns the clause.
func (qb *queryBuilder) limitClause(page domain.PageSpec) string {
	return fmt.Sprintf("LIMIT %s OFFSET %s", qb.nextArg(page.PerPage), qb.nextArg(page.Offset()))
}

// escapeLike neutralizes LIKE wildcards in user keywords so they match
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
