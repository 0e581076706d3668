package domain

// Op is the closed set of predicate operators the query builder understands.
type Op string

const (
	OpEq       Op = "eq"
	OpGTE      Op = "gte"
	OpLTE      Op = "lte"
	OpContains Op = "contains" // jsonb array containment
	OpKeyword  Op = "keyword"  // case-insensitive substring over title/description
)

// Predicate is one compiled filter. Column is always taken from a facet
// registry or the base column table, never from request input.
type Predicate struct {
	Facet  string // request-facing facet name, used for diagnostics
	Column string
	Op     Op
	Value  any
}

// GeoFilter is a lat/lng/radius triple. It only exists when all three
// parameters were present.
type GeoFilter struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// SortSpec names an allow-listed column and a direction. ByDistance is the
// implicit ascending-distance ordering a radius filter switches on when the
// caller did not pick a sort key.
type SortSpec struct {
	Column     string
	Direction  string // "ASC" or "DESC"
	ByDistance bool
	Explicit   bool
}

// PageSpec is a validated pagination request.
type PageSpec struct {
	Page    int
	PerPage int
}

func (p PageSpec) Offset() int { return (p.Page - 1) * p.PerPage }

// FilterSet is the immutable output of the filter compiler: everything the
// query builder needs, fully formed. Kind is nil for cross-category search.
type FilterSet struct {
	Kind       *CategoryKind
	Predicates []Predicate
	Geo        *GeoFilter
	Sort       SortSpec
	Page       PageSpec

	// StatusPinned reports whether a status facet was supplied; without one
	// the executor restricts to active listings.
	StatusPinned bool
}

// FacetNames lists the facets bound in this set, for logging store failures
// without raw values.
func (fs FilterSet) FacetNames() []string {
	names := make([]string, 0, len(fs.Predicates)+1)
	for _, p := range fs.Predicates {
		names = append(names, p.Facet)
	}
	if fs.Geo != nil {
		names = append(names, "radius")
	}
	return names
}
