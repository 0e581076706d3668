package domain

// DefaultSimilarLimit is how many similar listings a lookup returns unless the
// caller asked for fewer.
const (
	DefaultSimilarLimit = 6
	MaxSimilarLimit     = 24
)

// SimilarityQuery is the request-scoped derivation of one reference listing:
// hard filters and tolerance bands the candidate set must satisfy, plus the
// soft ordering preferences. Built once, consumed by one lookup.
//
// The uniform rule: a categorical reference field that is present becomes a
// hard equality filter, an absent one is skipped; subcategory and city are
// soft sort priorities only. Too few matches are returned as-is, nothing is
// relaxed or backfilled.
type SimilarityQuery struct {
	ReferenceID   int64
	CategoryID    int64
	Kind          CategoryKind
	SubcategoryID *int64 // soft: same-subcategory sorts first
	City          string // soft: same-city sorts second

	// Filters holds hard equality and band predicates over listing (l.) and
	// attribute (d.) columns.
	Filters []Predicate

	// PriceMin/PriceMax bound candidate prices to the reference ±20%;
	// candidates with no price always pass.
	PriceMin *float64
	PriceMax *float64

	Lat *float64
	Lng *float64

	Limit int
}

// BuildSimilarityQuery derives the tolerance bands for a reference listing.
func BuildSimilarityQuery(ref ListingDetails, limit int) SimilarityQuery {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}

	l := ref.Listing
	q := SimilarityQuery{
		ReferenceID:   l.ID,
		CategoryID:    l.CategoryID,
		Kind:          l.CategoryKind,
		SubcategoryID: l.SubcategoryID,
		City:          l.City,
		Lat:           l.Latitude,
		Lng:           l.Longitude,
		Limit:         limit,
	}

	if l.Price != nil {
		min := *l.Price * 0.8
		max := *l.Price * 1.2
		q.PriceMin = &min
		q.PriceMax = &max
	}

	hardEq := func(facet, column, value string) {
		if value != "" {
			q.Filters = append(q.Filters, Predicate{Facet: facet, Column: column, Op: OpEq, Value: value})
		}
	}
	hardEqBool := func(facet, column string, value *bool) {
		if value != nil {
			q.Filters = append(q.Filters, Predicate{Facet: facet, Column: column, Op: OpEq, Value: *value})
		}
	}
	intBand := func(facet, column string, value *int, delta int) {
		if value != nil {
			q.Filters = append(q.Filters,
				Predicate{Facet: facet, Column: column, Op: OpGTE, Value: *value - delta},
				Predicate{Facet: facet, Column: column, Op: OpLTE, Value: *value + delta})
		}
	}
	pctBand := func(facet, column string, value *float64, pct float64) {
		if value != nil {
			q.Filters = append(q.Filters,
				Predicate{Facet: facet, Column: column, Op: OpGTE, Value: *value * (1 - pct)},
				Predicate{Facet: facet, Column: column, Op: OpLTE, Value: *value * (1 + pct)})
		}
	}

	switch {
	case ref.RealEstate != nil:
		a := ref.RealEstate
		hardEq("property_type", "d.property_type", a.PropertyType)
		intBand("bedrooms", "d.bedrooms", a.Bedrooms, 1)
		pctBand("property_area", "d.property_area", a.PropertyArea, 0.20)
	case ref.Vehicle != nil:
		a := ref.Vehicle
		hardEq("make", "d.make", a.Make)
		intBand("year", "d.year", a.Year, 3)
		if a.Mileage != nil {
			m := float64(*a.Mileage)
			q.Filters = append(q.Filters,
				Predicate{Facet: "mileage", Column: "d.mileage", Op: OpGTE, Value: int(m * 0.7)},
				Predicate{Facet: "mileage", Column: "d.mileage", Op: OpLTE, Value: int(m * 1.3)})
		}
	case ref.Service != nil:
		a := ref.Service
		hardEq("service_type", "d.service_type", a.ServiceType)
		hardEqBool("mobile_service", "d.mobile_service", a.MobileService)
	case ref.Job != nil:
		a := ref.Job
		hardEq("job_type", "d.job_type", a.JobType)
		hardEq("experience_level", "d.experience_level", a.ExperienceLevel)
		hardEq("industry", "d.industry", a.Industry)
		hardEqBool("remote", "d.remote", a.Remote)
	case ref.Bid != nil:
		a := ref.Bid
		hardEq("bid_type", "d.bid_type", a.BidType)
		hardEq("project_type", "d.project_type", a.ProjectType)
	}

	return q
}

// HasCoordinates reports whether candidates can be ordered by distance.
func (q SimilarityQuery) HasCoordinates() bool {
	return q.Lat != nil && q.Lng != nil
}
