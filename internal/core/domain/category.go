package domain

// CategoryKind is the closed set of listing verticals. Every category row in
// the store carries one of these kinds; the kind decides which attribute table
// is joined and which facets and sort keys are legal for a query.
type CategoryKind string

const (
	KindRealEstate CategoryKind = "real_estate"
	KindVehicle    CategoryKind = "vehicle"
	KindService    CategoryKind = "service"
	KindJob        CategoryKind = "job"
	KindBid        CategoryKind = "bid"
)

// ParseCategoryKind returns the kind for a system name, or false for anything
// outside the closed set.
func ParseCategoryKind(s string) (CategoryKind, bool) {
	switch CategoryKind(s) {
	case KindRealEstate, KindVehicle, KindService, KindJob, KindBid:
		return CategoryKind(s), true
	}
	return "", false
}

// Purpose of a listing (deal type).
const (
	PurposeSell       = "sell"
	PurposeRent       = "rent"
	PurposeOffer      = "offer"
	PurposeSeek       = "seek"
	PurposeTender     = "tender"
	PurposeInvestment = "investment"
)

// Listing lifecycle statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
	StatusSold     = "sold"
	StatusRemoved  = "removed"
)

// Price period enum.
const (
	PriceHourly  = "hourly"
	PriceDaily   = "daily"
	PriceWeekly  = "weekly"
	PriceMonthly = "monthly"
	PriceYearly  = "yearly"
	PriceTotal   = "total"
)

var (
	Purposes   = []string{PurposeSell, PurposeRent, PurposeOffer, PurposeSeek, PurposeTender, PurposeInvestment}
	Statuses   = []string{StatusActive, StatusInactive, StatusPending, StatusSold, StatusRemoved}
	PriceTypes = []string{PriceHourly, PriceDaily, PriceWeekly, PriceMonthly, PriceYearly, PriceTotal}
)

// FacetType declares how a raw query parameter is coerced.
type FacetType int

const (
	FacetEnum FacetType = iota
	FacetBool
	FacetIntRange   // min_X / max_X pair, integer; bare value accepts the "N+" shape
	FacetFloatRange // min_X / max_X pair, float
	FacetArray      // repeated values, each one an ArrayContains predicate
	FacetText       // exact string match
)

// FacetDef binds one request parameter to one store column. Columns here are
// the only column names that ever reach SQL.
type FacetDef struct {
	Param  string
	Column string
	Type   FacetType
	Enum   []string // legal values for FacetEnum
}

// AttributeTable is the 1:1 extension table joined (as alias d) when this kind
// is queried.
func (k CategoryKind) AttributeTable() string {
	switch k {
	case KindRealEstate:
		return "real_estate_attributes"
	case KindVehicle:
		return "vehicle_attributes"
	case KindService:
		return "service_attributes"
	case KindJob:
		return "job_attributes"
	case KindBid:
		return "bid_attributes"
	}
	return ""
}

// Facets returns the category-specific facet registry for the kind.
func (k CategoryKind) Facets() []FacetDef {
	switch k {
	case KindRealEstate:
		return realEstateFacets
	case KindVehicle:
		return vehicleFacets
	case KindService:
		return serviceFacets
	case KindJob:
		return jobFacets
	case KindBid:
		return bidFacets
	}
	return nil
}

// SortColumns returns the sort allow-list for the kind, on top of the base
// listing sort keys.
func (k CategoryKind) SortColumns() map[string]string {
	merged := make(map[string]string, len(baseSortColumns)+4)
	for p, c := range baseSortColumns {
		merged[p] = c
	}
	for p, c := range kindSortColumns[k] {
		merged[p] = c
	}
	return merged
}

var baseSortColumns = map[string]string{
	"created_at":      "l.created_at",
	"price":           "l.price",
	"views_count":     "l.views_count",
	"favorites_count": "l.favorites_count",
}

var kindSortColumns = map[CategoryKind]map[string]string{
	KindRealEstate: {
		"bedrooms":      "d.bedrooms",
		"property_area": "d.property_area",
	},
	KindVehicle: {
		"year":    "d.year",
		"mileage": "d.mileage",
	},
	KindJob: {
		"salary_min": "d.salary_min",
	},
}

var realEstateFacets = []FacetDef{
	{Param: "property_type", Column: "d.property_type", Type: FacetEnum,
		Enum: []string{"apartment", "villa", "house", "room", "office", "shop", "land", "warehouse"}},
	{Param: "bedrooms", Column: "d.bedrooms", Type: FacetIntRange},
	{Param: "bathrooms", Column: "d.bathrooms", Type: FacetIntRange},
	{Param: "property_area", Column: "d.property_area", Type: FacetFloatRange},
	{Param: "furnished", Column: "d.furnished", Type: FacetBool},
	{Param: "amenities", Column: "d.amenities", Type: FacetArray},
}

var vehicleFacets = []FacetDef{
	{Param: "make", Column: "d.make", Type: FacetText},
	{Param: "model", Column: "d.model", Type: FacetText},
	{Param: "year", Column: "d.year", Type: FacetIntRange},
	{Param: "mileage", Column: "d.mileage", Type: FacetIntRange},
	{Param: "transmission", Column: "d.transmission", Type: FacetEnum,
		Enum: []string{"manual", "automatic", "semi_automatic"}},
	{Param: "fuel_type", Column: "d.fuel_type", Type: FacetEnum,
		Enum: []string{"petrol", "diesel", "hybrid", "electric", "gas"}},
	{Param: "seats", Column: "d.seats", Type: FacetIntRange},
	{Param: "features", Column: "d.features", Type: FacetArray},
}

var serviceFacets = []FacetDef{
	{Param: "service_type", Column: "d.service_type", Type: FacetText},
	{Param: "mobile_service", Column: "d.mobile_service", Type: FacetBool},
	{Param: "experience_years", Column: "d.experience_years", Type: FacetIntRange},
}

var jobFacets = []FacetDef{
	{Param: "job_type", Column: "d.job_type", Type: FacetEnum,
		Enum: []string{"full_time", "part_time", "contract", "temporary", "internship", "freelance"}},
	{Param: "experience_level", Column: "d.experience_level", Type: FacetEnum,
		Enum: []string{"entry", "junior", "mid", "senior", "lead", "executive"}},
	{Param: "industry", Column: "d.industry", Type: FacetText},
	{Param: "remote", Column: "d.remote", Type: FacetBool},
	{Param: "salary", Column: "d.salary_min", Type: FacetFloatRange},
	{Param: "benefits", Column: "d.benefits", Type: FacetArray},
}

var bidFacets = []FacetDef{
	{Param: "bid_type", Column: "d.bid_type", Type: FacetEnum,
		Enum: []string{"open", "sealed", "reverse"}},
	{Param: "project_type", Column: "d.project_type", Type: FacetText},
	{Param: "budget", Column: "d.budget_min", Type: FacetFloatRange},
}
