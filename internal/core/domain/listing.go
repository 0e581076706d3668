package domain

import "time"

// Listing is the base marketplace entity, one row of `listings`.
type Listing struct {
	ID             int64
	OwnerID        int64
	Title          string
	Description    string
	Price          *float64
	PriceType      string
	Currency       string
	CategoryID     int64
	CategoryKind   CategoryKind
	SubcategoryID  *int64
	Purpose        string
	Status         string
	Latitude       *float64
	Longitude      *float64
	City           string
	Area           string
	ViewsCount     int
	FavoritesCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RealEstateAttributes is the 1:1 extension row for real estate listings.
type RealEstateAttributes struct {
	PropertyType string
	Bedrooms     *int
	Bathrooms    *int
	PropertyArea *float64
	Furnished    *bool
	Amenities    []string
}

type VehicleAttributes struct {
	Make         string
	Model        string
	Year         *int
	Mileage      *int
	Transmission string
	FuelType     string
	Seats        *int
	Features     []string
}

type ServiceAttributes struct {
	ServiceType     string
	MobileService   *bool
	ExperienceYears *int
}

type JobAttributes struct {
	JobType         string
	ExperienceLevel string
	Industry        string
	Remote          *bool
	Benefits        []string
	SalaryMin       *float64
	SalaryMax       *float64
}

type BidAttributes struct {
	BidType     string
	ProjectType string
	BudgetMin   *float64
	BudgetMax   *float64
}

// ListingDetails is a listing together with whichever attribute record its
// kind carries. Exactly one of the attribute pointers is set.
type ListingDetails struct {
	Listing    Listing
	RealEstate *RealEstateAttributes
	Vehicle    *VehicleAttributes
	Service    *ServiceAttributes
	Job        *JobAttributes
	Bid        *BidAttributes
}

// ListingCard is one enriched search result row. Enrichment fields are
// nullable: a missing joined row degrades the field, never the page.
type ListingCard struct {
	ID               int64
	Title            string
	Price            *float64
	PriceType        string
	Currency         string
	FormattedPrice   *string
	Purpose          string
	Status           string
	City             string
	Area             string
	Latitude         *float64
	Longitude        *float64
	CategoryLabel    *string
	SubcategoryLabel *string
	PrimaryImageURL  *string
	DistanceKm       *float64
	CreatedAt        time.Time
}

// PaginatedListings is one result page plus its pagination metadata. Total is
// computed from the same predicate set as the rows.
type PaginatedListings struct {
	Listings    []ListingCard
	TotalCount  int
	CurrentPage int
	PerPage     int
}

// LastPage derives the last page number from the total and page size.
func (p *PaginatedListings) LastPage() int {
	if p.PerPage <= 0 {
		return 1
	}
	last := (p.TotalCount + p.PerPage - 1) / p.PerPage
	if last < 1 {
		last = 1
	}
	return last
}

// Category is a taxonomy node.
type Category struct {
	ID   int64
	Slug string
	Kind CategoryKind
	Name string
}

type Subcategory struct {
	ID         int64
	CategoryID int64
	Slug       string
	Name       string
}
