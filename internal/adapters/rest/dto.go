package rest

import "time"

// Envelope is the uniform response shape. Errors carries the field-keyed
// validation map; Pagination is present on paginated payloads only.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Pagination *PaginationMeta   `json:"pagination,omitempty"`
	Message    string            `json:"message,omitempty"`
	Error      string            `json:"error,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

type PaginationMeta struct {
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// ListingCardResponse is one enriched search result row.
type ListingCardResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Price            *float64  `json:"price"`
	PriceType        string    `json:"price_type"`
	Currency         string    `json:"currency"`
	FormattedPrice   *string   `json:"formatted_price"`
	Purpose          string    `json:"purpose"`
	City             string    `json:"city"`
	Area             string    `json:"area"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	CategoryLabel    *string   `json:"category"`
	SubcategoryLabel *string   `json:"subcategory"`
	PrimaryImageURL  *string   `json:"primary_image"`
	DistanceKm       *float64  `json:"distance_km,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListingDetailsResponse is the single-listing view: the base listing plus
// its kind-specific attribute record.
type ListingDetailsResponse struct {
	ID             int64       `json:"id"`
	OwnerID        int64       `json:"owner_id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Price          *float64    `json:"price"`
	PriceType      string      `json:"price_type"`
	Currency       string      `json:"currency"`
	FormattedPrice *string     `json:"formatted_price"`
	CategoryKind   string      `json:"category_kind"`
	Purpose        string      `json:"purpose"`
	Status         string      `json:"status"`
	Latitude       *float64    `json:"latitude,omitempty"`
	Longitude      *float64    `json:"longitude,omitempty"`
	City           string      `json:"city"`
	Area           string      `json:"area"`
	ViewsCount     int         `json:"views_count"`
	FavoritesCount int         `json:"favorites_count"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	Attributes     interface{} `json:"attributes"`
}

// FilterOptionResponse is one facet of the menu.
type FilterOptionResponse struct {
	Options []interface{} `json:"options,omitempty"`
	Min     interface{}   `json:"min,omitempty"`
	Max     interface{}   `json:"max,omitempty"`
}

type FilterOptionsResponse struct {
	Count   int                             `json:"count"`
	Options map[string]FilterOptionResponse `json:"options"`
}

type DictionaryItemResponse struct {
	SystemName  string `json:"system_name"`
	DisplayName string `json:"display_name"`
}
