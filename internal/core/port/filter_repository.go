package port

import (
	"context"

	"search-service/internal/core/domain"
)

// FacetMenuScope narrows the facet menu aggregates the same way a search
// would be narrowed.
type FacetMenuScope struct {
	CategoryID    int64
	Kind          domain.CategoryKind
	SubcategoryID *int64
	City          string
}

// RangeResult is an observed MIN/MAX pair.
type RangeResult struct {
	Min any
	Max any
}

// DictionaryItem is one entry of a system-name → display-name dictionary.
type DictionaryItem struct {
	SystemName  string
	DisplayName string
}

// FilterRepositoryPort serves the facet menu: distinct enum values and
// observed ranges over the active listings of one category.
type FilterRepositoryPort interface {
	GetTotalCount(ctx context.Context, scope FacetMenuScope) (int, error)
	GetPriceRange(ctx context.Context, scope FacetMenuScope) (*RangeResult, error)
	GetDistinctCities(ctx context.Context, scope FacetMenuScope) ([]string, error)
	GetDistinctStrings(ctx context.Context, scope FacetMenuScope, column string) ([]string, error)
	GetDistinctInts(ctx context.Context, scope FacetMenuScope, column string) ([]int, error)
	GetAttributeRange(ctx context.Context, scope FacetMenuScope, column string) (*RangeResult, error)

	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error)
}
