package usecase

import (
	"context"
	"errors"

	"search-service/internal/core/domain"
	"search-service/internal/core/port"
)

var errNotConfigured = errors.New("fake: call not configured")

type fakeListingRepo struct {
	findWithFilters func(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error)
	getDetails      func(ctx context.Context, listingID int64) (*domain.ListingDetails, error)
	findSimilar     func(ctx context.Context, q domain.SimilarityQuery) ([]domain.ListingCard, error)
	getCategory     func(ctx context.Context, categoryID int64) (*domain.Category, error)
}

func (f *fakeListingRepo) FindWithFilters(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
	if f.findWithFilters == nil {
		return nil, errNotConfigured
	}
	return f.findWithFilters(ctx, fs)
}

func (f *fakeListingRepo) GetDetails(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
	if f.getDetails == nil {
		return nil, errNotConfigured
	}
	return f.getDetails(ctx, listingID)
}

func (f *fakeListingRepo) FindSimilar(ctx context.Context, q domain.SimilarityQuery) ([]domain.ListingCard, error) {
	if f.findSimilar == nil {
		return nil, errNotConfigured
	}
	return f.findSimilar(ctx, q)
}

func (f *fakeListingRepo) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	if f.getCategory == nil {
		return nil, errNotConfigured
	}
	return f.getCategory(ctx, categoryID)
}

type fakeFilterRepo struct {
	totalCount      int
	priceRange      *port.RangeResult
	cities          []string
	distinctStrings map[string][]string
	distinctInts    map[string][]int
	attributeRanges map[string]*port.RangeResult
	categories      []domain.Category
	subcategories   []domain.Subcategory

	err error
}

func (f *fakeFilterRepo) GetTotalCount(ctx context.Context, scope port.FacetMenuScope) (int, error) {
	return f.totalCount, f.err
}

func (f *fakeFilterRepo) GetPriceRange(ctx context.Context, scope port.FacetMenuScope) (*port.RangeResult, error) {
	if f.priceRange == nil {
		return nil, errNotConfigured
	}
	return f.priceRange, nil
}

func (f *fakeFilterRepo) GetDistinctCities(ctx context.Context, scope port.FacetMenuScope) ([]string, error) {
	return f.cities, nil
}

func (f *fakeFilterRepo) GetDistinctStrings(ctx context.Context, scope port.FacetMenuScope, column string) ([]string, error) {
	values, ok := f.distinctStrings[column]
	if !ok {
		return nil, errNotConfigured
	}
	return values, nil
}

func (f *fakeFilterRepo) GetDistinctInts(ctx context.Context, scope port.FacetMenuScope, column string) ([]int, error) {
	values, ok := f.distinctInts[column]
	if !ok {
		return nil, errNotConfigured
	}
	return values, nil
}

func (f *fakeFilterRepo) GetAttributeRange(ctx context.Context, scope port.FacetMenuScope, column string) (*port.RangeResult, error) {
	r, ok := f.attributeRanges[column]
	if !ok {
		return nil, errNotConfigured
	}
	return r, nil
}

func (f *fakeFilterRepo) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeFilterRepo) GetSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	return f.subcategories, f.err
}

type fakeReporter struct {
	events []port.SearchEvent
	err    error
}

func (f *fakeReporter) ReportSearch(ctx context.Context, event port.SearchEvent) error {
	f.events = append(f.events, event)
	return f.err
}
