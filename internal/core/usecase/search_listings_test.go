package usecase

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-service/internal/core/domain"
	"search-service/internal/core/port/usecases_port"
)

func emptyPage() *domain.PaginatedListings {
	return &domain.PaginatedListings{Listings: []domain.ListingCard{}, CurrentPage: 1, PerPage: 10}
}

func TestSearchListingsPassesCompiledFilterSet(t *testing.T) {
	var captured domain.FilterSet
	repo := &fakeListingRepo{
		findWithFilters: func(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
			captured = fs
			return emptyPage(), nil
		},
	}
	uc := NewSearchListingsUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), url.Values{"city": {"Riyadh"}}, usecases_port.SearchScope{})
	require.NoError(t, err)

	require.Len(t, captured.Predicates, 1)
	assert.Equal(t, "city", captured.Predicates[0].Facet)
	assert.Nil(t, captured.Kind)
}

func TestSearchListingsScopePinsKindAndPurpose(t *testing.T) {
	var captured domain.FilterSet
	repo := &fakeListingRepo{
		findWithFilters: func(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
			captured = fs
			return emptyPage(), nil
		},
	}
	uc := NewSearchListingsUseCase(repo, nil)

	kind := domain.KindRealEstate
	_, err := uc.Execute(context.Background(), url.Values{}, usecases_port.SearchScope{
		Kind: &kind, Purpose: domain.PurposeRent,
	})
	require.NoError(t, err)

	require.NotNil(t, captured.Kind)
	assert.Equal(t, domain.KindRealEstate, *captured.Kind)

	var purpose *domain.Predicate
	for i := range captured.Predicates {
		if captured.Predicates[i].Facet == "purpose" {
			purpose = &captured.Predicates[i]
		}
	}
	require.NotNil(t, purpose)
	assert.Equal(t, "rent", purpose.Value)
}

func TestSearchListingsResolvesKindFromCategoryID(t *testing.T) {
	var captured domain.FilterSet
	repo := &fakeListingRepo{
		getCategory: func(ctx context.Context, categoryID int64) (*domain.Category, error) {
			assert.Equal(t, int64(5), categoryID)
			return &domain.Category{ID: 5, Kind: domain.KindVehicle}, nil
		},
		findWithFilters: func(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
			captured = fs
			return emptyPage(), nil
		},
	}
	uc := NewSearchListingsUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), url.Values{
		"category_id": {"5"},
		"make":        {"Toyota"},
	}, usecases_port.SearchScope{})
	require.NoError(t, err)

	require.NotNil(t, captured.Kind)
	assert.Equal(t, domain.KindVehicle, *captured.Kind)
}

func TestSearchListingsUnknownCategory(t *testing.T) {
	repo := &fakeListingRepo{
		getCategory: func(ctx context.Context, categoryID int64) (*domain.Category, error) {
			return nil, &domain.NotFoundError{Resource: "category", ID: categoryID}
		},
	}
	uc := NewSearchListingsUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), url.Values{"category_id": {"999"}}, usecases_port.SearchScope{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_id")
}

func TestSearchListingsValidationErrorSkipsStore(t *testing.T) {
	storeCalled := false
	repo := &fakeListingRepo{
		findWithFilters: func(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
			storeCalled = true
			return emptyPage(), nil
		},
	}
	uc := NewSearchListingsUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), url.Values{"purpose": {"lease"}}, usecases_port.SearchScope{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, storeCalled)
}

func TestSearchListingsReportsEvent(t *testing.T) {
	repo := &fakeListingRepo{
		findWithFilters: func(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
			return &domain.PaginatedListings{TotalCount: 17, CurrentPage: 2, PerPage: 10}, nil
		},
	}
	reporter := &fakeReporter{}
	uc := NewSearchListingsUseCase(repo, reporter)

	kind := domain.KindService
	_, err := uc.Execute(context.Background(), url.Values{"city": {"Jeddah"}}, usecases_port.SearchScope{Kind: &kind})
	require.NoError(t, err)

	require.Len(t, reporter.events, 1)
	event := reporter.events[0]
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "service", event.Category)
	assert.Equal(t, []string{"city"}, event.Facets)
	assert.Equal(t, 17, event.ResultCount)
	assert.Equal(t, 2, event.Page)
	assert.False(t, event.ExecutedAt.IsZero())
}

func TestSearchListingsReporterFailureIsSwallowed(t *testing.T) {
	repo := &fakeListingRepo{
		findWithFilters: func(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
			return emptyPage(), nil
		},
	}
	reporter := &fakeReporter{err: errors.New("broker down")}
	uc := NewSearchListingsUseCase(repo, reporter)

	_, err := uc.Execute(context.Background(), url.Values{}, usecases_port.SearchScope{})
	assert.NoError(t, err)
}

func TestSearchListingsStoreErrorPropagates(t *testing.T) {
	storeErr := &domain.StoreError{Op: "query listings", Err: errors.New("connection reset")}
	repo := &fakeListingRepo{
		findWithFilters: func(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
			return nil, storeErr
		},
	}
	uc := NewSearchListingsUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), url.Values{}, usecases_port.SearchScope{})
	assert.ErrorIs(t, err, storeErr)
}
