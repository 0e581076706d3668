package usecase

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/filter"
	"search-service/internal/core/port"
	"search-service/internal/core/port/usecases_port"
)

type SearchListingsUseCase struct {
	listings port.ListingRepositoryPort
	reporter port.SearchEventReporterPort
}

func NewSearchListingsUseCase(listings port.ListingRepositoryPort, reporter port.SearchEventReporterPort) *SearchListingsUseCase {
	return &SearchListingsUseCase{listings: listings, reporter: reporter}
}

// Execute resolves the category scope, compiles the filter set and runs it.
// The category kind comes from the pinned scope or from the category_id
// parameter; category-specific facets never compile without one.
func (uc *SearchListingsUseCase) Execute(ctx context.Context, params url.Values, scope usecases_port.SearchScope) (*domain.PaginatedListings, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "SearchListings"})

	kind := scope.Kind
	if kind == nil {
		resolved, err := uc.resolveKind(ctx, params)
		if err != nil {
			return nil, err
		}
		kind = resolved
	}

	if scope.Purpose != "" {
		pinned := url.Values{}
		for k, vs := range params {
			pinned[k] = vs
		}
		pinned.Set("purpose", scope.Purpose)
		params = pinned
	}

	fs, err := filter.Compile(kind, params)
	if err != nil {
		ucLogger.Debug("Filter compilation rejected request", port.Fields{"error": err.Error()})
		return nil, err
	}

	result, err := uc.listings.FindWithFilters(ctx, fs)
	if err != nil {
		ucLogger.Error("Listing store returned an error", err, port.Fields{"facets": fs.FacetNames()})
		return nil, err
	}

	ucLogger.Info("Search executed", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Listings),
	})

	uc.reportSearch(ctx, ucLogger, fs, result)

	return result, nil
}

func (uc *SearchListingsUseCase) resolveKind(ctx context.Context, params url.Values) (*domain.CategoryKind, error) {
	raw := params.Get("category_id")
	if raw == "" {
		return nil, nil
	}
	categoryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// The compiler reports the malformed value together with any other
		// field failures.
		return nil, nil
	}

	category, err := uc.listings.GetCategory(ctx, categoryID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			verr := domain.NewValidationError()
			verr.Add("category_id", "unknown category")
			return nil, verr
		}
		return nil, err
	}
	return &category.Kind, nil
}

// reportSearch publishes the analytics event. Failures are logged and
// swallowed; search results never depend on the event pipeline.
func (uc *SearchListingsUseCase) reportSearch(ctx context.Context, logger port.LoggerPort, fs domain.FilterSet, result *domain.PaginatedListings) {
	if uc.reporter == nil {
		return
	}

	event := port.SearchEvent{
		EventID:     uuid.New().String(),
		TraceID:     contextkeys.TraceIDFromContext(ctx),
		Facets:      fs.FacetNames(),
		ResultCount: result.TotalCount,
		Page:        result.CurrentPage,
		ExecutedAt:  time.Now().UTC(),
	}
	if fs.Kind != nil {
		event.Category = string(*fs.Kind)
	}

	if err := uc.reporter.ReportSearch(ctx, event); err != nil {
		logger.Warn("Failed to publish search event", port.Fields{"error": err.Error()})
	}
}
