package usecase

import (
	"context"
	"errors"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/port"
	"search-service/internal/core/port/usecases_port"
)

type GetFilterOptionsUseCase struct {
	listings port.ListingRepositoryPort
	filters  port.FilterRepositoryPort
}

func NewGetFilterOptionsUseCase(listings port.ListingRepositoryPort, filters port.FilterRepositoryPort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{listings: listings, filters: filters}
}

// Execute assembles the facet menu for one category: observed enum values and
// min/max ranges over its active listings. A single failed aggregate is
// logged and skipped, the menu still ships.
func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context, categoryID int64, subcategoryID *int64, city string) (*usecases_port.FilterOptionsResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetFilterOptions",
		"category_id": categoryID,
	})

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

	scope := port.FacetMenuScope{
		CategoryID:    categoryID,
		Kind:          category.Kind,
		SubcategoryID: subcategoryID,
		City:          city,
	}

	options := make(map[string]usecases_port.FilterOption)

	count, err := uc.filters.GetTotalCount(ctx, scope)
	if err != nil {
		ucLogger.Error("Failed to count listings for facet menu", err, nil)
		return nil, err
	}

	if priceRange, err := uc.filters.GetPriceRange(ctx, scope); err == nil {
		options["price"] = usecases_port.FilterOption{Min: priceRange.Min, Max: priceRange.Max}
	} else {
		ucLogger.Warn("Failed to get price range", port.Fields{"error": err.Error()})
	}

	if cities, err := uc.filters.GetDistinctCities(ctx, scope); err == nil && len(cities) > 0 {
		options["cities"] = usecases_port.FilterOption{Options: toAnySlice(cities)}
	}

	addDistinct := func(key, column string) {
		values, err := uc.filters.GetDistinctStrings(ctx, scope, column)
		if err != nil {
			ucLogger.Warn("Failed to get facet values", port.Fields{"facet": key, "error": err.Error()})
			return
		}
		if len(values) > 0 {
			options[key] = usecases_port.FilterOption{Options: toAnySlice(values)}
		}
	}
	addRange := func(key, column string) {
		r, err := uc.filters.GetAttributeRange(ctx, scope, column)
		if err != nil {
			ucLogger.Warn("Failed to get facet range", port.Fields{"facet": key, "error": err.Error()})
			return
		}
		options[key] = usecases_port.FilterOption{Min: r.Min, Max: r.Max}
	}

	switch category.Kind {
	case domain.KindRealEstate:
		addDistinct("property_types", "d.property_type")
		if bedrooms, err := uc.filters.GetDistinctInts(ctx, scope, "d.bedrooms"); err == nil && len(bedrooms) > 0 {
			options["bedrooms"] = usecases_port.FilterOption{Options: toAnySlice(bedrooms)}
		}
		addRange("property_area", "d.property_area")
	case domain.KindVehicle:
		addDistinct("makes", "d.make")
		addDistinct("transmissions", "d.transmission")
		addDistinct("fuel_types", "d.fuel_type")
		addRange("year", "d.year")
		addRange("mileage", "d.mileage")
	case domain.KindService:
		addDistinct("service_types", "d.service_type")
		addRange("experience_years", "d.experience_years")
	case domain.KindJob:
		addDistinct("job_types", "d.job_type")
		addDistinct("experience_levels", "d.experience_level")
		addDistinct("industries", "d.industry")
		addRange("salary", "d.salary_min")
	case domain.KindBid:
		addDistinct("bid_types", "d.bid_type")
		addDistinct("project_types", "d.project_type")
		addRange("budget", "d.budget_min")
	}

	return &usecases_port.FilterOptionsResult{Options: options, Count: count}, nil
}

func toAnySlice[T any](slice []T) []any {
	result := make([]any, len(slice))
	for i, v := range slice {
		result[i] = v
	}
	return result
}
