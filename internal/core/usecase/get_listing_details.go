package usecase

import (
	"context"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/port"
)

type GetListingDetailsUseCase struct {
	listings port.ListingRepositoryPort
}

func NewGetListingDetailsUseCase(listings port.ListingRepositoryPort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{listings: listings}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	details, err := uc.listings.GetDetails(ctx, listingID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Listing details loaded", port.Fields{
		"listing_id": listingID,
		"kind":       string(details.Listing.CategoryKind),
	})
	return details, nil
}
