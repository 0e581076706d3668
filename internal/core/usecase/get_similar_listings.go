package usecase

import (
	"context"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/port"
)

type GetSimilarListingsUseCase struct {
	listings port.ListingRepositoryPort
}

func NewGetSimilarListingsUseCase(listings port.ListingRepositoryPort) *GetSimilarListingsUseCase {
	return &GetSimilarListingsUseCase{listings: listings}
}

// Execute loads the reference listing, derives its tolerance bands and
// returns up to limit similar listings. A missing reference is an error; an
// empty candidate set is not.
func (uc *GetSimilarListingsUseCase) Execute(ctx context.Context, listingID int64, limit int) ([]domain.ListingCard, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetSimilarListings",
		"listing_id": listingID,
	})

	ref, err := uc.listings.GetDetails(ctx, listingID)
	if err != nil {
		return nil, err
	}

	q := domain.BuildSimilarityQuery(*ref, limit)

	cards, err := uc.listings.FindSimilar(ctx, q)
	if err != nil {
		ucLogger.Error("Similarity lookup failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Similar listings found", port.Fields{
		"candidates": len(cards),
		"limit":      q.Limit,
	})
	return cards, nil
}
