package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-service/internal/core/domain"
)

func TestGetSimilarListingsDerivesQueryFromReference(t *testing.T) {
	price := 1000.0
	var captured domain.SimilarityQuery
	repo := &fakeListingRepo{
		getDetails: func(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
			return &domain.ListingDetails{
				Listing: domain.Listing{
					ID:           listingID,
					CategoryID:   3,
					CategoryKind: domain.KindRealEstate,
					City:         "Riyadh",
					Price:        &price,
				},
				RealEstate: &domain.RealEstateAttributes{PropertyType: "apartment"},
			}, nil
		},
		findSimilar: func(ctx context.Context, q domain.SimilarityQuery) ([]domain.ListingCard, error) {
			captured = q
			return []domain.ListingCard{{ID: 200}}, nil
		},
	}
	uc := NewGetSimilarListingsUseCase(repo)

	cards, err := uc.Execute(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	assert.Equal(t, int64(100), captured.ReferenceID)
	assert.Equal(t, domain.KindRealEstate, captured.Kind)
	assert.Equal(t, domain.DefaultSimilarLimit, captured.Limit)
	require.NotNil(t, captured.PriceMin)
	assert.InDelta(t, 800, *captured.PriceMin, 1e-9)
}

func TestGetSimilarListingsMissingReference(t *testing.T) {
	repo := &fakeListingRepo{
		getDetails: func(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
			return nil, &domain.NotFoundError{Resource: "listing", ID: listingID}
		},
	}
	uc := NewGetSimilarListingsUseCase(repo)

	_, err := uc.Execute(context.Background(), 404, 6)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetSimilarListingsEmptyCandidateSetIsNotAnError(t *testing.T) {
	repo := &fakeListingRepo{
		getDetails: func(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
			return &domain.ListingDetails{
				Listing: domain.Listing{ID: listingID, CategoryKind: domain.KindBid},
				Bid:     &domain.BidAttributes{},
			}, nil
		},
		findSimilar: func(ctx context.Context, q domain.SimilarityQuery) ([]domain.ListingCard, error) {
			return []domain.ListingCard{}, nil
		},
	}
	uc := NewGetSimilarListingsUseCase(repo)

	cards, err := uc.Execute(context.Background(), 100, 6)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
