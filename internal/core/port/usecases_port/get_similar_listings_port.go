package usecases_port

import (
	"context"

	"search-service/internal/core/domain"
)

type GetSimilarListingsUseCase interface {
	Execute(ctx context.Context, listingID int64, limit int) ([]domain.ListingCard, error)
}
