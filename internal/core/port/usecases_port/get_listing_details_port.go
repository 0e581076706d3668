package usecases_port

import (
	"context"

	"search-service/internal/core/domain"
)

type GetListingDetailsUseCase interface {
	Execute(ctx context.Context, listingID int64) (*domain.ListingDetails, error)
}
