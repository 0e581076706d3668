package port

import (
	"context"

	"search-service/internal/core/domain"
)

// ListingRepositoryPort is the read side of the listing store.
type ListingRepositoryPort interface {
	// FindWithFilters executes a compiled filter set and returns one enriched
	// page. Count and rows come from the same predicate set.
	FindWithFilters(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error)

	// GetDetails loads one listing with its category attribute record.
	// Missing or soft-deleted listings yield *domain.NotFoundError.
	GetDetails(ctx context.Context, listingID int64) (*domain.ListingDetails, error)

	// FindSimilar returns candidates for a similarity query, ordered by the
	// soft preferences and distance/recency, capped at q.Limit.
	FindSimilar(ctx context.Context, q domain.SimilarityQuery) ([]domain.ListingCard, error)

	// GetCategory resolves a category id to its taxonomy node.
	GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error)
}
