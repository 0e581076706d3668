package usecases_port

import (
	"context"
	"net/url"

	"search-service/internal/core/domain"
)

// SearchScope optionally pins the category kind and purpose server-side for
// the category-scoped routes.
type SearchScope struct {
	Kind    *domain.CategoryKind
	Purpose string
}

type SearchListingsUseCase interface {
	Execute(ctx context.Context, params url.Values, scope SearchScope) (*domain.PaginatedListings, error)
}
