package usecases_port

import (
	"context"
)

// FilterOption is one facet of the menu: either a list of observed values or
// an observed min/max range.
type FilterOption struct {
	Options []any
	Min     any
	Max     any
}

// FilterOptionsResult is the facet menu for one category scope.
type FilterOptionsResult struct {
	Options map[string]FilterOption
	Count   int
}

type GetFilterOptionsUseCase interface {
	Execute(ctx context.Context, categoryID int64, subcategoryID *int64, city string) (*FilterOptionsResult, error)
}
