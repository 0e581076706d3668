package usecases_port

import (
	"context"

	"search-service/internal/core/port"
)

type GetDictionariesUseCase interface {
	// Execute returns the requested dictionaries keyed by name, or all of
	// them when names is empty.
	Execute(ctx context.Context, names []string) (map[string][]port.DictionaryItem, error)
}
