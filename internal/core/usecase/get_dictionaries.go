package usecase

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/port"
)

var dictionaryCaser = cases.Title(language.English)

// DisplayLabel turns a system name like "real_estate" into "Real Estate".
func DisplayLabel(systemName string) string {
	return dictionaryCaser.String(strings.ReplaceAll(systemName, "_", " "))
}

type GetDictionariesUseCase struct {
	filters port.FilterRepositoryPort
}

func NewGetDictionariesUseCase(filters port.FilterRepositoryPort) *GetDictionariesUseCase {
	return &GetDictionariesUseCase{filters: filters}
}

// Execute returns the requested dictionaries, or all of them when names is
// empty. Unknown names are ignored.
func (uc *GetDictionariesUseCase) Execute(ctx context.Context, names []string) (map[string][]port.DictionaryItem, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	if len(names) == 0 {
		names = []string{"categories", "purposes", "statuses", "price_types"}
	}

	result := make(map[string][]port.DictionaryItem, len(names))
	for _, name := range names {
		switch name {
		case "categories":
			categories, err := uc.filters.GetCategories(ctx)
			if err != nil {
				logger.Error("Failed to load categories dictionary", err, nil)
				return nil, err
			}
			items := make([]port.DictionaryItem, 0, len(categories))
			for _, c := range categories {
				items = append(items, port.DictionaryItem{SystemName: c.Slug, DisplayName: c.Name})
			}
			result["categories"] = items
		case "purposes":
			result["purposes"] = staticDictionary(domain.Purposes)
		case "statuses":
			result["statuses"] = staticDictionary(domain.Statuses)
		case "price_types":
			result["price_types"] = staticDictionary(domain.PriceTypes)
		}
	}
	return result, nil
}

func staticDictionary(values []string) []port.DictionaryItem {
	items := make([]port.DictionaryItem, 0, len(values))
	for _, v := range values {
		items = append(items, port.DictionaryItem{SystemName: v, DisplayName: DisplayLabel(v)})
	}
	return items
}
