package rest

import (
	"net/http"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/port"
	"search-service/internal/core/port/usecases_port"
)

type SearchHandler struct {
	searchUC usecases_port.SearchListingsUseCase
}

func NewSearchHandler(searchUC usecases_port.SearchListingsUseCase) *SearchHandler {
	return &SearchHandler{searchUC: searchUC}
}

// Search handles GET /api/v1/search and /api/v1/search/advanced. The category
// scope comes from the category_id parameter; without one, only base facets
// compile.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, usecases_port.SearchScope{})
}

// Scoped pins the category kind (and optionally the purpose) server-side for
// the per-vertical routes.
func (h *SearchHandler) Scoped(kind domain.CategoryKind, purpose string) http.HandlerFunc {
	scope := usecases_port.SearchScope{Kind: &kind, Purpose: purpose}
	return func(w http.ResponseWriter, r *http.Request) {
		h.execute(w, r, scope)
	}
}

func (h *SearchHandler) execute(w http.ResponseWriter, r *http.Request, scope usecases_port.SearchScope) {
	logger := contextkeys.LoggerFromContext(r.Context())

	result, err := h.searchUC.Execute(r.Context(), r.URL.Query(), scope)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	cards := make([]ListingCardResponse, len(result.Listings))
	for i, card := range result.Listings {
		cards[i] = toCardResponse(card)
	}

	logger.Debug("Search page rendered", port.Fields{
		"total":         result.TotalCount,
		"items_on_page": len(cards),
	})

	WriteSuccess(w, http.StatusOK, cards, &PaginationMeta{
		Total:       result.TotalCount,
		PerPage:     result.PerPage,
		CurrentPage: result.CurrentPage,
		LastPage:    result.LastPage(),
	})
}

func toCardResponse(card domain.ListingCard) ListingCardResponse {
	return ListingCardResponse{
		ID:               card.ID,
		Title:            card.Title,
		Price:            card.Price,
		PriceType:        card.PriceType,
		Currency:         card.Currency,
		FormattedPrice:   card.FormattedPrice,
		Purpose:          card.Purpose,
		City:             card.City,
		Area:             card.Area,
		Latitude:         card.Latitude,
		Longitude:        card.Longitude,
		CategoryLabel:    card.CategoryLabel,
		SubcategoryLabel: card.SubcategoryLabel,
		PrimaryImageURL:  card.PrimaryImageURL,
		DistanceKm:       card.DistanceKm,
		CreatedAt:        card.CreatedAt,
	}
}
