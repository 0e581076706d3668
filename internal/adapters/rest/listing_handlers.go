package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/port"
	"search-service/internal/core/port/usecases_port"
)

type ListingHandler struct {
	detailsUC usecases_port.GetListingDetailsUseCase
	similarUC usecases_port.GetSimilarListingsUseCase
}

func NewListingHandler(detailsUC usecases_port.GetListingDetailsUseCase,
	similarUC usecases_port.GetSimilarListingsUseCase) *ListingHandler {
	return &ListingHandler{
		detailsUC: detailsUC,
		similarUC: similarUC,
	}
}

// GetListing handles GET /api/v1/listings/{listingID}.
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	listingID, ok := parseListingID(w, r, logger)
	if !ok {
		return
	}

	details, err := h.detailsUC.Execute(r.Context(), listingID)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toDetailsResponse(details), nil)
}

// GetSimilarListings handles GET /api/v1/listings/{listingID}/similar. An
// unknown reference is a 404; a reference with no similar listings is a
// success with an empty array.
func (h *ListingHandler) GetSimilarListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	listingID, ok := parseListingID(w, r, logger)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteValidationError(w, map[string]string{"limit": "must be a positive integer"})
			return
		}
		limit = n
	}

	cards, err := h.similarUC.Execute(r.Context(), listingID, limit)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	response := make([]ListingCardResponse, len(cards))
	for i, card := range cards {
		response[i] = toCardResponse(card)
	}
	WriteSuccess(w, http.StatusOK, response, nil)
}

func parseListingID(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (int64, bool) {
	raw := chi.URLParam(r, "listingID")
	listingID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || listingID < 1 {
		logger.Warn("Invalid listing ID format", port.Fields{"listing_id": raw})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID")
		return 0, false
	}
	return listingID, true
}

func toDetailsResponse(details *domain.ListingDetails) ListingDetailsResponse {
	l := details.Listing

	var attributes interface{}
	switch {
	case details.RealEstate != nil:
		attributes = details.RealEstate
	case details.Vehicle != nil:
		attributes = details.Vehicle
	case details.Service != nil:
		attributes = details.Service
	case details.Job != nil:
		attributes = details.Job
	case details.Bid != nil:
		attributes = details.Bid
	}

	return ListingDetailsResponse{
		ID:             l.ID,
		OwnerID:        l.OwnerID,
		Title:          l.Title,
		Description:    l.Description,
		Price:          l.Price,
		PriceType:      l.PriceType,
		Currency:       l.Currency,
		FormattedPrice: domain.FormatPrice(l.Price, l.Currency, l.PriceType),
		CategoryKind:   string(l.CategoryKind),
		Purpose:        l.Purpose,
		Status:         l.Status,
		Latitude:       l.Latitude,
		Longitude:      l.Longitude,
		City:           l.City,
		Area:           l.Area,
		ViewsCount:     l.ViewsCount,
		FavoritesCount: l.FavoritesCount,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
		Attributes:     attributes,
	}
}
