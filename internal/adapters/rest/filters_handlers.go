package rest

import (
	"net/http"
	"strconv"
	"strings"

	"search-service/internal/contextkeys"
	"search-service/internal/core/port/usecases_port"
)

type FilterHandler struct {
	optionsUC      usecases_port.GetFilterOptionsUseCase
	dictionariesUC usecases_port.GetDictionariesUseCase
}

func NewFilterHandler(optionsUC usecases_port.GetFilterOptionsUseCase,
	dictionariesUC usecases_port.GetDictionariesUseCase) *FilterHandler {
	return &FilterHandler{
		optionsUC:      optionsUC,
		dictionariesUC: dictionariesUC,
	}
}

// GetFilterOptions handles GET /api/v1/search/filters. It returns the facet
// menu for one category: observed enum values and min/max ranges.
func (h *FilterHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	categoryID, err := strconv.ParseInt(query.Get("category_id"), 10, 64)
	if err != nil || categoryID < 1 {
		WriteValidationError(w, map[string]string{"category_id": "must be a positive integer"})
		return
	}

	var subcategoryID *int64
	if raw := query.Get("subcategory_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			WriteValidationError(w, map[string]string{"subcategory_id": "must be a positive integer"})
			return
		}
		subcategoryID = &id
	}

	result, err := h.optionsUC.Execute(r.Context(), categoryID, subcategoryID, query.Get("city"))
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	response := FilterOptionsResponse{
		Count:   result.Count,
		Options: make(map[string]FilterOptionResponse, len(result.Options)),
	}
	for key, opt := range result.Options {
		response.Options[key] = FilterOptionResponse{
			Options: opt.Options,
			Min:     opt.Min,
			Max:     opt.Max,
		}
	}

	WriteSuccess(w, http.StatusOK, response, nil)
}

// GetDictionaries handles GET /api/v1/dictionaries?names=categories,purposes.
func (h *FilterHandler) GetDictionaries(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var names []string
	if namesStr := r.URL.Query().Get("names"); namesStr != "" {
		names = strings.Split(namesStr, ",")
	}

	dictionaries, err := h.dictionariesUC.Execute(r.Context(), names)
	if err != nil {
		WriteDomainError(w, logger, err)
		return
	}

	response := make(map[string][]DictionaryItemResponse, len(dictionaries))
	for key, items := range dictionaries {
		for _, item := range items {
			response[key] = append(response[key], DictionaryItemResponse{
				SystemName:  item.SystemName,
				DisplayName: item.DisplayName,
			})
		}
	}

	WriteSuccess(w, http.StatusOK, response, nil)
}
