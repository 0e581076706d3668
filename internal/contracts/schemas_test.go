package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "SearchExecutedEvent/1.0.0", generateKeyFromPath("events/search-executed/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("events/malformed.json"))
}

func TestValidateSearchExecutedEvent(t *testing.T) {
	valid := []byte(`{
		"event_id": "3b241101-e2bb-4255-8caf-4136c566a962",
		"trace_id": "req-1",
		"category": "real_estate",
		"facets": ["city", "bedrooms"],
		"result_count": 14,
		"page": 1,
		"executed_at": "2026-08-28T10:00:00Z"
	}`)
	require.NoError(t, ValidateEvent("SearchExecutedEvent", "1.0.0", valid))
}

func TestValidateRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing event_id", `{"result_count": 1, "page": 1, "executed_at": "2026-08-28T10:00:00Z"}`},
		{"negative result_count", `{"event_id": "3b241101-e2bb-4255-8caf-4136c566a962", "result_count": -1, "page": 1, "executed_at": "2026-08-28T10:00:00Z"}`},
		{"zero page", `{"event_id": "3b241101-e2bb-4255-8caf-4136c566a962", "result_count": 0, "page": 0, "executed_at": "2026-08-28T10:00:00Z"}`},
		{"unknown field", `{"event_id": "3b241101-e2bb-4255-8caf-4136c566a962", "result_count": 0, "page": 1, "executed_at": "2026-08-28T10:00:00Z", "query": "villa"}`},
		{"not json", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateEvent("SearchExecutedEvent", "1.0.0", []byte(tt.body)))
		})
	}
}

func TestValidateUnknownEvent(t *testing.T) {
	err := ValidateEvent("ListingCreatedEvent", "1.0.0", []byte(`{}`))
	assert.Error(t, err)
}
