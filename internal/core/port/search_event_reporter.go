package port

import (
	"context"
	"time"
)

// SearchEvent describes one executed search for the analytics/recent-search
// pipeline. It names which facets were bound, never their raw values.
type SearchEvent struct {
	EventID     string
	TraceID     string
	Category    string
	Facets      []string
	ResultCount int
	Page        int
	ExecutedAt  time.Time
}

// SearchEventReporterPort publishes search events. Implementations are
// fire-and-forget: a failed publish is logged and never fails the request.
type SearchEventReporterPort interface {
	ReportSearch(ctx context.Context, event SearchEvent) error
}
