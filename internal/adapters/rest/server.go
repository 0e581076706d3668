package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"search-service/internal/core/domain"
	core_port "search-service/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// Pinger checks store liveness for the health endpoint.
type Pinger func(ctx context.Context) error

func NewServer(port string,
	searchHandler *SearchHandler,
	listingHandler *ListingHandler,
	filterHandler *FilterHandler,
	ping Pinger,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := ping(req.Context()); err != nil {
			WriteJSONError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", searchHandler.Search)
		r.Get("/search/advanced", searchHandler.Search)
		r.Get("/search/filters", filterHandler.GetFilterOptions)

		// Category-scoped variants with the kind (and purpose, for the real
		// estate routes) pinned server-side.
		r.Get("/real-estate/rentals/search", searchHandler.Scoped(domain.KindRealEstate, domain.PurposeRent))
		r.Get("/real-estate/sales/search", searchHandler.Scoped(domain.KindRealEstate, domain.PurposeSell))
		r.Get("/real-estate/rooms/search", searchHandler.Scoped(domain.KindRealEstate, domain.PurposeOffer))
		r.Get("/real-estate/investment/search", searchHandler.Scoped(domain.KindRealEstate, domain.PurposeInvestment))
		r.Get("/vehicles/search", searchHandler.Scoped(domain.KindVehicle, ""))
		r.Get("/services/search", searchHandler.Scoped(domain.KindService, ""))
		r.Get("/jobs/search", searchHandler.Scoped(domain.KindJob, ""))
		r.Get("/bids/search", searchHandler.Scoped(domain.KindBid, ""))

		r.Get("/listings/{listingID}", listingHandler.GetListing)
		r.Get("/listings/{listingID}/similar", listingHandler.GetSimilarListings)

		r.Get("/dictionaries", filterHandler.GetDictionaries)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
