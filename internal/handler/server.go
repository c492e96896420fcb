// Package handler implements the HTTP handlers for the Footprint API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, summary.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// ProductServicer defines the operations the product handlers depend on.
type ProductServicer interface {
	Save(ctx context.Context, p domain.ProductScan) (domain.ProductScan, bool, error)
	GetByBarcode(ctx context.Context, barcode string) (domain.ProductScan, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ProductScan, int64, error)
}

// EnergyServicer defines the operations the energy handlers depend on.
type EnergyServicer interface {
	Create(ctx context.Context, r domain.EnergyReading) (domain.EnergyReading, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.EnergyReading, int64, error)
}

// SummaryServicer defines the operations the summary handlers depend on.
type SummaryServicer interface {
	Summarize(ctx context.Context, period emissions.Period, date *time.Time) (domain.Summary, error)
	Travel(ctx context.Context, period emissions.Period, date *time.Time) (domain.TravelSummary, error)
}

// ExportServicer defines the operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, period emissions.Period, date *time.Time) ([]domain.LedgerRow, error)
}

// Services bundles the Server's dependencies. Nil fields are allowed in
// tests that only exercise a subset of routes.
type Services struct {
	Trips    TripServicer
	Products ProductServicer
	Energy   EnergyServicer
	Summary  SummaryServicer
	Export   ExportServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips    TripServicer
	products ProductServicer
	energy   EnergyServicer
	summary  SummaryServicer
	export   ExportServicer
	log      *slog.Logger
}

// NewServer constructs the Server. A nil logger means slog.Default().
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:    svc.Trips,
		products: svc.Products,
		energy:   svc.Energy,
		summary:  svc.Summary,
		export:   svc.Export,
		log:      log,
	}
}

// Routes returns a chi router with every API endpoint mounted.
// Cross-cutting middleware (request ID, logging, CORS, body limit) is
// applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Get("/{id}", s.GetTrip)
	})
	r.Route("/products", func(r chi.Router) {
		r.Post("/", s.SaveProduct)
		r.Get("/", s.ListProducts)
		r.Get("/{barcode}", s.GetProduct)
	})
	r.Route("/energy", func(r chi.Router) {
		r.Post("/", s.CreateEnergyReading)
		r.Get("/", s.ListEnergyReadings)
	})

	r.Get("/summary", s.GetSummary)
	r.Get("/summary/travel", s.GetTravelSummary)
	r.Get("/export", s.GetExport)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
