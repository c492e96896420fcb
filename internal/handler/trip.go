package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// CreateTripRequest is the body of POST /trips. Emissions are always
// computed server-side, so the request carries none.
type CreateTripRequest struct {
	From        string              `json:"from" validate:"required,max=256"`
	To          string              `json:"to" validate:"required,max=256"`
	DistanceKm  *float64            `json:"distance_km" validate:"required,gte=0,lte=100000"`
	Mode        string              `json:"mode" validate:"required,max=64"`
	OccurredAt  *time.Time          `json:"occurred_at"`
	Origin      *CoordinatesRequest `json:"origin"`
	Destination *CoordinatesRequest `json:"destination"`
}

// CoordinatesRequest is a WGS84 point.
type CoordinatesRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(body))
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[domain.Trip]{
		Data:       trips,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a validated CreateTripRequest into a domain.Trip.
func requestToTrip(body CreateTripRequest) domain.Trip {
	t := domain.Trip{
		From:        body.From,
		To:          body.To,
		DistanceKm:  *body.DistanceKm,
		Mode:        domain.TransportMode(body.Mode),
		Origin:      toCoordinates(body.Origin),
		Destination: toCoordinates(body.Destination),
	}
	if body.OccurredAt != nil {
		t.CreatedAt = *body.OccurredAt
	}
	return t
}

func toCoordinates(c *CoordinatesRequest) *domain.Coordinates {
	if c == nil {
		return nil
	}
	return &domain.Coordinates{Lat: c.Lat, Lng: c.Lng}
}
