// Package service contains the business logic for the Footprint API.
// Services validate inputs, compute per-record emissions, and orchestrate
// repo calls. No SQL lives here — services depend on repo interfaces.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
	"github.com/pkordes/footprint/backend/internal/repo"
)

// clockSkew is how far into the future a client-supplied timestamp may be.
const clockSkew = 5 * time.Minute

// MaxDistanceKm is the longest trip accepted.
const MaxDistanceKm = 100_000

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r, now: time.Now}
}

// Create validates the trip, normalizes its mode, computes EmissionsKg from
// the canonical rate table, and persists it. Any EmissionsKg supplied by the
// caller is ignored.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.From = strings.TrimSpace(trip.From)
	trip.To = strings.TrimSpace(trip.To)
	trip.Mode = domain.ParseTransportMode(string(trip.Mode))

	if err := validateTrip(trip, s.now()); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	trip.EmissionsKg = emissions.TripEmissions(trip.DistanceKm, trip.Mode)

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips and the total count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// validateTrip enforces:
//   - From and To are non-empty.
//   - Mode is non-empty (unknown modes are allowed and use the default rate).
//   - DistanceKm is finite, not negative and at most MaxDistanceKm.
//   - Coordinates, when present, are valid WGS84.
//   - CreatedAt, when supplied, is not in the future.
func validateTrip(trip domain.Trip, now time.Time) error {
	if trip.From == "" {
		return fmt.Errorf("%w: from is required", domain.ErrValidation)
	}
	if trip.To == "" {
		return fmt.Errorf("%w: to is required", domain.ErrValidation)
	}
	if trip.Mode == "" {
		return fmt.Errorf("%w: mode is required", domain.ErrValidation)
	}
	if err := validateQuantity("distance_km", trip.DistanceKm, MaxDistanceKm); err != nil {
		return err
	}
	endpoints := []struct {
		name string
		c    *domain.Coordinates
	}{
		{"origin", trip.Origin},
		{"destination", trip.Destination},
	}
	for _, e := range endpoints {
		if e.c != nil && (math.Abs(e.c.Lat) > 90 || math.Abs(e.c.Lng) > 180) {
			return fmt.Errorf("%w: %s coordinates out of range", domain.ErrValidation, e.name)
		}
	}
	return validateNotFuture("occurred_at", trip.CreatedAt, now)
}

// validateQuantity rejects NaN, infinite, negative and amounts above limit.
func validateQuantity(field string, v, limit float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", domain.ErrValidation, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, field)
	}
	if v > limit {
		return fmt.Errorf("%w: %s must be at most %g", domain.ErrValidation, field, limit)
	}
	return nil
}

// validateNotFuture allows the zero time (meaning "now") and small clock skew.
func validateNotFuture(field string, t, now time.Time) error {
	if !t.IsZero() && t.After(now.Add(clockSkew)) {
		return fmt.Errorf("%w: %s must not be in the future", domain.ErrValidation, field)
	}
	return nil
}
