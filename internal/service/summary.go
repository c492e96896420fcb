package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
	"github.com/pkordes/footprint/backend/internal/repo"
)

// SummaryService derives emission totals from stored records on demand.
type SummaryService struct {
	trips    repo.TripRepo
	products repo.ProductRepo
	energy   repo.EnergyRepo
	loc      *time.Location
	now      func() time.Time
}

// NewSummaryService constructs a SummaryService. Windows are computed in loc;
// nil means time.Local.
func NewSummaryService(trips repo.TripRepo, products repo.ProductRepo, energy repo.EnergyRepo, loc *time.Location) *SummaryService {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryService{trips: trips, products: products, energy: energy, loc: loc, now: time.Now}
}

// Window resolves the period containing date (today when nil), with the end
// capped at the current time.
// Returns domain.ErrValidation if date lies after today.
func (s *SummaryService) Window(period emissions.Period, date *time.Time) (emissions.Window, error) {
	now := s.now().In(s.loc)
	anchor := now
	if date != nil {
		anchor = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
		if anchor.After(now) {
			return emissions.Window{}, fmt.Errorf("%w: date must not be in the future", domain.ErrValidation)
		}
	}
	return emissions.WindowFor(period, anchor, now, s.loc), nil
}

// Summarize returns the travel, food and energy totals for the window.
func (s *SummaryService) Summarize(ctx context.Context, period emissions.Period, date *time.Time) (domain.Summary, error) {
	w, err := s.Window(period, date)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.SummaryService.Summarize: %w", err)
	}

	trips, products, readings, err := s.load(ctx, w)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.SummaryService.Summarize: %w", err)
	}

	return emissions.Aggregate(w,
		emissions.TravelCategory(trips),
		emissions.FoodCategory(products),
		emissions.EnergyCategory(readings),
	), nil
}

// Travel returns distance and emissions by transport mode for the window.
func (s *SummaryService) Travel(ctx context.Context, period emissions.Period, date *time.Time) (domain.TravelSummary, error) {
	w, err := s.Window(period, date)
	if err != nil {
		return domain.TravelSummary{}, fmt.Errorf("service.SummaryService.Travel: %w", err)
	}

	trips, err := s.trips.ListBetween(ctx, w.Start, w.End)
	if err != nil {
		return domain.TravelSummary{}, fmt.Errorf("service.SummaryService.Travel: %w", err)
	}
	return emissions.SummarizeTravel(w, trips), nil
}

func (s *SummaryService) load(ctx context.Context, w emissions.Window) ([]domain.Trip, []domain.ProductScan, []domain.EnergyReading, error) {
	trips, err := s.trips.ListBetween(ctx, w.Start, w.End)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load trips: %w", err)
	}
	products, err := s.products.ListBetween(ctx, w.Start, w.End)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load products: %w", err)
	}
	readings, err := s.energy.ListBetween(ctx, w.Start, w.End)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load energy: %w", err)
	}
	return trips, products, readings, nil
}
