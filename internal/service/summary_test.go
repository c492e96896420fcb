package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
	"github.com/pkordes/footprint/backend/internal/service"
)

// Wednesday 2025-06-11 15:00 UTC.
var summaryNow = time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)

type fixtures struct {
	trips    []domain.Trip
	products []domain.ProductScan
	readings []domain.EnergyReading
}

// newSummaryService returns a service over in-memory records that honours
// ListBetween's [from, to) contract, and records the last window queried.
func newSummaryService(f fixtures, gotWindow *emissions.Window) *service.SummaryService {
	trips := &mockTripRepo{
		listBetween: func(_ context.Context, from, to time.Time) ([]domain.Trip, error) {
			if gotWindow != nil {
				*gotWindow = emissions.Window{Start: from, End: to}
			}
			var out []domain.Trip
			for _, t := range f.trips {
				if !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
					out = append(out, t)
				}
			}
			return out, nil
		},
	}
	products := &mockProductRepo{
		listBetween: func(_ context.Context, from, to time.Time) ([]domain.ProductScan, error) {
			var out []domain.ProductScan
			for _, p := range f.products {
				if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
					out = append(out, p)
				}
			}
			return out, nil
		},
	}
	energy := &mockEnergyRepo{
		listBetween: func(_ context.Context, from, to time.Time) ([]domain.EnergyReading, error) {
			var out []domain.EnergyReading
			for _, r := range f.readings {
				if !r.CreatedAt.Before(from) && r.CreatedAt.Before(to) {
					out = append(out, r)
				}
			}
			return out, nil
		},
	}

	svc := service.NewSummaryService(trips, products, energy, time.UTC)
	svc.SetClock(func() time.Time { return summaryNow })
	return svc
}

func at(hour int, daysAgo int) time.Time {
	d := summaryNow.AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func standardFixtures() fixtures {
	return fixtures{
		trips: []domain.Trip{
			{From: "A", To: "B", Mode: domain.ModeCar, DistanceKm: 10, EmissionsKg: 1.2, CreatedAt: at(8, 0)},
			{From: "B", To: "A", Mode: domain.ModeTrain, DistanceKm: 100, EmissionsKg: 3, CreatedAt: at(9, 0)},
			{From: "A", To: "C", Mode: domain.ModeCar, DistanceKm: 50, EmissionsKg: 6, CreatedAt: at(9, 1)},
		},
		products: []domain.ProductScan{
			{Barcode: "1", Name: "Milk", CarbonFootprint: domain.ParseCarbonValue("2.5"), CreatedAt: at(10, 0)},
			{Barcode: "2", Name: "Bread", CarbonFootprint: domain.ParseCarbonValue("N/A"), CreatedAt: at(11, 0)},
		},
		readings: []domain.EnergyReading{
			{Region: domain.RegionIndia, BilledUnitsKWh: 10, EmissionsKg: 8.2, CreatedAt: at(12, 0)},
		},
	}
}

// ---- Summarize tests -------------------------------------------------------

func TestSummaryService_Summarize_Today(t *testing.T) {
	var w emissions.Window
	svc := newSummaryService(standardFixtures(), &w)

	got, err := svc.Summarize(context.Background(), emissions.PeriodDay, nil)

	require.NoError(t, err)
	assert.Equal(t, at(0, 0), w.Start)
	assert.Equal(t, summaryNow, w.End)
	assert.InDelta(t, 4.2, got.Value(domain.CategoryTravel), 1e-9)
	assert.InDelta(t, 2.5, got.Value(domain.CategoryFood), 1e-9)
	assert.InDelta(t, 8.2, got.Value(domain.CategoryEnergy), 1e-9)
	assert.InDelta(t, 14.9, got.Total, 1e-9)
	assert.Equal(t, domain.CategoryEnergy, got.Dominant())
}

func TestSummaryService_Summarize_BreakdownOrder(t *testing.T) {
	svc := newSummaryService(standardFixtures(), nil)

	got, err := svc.Summarize(context.Background(), emissions.PeriodDay, nil)

	require.NoError(t, err)
	require.Len(t, got.Breakdown, 3)
	assert.Equal(t, domain.CategoryTravel, got.Breakdown[0].Category)
	assert.Equal(t, domain.CategoryFood, got.Breakdown[1].Category)
	assert.Equal(t, domain.CategoryEnergy, got.Breakdown[2].Category)
	assert.Equal(t, 2, got.Breakdown[1].Count)
}

func TestSummaryService_Summarize_Week(t *testing.T) {
	var w emissions.Window
	svc := newSummaryService(standardFixtures(), &w)

	got, err := svc.Summarize(context.Background(), emissions.PeriodWeek, nil)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), w.Start)
	assert.InDelta(t, 10.2, got.Value(domain.CategoryTravel), 1e-9)
}

func TestSummaryService_Summarize_PastDate(t *testing.T) {
	var w emissions.Window
	svc := newSummaryService(standardFixtures(), &w)
	yesterday := at(0, 1)

	got, err := svc.Summarize(context.Background(), emissions.PeriodDay, &yesterday)

	require.NoError(t, err)
	assert.Equal(t, at(0, 1), w.Start)
	assert.Equal(t, at(0, 0), w.End)
	assert.InDelta(t, 6.0, got.Total, 1e-9)
}

func TestSummaryService_Summarize_NoRecords(t *testing.T) {
	svc := newSummaryService(fixtures{}, nil)

	got, err := svc.Summarize(context.Background(), emissions.PeriodMonth, nil)

	require.NoError(t, err)
	assert.Zero(t, got.Total)
	assert.Len(t, got.Breakdown, 3)
	assert.Equal(t, "", got.Dominant())
}

func TestSummaryService_Summarize_FutureDate(t *testing.T) {
	svc := newSummaryService(standardFixtures(), nil)
	tomorrow := summaryNow.AddDate(0, 0, 1)

	_, err := svc.Summarize(context.Background(), emissions.PeriodDay, &tomorrow)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummaryService_Summarize_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	svc := service.NewSummaryService(
		&mockTripRepo{listBetween: func(_ context.Context, _, _ time.Time) ([]domain.Trip, error) {
			return nil, repoErr
		}},
		&mockProductRepo{},
		&mockEnergyRepo{},
		time.UTC,
	)

	_, err := svc.Summarize(context.Background(), emissions.PeriodDay, nil)

	assert.ErrorIs(t, err, repoErr)
}

func TestSummaryService_Summarize_Idempotent(t *testing.T) {
	svc := newSummaryService(standardFixtures(), nil)

	a, err := svc.Summarize(context.Background(), emissions.PeriodWeek, nil)
	require.NoError(t, err)
	b, err := svc.Summarize(context.Background(), emissions.PeriodWeek, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// ---- Travel tests ----------------------------------------------------------

func TestSummaryService_Travel(t *testing.T) {
	svc := newSummaryService(standardFixtures(), nil)

	got, err := svc.Travel(context.Background(), emissions.PeriodDay, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, got.TripCount)
	assert.InDelta(t, 110.0, got.TotalDistanceKm, 1e-9)
	assert.InDelta(t, 4.2, got.TotalEmissions, 1e-9)
	require.Len(t, got.ByMode, 2)
	assert.Equal(t, domain.ModeTrain, got.ByMode[0].Mode)
}

// ---- Window tests ----------------------------------------------------------

func TestSummaryService_Window_DateUsesConfiguredZone(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	svc := service.NewSummaryService(&mockTripRepo{}, &mockProductRepo{}, &mockEnergyRepo{}, loc)
	svc.SetClock(func() time.Time { return summaryNow })
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	w, err := svc.Window(emissions.PeriodDay, &date)

	require.NoError(t, err)
	assert.True(t, w.Start.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, loc)))
	assert.True(t, w.End.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, loc)))
}
