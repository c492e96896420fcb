package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
	"github.com/pkordes/footprint/backend/internal/repo"
)

// MaxBilledUnits is the largest bill accepted, in kWh.
const MaxBilledUnits = 10_000_000

// EnergyService records electricity bills.
type EnergyService struct {
	repo repo.EnergyRepo
	now  func() time.Time
}

// NewEnergyService constructs an EnergyService backed by the provided EnergyRepo.
func NewEnergyService(r repo.EnergyRepo) *EnergyService {
	return &EnergyService{repo: r, now: time.Now}
}

// Create validates the reading, resolves its region (unknown → global),
// computes EmissionsKg and persists it.
func (s *EnergyService) Create(ctx context.Context, reading domain.EnergyReading) (domain.EnergyReading, error) {
	reading.AccountName = strings.TrimSpace(reading.AccountName)
	reading.Region = domain.ParseRegion(string(reading.Region))

	if err := validateQuantity("billed_units_kwh", reading.BilledUnitsKWh, MaxBilledUnits); err != nil {
		return domain.EnergyReading{}, fmt.Errorf("service.EnergyService.Create: %w", err)
	}
	if reading.BillDate != nil {
		if err := validateNotFuture("bill_date", *reading.BillDate, s.now()); err != nil {
			return domain.EnergyReading{}, fmt.Errorf("service.EnergyService.Create: %w", err)
		}
	}

	reading.EmissionsKg = emissions.EnergyEmissions(reading.BilledUnitsKWh, reading.Region)

	result, err := s.repo.Create(ctx, reading)
	if err != nil {
		return domain.EnergyReading{}, fmt.Errorf("service.EnergyService.Create: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of readings and the total count.
func (s *EnergyService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.EnergyReading, int64, error) {
	readings, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EnergyService.ListPaged: %w", err)
	}
	if readings == nil {
		readings = []domain.EnergyReading{}
	}
	return readings, total, nil
}
