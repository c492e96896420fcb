package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// EnergyRepo defines the persistence operations for electricity readings.
type EnergyRepo interface {
	// Create inserts a reading and returns the persisted record.
	Create(ctx context.Context, r domain.EnergyReading) (domain.EnergyReading, error)

	// ListPaged returns one page of readings, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.EnergyReading, int64, error)

	// ListBetween returns readings with created_at in [from, to), oldest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.EnergyReading, error)
}

type pgEnergyRepo struct {
	db db
}

// NewEnergyRepo constructs an EnergyRepo backed by the provided db connection.
func NewEnergyRepo(db db) EnergyRepo {
	return &pgEnergyRepo{db: db}
}

const energyColumns = `id, account_name, bill_date, billed_units_kwh, region, emissions_kg, created_at`

func (r *pgEnergyRepo) Create(ctx context.Context, reading domain.EnergyReading) (domain.EnergyReading, error) {
	const q = `
		INSERT INTO energy_readings (account_name, bill_date, billed_units_kwh, region, emissions_kg, created_at)
		VALUES (@account_name, @bill_date, @billed_units_kwh, @region, @emissions_kg, COALESCE(@created_at, now()))
		RETURNING ` + energyColumns

	args := pgx.NamedArgs{
		"account_name":     reading.AccountName,
		"bill_date":        reading.BillDate,
		"billed_units_kwh": reading.BilledUnitsKWh,
		"region":           string(reading.Region),
		"emissions_kg":     reading.EmissionsKg,
		"created_at":       nullableTime(reading.CreatedAt),
	}

	result, err := scanEnergy(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.EnergyReading{}, fmt.Errorf("repo.EnergyRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEnergyRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.EnergyReading, int64, error) {
	const countQ = `SELECT count(*) FROM energy_readings`
	const q = `
		SELECT ` + energyColumns + `
		FROM energy_readings
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.EnergyRepo.ListPaged: count: %w", err)
	}

	readings, err := r.collect(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EnergyRepo.ListPaged: %w", err)
	}
	return readings, total, nil
}

func (r *pgEnergyRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.EnergyReading, error) {
	const q = `
		SELECT ` + energyColumns + `
		FROM energy_readings
		WHERE created_at >= @from AND created_at < @to
		ORDER BY created_at, id`

	readings, err := r.collect(ctx, q, pgx.NamedArgs{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.EnergyRepo.ListBetween: %w", err)
	}
	return readings, nil
}

func (r *pgEnergyRepo) collect(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.EnergyReading, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []domain.EnergyReading{}
	for rows.Next() {
		e, err := scanEnergy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		readings = append(readings, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return readings, nil
}

func scanEnergy(s scanner) (domain.EnergyReading, error) {
	var (
		e        domain.EnergyReading
		id       pgtype.UUID
		billDate pgtype.Date
		region   string
	)

	err := s.Scan(&id, &e.AccountName, &billDate, &e.BilledUnitsKWh, &region, &e.EmissionsKg, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EnergyReading{}, domain.ErrNotFound
		}
		return domain.EnergyReading{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.Region = domain.Region(region)
	if billDate.Valid {
		d := billDate.Time
		e.BillDate = &d
	}
	return e, nil
}
