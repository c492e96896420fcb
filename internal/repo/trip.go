// Package repo contains all database access logic for the Footprint API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Trips are append-only: there is no update or delete.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record. A zero
	// CreatedAt is replaced by the database clock.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// ListBetween returns trips with created_at in [from, to), oldest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, origin, destination, distance_km, mode, emissions_kg,
	origin_lat, origin_lng, destination_lat, destination_lng, created_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (origin, destination, distance_km, mode, emissions_kg,
		                   origin_lat, origin_lng, destination_lat, destination_lng, created_at)
		VALUES (@origin, @destination, @distance_km, @mode, @emissions_kg,
		        @origin_lat, @origin_lng, @destination_lat, @destination_lng,
		        COALESCE(@created_at, now()))
		RETURNING ` + tripColumns

	oLat, oLng := splitCoordinates(trip.Origin)
	dLat, dLng := splitCoordinates(trip.Destination)
	args := pgx.NamedArgs{
		"origin":          trip.From,
		"destination":     trip.To,
		"distance_km":     trip.DistanceKm,
		"mode":            string(trip.Mode),
		"emissions_kg":    trip.EmissionsKg,
		"origin_lat":      oLat, // nil becomes NULL
		"origin_lng":      oLng,
		"destination_lat": dLat,
		"destination_lng": dLng,
		"created_at":      nullableTime(trip.CreatedAt),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips ordered by created_at descending.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips`
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	trips, err := r.collect(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

// ListBetween returns trips created inside [from, to) ordered by created_at.
func (r *pgTripRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE created_at >= @from AND created_at < @to
		ORDER BY created_at, id`

	trips, err := r.collect(ctx, q, pgx.NamedArgs{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListBetween: %w", err)
	}
	return trips, nil
}

// collect runs q and scans every row. Always returns a non-nil slice on success.
func (r *pgTripRepo) collect(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                      domain.Trip
		id                     pgtype.UUID
		mode                   string
		oLat, oLng, dLat, dLng *float64
	)

	err := s.Scan(&id, &t.From, &t.To, &t.DistanceKm, &mode, &t.EmissionsKg,
		&oLat, &oLng, &dLat, &dLng, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Mode = domain.TransportMode(mode)
	t.Origin = joinCoordinates(oLat, oLng)
	t.Destination = joinCoordinates(dLat, dLng)
	return t, nil
}

// splitCoordinates returns nil pointers for a nil pair so both columns are NULL.
func splitCoordinates(c *domain.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lng
}

// joinCoordinates rebuilds a pair only when both columns are set.
func joinCoordinates(lat, lng *float64) *domain.Coordinates {
	if lat == nil || lng == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *lat, Lng: *lng}
}

// nullableTime maps the zero time to NULL so the column default applies.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
