package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/repo"
	"github.com/pkordes/footprint/backend/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged   func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	listBetween func(ctx context.Context, from, to time.Time) ([]domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Trip, error) {
	return m.listBetween(ctx, from, to)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		From:       "Home",
		To:         "Office",
		DistanceKm: 10,
		Mode:       domain.ModeCar,
	}
}

func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_ComputesEmissions(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.InDelta(t, 1.2, got.EmissionsKg, 1e-9)
}

func TestTripService_Create_IgnoresClientEmissions(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Mode = domain.ModeBus
	trip.DistanceKm = 20
	trip.EmissionsKg = 999

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.EmissionsKg, 1e-9)
}

func TestTripService_Create_NormalizesModeAlias(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Mode = " plane "
	trip.DistanceKm = 100

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, domain.ModeAirplane, got.Mode)
	assert.InDelta(t, 25.0, got.EmissionsKg, 1e-9)
}

func TestTripService_Create_UnknownModeUsesDefaultRate(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Mode = "Hovercraft"

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, domain.TransportMode("Hovercraft"), got.Mode)
	assert.InDelta(t, 1.0, got.EmissionsKg, 1e-9)
}

func TestTripService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Trip)
	}{
		{"blank from", func(tr *domain.Trip) { tr.From = "   " }},
		{"blank to", func(tr *domain.Trip) { tr.To = "" }},
		{"blank mode", func(tr *domain.Trip) { tr.Mode = " " }},
		{"negative distance", func(tr *domain.Trip) { tr.DistanceKm = -1 }},
		{"distance above limit", func(tr *domain.Trip) { tr.DistanceKm = service.MaxDistanceKm + 1 }},
		{"distance near float64 max", func(tr *domain.Trip) { tr.DistanceKm = 1e308 }},
		{"latitude out of range", func(tr *domain.Trip) { tr.Origin = &domain.Coordinates{Lat: 91, Lng: 0} }},
		{"longitude out of range", func(tr *domain.Trip) { tr.Destination = &domain.Coordinates{Lat: 0, Lng: -181} }},
		{"future timestamp", func(tr *domain.Trip) { tr.CreatedAt = time.Now().Add(24 * time.Hour) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewTripService(echoTripRepo())
			trip := validTrip()
			tc.mutate(&trip)

			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_BothCoordinatesInvalid_ReportsOrigin(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())
	trip := validTrip()
	trip.Origin = &domain.Coordinates{Lat: 91, Lng: 0}
	trip.Destination = &domain.Coordinates{Lat: 0, Lng: 181}

	for i := 0; i < 20; i++ {
		_, err := svc.Create(context.Background(), trip)

		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "origin coordinates out of range")
	}
}

func TestTripService_Create_MaxDistanceAllowed(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())
	trip := validTrip()
	trip.DistanceKm = service.MaxDistanceKm

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_ZeroDistanceAllowed(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.DistanceKm = 0

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Zero(t, got.EmissionsKg)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID tests ---------------------------------------------------------

func TestTripService_GetByID_Found(t *testing.T) {
	want := validTrip()
	want.ID = uuid.New()

	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return want, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.GetByID(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListPaged tests -------------------------------------------------------

func TestTripService_ListPaged(t *testing.T) {
	var gotParams domain.PaginationParams
	r := &mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotParams = p
			return []domain.Trip{validTrip(), validTrip()}, 7, nil
		},
	}
	svc := service.NewTripService(r)

	got, total, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, 2, gotParams.Page)
}

func TestTripService_ListPaged_Empty(t *testing.T) {
	r := &mockTripRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewTripService(r)

	got, _, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	// Should return an empty slice, not nil, so it encodes as [].
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
