package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/repo"
	"github.com/pkordes/footprint/backend/testutil"
)

// newTestRepos returns repos that share one rolled-back transaction, so a
// test can mix trips, products and readings without cleanup SQL.
func newTestRepos(t *testing.T) (repo.TripRepo, repo.ProductRepo, repo.EnergyRepo) {
	t.Helper()
	tx := testutil.NewTx(t)
	return repo.NewTripRepo(tx), repo.NewProductRepo(tx), repo.NewEnergyRepo(tx)
}

// historic is far enough in the past that no real data lands near it, so
// window queries only see rows created by the test itself.
var historic = time.Date(2001, 3, 10, 12, 0, 0, 0, time.UTC)

func tripFixture() domain.Trip {
	return domain.Trip{
		From:        "Home",
		To:          "Office",
		DistanceKm:  10,
		Mode:        domain.ModeCar,
		EmissionsKg: 1.2,
		Origin:      &domain.Coordinates{Lat: 52.52, Lng: 13.405},
		Destination: &domain.Coordinates{Lat: 52.5, Lng: 13.37},
	}
}

func TestTripRepo_Create(t *testing.T) {
	r, _, _ := newTestRepos(t)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.From, got.From)
	assert.Equal(t, input.To, got.To)
	assert.Equal(t, input.DistanceKm, got.DistanceKm)
	assert.Equal(t, input.Mode, got.Mode)
	assert.Equal(t, input.EmissionsKg, got.EmissionsKg)
	assert.Equal(t, input.Origin, got.Origin)
	assert.Equal(t, input.Destination, got.Destination)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_Create_NoCoordinates(t *testing.T) {
	r, _, _ := newTestRepos(t)

	input := tripFixture()
	input.Origin, input.Destination = nil, nil

	got, err := r.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Nil(t, got.Origin)
	assert.Nil(t, got.Destination)
}

func TestTripRepo_Create_UnknownModeStoredVerbatim(t *testing.T) {
	r, _, _ := newTestRepos(t)

	input := tripFixture()
	input.Mode = domain.TransportMode("Gondola")

	got, err := r.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, domain.TransportMode("Gondola"), got.Mode)
}

func TestTripRepo_Create_ExplicitCreatedAt(t *testing.T) {
	r, _, _ := newTestRepos(t)

	input := tripFixture()
	input.CreatedAt = historic

	got, err := r.Create(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(historic))
}

func TestTripRepo_GetByID(t *testing.T) {
	r, _, _ := newTestRepos(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.From, got.From)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r, _, _ := newTestRepos(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListPaged(t *testing.T) {
	r, _, _ := newTestRepos(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, tripFixture())
		require.NoError(t, err)
	}

	trips, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, trips, 2)
	assert.GreaterOrEqual(t, total, int64(3))
}

func TestTripRepo_ListBetween(t *testing.T) {
	r, _, _ := newTestRepos(t)
	ctx := context.Background()

	before := tripFixture()
	before.CreatedAt = historic.Add(-time.Hour)
	inside := tripFixture()
	inside.CreatedAt = historic
	atEnd := tripFixture()
	atEnd.CreatedAt = historic.Add(time.Hour)

	for _, tr := range []domain.Trip{before, inside, atEnd} {
		_, err := r.Create(ctx, tr)
		require.NoError(t, err)
	}

	got, err := r.ListBetween(ctx, historic.Add(-time.Minute), historic.Add(time.Hour))

	require.NoError(t, err)
	require.Len(t, got, 1, "window is [from, to)")
	assert.True(t, got[0].CreatedAt.Equal(historic))
}

func TestTripRepo_ListBetween_Empty(t *testing.T) {
	r, _, _ := newTestRepos(t)

	got, err := r.ListBetween(context.Background(), historic, historic.Add(time.Second))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
