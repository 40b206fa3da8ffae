package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/zoneplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/test/helpers"
)

func TestZoneSaveAndGet(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormZoneRepository(db)
	ctx := context.Background()
	original := &planning.Zone{
		ID: "alpha", Name: "Alpha", OutputPorts: 10, InputPorts: 8,
		PortThroughput: 30, MachineSlots: 12, AreaLimit: 64,
	}

	// Act
	err := repo.SaveZone(ctx, original)
	require.NoError(t, err)
	loaded, err := repo.GetZone(ctx, "alpha")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestZoneSaveUpdatesExisting(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormZoneRepository(db)
	ctx := context.Background()
	zone := &planning.Zone{ID: "alpha", Name: "Alpha", OutputPorts: 10, InputPorts: 8, PortThroughput: 30}
	require.NoError(t, repo.SaveZone(ctx, zone))

	// Act
	zone.OutputPorts = 4
	err := repo.SaveZone(ctx, zone)
	require.NoError(t, err)
	loaded, err := repo.GetZone(ctx, "alpha")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.OutputPorts)
}

func TestZoneListOrderedByID(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormZoneRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.SaveZone(ctx, &planning.Zone{ID: "beta", Name: "Beta", PortThroughput: 30}))
	require.NoError(t, repo.SaveZone(ctx, &planning.Zone{ID: "alpha", Name: "Alpha", PortThroughput: 30}))

	// Act
	zones, err := repo.ListZones(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "alpha", zones[0].ID)
	assert.Equal(t, "beta", zones[1].ID)
}

func TestZoneGetMissingReturnsError(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormZoneRepository(db)

	// Act
	_, err := repo.GetZone(context.Background(), "nope")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone not found")
}

func TestZoneDelete(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormZoneRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.SaveZone(ctx, &planning.Zone{ID: "alpha", Name: "Alpha", PortThroughput: 30}))

	// Act
	err := repo.DeleteZone(ctx, "alpha")

	// Assert
	require.NoError(t, err)
	_, err = repo.GetZone(ctx, "alpha")
	require.Error(t, err)

	err = repo.DeleteZone(ctx, "alpha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone not found")
}
