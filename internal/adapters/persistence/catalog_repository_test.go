package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/zoneplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/test/helpers"
)

func seedCatalog() *catalog.Catalog {
	items := []*catalog.Item{
		{ID: "iron", Name: "Iron Ingot", Price: 2},
		{ID: "ore", Name: "Iron Ore", IsRawResource: true, BaseProductionRate: 120},
	}
	machines := []*catalog.Machine{
		{ID: "smelter", Name: "Smelter", Description: "Melts things", Area: 4},
	}
	recipes := []*catalog.Recipe{{
		ID: "smelt-iron", MachineID: "smelter", Name: "Smelt Iron",
		OutputItemID: "iron", OutputAmount: 60, CraftingTime: 60,
		Inputs: []catalog.RecipeInput{{ItemID: "ore", Amount: 60}},
	}}
	return catalog.NewCatalog(items, recipes, machines)
}

func TestCatalogRoundTrip(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)
	ctx := context.Background()

	// Act
	err := repo.SaveCatalog(ctx, seedCatalog())
	require.NoError(t, err)
	loaded, err := repo.LoadCatalog(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, loaded.Items(), 2)
	require.Len(t, loaded.Machines(), 1)
	require.Len(t, loaded.Recipes(), 1)

	ore, ok := loaded.ItemByID("ore")
	require.True(t, ok)
	assert.True(t, ore.IsRawResource)
	assert.InDelta(t, 120.0, ore.BaseProductionRate, 1e-9)

	recipe, ok := loaded.RecipeByID("smelt-iron")
	require.True(t, ok)
	assert.Equal(t, "smelter", recipe.MachineID)
	assert.Equal(t, "iron", recipe.OutputItemID)
	require.Len(t, recipe.Inputs, 1)
	assert.Equal(t, catalog.RecipeInput{ItemID: "ore", Amount: 60}, recipe.Inputs[0])
}

func TestSaveCatalogReplacesPreviousSnapshot(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.SaveCatalog(ctx, seedCatalog()))

	replacement := catalog.NewCatalog(
		[]*catalog.Item{{ID: "copper", Name: "Copper", Price: 3}},
		nil,
		nil,
	)

	// Act
	err := repo.SaveCatalog(ctx, replacement)
	require.NoError(t, err)
	loaded, err := repo.LoadCatalog(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, loaded.Items(), 1)
	assert.Equal(t, "copper", loaded.Items()[0].ID)
	assert.Empty(t, loaded.Recipes())
	assert.Empty(t, loaded.Machines())
}

func TestLoadCatalogEmptyDatabase(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)

	// Act
	loaded, err := repo.LoadCatalog(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, loaded.Items())
	assert.Empty(t, loaded.Recipes())
	assert.Empty(t, loaded.Machines())
}
