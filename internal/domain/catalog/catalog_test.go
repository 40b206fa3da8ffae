package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
)

func testCatalog() *catalog.Catalog {
	items := []*catalog.Item{
		{ID: "ore", Name: "Iron Ore", IsRawResource: true},
		{ID: "iron", Name: "Iron Ingot", Price: 2},
		{ID: "gear", Name: "Gear", Price: 5},
	}
	machines := []*catalog.Machine{
		{ID: "smelter", Name: "Smelter", Area: 4},
		{ID: "press", Name: "Press", Area: 6},
	}
	recipes := []*catalog.Recipe{
		{
			ID: "smelt-iron", MachineID: "smelter", Name: "Smelt Iron",
			OutputItemID: "iron", OutputAmount: 60, CraftingTime: 60,
			Inputs: []catalog.RecipeInput{{ItemID: "ore", Amount: 60}},
		},
		{
			ID: "press-gear", MachineID: "press", Name: "Press Gear",
			OutputItemID: "gear", OutputAmount: 30, CraftingTime: 60,
			Inputs: []catalog.RecipeInput{{ItemID: "iron", Amount: 60}},
		},
	}
	return catalog.NewCatalog(items, recipes, machines)
}

func TestRecipeRates(t *testing.T) {
	// Arrange
	r := &catalog.Recipe{
		ID: "r", OutputItemID: "out", OutputAmount: 10, CraftingTime: 30,
		Inputs: []catalog.RecipeInput{{ItemID: "in", Amount: 5}},
	}

	// Act & Assert
	assert.InDelta(t, 20.0, r.OutputRatePerMinute(), 1e-9)
	assert.InDelta(t, 10.0, r.InputRatePerMinute("in"), 1e-9)
	assert.Zero(t, r.InputRatePerMinute("other"))
	assert.False(t, r.ConsumesOwnOutput())
}

func TestCatalogLookupsAndHelpers(t *testing.T) {
	// Arrange
	cat := testCatalog()

	// Act & Assert
	item, ok := cat.ItemByID("iron")
	require.True(t, ok)
	assert.Equal(t, "Iron Ingot", item.Name)
	assert.True(t, item.Sellable())

	_, ok = cat.RecipeByID("missing")
	assert.False(t, ok)

	assert.Equal(t, "Iron Ore", cat.ItemName("ore"))
	assert.Equal(t, "unknown", cat.ItemName("unknown"))

	raws := cat.RawResources()
	require.Len(t, raws, 1)
	assert.Equal(t, "ore", raws[0].ID)
	assert.True(t, cat.RawResourceIDs()["ore"])
	assert.False(t, cat.RawResourceIDs()["iron"])

	assert.InDelta(t, 4.0, cat.MachineArea("smelter"), 1e-9)
	assert.Zero(t, cat.MachineArea("missing"))

	// mean of 2 and 5
	assert.InDelta(t, 3.5, cat.AverageSellablePrice(), 1e-9)

	assert.Equal(t, []string{"gear", "iron", "ore"}, cat.SortedItemIDs())
}

func TestAverageSellablePriceDefaultsWithoutPrices(t *testing.T) {
	// Arrange
	cat := catalog.NewCatalog([]*catalog.Item{{ID: "ore", IsRawResource: true}}, nil, nil)

	// Act & Assert
	assert.InDelta(t, 10.0, cat.AverageSellablePrice(), 1e-9)
}

func TestValidateAcceptsWellFormedCatalog(t *testing.T) {
	// Arrange
	cat := testCatalog()

	// Act
	err := cat.Validate()

	// Assert
	require.NoError(t, err)
}

func TestValidateReportsFirstViolation(t *testing.T) {
	tests := []struct {
		name     string
		items    []*catalog.Item
		recipes  []*catalog.Recipe
		machines []*catalog.Machine
		field    string
	}{
		{
			name:  "duplicate item id",
			items: []*catalog.Item{{ID: "a"}, {ID: "a"}},
			field: "item.id",
		},
		{
			name:  "negative price",
			items: []*catalog.Item{{ID: "a", Price: -1}},
			field: "item.price",
		},
		{
			name:     "recipe with unknown output item",
			items:    []*catalog.Item{{ID: "a"}},
			machines: []*catalog.Machine{{ID: "m"}},
			recipes: []*catalog.Recipe{{
				ID: "r", MachineID: "m", OutputItemID: "missing", OutputAmount: 1, CraftingTime: 1,
			}},
			field: "recipe.outputItemId",
		},
		{
			name:     "recipe with unknown machine",
			items:    []*catalog.Item{{ID: "a"}},
			machines: []*catalog.Machine{{ID: "m"}},
			recipes: []*catalog.Recipe{{
				ID: "r", MachineID: "other", OutputItemID: "a", OutputAmount: 1, CraftingTime: 1,
			}},
			field: "recipe.machineId",
		},
		{
			name:     "recipe with non-positive crafting time",
			items:    []*catalog.Item{{ID: "a"}},
			machines: []*catalog.Machine{{ID: "m"}},
			recipes: []*catalog.Recipe{{
				ID: "r", MachineID: "m", OutputItemID: "a", OutputAmount: 1, CraftingTime: 0,
			}},
			field: "recipe.craftingTime",
		},
		{
			name:     "recipe with unknown input item",
			items:    []*catalog.Item{{ID: "a"}},
			machines: []*catalog.Machine{{ID: "m"}},
			recipes: []*catalog.Recipe{{
				ID: "r", MachineID: "m", OutputItemID: "a", OutputAmount: 1, CraftingTime: 1,
				Inputs: []catalog.RecipeInput{{ItemID: "missing", Amount: 1}},
			}},
			field: "recipe.inputs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cat := catalog.NewCatalog(tt.items, tt.recipes, tt.machines)

			// Act
			err := cat.Validate()

			// Assert
			require.Error(t, err)
			var verr *catalog.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDetectRecipeCyclesFindsItemCycle(t *testing.T) {
	// Arrange: seed -> plant -> seed
	items := []*catalog.Item{
		{ID: "seed", Name: "Seed"},
		{ID: "plant", Name: "Plant"},
	}
	machines := []*catalog.Machine{{ID: "farm"}}
	recipes := []*catalog.Recipe{
		{ID: "grow", MachineID: "farm", Name: "Grow", OutputItemID: "plant", OutputAmount: 1, CraftingTime: 10,
			Inputs: []catalog.RecipeInput{{ItemID: "seed", Amount: 1}}},
		{ID: "harvest", MachineID: "farm", Name: "Harvest", OutputItemID: "seed", OutputAmount: 2, CraftingTime: 10,
			Inputs: []catalog.RecipeInput{{ItemID: "plant", Amount: 1}}},
	}
	cat := catalog.NewCatalog(items, recipes, machines)

	// Act
	warnings := catalog.DetectRecipeCycles(cat)

	// Assert
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Recipe cycles detected")
	assert.Contains(t, warnings[0], "Plant -> Seed -> Plant")
}

func TestDetectRecipeCyclesFlagsSelfAmplifyingRecipe(t *testing.T) {
	// Arrange: 1 fuel in, 3 fuel out
	items := []*catalog.Item{{ID: "fuel", Name: "Fuel"}}
	machines := []*catalog.Machine{{ID: "reactor"}}
	recipes := []*catalog.Recipe{
		{ID: "breed", MachineID: "reactor", Name: "Breed Fuel", OutputItemID: "fuel", OutputAmount: 3, CraftingTime: 10,
			Inputs: []catalog.RecipeInput{{ItemID: "fuel", Amount: 1}}},
	}
	cat := catalog.NewCatalog(items, recipes, machines)

	// Act
	warnings := catalog.DetectRecipeCycles(cat)

	// Assert
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "Self-amplifying recipe: Breed Fuel")
	assert.Contains(t, warnings[1], "Recipe cycles detected")
}

func TestDetectRecipeCyclesQuietOnAcyclicCatalog(t *testing.T) {
	// Arrange
	cat := testCatalog()

	// Act
	warnings := catalog.DetectRecipeCycles(cat)

	// Assert
	assert.Empty(t, warnings)
}
