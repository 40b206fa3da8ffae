package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appplanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
)

func TestMachinePlanCloneIsIndependent(t *testing.T) {
	// Arrange
	original := appplanning.MachinePlan{
		{RecipeID: "r1", ZoneID: "a"}: 3,
		{RecipeID: "r2", ZoneID: "b"}: 1,
	}

	// Act
	clone := original.Clone()
	clone[appplanning.AssignmentKey{RecipeID: "r1", ZoneID: "a"}] = 7

	// Assert
	assert.Equal(t, 3, original.Get(appplanning.AssignmentKey{RecipeID: "r1", ZoneID: "a"}))
	assert.Equal(t, 7, clone.Get(appplanning.AssignmentKey{RecipeID: "r1", ZoneID: "a"}))
}

func TestMachinePlanGetMissingSlotIsZero(t *testing.T) {
	// Arrange
	plan := appplanning.MachinePlan{}

	// Act & Assert
	assert.Zero(t, plan.Get(appplanning.AssignmentKey{RecipeID: "r", ZoneID: "z"}))
}

func TestMachinePlanTotalMachines(t *testing.T) {
	// Arrange
	plan := appplanning.MachinePlan{
		{RecipeID: "r1", ZoneID: "a"}: 3,
		{RecipeID: "r1", ZoneID: "b"}: 2,
		{RecipeID: "r2", ZoneID: "a"}: 0,
	}

	// Act & Assert
	assert.Equal(t, 5, plan.TotalMachines())
}

func TestMachinePlanSortedKeysOrderedByRecipeThenZone(t *testing.T) {
	// Arrange
	plan := appplanning.MachinePlan{
		{RecipeID: "r2", ZoneID: "a"}: 1,
		{RecipeID: "r1", ZoneID: "b"}: 1,
		{RecipeID: "r1", ZoneID: "a"}: 1,
		{RecipeID: "r2", ZoneID: "b"}: 0,
	}

	// Act
	keys := plan.SortedKeys()

	// Assert
	assert.Equal(t, []appplanning.AssignmentKey{
		{RecipeID: "r1", ZoneID: "a"},
		{RecipeID: "r1", ZoneID: "b"},
		{RecipeID: "r2", ZoneID: "a"},
		{RecipeID: "r2", ZoneID: "b"},
	}, keys)
}
