package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/zoneplanner-go/internal/adapters/milp"
	appplanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

type staticCatalogRepo struct{ cat *catalog.Catalog }

func (r *staticCatalogRepo) LoadCatalog(context.Context) (*catalog.Catalog, error) { return r.cat, nil }
func (r *staticCatalogRepo) SaveCatalog(context.Context, *catalog.Catalog) error   { return nil }

func smeltCatalog() *catalog.Catalog {
	items := []*catalog.Item{
		{ID: "ore", Name: "Iron Ore", IsRawResource: true, BaseProductionRate: 150},
		{ID: "iron", Name: "Iron Ingot", Price: 2},
	}
	machines := []*catalog.Machine{{ID: "smelter", Name: "Smelter"}}
	recipes := []*catalog.Recipe{{
		ID: "smelt-iron", MachineID: "smelter", Name: "Smelt Iron",
		OutputItemID: "iron", OutputAmount: 60, CraftingTime: 60,
		Inputs: []catalog.RecipeInput{{ItemID: "ore", Amount: 60}},
	}}
	return catalog.NewCatalog(items, recipes, machines)
}

func newSolveHandler() *commands.SolvePlanHandler {
	service := appplanning.NewPlannerService(milp.NewSimplexSolver())
	return commands.NewSolvePlanHandler(&staticCatalogRepo{cat: smeltCatalog()}, service)
}

func TestSolvePlanHandlerSolves(t *testing.T) {
	// Arrange
	cmd := &commands.SolvePlanCommand{
		Input: &planning.CalculatorInput{
			Zones: []*planning.Zone{{ID: "a", Name: "A", OutputPorts: 10, InputPorts: 10, PortThroughput: 30}},
		},
	}

	// Act
	response, err := newSolveHandler().Handle(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	result := response.(*commands.SolvePlanResponse).Result
	require.NotNil(t, result)
	assert.True(t, result.Feasible)
	assert.Nil(t, result.TheoreticalMaxIncome)
	// 150 ore/min smelted and sold at 2
	assert.InDelta(t, 300.0, result.TotalIncome, 1e-3)
}

func TestSolvePlanHandlerAttachesTheoreticalMax(t *testing.T) {
	// Arrange
	cmd := &commands.SolvePlanCommand{
		Input: &planning.CalculatorInput{
			Zones: []*planning.Zone{{ID: "a", Name: "A", OutputPorts: 10, InputPorts: 10, PortThroughput: 30}},
		},
		IncludeTheoreticalMax: true,
	}

	// Act
	response, err := newSolveHandler().Handle(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	result := response.(*commands.SolvePlanResponse).Result
	require.NotNil(t, result.TheoreticalMaxIncome)
	assert.InDelta(t, 300.0, *result.TheoreticalMaxIncome, 1e-3)
}

func TestSolvePlanHandlerRequiresInput(t *testing.T) {
	// Act
	_, err := newSolveHandler().Handle(context.Background(), &commands.SolvePlanCommand{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input is required")
}

func TestSolvePlanHandlerRejectsWrongRequestType(t *testing.T) {
	// Act
	_, err := newSolveHandler().Handle(context.Background(), &commands.SaveLayoutCommand{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request type")
}
