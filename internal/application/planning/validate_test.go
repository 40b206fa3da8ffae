package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appplanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

func knob(v float64) *float64 { return &v }

func TestValidateInputAcceptsWellFormedRequest(t *testing.T) {
	// Arrange
	input := &planning.CalculatorInput{
		Zones:            []*planning.Zone{zone("a", 5, 5)},
		Targets:          []planning.ProductionTarget{{ItemID: "iron", TargetRate: 30}},
		OptimizationMode: planning.ModeBalanced,
		TransferPenalty:  knob(0.3),
		LockedAssignments: []planning.ZoneAssignment{
			{RecipeID: "smelt-iron", ZoneID: "a", MachineCount: 2, Locked: true},
		},
	}

	// Act
	err := appplanning.ValidateInput(smeltOnly(), input)

	// Assert
	require.NoError(t, err)
}

func TestValidateInputRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name  string
		input *planning.CalculatorInput
		field string
	}{
		{
			name:  "unknown optimization mode",
			input: &planning.CalculatorInput{OptimizationMode: "fastest"},
			field: "optimizationMode",
		},
		{
			name:  "knob out of range",
			input: &planning.CalculatorInput{TransferPenalty: knob(1.5)},
			field: "transferPenalty",
		},
		{
			name: "duplicate zone id",
			input: &planning.CalculatorInput{
				Zones: []*planning.Zone{zone("a", 5, 5), zone("a", 5, 5)},
			},
			field: "zone.id",
		},
		{
			name: "non-positive port throughput",
			input: &planning.CalculatorInput{
				Zones: []*planning.Zone{{ID: "a", OutputPorts: 1, InputPorts: 1}},
			},
			field: "zone.portThroughput",
		},
		{
			name: "target on unknown item",
			input: &planning.CalculatorInput{
				Targets: []planning.ProductionTarget{{ItemID: "plutonium", TargetRate: 1}},
			},
			field: "target.itemId",
		},
		{
			name: "non-positive target rate",
			input: &planning.CalculatorInput{
				Targets: []planning.ProductionTarget{{ItemID: "iron", TargetRate: 0}},
			},
			field: "target.targetRate",
		},
		{
			name: "duplicate target",
			input: &planning.CalculatorInput{
				Targets: []planning.ProductionTarget{
					{ItemID: "iron", TargetRate: 1},
					{ItemID: "iron", TargetRate: 2},
				},
			},
			field: "target.itemId",
		},
		{
			name: "resource constraint on crafted item",
			input: &planning.CalculatorInput{
				ResourceConstraints: []planning.ResourceConstraint{{ItemID: "iron", MaxRate: 10}},
			},
			field: "resourceConstraint.itemId",
		},
		{
			name: "lock on unknown recipe",
			input: &planning.CalculatorInput{
				Zones:             []*planning.Zone{zone("a", 5, 5)},
				LockedAssignments: []planning.ZoneAssignment{{RecipeID: "nope", ZoneID: "a"}},
			},
			field: "lockedAssignment.recipeId",
		},
		{
			name: "lock on unknown zone",
			input: &planning.CalculatorInput{
				Zones:             []*planning.Zone{zone("a", 5, 5)},
				LockedAssignments: []planning.ZoneAssignment{{RecipeID: "smelt-iron", ZoneID: "b"}},
			},
			field: "lockedAssignment.zoneId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := appplanning.ValidateInput(smeltOnly(), tt.input)

			// Assert
			require.Error(t, err)
			var verr *catalog.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateInputChecksCatalogFirst(t *testing.T) {
	// Arrange: broken catalogue plus a broken input; the catalogue error wins
	badCat := catalog.NewCatalog([]*catalog.Item{{ID: "a"}, {ID: "a"}}, nil, nil)
	input := &planning.CalculatorInput{OptimizationMode: "fastest"}

	// Act
	err := appplanning.ValidateInput(badCat, input)

	// Assert
	require.Error(t, err)
	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "item.id", verr.Field)
}
