package planning_test

import (
	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// ironChain is a two-step catalogue: raw ore smelts into sellable iron, iron
// presses into sellable gears. Rates are per machine per minute.
func ironChain() *catalog.Catalog {
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

// smeltOnly drops the gear recipe so solves stay single-step.
func smeltOnly() *catalog.Catalog {
	items := []*catalog.Item{
		{ID: "ore", Name: "Iron Ore", IsRawResource: true},
		{ID: "iron", Name: "Iron Ingot", Price: 2},
	}
	machines := []*catalog.Machine{{ID: "smelter", Name: "Smelter", Area: 4}}
	recipes := []*catalog.Recipe{
		{
			ID: "smelt-iron", MachineID: "smelter", Name: "Smelt Iron",
			OutputItemID: "iron", OutputAmount: 60, CraftingTime: 60,
			Inputs: []catalog.RecipeInput{{ItemID: "ore", Amount: 60}},
		},
	}
	return catalog.NewCatalog(items, recipes, machines)
}

func zone(id string, outputPorts, inputPorts int) *planning.Zone {
	return &planning.Zone{
		ID:             id,
		Name:           "Zone " + id,
		OutputPorts:    outputPorts,
		InputPorts:     inputPorts,
		PortThroughput: 30,
	}
}
