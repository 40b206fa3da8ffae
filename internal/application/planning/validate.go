package planning

import (
	"fmt"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// ValidateInput checks a solve request against the catalogue before any model
// is built, so malformed requests fail fast with a field-level error instead
// of surfacing later as an unexplained infeasibility. The catalogue itself is
// validated first; input checks assume its ids resolve.
func ValidateInput(cat *catalog.Catalog, input *planning.CalculatorInput) error {
	if err := cat.Validate(); err != nil {
		return err
	}

	switch input.OptimizationMode {
	case planning.ModeMaxIncome, planning.ModeMinTransfers, planning.ModeBalanced, "":
	default:
		return catalog.NewValidationError("optimizationMode", fmt.Sprintf("unknown mode %q", input.OptimizationMode))
	}

	if err := validateKnob("transferPenalty", input.TransferPenalty); err != nil {
		return err
	}
	if err := validateKnob("consolidationWeight", input.ConsolidationWeight); err != nil {
		return err
	}
	if err := validateKnob("machineWeight", input.MachineWeight); err != nil {
		return err
	}

	seenZones := make(map[string]bool)
	for _, z := range input.Zones {
		if z.ID == "" {
			return catalog.NewValidationError("zone.id", "must not be empty")
		}
		if seenZones[z.ID] {
			return catalog.NewValidationError("zone.id", fmt.Sprintf("duplicate zone id %q", z.ID))
		}
		seenZones[z.ID] = true
		if z.OutputPorts < 0 || z.InputPorts < 0 {
			return catalog.NewValidationError("zone.ports", fmt.Sprintf("zone %q has negative port count", z.ID))
		}
		if z.PortThroughput <= 0 {
			return catalog.NewValidationError("zone.portThroughput", fmt.Sprintf("zone %q must have positive port throughput", z.ID))
		}
		if z.MachineSlots < 0 {
			return catalog.NewValidationError("zone.machineSlots", fmt.Sprintf("zone %q has negative machine slots", z.ID))
		}
		if z.AreaLimit < 0 {
			return catalog.NewValidationError("zone.areaLimit", fmt.Sprintf("zone %q has negative area limit", z.ID))
		}
	}

	seenTargets := make(map[string]bool)
	for _, t := range input.Targets {
		if _, ok := cat.ItemByID(t.ItemID); !ok {
			return catalog.NewValidationError("target.itemId", fmt.Sprintf("unknown item %q", t.ItemID))
		}
		if seenTargets[t.ItemID] {
			return catalog.NewValidationError("target.itemId", fmt.Sprintf("duplicate target for item %q", t.ItemID))
		}
		seenTargets[t.ItemID] = true
		if t.TargetRate <= 0 {
			return catalog.NewValidationError("target.targetRate", fmt.Sprintf("target for %q must have positive rate", t.ItemID))
		}
	}

	for _, c := range input.ResourceConstraints {
		item, ok := cat.ItemByID(c.ItemID)
		if !ok {
			return catalog.NewValidationError("resourceConstraint.itemId", fmt.Sprintf("unknown item %q", c.ItemID))
		}
		if !item.IsRawResource {
			return catalog.NewValidationError("resourceConstraint.itemId", fmt.Sprintf("item %q is not a raw resource", c.ItemID))
		}
		if c.MaxRate < 0 {
			return catalog.NewValidationError("resourceConstraint.maxRate", fmt.Sprintf("constraint for %q has negative rate", c.ItemID))
		}
	}

	for _, l := range input.LockedAssignments {
		if _, ok := cat.RecipeByID(l.RecipeID); !ok {
			return catalog.NewValidationError("lockedAssignment.recipeId", fmt.Sprintf("unknown recipe %q", l.RecipeID))
		}
		if _, ok := input.ZoneByID(l.ZoneID); !ok {
			return catalog.NewValidationError("lockedAssignment.zoneId", fmt.Sprintf("unknown zone %q", l.ZoneID))
		}
		if l.MachineCount < 0 {
			return catalog.NewValidationError("lockedAssignment.machineCount", fmt.Sprintf("lock for recipe %q has negative machine count", l.RecipeID))
		}
	}

	return nil
}

func validateKnob(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > 1 {
		return catalog.NewValidationError(field, fmt.Sprintf("must be between 0 and 1, got %g", *v))
	}
	return nil
}
