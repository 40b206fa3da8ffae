package planning

// OptimizationMode selects how transfers are penalized in the objective.
type OptimizationMode string

const (
	// ModeMaxIncome ignores transfer cost entirely.
	ModeMaxIncome OptimizationMode = "maxIncome"

	// ModeMinTransfers makes transfers prohibitively expensive.
	ModeMinTransfers OptimizationMode = "minTransfers"

	// ModeBalanced scales transfer cost by the user's TransferPenalty knob.
	ModeBalanced OptimizationMode = "balanced"
)

// ProductionTarget asks for a minimum net export rate of one item.
type ProductionTarget struct {
	ItemID     string
	TargetRate float64
}

// ResourceConstraint caps global extraction of a raw resource, overriding the
// item's BaseProductionRate.
type ResourceConstraint struct {
	ItemID  string
	MaxRate float64
}

// Default tuning knob values, applied when the corresponding field is nil.
// A knob explicitly set to 0 stays 0.
const (
	DefaultTransferPenalty     = 0.5
	DefaultConsolidationWeight = 0.05
	DefaultMachineWeight       = 0.01
)

// CalculatorInput is the per-solve request: what to produce, where, and how
// to trade off income against logistics spread.
type CalculatorInput struct {
	Targets             []ProductionTarget
	ResourceConstraints []ResourceConstraint
	Zones               []*Zone

	// LockedAssignments pin specific (recipe, zone) machine counts.
	LockedAssignments []ZoneAssignment

	OptimizationMode OptimizationMode

	// TransferPenalty (0..1) only applies in balanced mode. nil = default.
	TransferPenalty *float64

	// ConsolidationWeight (0..1) penalizes activating a recipe in a zone
	// during the exploratory relaxation. nil = default.
	ConsolidationWeight *float64

	// MachineWeight (0..1) penalizes each machine during the exploratory
	// relaxation. nil = default.
	MachineWeight *float64
}

// TransferPenaltyOrDefault returns the balanced-mode knob with its default.
func (in *CalculatorInput) TransferPenaltyOrDefault() float64 {
	if in.TransferPenalty == nil {
		return DefaultTransferPenalty
	}
	return *in.TransferPenalty
}

// ConsolidationWeightOrDefault returns the consolidation knob with its default.
func (in *CalculatorInput) ConsolidationWeightOrDefault() float64 {
	if in.ConsolidationWeight == nil {
		return DefaultConsolidationWeight
	}
	return *in.ConsolidationWeight
}

// MachineWeightOrDefault returns the per-machine knob with its default.
func (in *CalculatorInput) MachineWeightOrDefault() float64 {
	if in.MachineWeight == nil {
		return DefaultMachineWeight
	}
	return *in.MachineWeight
}

// TargetFor returns the production target for an item, if any.
func (in *CalculatorInput) TargetFor(itemID string) (ProductionTarget, bool) {
	for _, t := range in.Targets {
		if t.ItemID == itemID {
			return t, true
		}
	}
	return ProductionTarget{}, false
}

// ResourceCap returns the extraction override for an item, if any.
func (in *CalculatorInput) ResourceCap(itemID string) (float64, bool) {
	for _, c := range in.ResourceConstraints {
		if c.ItemID == itemID {
			return c.MaxRate, true
		}
	}
	return 0, false
}

// ZoneByID returns the zone with the given id, if present.
func (in *CalculatorInput) ZoneByID(id string) (*Zone, bool) {
	for _, z := range in.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return nil, false
}
