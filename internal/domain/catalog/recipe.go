package catalog

// RecipeInput is one ingredient of a recipe, in units per crafting cycle.
type RecipeInput struct {
	ItemID string
	Amount float64
}

// Recipe converts input items into an output item on a specific machine.
// CraftingTime is seconds per cycle and must be positive; a recipe may list
// its own output as an input (self-amplifying loop), which is detected but
// never prevented.
type Recipe struct {
	ID           string
	MachineID    string
	Name         string
	OutputItemID string
	OutputAmount float64
	CraftingTime float64
	Inputs       []RecipeInput
}

// OutputRatePerMinute returns the per-machine production rate in units/min.
func (r *Recipe) OutputRatePerMinute() float64 {
	return r.OutputAmount * 60 / r.CraftingTime
}

// InputRatePerMinute returns the per-machine consumption rate of itemID in
// units/min, or 0 if the item is not an input of this recipe.
func (r *Recipe) InputRatePerMinute(itemID string) float64 {
	for _, in := range r.Inputs {
		if in.ItemID == itemID {
			return in.Amount * 60 / r.CraftingTime
		}
	}
	return 0
}

// InputAmount returns the per-cycle amount of itemID consumed, if any.
func (r *Recipe) InputAmount(itemID string) (float64, bool) {
	for _, in := range r.Inputs {
		if in.ItemID == itemID {
			return in.Amount, true
		}
	}
	return 0, false
}

// ConsumesOwnOutput reports whether the recipe's output item is also one of
// its inputs.
func (r *Recipe) ConsumesOwnOutput() bool {
	_, ok := r.InputAmount(r.OutputItemID)
	return ok
}
