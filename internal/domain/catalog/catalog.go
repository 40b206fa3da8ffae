package catalog

import (
	"fmt"
	"sort"
)

// Catalog is the immutable reference-data snapshot a solve runs against:
// items, recipes and machines, with id-indexed lookup. Build one with
// NewCatalog; it is never mutated afterwards.
type Catalog struct {
	items    []*Item
	recipes  []*Recipe
	machines []*Machine

	itemByID    map[string]*Item
	recipeByID  map[string]*Recipe
	machineByID map[string]*Machine
}

// NewCatalog builds a catalogue snapshot with lookup indexes.
func NewCatalog(items []*Item, recipes []*Recipe, machines []*Machine) *Catalog {
	c := &Catalog{
		items:       items,
		recipes:     recipes,
		machines:    machines,
		itemByID:    make(map[string]*Item, len(items)),
		recipeByID:  make(map[string]*Recipe, len(recipes)),
		machineByID: make(map[string]*Machine, len(machines)),
	}
	for _, it := range items {
		c.itemByID[it.ID] = it
	}
	for _, r := range recipes {
		c.recipeByID[r.ID] = r
	}
	for _, m := range machines {
		c.machineByID[m.ID] = m
	}
	return c
}

func (c *Catalog) Items() []*Item       { return c.items }
func (c *Catalog) Recipes() []*Recipe   { return c.recipes }
func (c *Catalog) Machines() []*Machine { return c.machines }

// ItemByID looks up an item by id.
func (c *Catalog) ItemByID(id string) (*Item, bool) {
	it, ok := c.itemByID[id]
	return it, ok
}

// RecipeByID looks up a recipe by id.
func (c *Catalog) RecipeByID(id string) (*Recipe, bool) {
	r, ok := c.recipeByID[id]
	return r, ok
}

// MachineByID looks up a machine by id.
func (c *Catalog) MachineByID(id string) (*Machine, bool) {
	m, ok := c.machineByID[id]
	return m, ok
}

// ItemName returns the display name for an item, falling back to the id.
func (c *Catalog) ItemName(id string) string {
	if it, ok := c.itemByID[id]; ok && it.Name != "" {
		return it.Name
	}
	return id
}

// RawResources returns the items flagged as raw resources, in catalogue order.
func (c *Catalog) RawResources() []*Item {
	raws := make([]*Item, 0)
	for _, it := range c.items {
		if it.IsRawResource {
			raws = append(raws, it)
		}
	}
	return raws
}

// RawResourceIDs returns the id set of raw resources.
func (c *Catalog) RawResourceIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, it := range c.items {
		if it.IsRawResource {
			ids[it.ID] = true
		}
	}
	return ids
}

// MachineArea returns the footprint of a recipe's machine, or 0 if unknown.
func (c *Catalog) MachineArea(machineID string) float64 {
	if m, ok := c.machineByID[machineID]; ok {
		return m.Area
	}
	return 0
}

// AverageSellablePrice returns the mean price over all items with a positive
// price, or 10 when nothing is sellable. Used to scale objective penalties.
func (c *Catalog) AverageSellablePrice() float64 {
	sum := 0.0
	n := 0
	for _, it := range c.items {
		if it.Price > 0 {
			sum += it.Price
			n++
		}
	}
	if n == 0 {
		return 10
	}
	return sum / float64(n)
}

// SortedItemIDs returns all item ids in lexicographic order. Deterministic
// iteration over items is part of the optimizer's reproducibility contract.
func (c *Catalog) SortedItemIDs() []string {
	ids := make([]string, 0, len(c.items))
	for _, it := range c.items {
		ids = append(ids, it.ID)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks referential integrity and value ranges of the catalogue.
// It returns a ValidationError for the first violation found.
func (c *Catalog) Validate() error {
	seenItems := make(map[string]bool)
	for _, it := range c.items {
		if it.ID == "" {
			return NewValidationError("item.id", "must not be empty")
		}
		if seenItems[it.ID] {
			return NewValidationError("item.id", fmt.Sprintf("duplicate item id %q", it.ID))
		}
		seenItems[it.ID] = true
		if it.Price < 0 {
			return NewValidationError("item.price", fmt.Sprintf("item %q has negative price", it.ID))
		}
		if it.BaseProductionRate < 0 {
			return NewValidationError("item.baseProductionRate", fmt.Sprintf("item %q has negative base production rate", it.ID))
		}
	}

	seenMachines := make(map[string]bool)
	for _, m := range c.machines {
		if m.ID == "" {
			return NewValidationError("machine.id", "must not be empty")
		}
		if seenMachines[m.ID] {
			return NewValidationError("machine.id", fmt.Sprintf("duplicate machine id %q", m.ID))
		}
		seenMachines[m.ID] = true
	}

	seenRecipes := make(map[string]bool)
	for _, r := range c.recipes {
		if r.ID == "" {
			return NewValidationError("recipe.id", "must not be empty")
		}
		if seenRecipes[r.ID] {
			return NewValidationError("recipe.id", fmt.Sprintf("duplicate recipe id %q", r.ID))
		}
		seenRecipes[r.ID] = true
		if r.CraftingTime <= 0 {
			return NewValidationError("recipe.craftingTime", fmt.Sprintf("recipe %q must have positive crafting time", r.ID))
		}
		if r.OutputAmount <= 0 {
			return NewValidationError("recipe.outputAmount", fmt.Sprintf("recipe %q must have positive output amount", r.ID))
		}
		if !seenItems[r.OutputItemID] {
			return NewValidationError("recipe.outputItemId", fmt.Sprintf("recipe %q references unknown item %q", r.ID, r.OutputItemID))
		}
		if _, ok := c.machineByID[r.MachineID]; !ok {
			return NewValidationError("recipe.machineId", fmt.Sprintf("recipe %q references unknown machine %q", r.ID, r.MachineID))
		}
		for _, in := range r.Inputs {
			if !seenItems[in.ItemID] {
				return NewValidationError("recipe.inputs", fmt.Sprintf("recipe %q references unknown item %q", r.ID, in.ItemID))
			}
			if in.Amount < 0 {
				return NewValidationError("recipe.inputs", fmt.Sprintf("recipe %q has negative input amount for %q", r.ID, in.ItemID))
			}
		}
	}
	return nil
}
