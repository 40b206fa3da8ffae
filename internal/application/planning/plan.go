package planning

import "sort"

// AssignmentKey identifies one (recipe, zone) machine-count slot.
type AssignmentKey struct {
	RecipeID string
	ZoneID   string
}

// MachinePlan is an immutable-by-convention snapshot of fixed machine counts,
// one entry per (recipe, zone) pair. Pipeline stages never mutate a plan they
// received: each stage clones, edits the clone, and commits it only when the
// candidate solve is accepted. That makes revert-on-rejection a no-op.
type MachinePlan map[AssignmentKey]int

// Clone returns an independent copy of the plan.
func (p MachinePlan) Clone() MachinePlan {
	out := make(MachinePlan, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Get returns the machine count for a slot, 0 when absent.
func (p MachinePlan) Get(key AssignmentKey) int {
	return p[key]
}

// TotalMachines sums all installed machines.
func (p MachinePlan) TotalMachines() int {
	total := 0
	for _, v := range p {
		total += v
	}
	return total
}

// SortedKeys returns all slots ordered by (RecipeID, ZoneID). This ordering
// is the documented iteration contract of the greedy de-rounding and
// consolidation passes: solves are reproducible bit-for-bit for a fixed
// input because every pass walks slots in exactly this order.
func (p MachinePlan) SortedKeys() []AssignmentKey {
	keys := make([]AssignmentKey, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].RecipeID != keys[j].RecipeID {
			return keys[i].RecipeID < keys[j].RecipeID
		}
		return keys[i].ZoneID < keys[j].ZoneID
	})
	return keys
}
