package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// DetectRecipeCycles statically analyses the recipe graph and returns advisory
// warnings for cyclic item dependencies (e.g. seed -> plant -> more seeds) and
// for self-amplifying recipes (output rate of an item strictly above its input
// rate within the same recipe). The result never affects solving.
//
// Traversal order is fixed (lexicographic item ids) so the reported warnings
// are deterministic for a given catalogue.
func DetectRecipeCycles(c *Catalog) []string {
	warnings := make([]string, 0)

	// item -> items producible from it through any recipe
	itemGraph := make(map[string][]string)
	for _, r := range c.Recipes() {
		for _, in := range r.Inputs {
			itemGraph[in.ItemID] = append(itemGraph[in.ItemID], r.OutputItemID)
		}
	}
	for id, neighbors := range itemGraph {
		sort.Strings(neighbors)
		itemGraph[id] = dedupe(neighbors)
	}

	roots := make([]string, 0, len(itemGraph))
	for id := range itemGraph {
		roots = append(roots, id)
	}
	sort.Strings(roots)

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	cycles := make([]string, 0)

	var dfs func(itemID string, path []string)
	dfs = func(itemID string, path []string) {
		if onStack[itemID] {
			start := 0
			for i, id := range path {
				if id == itemID {
					start = i
					break
				}
			}
			names := make([]string, 0, len(path)-start+1)
			for _, id := range path[start:] {
				names = append(names, c.ItemName(id))
			}
			names = append(names, c.ItemName(itemID))
			cycles = append(cycles, strings.Join(names, " -> "))
			return
		}
		if visited[itemID] {
			return
		}
		visited[itemID] = true
		onStack[itemID] = true
		path = append(path, itemID)
		for _, next := range itemGraph[itemID] {
			dfs(next, path)
		}
		onStack[itemID] = false
	}

	for _, root := range roots {
		if !visited[root] {
			dfs(root, nil)
		}
	}

	for _, r := range c.Recipes() {
		selfAmount, ok := r.InputAmount(r.OutputItemID)
		if !ok {
			continue
		}
		inputRate := selfAmount / r.CraftingTime
		outputRate := r.OutputAmount / r.CraftingTime
		if outputRate > inputRate {
			warnings = append(warnings, fmt.Sprintf(
				"Self-amplifying recipe: %s (output %.2f/s > input %.2f/s)", r.Name, outputRate, inputRate))
		}
	}

	if len(cycles) > 0 {
		shown := cycles
		extra := ""
		if len(cycles) > 3 {
			shown = cycles[:3]
			extra = fmt.Sprintf(" (+%d more)", len(cycles)-3)
		}
		warnings = append(warnings, fmt.Sprintf("Recipe cycles detected: %s%s", strings.Join(shown, "; "), extra))
	}

	return warnings
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}
