package planning

import (
	"context"
	"errors"
	"math"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
)

// TheoreticalMaxIncome solves the zoneless upper bound: one shared pool, no
// ports, no machine limits, only raw-resource caps and production targets.
// Comparing a real plan's income against this bound shows how much the zone
// topology itself costs.
//
// With unlimited raw resources and a sellable output the bound is infinite;
// that comes back as +Inf rather than an error. Infeasible (targets impossible
// even without zones) comes back as 0.
func TheoreticalMaxIncome(ctx context.Context, cat *catalog.Catalog, input *planning.CalculatorInput, s solver.Solver) (float64, error) {
	m := solver.NewModel(solver.Maximize)
	rawIDs := cat.RawResourceIDs()

	for _, r := range cat.Recipes() {
		key := solver.PoolRecipeVar(r.ID)
		rate := r.OutputRatePerMinute()
		v := m.Var(key)
		if out, ok := cat.ItemByID(r.OutputItemID); ok && out.Price > 0 {
			v.Objective = out.Price * rate
		}
		m.AddCoeff(key, solver.PoolItemCon(r.OutputItemID), rate)
		for _, in := range r.Inputs {
			m.AddCoeff(key, solver.PoolItemCon(in.ItemID), -r.InputRatePerMinute(in.ItemID))
		}
	}

	// Raw resources may go net negative down to their extraction cap; an
	// uncapped resource gets no row at all.
	for _, res := range cat.RawResources() {
		limit := math.Inf(1)
		if rate, ok := input.ResourceCap(res.ID); ok {
			limit = rate
		} else if res.BaseProductionRate > 0 {
			limit = res.BaseProductionRate
		}
		if !math.IsInf(limit, 1) {
			m.SetMin(solver.PoolItemCon(res.ID), -limit)
		}
	}

	// Crafted items must net at least their target, or zero.
	for _, item := range cat.Items() {
		if rawIDs[item.ID] {
			continue
		}
		floor := 0.0
		if t, ok := input.TargetFor(item.ID); ok {
			floor = t.TargetRate
		}
		m.SetMin(solver.PoolItemCon(item.ID), floor)
	}

	sol, err := s.Solve(ctx, m)
	if err != nil {
		if errors.Is(err, solver.ErrUnbounded) {
			return math.Inf(1), nil
		}
		return 0, err
	}
	if !sol.Feasible {
		return 0, nil
	}
	return sol.Objective, nil
}
