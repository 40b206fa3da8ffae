package planning

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
	"github.com/andrescamacho/zoneplanner-go/pkg/utils"
)

// Numeric tolerances of the pipeline's accept/reject decisions.
const (
	ceilEps        = 1e-6 // guards Ceil against 2.0000000001 becoming 3
	activateEps    = 1e-4 // relaxed values below this count as "recipe not used"
	targetEps      = 1e-6 // target satisfaction slack
	utilizationEps = 1e-6
)

// stageSolve pairs one built model with its solution.
type stageSolve struct {
	model *solver.Model
	sol   *solver.Solution
}

// pipeline runs the multi-stage solve: a continuous relaxation sizes the
// machine park, integer-fixed resolves price the logistics, and a series of
// greedy cleanup passes claw back the overcapacity the ceiling introduced.
// Every cleanup edit is speculative: the stage clones the plan, resolves, and
// keeps the clone only when the candidate stays feasible with targets met.
type pipeline struct {
	catalog *catalog.Catalog
	input   *planning.CalculatorInput
	builder *ModelBuilder
	solver  solver.Solver
	logger  common.Logger

	onProgress planning.ProgressFunc
	events     []planning.OptimizerEvent
	warnings   []string
}

func newPipeline(cat *catalog.Catalog, input *planning.CalculatorInput, s solver.Solver, logger common.Logger, onProgress planning.ProgressFunc) *pipeline {
	return &pipeline{
		catalog:    cat,
		input:      input,
		builder:    NewModelBuilder(cat, input),
		solver:     s,
		logger:     logger,
		onProgress: onProgress,
	}
}

func (p *pipeline) emit(stage planning.OptimizerStage, message string, metrics *planning.StageMetrics, change *planning.StageChange) {
	event := planning.OptimizerEvent{
		Stage:     stage,
		Timestamp: time.Now(),
		Message:   message,
		Metrics:   metrics,
		Change:    change,
	}
	p.events = append(p.events, event)
	if p.onProgress != nil {
		p.onProgress(event)
	}
	p.logger.Log("debug", fmt.Sprintf("optimizer stage %s: %s", stage, message), nil)
}

// metrics snapshots income, profit and machine totals for a progress event.
func (p *pipeline) metrics(sol *solver.Solution, plan MachinePlan, wasteModel bool) *planning.StageMetrics {
	income := 0.0
	for _, item := range p.catalog.Items() {
		if item.Price <= 0 {
			continue
		}
		for _, z := range p.input.Zones {
			income += sol.Value(solver.SendVar(item.ID, z.ID)) * item.Price
		}
	}
	m := &planning.StageMetrics{
		Income:   income,
		Profit:   sol.Objective,
		Machines: plan.TotalMachines(),
		Feasible: sol.Feasible,
	}
	if wasteModel {
		// The waste solve minimizes, so its objective is reported as Waste
		// and income stands in for Profit on this event.
		waste := sol.Objective
		m.Waste = &waste
		m.Profit = income
	}
	return m
}

// run executes the full pipeline and materializes the result.
func (p *pipeline) run(ctx context.Context) (*planning.CalculatorResult, error) {
	start := time.Now()
	p.emit(planning.StageInit, "Initializing optimizer...", &planning.StageMetrics{Feasible: true}, nil)

	p.warnings = append(p.warnings, catalog.DetectRecipeCycles(p.catalog)...)

	if len(p.input.Zones) == 0 {
		return p.emptyZonesResult(start), nil
	}

	// Stage A: continuous relaxation sizes production without integrality.
	modelA, buildWarnings := p.builder.Build(BuildOptions{ObjectiveMode: ObjectiveProfit})
	p.warnings = append(p.warnings, buildWarnings...)
	solA, err := p.solver.Solve(ctx, modelA)
	if err != nil {
		return nil, fmt.Errorf("relaxation solve: %w", err)
	}
	p.emit(planning.StageA, "Continuous LP solved", p.metrics(solA, MachinePlan{}, false), nil)

	// Ceiling-round the relaxed machine counts into the initial plan. Zero
	// entries are kept so every slot participates in the cleanup iteration
	// order.
	plan := make(MachinePlan)
	for _, r := range p.catalog.Recipes() {
		for _, z := range p.input.Zones {
			v := solA.Value(solver.RecipeAssignmentVar(r.ID, z.ID))
			if v > activateEps {
				plan[AssignmentKey{RecipeID: r.ID, ZoneID: z.ID}] = int(math.Ceil(v - ceilEps))
			} else {
				plan[AssignmentKey{RecipeID: r.ID, ZoneID: z.ID}] = 0
			}
		}
	}

	// Stage B: re-solve with machine counts fixed, lines integer.
	stageB, err := p.solveProfit(ctx, plan)
	if err != nil {
		return nil, err
	}
	p.emit(planning.StageB, "Initial integer LP solved", p.metrics(stageB.sol, plan, false), nil)

	spaceViolated := p.hasSpaceViolation(plan)
	if spaceViolated {
		p.emit(planning.StageSpaceValidation, "Space violations detected", p.metrics(stageB.sol, plan, false), nil)
	}

	// Fallback: when the fixed plan is infeasible or overflows a zone, try
	// swapping whole zone loadouts pairwise and keep the best rescue.
	if !stageB.sol.Feasible || spaceViolated {
		swapped, err := p.tryZoneSwap(ctx, plan)
		if err != nil {
			return nil, err
		}
		if swapped != nil {
			plan = swapped
			stageB, err = p.solveProfit(ctx, plan)
			if err != nil {
				return nil, err
			}
			p.emit(planning.StageFallback, "Applied zone-swap fallback", p.metrics(stageB.sol, plan, false), nil)
		}
	}

	// De-rounding: greedily remove one machine at a time wherever the solve
	// shows slack of at least a full machine, keeping each cut only if the
	// resolve stays feasible with targets met.
	for _, key := range plan.SortedKeys() {
		cur := plan.Get(key)
		if cur <= 0 {
			continue
		}
		util := stageB.sol.Value(solver.RecipeAssignmentVar(key.RecipeID, key.ZoneID))
		if util > float64(cur)-1+activateEps {
			continue
		}
		candidate := plan.Clone()
		candidate[key] = cur - 1
		cand, err := p.solveProfit(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if cand.sol.Feasible && p.targetsSatisfied(cand.sol) {
			plan = candidate
			stageB = cand
			p.emit(planning.StageDerounding, "Decreasing capacity", p.metrics(stageB.sol, plan, false), &planning.StageChange{
				Type:        "remove",
				Description: solver.RecipeAssignmentVar(key.RecipeID, key.ZoneID).String(),
			})
		}
	}
	p.emit(planning.StageDerounding, "Greedy de-rounding completed", p.metrics(stageB.sol, plan, false), nil)

	// Consolidation: for each recipe split across zones, try to fold the
	// least-utilized zone's machines into a busier one.
	for _, r := range p.catalog.Recipes() {
		plan, stageB, err = p.consolidateRecipe(ctx, r.ID, plan, stageB)
		if err != nil {
			return nil, err
		}
	}
	p.emit(planning.StageConsolidation, "Consolidation pass completed", p.metrics(stageB.sol, plan, false), nil)

	// Stage B2: minimize unsold production while holding profit at the level
	// the profit solve reached.
	stageWaste := stageB
	wasteModel := false
	if stageB.sol.Feasible {
		floor := stageB.sol.Objective - 1e-6
		stageWaste, err = p.solveMinWaste(ctx, plan, floor)
		if err != nil {
			return nil, err
		}
		wasteModel = true
	}
	p.emit(planning.StageB2, "Min-waste optimization completed", p.metrics(stageWaste.sol, plan, wasteModel), nil)

	// Shrink: drop installed capacity down to what the final solve actually
	// runs. No resolve afterwards; utilization already fits the smaller park.
	shrunk := plan.Clone()
	for key, cur := range plan {
		if cur <= 0 {
			continue
		}
		util := stageWaste.sol.Value(solver.RecipeAssignmentVar(key.RecipeID, key.ZoneID))
		shrunk[key] = utils.Min(cur, utils.CeilAboveEps(util, utilizationEps))
	}
	plan = shrunk
	p.emit(planning.StageShrink, "Shrink completed", p.metrics(stageWaste.sol, plan, wasteModel), nil)

	mt := &materializer{catalog: p.catalog, input: p.input}
	result := mt.materialize(plan, solA, stageWaste.sol, p.warnings)

	p.emit(planning.StageFinal, "Optimization completed", p.metrics(stageWaste.sol, plan, wasteModel), nil)

	end := time.Now()
	result.Telemetry = &planning.Telemetry{
		RunID:         uuid.New().String(),
		StartTime:     start,
		EndTime:       end,
		TotalDuration: end.Sub(start),
		Events:        p.events,
	}
	return result, nil
}

// emptyZonesResult reports an unsolvable request without invoking the solver.
func (p *pipeline) emptyZonesResult(start time.Time) *planning.CalculatorResult {
	unmet := make([]planning.UnmetTarget, 0, len(p.input.Targets))
	for _, t := range p.input.Targets {
		unmet = append(unmet, planning.UnmetTarget{ItemID: t.ItemID, Shortfall: t.TargetRate})
	}
	end := time.Now()
	return &planning.CalculatorResult{
		Feasible:            false,
		SolverFeasible:      false,
		InfeasibleReason:    planning.ReasonSolverInfeasible,
		ZoneResults:         []*planning.ZoneResult{},
		UnmetTargets:        unmet,
		Warnings:            []string{"No zones defined."},
		GlobalResourceUsage: []planning.RatedItem{},
		ItemFlows:           []planning.ItemFlow{},
		Telemetry: &planning.Telemetry{
			RunID:         uuid.New().String(),
			StartTime:     start,
			EndTime:       end,
			TotalDuration: end.Sub(start),
			Events:        p.events,
		},
	}
}

func (p *pipeline) solveProfit(ctx context.Context, plan MachinePlan) (*stageSolve, error) {
	model, _ := p.builder.Build(BuildOptions{FixedMachines: plan, ObjectiveMode: ObjectiveProfit})
	sol, err := p.solver.Solve(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("fixed-plan solve: %w", err)
	}
	return &stageSolve{model: model, sol: sol}, nil
}

func (p *pipeline) solveMinWaste(ctx context.Context, plan MachinePlan, minObjective float64) (*stageSolve, error) {
	model, _ := p.builder.Build(BuildOptions{FixedMachines: plan, ObjectiveMode: ObjectiveMinWaste, MinObjective: &minObjective})
	sol, err := p.solver.Solve(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("waste solve: %w", err)
	}
	return &stageSolve{model: model, sol: sol}, nil
}

// zoneSpaceUsed totals the plan's machines and footprint inside one zone.
func (p *pipeline) zoneSpaceUsed(plan MachinePlan, zoneID string) (int, float64) {
	machines := 0
	area := 0.0
	for _, r := range p.catalog.Recipes() {
		m := plan.Get(AssignmentKey{RecipeID: r.ID, ZoneID: zoneID})
		if m <= 0 {
			continue
		}
		machines += m
		if a := p.catalog.MachineArea(r.MachineID); a > 0 {
			area += float64(m) * a
		}
	}
	return machines, area
}

func (p *pipeline) hasSpaceViolation(plan MachinePlan) bool {
	for _, z := range p.input.Zones {
		machines, area := p.zoneSpaceUsed(plan, z.ID)
		if z.MachineSlots > 0 && machines > z.MachineSlots {
			return true
		}
		if z.AreaLimit > 0 && area > z.AreaLimit+1e-9 {
			return true
		}
	}
	return false
}

// targetsSatisfied checks every non-raw target's net export against its rate.
func (p *pipeline) targetsSatisfied(sol *solver.Solution) bool {
	rawIDs := p.catalog.RawResourceIDs()
	for _, t := range p.input.Targets {
		if rawIDs[t.ItemID] {
			continue
		}
		net := 0.0
		for _, z := range p.input.Zones {
			net += sol.Value(solver.SendVar(t.ItemID, z.ID))
			net -= sol.Value(solver.TransferVar(t.ItemID, z.ID))
		}
		if net < t.TargetRate-targetEps {
			return false
		}
	}
	return true
}

// tryZoneSwap exchanges the complete recipe loadout of every zone pair and
// returns the best feasible candidate plan, or nil when none rescues the solve.
func (p *pipeline) tryZoneSwap(ctx context.Context, base MachinePlan) (MachinePlan, error) {
	if len(p.input.Zones) < 2 {
		return nil, nil
	}
	var best MachinePlan
	bestObj := math.Inf(-1)
	for i := 0; i < len(p.input.Zones); i++ {
		for j := i + 1; j < len(p.input.Zones); j++ {
			zi := p.input.Zones[i].ID
			zj := p.input.Zones[j].ID
			candidate := base.Clone()
			for _, r := range p.catalog.Recipes() {
				ka := AssignmentKey{RecipeID: r.ID, ZoneID: zi}
				kb := AssignmentKey{RecipeID: r.ID, ZoneID: zj}
				candidate[ka], candidate[kb] = base.Get(kb), base.Get(ka)
			}
			cand, err := p.solveProfit(ctx, candidate)
			if err != nil {
				return nil, err
			}
			if !cand.sol.Feasible || !p.targetsSatisfied(cand.sol) {
				continue
			}
			if best == nil || cand.sol.Objective > bestObj {
				best = candidate
				bestObj = cand.sol.Objective
			}
		}
	}
	return best, nil
}

// consolidateRecipe merges a recipe's machines out of its least-utilized zones
// into busier ones, one donor at a time, keeping each merge only when space
// and a resolve both allow it.
func (p *pipeline) consolidateRecipe(ctx context.Context, recipeID string, plan MachinePlan, stageB *stageSolve) (MachinePlan, *stageSolve, error) {
	type slot struct {
		zoneID string
		util   float64
	}
	slots := make([]slot, 0, len(p.input.Zones))
	for _, z := range p.input.Zones {
		if plan.Get(AssignmentKey{RecipeID: recipeID, ZoneID: z.ID}) > 0 {
			slots = append(slots, slot{
				zoneID: z.ID,
				util:   stageB.sol.Value(solver.RecipeAssignmentVar(recipeID, z.ID)),
			})
		}
	}
	if len(slots) <= 1 {
		return plan, stageB, nil
	}
	// Least-utilized zones donate first; sort is stable so equal utilizations
	// keep zone order.
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0 && slots[j].util < slots[j-1].util; j-- {
			slots[j], slots[j-1] = slots[j-1], slots[j]
		}
	}

	for i := 0; i < len(slots)-1; i++ {
		donorKey := AssignmentKey{RecipeID: recipeID, ZoneID: slots[i].zoneID}
		donorMachines := plan.Get(donorKey)
		if donorMachines <= 0 {
			continue
		}
		for j := i + 1; j < len(slots); j++ {
			acceptorKey := AssignmentKey{RecipeID: recipeID, ZoneID: slots[j].zoneID}
			candidate := plan.Clone()
			candidate[donorKey] = 0
			candidate[acceptorKey] = plan.Get(acceptorKey) + donorMachines
			if p.hasSpaceViolation(candidate) {
				continue
			}
			cand, err := p.solveProfit(ctx, candidate)
			if err != nil {
				return nil, nil, err
			}
			if cand.sol.Feasible && p.targetsSatisfied(cand.sol) {
				plan = candidate
				stageB = cand
				p.emit(planning.StageConsolidation, "Merging redundant lines", p.metrics(stageB.sol, plan, false), &planning.StageChange{
					Type:        "update",
					Description: solver.RecipeAssignmentVar(recipeID, slots[j].zoneID).String(),
				})
				break
			}
		}
	}
	return plan, stageB, nil
}
