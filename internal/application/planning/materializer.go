package planning

import (
	"fmt"
	"math"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
)

// flowEps filters numeric noise out of reported rates.
const flowEps = 0.001

// materializer turns a final plan plus the relaxed and final solutions into
// the user-facing result: per-zone loadouts, pool flows, income accounting,
// shortfall reporting and limit-overrun warnings.
type materializer struct {
	catalog *catalog.Catalog
	input   *planning.CalculatorInput
}

func (mt *materializer) materialize(plan MachinePlan, solA, solB *solver.Solution, warnings []string) *planning.CalculatorResult {
	rawIDs := mt.catalog.RawResourceIDs()

	itemFlows := make([]planning.ItemFlow, 0)
	zoneResults := make([]*planning.ZoneResult, 0, len(mt.input.Zones))
	totalOutputPortsUsed := 0
	transferOverhead := 0

	locked := make(map[AssignmentKey]bool)
	for _, l := range mt.input.LockedAssignments {
		if l.Locked {
			locked[AssignmentKey{RecipeID: l.RecipeID, ZoneID: l.ZoneID}] = true
		}
	}

	// Integer line variables vanish from the solution map when the final solve
	// was infeasible; port usage then falls back to ceiling arithmetic.
	hasIntegerLines := false
	for key := range solB.Values {
		if key.Kind == solver.VarLine {
			hasIntegerLines = true
			break
		}
	}

	for _, zone := range mt.input.Zones {
		zr := &planning.ZoneResult{
			Zone:          zone,
			Assignments:   []planning.ZoneAssignment{},
			ItemsFromPool: []planning.RatedItem{},
			ItemsToPool:   []planning.RatedItem{},
			ItemsSold:     []planning.RatedItem{},
		}
		areaUsed := 0.0

		for _, r := range mt.catalog.Recipes() {
			key := AssignmentKey{RecipeID: r.ID, ZoneID: zone.ID}
			m := plan.Get(key)
			if m <= 0 {
				continue
			}
			rate := r.OutputRatePerMinute()
			rv := solver.RecipeAssignmentVar(r.ID, zone.ID)
			required := solA.Value(rv) * rate
			util := solB.Value(rv)
			actual := util * rate
			zr.Assignments = append(zr.Assignments, planning.ZoneAssignment{
				ZoneID:       zone.ID,
				RecipeID:     r.ID,
				MachineCount: m,
				Utilization:  util,
				RequiredRate: required,
				ActualRate:   actual,
				ExcessRate:   actual - required,
				Locked:       locked[key],
			})
			zr.TotalMachines += m
			if a := mt.catalog.MachineArea(r.MachineID); a > 0 {
				areaUsed += float64(m) * a
			}
		}

		for _, item := range mt.catalog.Items() {
			t := solB.Value(solver.TransferVar(item.ID, zone.ID))
			if t > flowEps {
				zr.ItemsFromPool = append(zr.ItemsFromPool, planning.RatedItem{ItemID: item.ID, Rate: t})
				if rawIDs[item.ID] {
					itemFlows = append(itemFlows, planning.ItemFlow{ItemID: item.ID, ToZoneID: zone.ID, Rate: t})
				} else {
					transferOverhead += int(math.Ceil(t / zone.PortThroughput))
				}
			}
			if rawIDs[item.ID] {
				continue
			}
			s := solB.Value(solver.SendVar(item.ID, zone.ID))
			if s > flowEps {
				if item.Price > 0 {
					zr.ItemsSold = append(zr.ItemsSold, planning.RatedItem{ItemID: item.ID, Rate: s})
				} else {
					zr.ItemsToPool = append(zr.ItemsToPool, planning.RatedItem{ItemID: item.ID, Rate: s})
				}
			}
		}

		if hasIntegerLines {
			out, in := 0.0, 0.0
			for _, item := range mt.catalog.Items() {
				out += solB.Value(solver.LineVar(item.ID, zone.ID, solver.LineOut))
				in += solB.Value(solver.LineVar(item.ID, zone.ID, solver.LineIn))
			}
			zr.OutputPortsUsed = int(math.Round(out))
			zr.InputPortsUsed = int(math.Round(in))
		} else {
			for _, f := range zr.ItemsSold {
				zr.OutputPortsUsed += int(math.Ceil(f.Rate / zone.PortThroughput))
			}
			for _, f := range zr.ItemsToPool {
				zr.OutputPortsUsed += int(math.Ceil(f.Rate / zone.PortThroughput))
			}
			for _, f := range zr.ItemsFromPool {
				zr.InputPortsUsed += int(math.Ceil(f.Rate / zone.PortThroughput))
			}
		}
		totalOutputPortsUsed += zr.OutputPortsUsed

		if zone.AreaLimit > 0 {
			zr.AreaUsed = areaUsed
		}
		zoneResults = append(zoneResults, zr)
	}

	// Inter-zone flows: greedily match each item's sending zones to its
	// pulling zones. The pool has no memory, so any stable matching is as
	// true as any other; zone order keeps it deterministic.
	for _, item := range mt.catalog.Items() {
		if rawIDs[item.ID] {
			continue
		}
		type endpoint struct {
			zoneID    string
			remaining float64
		}
		var suppliers, consumers []endpoint
		for _, zone := range mt.input.Zones {
			if s := solB.Value(solver.SendVar(item.ID, zone.ID)); s > flowEps {
				suppliers = append(suppliers, endpoint{zone.ID, s})
			}
			if t := solB.Value(solver.TransferVar(item.ID, zone.ID)); t > flowEps {
				consumers = append(consumers, endpoint{zone.ID, t})
			}
		}
		for si := range suppliers {
			for ci := range consumers {
				s := &suppliers[si]
				c := &consumers[ci]
				if s.remaining <= flowEps {
					break
				}
				if c.remaining <= flowEps || s.zoneID == c.zoneID {
					continue
				}
				flow := math.Min(s.remaining, c.remaining)
				if flow > flowEps {
					itemFlows = append(itemFlows, planning.ItemFlow{
						ItemID:     item.ID,
						FromZoneID: s.zoneID,
						ToZoneID:   c.zoneID,
						Rate:       flow,
					})
					s.remaining -= flow
					c.remaining -= flow
				}
			}
		}
	}

	globalResourceUsage := make([]planning.RatedItem, 0)
	for _, res := range mt.catalog.RawResources() {
		usage := 0.0
		for _, zone := range mt.input.Zones {
			usage += solB.Value(solver.TransferVar(res.ID, zone.ID))
		}
		if usage > flowEps {
			globalResourceUsage = append(globalResourceUsage, planning.RatedItem{ItemID: res.ID, Rate: usage})
		}
	}

	netExports := make(map[string]float64)
	for _, item := range mt.catalog.Items() {
		if rawIDs[item.ID] {
			continue
		}
		net := 0.0
		for _, zone := range mt.input.Zones {
			net += solB.Value(solver.SendVar(item.ID, zone.ID))
			net -= solB.Value(solver.TransferVar(item.ID, zone.ID))
		}
		netExports[item.ID] = net
	}

	unmetTargets := make([]planning.UnmetTarget, 0)
	for _, t := range mt.input.Targets {
		if rawIDs[t.ItemID] {
			continue
		}
		if net := netExports[t.ItemID]; net < t.TargetRate-flowEps {
			unmetTargets = append(unmetTargets, planning.UnmetTarget{ItemID: t.ItemID, Shortfall: t.TargetRate - net})
		}
	}

	// Income only counts exports beyond what targets claim.
	totalIncome := 0.0
	for _, item := range mt.catalog.Items() {
		if item.Price <= 0 {
			continue
		}
		net := netExports[item.ID]
		if net <= flowEps {
			continue
		}
		needed := 0.0
		if t, ok := mt.input.TargetFor(item.ID); ok {
			needed = t.TargetRate
		}
		totalIncome += math.Max(0, net-needed) * item.Price
	}

	for _, zr := range zoneResults {
		if zr.OutputPortsUsed > zr.Zone.OutputPorts {
			warnings = append(warnings, fmt.Sprintf("%s: Output lines exceeded (%d > %d)", zr.Zone.Name, zr.OutputPortsUsed, zr.Zone.OutputPorts))
		}
		if zr.InputPortsUsed > zr.Zone.InputPorts {
			warnings = append(warnings, fmt.Sprintf("%s: Input lines exceeded (%d > %d)", zr.Zone.Name, zr.InputPortsUsed, zr.Zone.InputPorts))
		}
		if zr.Zone.MachineSlots > 0 && zr.TotalMachines > zr.Zone.MachineSlots {
			warnings = append(warnings, fmt.Sprintf("%s: Machine slots exceeded (%d > %d)", zr.Zone.Name, zr.TotalMachines, zr.Zone.MachineSlots))
		}
		if zr.Zone.AreaLimit > 0 && zr.AreaUsed > zr.Zone.AreaLimit {
			warnings = append(warnings, fmt.Sprintf("%s: Area exceeded (%.0f > %.0f)", zr.Zone.Name, zr.AreaUsed, zr.Zone.AreaLimit))
		}
	}

	solverFeasible := solB.Feasible
	feasible := solverFeasible && len(unmetTargets) == 0
	reason := planning.InfeasibleReason("")
	if !feasible {
		if solverFeasible {
			reason = planning.ReasonUnmetTargets
		} else {
			reason = planning.ReasonSolverInfeasible
		}
	}

	return &planning.CalculatorResult{
		Feasible:             feasible,
		SolverFeasible:       solverFeasible,
		InfeasibleReason:     reason,
		ZoneResults:          zoneResults,
		TotalIncome:          totalIncome,
		TotalOutputPortsUsed: totalOutputPortsUsed,
		GlobalResourceUsage:  globalResourceUsage,
		ItemFlows:            itemFlows,
		UnmetTargets:         unmetTargets,
		Warnings:             warnings,
		TransferOverhead:     transferOverhead,
	}
}
