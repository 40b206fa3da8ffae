package planning

import (
	"fmt"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
)

// ObjectiveMode selects which objective the built model carries.
type ObjectiveMode int

const (
	// ObjectiveProfit maximizes income minus transfer and machine penalties.
	ObjectiveProfit ObjectiveMode = iota

	// ObjectiveMinWaste minimizes unsold production while a floor constraint
	// keeps profit at the level an earlier profit solve achieved.
	ObjectiveMinWaste
)

// targetSlackPenalty makes target shortfall catastrophically expensive, so
// slack only ever activates when the target is genuinely unreachable.
const targetSlackPenalty = 1e9

// BuildOptions control one model construction.
type BuildOptions struct {
	// FixedMachines, when non-nil, pins every (recipe, zone) machine count to
	// the plan's value via cap constraints and drops the machine and area
	// capacity rows (the plan already satisfied them).
	FixedMachines MachinePlan

	ObjectiveMode ObjectiveMode

	// MinObjective installs a profit floor, used by waste minimization.
	MinObjective *float64
}

// ModelBuilder translates a catalogue plus a solve request into the tagged
// MILP model the solver adapter consumes. One builder serves every pipeline
// stage; stages differ only in the BuildOptions they pass.
type ModelBuilder struct {
	catalog *catalog.Catalog
	input   *planning.CalculatorInput
}

// NewModelBuilder creates a builder for one solve request.
func NewModelBuilder(cat *catalog.Catalog, input *planning.CalculatorInput) *ModelBuilder {
	return &ModelBuilder{catalog: cat, input: input}
}

// transferPenalty returns the per-unit logistics cost for the configured
// optimization mode, scaled by the catalogue's average sellable price.
func (b *ModelBuilder) transferPenalty(avgPrice float64) float64 {
	switch b.input.OptimizationMode {
	case planning.ModeMaxIncome:
		return 0
	case planning.ModeMinTransfers:
		return avgPrice * 100
	default:
		return b.input.TransferPenaltyOrDefault() * avgPrice * 2
	}
}

// Build assembles the model. It returns the model plus any non-fatal warnings
// (currently: targets naming raw resources, which are ignored).
//
// Every profit coefficient is also recorded separately so waste minimization
// can copy the full profit expression into its floor constraint.
func (b *ModelBuilder) Build(opts BuildOptions) (*solver.Model, []string) {
	dir := solver.Maximize
	if opts.ObjectiveMode == ObjectiveMinWaste {
		dir = solver.Minimize
	}
	m := solver.NewModel(dir)

	var warnings []string
	profit := make(map[solver.VarKey]float64)
	waste := make(map[solver.VarKey]float64)

	avgPrice := b.catalog.AverageSellablePrice()
	activationPenalty := b.input.ConsolidationWeightOrDefault() * avgPrice
	perMachinePenalty := b.input.MachineWeightOrDefault() * avgPrice / 10
	transferPenalty := b.transferPenalty(avgPrice)

	fixed := opts.FixedMachines

	// Zone capacity rows. With a fixed plan the machine and area rows carry no
	// coefficients; the plan was validated against them already.
	for _, z := range b.input.Zones {
		m.SetMax(solver.OutputLinesCon(z.ID), float64(z.OutputPorts))
		m.SetMax(solver.InputLinesCon(z.ID), float64(z.InputPorts))
		if z.MachineSlots > 0 {
			m.SetMax(solver.MachinesCon(z.ID), float64(z.MachineSlots))
		}
		if z.AreaLimit > 0 {
			m.SetMax(solver.AreaCon(z.ID), z.AreaLimit)
		}
	}

	// Recipe assignment variables, one per (recipe, zone).
	for _, r := range b.catalog.Recipes() {
		for _, z := range b.input.Zones {
			key := solver.RecipeAssignmentVar(r.ID, z.ID)
			if fixed == nil {
				m.AddCoeff(key, solver.MachinesCon(z.ID), 1)
				if area := b.catalog.MachineArea(r.MachineID); area > 0 {
					m.AddCoeff(key, solver.AreaCon(z.ID), area)
				}
				// A small cost per machine and per activated recipe keeps the
				// exploratory relaxation from scattering fractional machines
				// across zones for negligible gain.
				profit[key] -= perMachinePenalty + activationPenalty/100
			} else {
				capCon := solver.MachineCapCon(r.ID, z.ID)
				m.SetMax(capCon, float64(fixed.Get(AssignmentKey{RecipeID: r.ID, ZoneID: z.ID})))
				m.AddCoeff(key, capCon, 1)
			}
			waste[key] = 1.05
		}
	}

	rawIDs := b.catalog.RawResourceIDs()

	// Transfer and send variables plus their integer line counters. Transfers
	// pull from the pool through output-port lines; sends push to the pool (or
	// to sales) through input-port lines.
	for _, itemID := range b.catalog.SortedItemIDs() {
		item, _ := b.catalog.ItemByID(itemID)
		isRaw := rawIDs[itemID]
		target, targeted := b.input.TargetFor(itemID)
		sellableTarget := targeted && item.Price > 0

		for _, z := range b.input.Zones {
			transfer := solver.TransferVar(itemID, z.ID)
			if isRaw {
				profit[transfer] = 0
				waste[transfer] = 0
				m.AddCoeff(transfer, solver.RawResourceCon(itemID), 1)
			} else {
				// Pulling a finished item back into a zone forfeits the sale
				// price on top of the logistics penalty.
				profit[transfer] = -(transferPenalty + item.Price)
				waste[transfer] = 1
				m.AddCoeff(transfer, solver.GlobalPoolCon(itemID), 1)
			}
			if sellableTarget {
				m.AddCoeff(transfer, solver.SurplusCon(itemID), -1)
			}

			linkOut := solver.LinkOutCon(itemID, z.ID)
			m.SetMax(linkOut, 0)
			m.AddCoeff(transfer, linkOut, 1)
			lineOut := solver.LineVar(itemID, z.ID, solver.LineOut)
			m.Var(lineOut).Integer = true
			m.AddCoeff(lineOut, linkOut, -z.PortThroughput)
			m.AddCoeff(lineOut, solver.OutputLinesCon(z.ID), 1)

			if isRaw {
				continue
			}

			send := solver.SendVar(itemID, z.ID)
			profit[send] = item.Price
			if item.Price > 0 {
				waste[send] = 0
			} else {
				waste[send] = 1
			}
			m.AddCoeff(send, solver.GlobalPoolCon(itemID), -1)
			if sellableTarget {
				m.AddCoeff(send, solver.SurplusCon(itemID), 1)
			}

			linkIn := solver.LinkInCon(itemID, z.ID)
			m.SetMax(linkIn, 0)
			m.AddCoeff(send, linkIn, 1)
			lineIn := solver.LineVar(itemID, z.ID, solver.LineIn)
			m.Var(lineIn).Integer = true
			m.AddCoeff(lineIn, linkIn, -z.PortThroughput)
			m.AddCoeff(lineIn, solver.InputLinesCon(z.ID), 1)
		}

		if !isRaw {
			// The pool nets to zero or better: zones cannot pull more of an
			// item than other zones pushed.
			m.SetMax(solver.GlobalPoolCon(itemID), 0)
		}

		if sellableTarget {
			// Surplus beyond the target can be consumed back at cost, modeling
			// that targeted output is spoken for before it earns income. The
			// surplus row itself carries no bound, so it never constrains the
			// optimum; the coefficients are kept for accounting parity.
			consume := solver.TargetConsumeVar(itemID)
			profit[consume] = -item.Price
			waste[consume] = 0
			m.AddCoeff(consume, solver.SurplusCon(itemID), -1)
			capCon := solver.TargetCapCon(itemID)
			m.SetMax(capCon, target.TargetRate)
			m.AddCoeff(consume, capCon, 1)
		}
	}

	// Per-zone mass balance: production plus inbound transfers covers local
	// consumption plus outbound sends, with overproduction allowed.
	for _, itemID := range b.catalog.SortedItemIDs() {
		isRaw := rawIDs[itemID]
		for _, z := range b.input.Zones {
			con := solver.BalanceCon(itemID, z.ID)
			m.SetMin(con, 0)
			for _, r := range b.catalog.Recipes() {
				rv := solver.RecipeAssignmentVar(r.ID, z.ID)
				if r.OutputItemID == itemID {
					m.AddCoeff(rv, con, r.OutputRatePerMinute())
				}
				if rate := r.InputRatePerMinute(itemID); rate > 0 {
					m.AddCoeff(rv, con, -rate)
				}
			}
			m.AddCoeff(solver.TransferVar(itemID, z.ID), con, 1)
			if !isRaw {
				m.AddCoeff(solver.SendVar(itemID, z.ID), con, -1)
			}
		}
	}

	// Global extraction caps on raw resources. A constraint entry overrides
	// the item's base rate, including an explicit cap of zero; a base rate of
	// zero means unlimited.
	for _, item := range b.catalog.RawResources() {
		if rate, ok := b.input.ResourceCap(item.ID); ok {
			m.SetMax(solver.RawResourceCon(item.ID), rate)
		} else if item.BaseProductionRate > 0 {
			m.SetMax(solver.RawResourceCon(item.ID), item.BaseProductionRate)
		}
	}

	// Production targets: net export (sends minus transfers) of each targeted
	// item must reach the target rate, with a heavily penalized slack so an
	// unreachable target shows up as shortfall instead of infeasibility.
	for _, t := range b.input.Targets {
		if rawIDs[t.ItemID] {
			warnings = append(warnings, fmt.Sprintf("Target %q is a raw resource and was ignored; raw resources are supplied, not produced.", b.catalog.ItemName(t.ItemID)))
			continue
		}
		con := solver.TargetCon(t.ItemID)
		m.SetMin(con, t.TargetRate)
		slack := solver.TargetSlackVar(t.ItemID)
		m.AddCoeff(slack, con, 1)
		profit[slack] = -targetSlackPenalty
		waste[slack] = 0
		for _, z := range b.input.Zones {
			m.AddCoeff(solver.SendVar(t.ItemID, z.ID), con, 1)
			m.AddCoeff(solver.TransferVar(t.ItemID, z.ID), con, -1)
		}
	}

	// Locked assignments pin exact machine counts regardless of stage.
	for _, lock := range b.input.LockedAssignments {
		if !lock.Locked {
			continue
		}
		con := solver.LockCon(lock.RecipeID, lock.ZoneID)
		m.SetEqual(con, float64(lock.MachineCount))
		m.AddCoeff(solver.RecipeAssignmentVar(lock.RecipeID, lock.ZoneID), con, 1)
	}

	// Activate the requested objective. Waste minimization additionally copies
	// the full profit expression into a floor row so the cleanup solve cannot
	// trade income away for tidiness.
	for key, v := range m.Variables {
		if opts.ObjectiveMode == ObjectiveMinWaste {
			v.Objective = waste[key]
		} else {
			v.Objective = profit[key]
		}
	}
	if opts.ObjectiveMode == ObjectiveMinWaste && opts.MinObjective != nil {
		floor := solver.ObjectiveFloorCon()
		m.SetMin(floor, *opts.MinObjective)
		for key := range m.Variables {
			if coeff := profit[key]; coeff != 0 {
				m.AddCoeff(key, floor, coeff)
			}
		}
	}

	return m, warnings
}
