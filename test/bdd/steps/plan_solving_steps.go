package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/zoneplanner-go/internal/adapters/milp"
	appplanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

type planSolvingContext struct {
	cat     *catalog.Catalog
	input   *planning.CalculatorInput
	service *appplanning.PlannerService

	result         *planning.CalculatorResult
	theoreticalMax float64
	err            error
}

func (psc *planSolvingContext) reset() {
	psc.cat = nil
	psc.input = &planning.CalculatorInput{}
	psc.service = appplanning.NewPlannerService(milp.NewSimplexSolver())
	psc.result = nil
	psc.theoreticalMax = 0
	psc.err = nil
}

func (psc *planSolvingContext) aCatalogueWithAnIronSmeltingChain() error {
	items := []*catalog.Item{
		{ID: "ore", Name: "Iron Ore", IsRawResource: true},
		{ID: "iron", Name: "Iron Ingot", Price: 2},
	}
	machines := []*catalog.Machine{{ID: "smelter", Name: "Smelter"}}
	recipes := []*catalog.Recipe{{
		ID: "smelt-iron", MachineID: "smelter", Name: "Smelt Iron",
		OutputItemID: "iron", OutputAmount: 60, CraftingTime: 60,
		Inputs: []catalog.RecipeInput{{ItemID: "ore", Amount: 60}},
	}}
	psc.cat = catalog.NewCatalog(items, recipes, machines)
	return nil
}

func (psc *planSolvingContext) aZoneWithPorts(id string, outputPorts, inputPorts int) error {
	psc.input.Zones = append(psc.input.Zones, &planning.Zone{
		ID: id, Name: id, OutputPorts: outputPorts, InputPorts: inputPorts, PortThroughput: 30,
	})
	return nil
}

func (psc *planSolvingContext) aProductionTargetPerMinute(rate float64, itemID string) error {
	psc.input.Targets = append(psc.input.Targets, planning.ProductionTarget{ItemID: itemID, TargetRate: rate})
	return nil
}

func (psc *planSolvingContext) rawResourceCappedAt(itemID string, maxRate float64) error {
	psc.input.ResourceConstraints = append(psc.input.ResourceConstraints, planning.ResourceConstraint{
		ItemID: itemID, MaxRate: maxRate,
	})
	return nil
}

func (psc *planSolvingContext) iSolveTheProductionPlan() error {
	psc.result, psc.err = psc.service.Solve(context.Background(), psc.cat, psc.input, nil)
	return psc.err
}

func (psc *planSolvingContext) iComputeTheTheoreticalMaximumIncome() error {
	psc.theoreticalMax, psc.err = psc.service.TheoreticalMax(context.Background(), psc.cat, psc.input)
	return psc.err
}

func (psc *planSolvingContext) thePlanShouldBeFeasible() error {
	if psc.result == nil {
		return fmt.Errorf("no result available")
	}
	if !psc.result.Feasible {
		return fmt.Errorf("expected feasible plan but got reason %q", psc.result.InfeasibleReason)
	}
	return nil
}

func (psc *planSolvingContext) thePlanShouldNotBeFeasible() error {
	if psc.result == nil {
		return fmt.Errorf("no result available")
	}
	if psc.result.Feasible {
		return fmt.Errorf("expected infeasible plan but it was feasible")
	}
	return nil
}

func (psc *planSolvingContext) zoneShouldRunMachines(zoneID string, machines int) error {
	for _, zr := range psc.result.ZoneResults {
		if zr.Zone.ID != zoneID {
			continue
		}
		total := 0
		for _, a := range zr.Assignments {
			total += a.MachineCount
		}
		if total != machines {
			return fmt.Errorf("expected %d machines in zone %q but got %d", machines, zoneID, total)
		}
		return nil
	}
	return fmt.Errorf("zone %q not found in result", zoneID)
}

func (psc *planSolvingContext) theTotalIncomeShouldBe(expected float64) error {
	if math.Abs(psc.result.TotalIncome-expected) > 1e-3 {
		return fmt.Errorf("expected total income %.2f but got %.2f", expected, psc.result.TotalIncome)
	}
	return nil
}

func (psc *planSolvingContext) theUnmetTargetShouldReportShortfall(itemID string, shortfall float64) error {
	for _, u := range psc.result.UnmetTargets {
		if u.ItemID != itemID {
			continue
		}
		if math.Abs(u.Shortfall-shortfall) > 1e-3 {
			return fmt.Errorf("expected shortfall %.2f for %q but got %.2f", shortfall, itemID, u.Shortfall)
		}
		return nil
	}
	return fmt.Errorf("no unmet target recorded for %q", itemID)
}

func (psc *planSolvingContext) theTheoreticalMaximumIncomeShouldBe(expected float64) error {
	if math.Abs(psc.theoreticalMax-expected) > 1e-3 {
		return fmt.Errorf("expected theoretical maximum %.2f but got %.2f", expected, psc.theoreticalMax)
	}
	return nil
}

// InitializePlanSolvingScenario registers solve pipeline step definitions.
func InitializePlanSolvingScenario(ctx *godog.ScenarioContext) {
	psc := &planSolvingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		psc.reset()
		return ctx, nil
	})

	ctx.Step(`^a catalogue with an iron smelting chain$`, psc.aCatalogueWithAnIronSmeltingChain)
	ctx.Step(`^a zone "([^"]*)" with (\d+) output ports and (\d+) input ports$`, psc.aZoneWithPorts)
	ctx.Step(`^a production target of ([0-9.]+) "([^"]*)" per minute$`, psc.aProductionTargetPerMinute)
	ctx.Step(`^the raw resource "([^"]*)" is capped at ([0-9.]+) per minute$`, psc.rawResourceCappedAt)
	ctx.Step(`^I solve the production plan$`, psc.iSolveTheProductionPlan)
	ctx.Step(`^I compute the theoretical maximum income$`, psc.iComputeTheTheoreticalMaximumIncome)
	ctx.Step(`^the plan should be feasible$`, psc.thePlanShouldBeFeasible)
	ctx.Step(`^the plan should not be feasible$`, psc.thePlanShouldNotBeFeasible)
	ctx.Step(`^zone "([^"]*)" should run (\d+) machines$`, psc.zoneShouldRunMachines)
	ctx.Step(`^the total income should be ([0-9.]+)$`, psc.theTotalIncomeShouldBe)
	ctx.Step(`^the unmet target for "([^"]*)" should report a shortfall of ([0-9.]+)$`, psc.theUnmetTargetShouldReportShortfall)
	ctx.Step(`^the theoretical maximum income should be ([0-9.]+)$`, psc.theTheoreticalMaximumIncomeShouldBe)
}
