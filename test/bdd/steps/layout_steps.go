package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/andrescamacho/zoneplanner-go/internal/adapters/persistence"
	appplanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/zoneplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/infrastructure/database"
)

type layoutContext struct {
	db          *gorm.DB
	repo        appplanning.LayoutRepository
	saveHandler *commands.SaveLayoutHandler
	getHandler  *queries.GetLayoutHandler
	listHandler *queries.ListLayoutsHandler

	result *planning.CalculatorResult
	layout *planning.Layout
	err    error
}

func (lc *layoutContext) reset() error {
	if lc.db != nil {
		_ = database.Close(lc.db)
	}
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("opening test database: %w", err)
	}
	lc.db = db
	lc.repo = persistence.NewGormLayoutRepository(db)
	lc.saveHandler = commands.NewSaveLayoutHandler(lc.repo)
	lc.getHandler = queries.NewGetLayoutHandler(lc.repo)
	lc.listHandler = queries.NewListLayoutsHandler(lc.repo)
	lc.result = nil
	lc.layout = nil
	lc.err = nil
	return nil
}

func (lc *layoutContext) aSolvedPlanWithZoneRunningMachines(zoneID string, count int, recipeID string) error {
	lc.result = &planning.CalculatorResult{
		Feasible: true,
		ZoneResults: []*planning.ZoneResult{
			{
				Zone: &planning.Zone{ID: zoneID, Name: zoneID},
				Assignments: []planning.ZoneAssignment{
					{ZoneID: zoneID, RecipeID: recipeID, MachineCount: count, Utilization: float64(count)},
				},
			},
		},
	}
	return nil
}

func (lc *layoutContext) iSaveTheLayoutAs(name string) error {
	response, err := lc.saveHandler.Handle(context.Background(), &commands.SaveLayoutCommand{
		Name:   name,
		Result: lc.result,
	})
	if err != nil {
		return err
	}
	lc.layout = response.(*commands.SaveLayoutResponse).Layout
	return nil
}

func (lc *layoutContext) theLayoutShouldContainAssignments(name string, count int) error {
	response, err := lc.getHandler.Handle(context.Background(), &queries.GetLayoutQuery{Name: name})
	if err != nil {
		return err
	}
	layout := response.(*queries.GetLayoutResponse).Layout
	if len(layout.Assignments) != count {
		return fmt.Errorf("expected %d assignments but got %d", count, len(layout.Assignments))
	}
	lc.layout = layout
	return nil
}

func (lc *layoutContext) theLayoutShouldAssignZone(name, zoneID string) error {
	response, err := lc.getHandler.Handle(context.Background(), &queries.GetLayoutQuery{Name: name})
	if err != nil {
		return err
	}
	for _, a := range response.(*queries.GetLayoutResponse).Layout.Assignments {
		if a.ZoneID == zoneID {
			return nil
		}
	}
	return fmt.Errorf("layout %q has no assignment for zone %q", name, zoneID)
}

func (lc *layoutContext) listingLayoutsShouldInclude(name string) error {
	response, err := lc.listHandler.Handle(context.Background(), &queries.ListLayoutsQuery{})
	if err != nil {
		return err
	}
	for _, l := range response.(*queries.ListLayoutsResponse).Layouts {
		if l.Name == name {
			return nil
		}
	}
	return fmt.Errorf("layout %q not found in listing", name)
}

func (lc *layoutContext) iDeleteTheLayout(name string) error {
	return lc.repo.DeleteLayout(context.Background(), name)
}

func (lc *layoutContext) fetchingTheLayoutShouldFail(name string) error {
	_, err := lc.getHandler.Handle(context.Background(), &queries.GetLayoutQuery{Name: name})
	if err == nil {
		return fmt.Errorf("expected fetching layout %q to fail", name)
	}
	return nil
}

// InitializeLayoutScenario registers layout persistence step definitions.
func InitializeLayoutScenario(ctx *godog.ScenarioContext) {
	lc := &layoutContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, lc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if lc.db != nil {
			_ = database.Close(lc.db)
			lc.db = nil
		}
		return ctx, nil
	})

	ctx.Step(`^a solved plan with zone "([^"]*)" running (\d+) "([^"]*)" machines$`, lc.aSolvedPlanWithZoneRunningMachines)
	ctx.Step(`^I save the layout as "([^"]*)"$`, lc.iSaveTheLayoutAs)
	ctx.Step(`^the layout is saved as "([^"]*)"$`, lc.iSaveTheLayoutAs)
	ctx.Step(`^the layout "([^"]*)" should contain (\d+) assignments?$`, lc.theLayoutShouldContainAssignments)
	ctx.Step(`^the layout "([^"]*)" should assign zone "([^"]*)"$`, lc.theLayoutShouldAssignZone)
	ctx.Step(`^listing layouts should include "([^"]*)"$`, lc.listingLayoutsShouldInclude)
	ctx.Step(`^I delete the layout "([^"]*)"$`, lc.iDeleteTheLayout)
	ctx.Step(`^fetching the layout "([^"]*)" should fail$`, lc.fetchingTheLayoutShouldFail)
}
