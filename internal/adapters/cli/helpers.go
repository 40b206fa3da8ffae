package cli

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/andrescamacho/zoneplanner-go/internal/adapters/milp"
	"github.com/andrescamacho/zoneplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/zoneplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/zoneplanner-go/internal/infrastructure/database"
)

// app wires the command handlers to their infrastructure for one CLI
// invocation. Every command builds one, uses it, and closes it.
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	mediator *common.Mediator

	catalogRepo *persistence.GormCatalogRepository
	zoneRepo    *persistence.GormZoneRepository
	layoutRepo  *persistence.GormLayoutRepository
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	catalogRepo := persistence.NewGormCatalogRepository(db)
	zoneRepo := persistence.NewGormZoneRepository(db)
	layoutRepo := persistence.NewGormLayoutRepository(db)

	solver := milp.NewSimplexSolver(
		milp.WithMaxNodes(cfg.Solver.MaxNodes),
		milp.WithIntegerTolerance(cfg.Solver.IntegerTolerance),
		milp.WithSimplexTolerance(cfg.Solver.SimplexTolerance),
	)
	service := appPlanning.NewPlannerService(solver)

	mediator := common.NewMediator()
	registrations := []error{
		common.RegisterHandler[*commands.SolvePlanCommand](mediator, commands.NewSolvePlanHandler(catalogRepo, service)),
		common.RegisterHandler[*commands.SaveLayoutCommand](mediator, commands.NewSaveLayoutHandler(layoutRepo)),
		common.RegisterHandler[*queries.TheoreticalMaxQuery](mediator, queries.NewTheoreticalMaxHandler(catalogRepo, service)),
		common.RegisterHandler[*queries.GetLayoutQuery](mediator, queries.NewGetLayoutHandler(layoutRepo)),
		common.RegisterHandler[*queries.ListLayoutsQuery](mediator, queries.NewListLayoutsHandler(layoutRepo)),
	}
	for _, err := range registrations {
		if err != nil {
			return nil, fmt.Errorf("failed to register handler: %w", err)
		}
	}

	return &app{
		cfg:         cfg,
		db:          db,
		mediator:    mediator,
		catalogRepo: catalogRepo,
		zoneRepo:    zoneRepo,
		layoutRepo:  layoutRepo,
	}, nil
}

func (a *app) Close() {
	_ = database.Close(a.db)
}

// parseItemRate parses a repeatable "item=rate" flag value.
func parseItemRate(s string) (string, float64, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("expected item=rate, got %q", s)
	}
	rate, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid rate in %q: %w", s, err)
	}
	return parts[0], rate, nil
}

// parseLock parses a repeatable "recipe:zone=count" flag value.
func parseLock(s string) (planning.ZoneAssignment, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return planning.ZoneAssignment{}, fmt.Errorf("expected recipe:zone=count, got %q", s)
	}
	ids := strings.SplitN(parts[0], ":", 2)
	if len(ids) != 2 || ids[0] == "" || ids[1] == "" {
		return planning.ZoneAssignment{}, fmt.Errorf("expected recipe:zone=count, got %q", s)
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil {
		return planning.ZoneAssignment{}, fmt.Errorf("invalid machine count in %q: %w", s, err)
	}
	return planning.ZoneAssignment{RecipeID: ids[0], ZoneID: ids[1], MachineCount: count, Locked: true}, nil
}
