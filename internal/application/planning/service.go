package planning

import (
	"context"

	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
)

// PlannerService is the application facade over the solve pipeline. It owns
// request validation and pipeline orchestration; the solver implementation
// and the catalogue source are injected.
type PlannerService struct {
	solver solver.Solver
}

// NewPlannerService creates a planner using the given MILP solver.
func NewPlannerService(s solver.Solver) *PlannerService {
	return &PlannerService{solver: s}
}

// Solve validates the request and runs the full optimization pipeline.
// Validation failures return a *catalog.ValidationError; solver-level
// infeasibility is not an error and comes back inside the result.
// The context cancels the solve between branch and bound nodes.
func (s *PlannerService) Solve(ctx context.Context, cat *catalog.Catalog, input *planning.CalculatorInput, onProgress planning.ProgressFunc) (*planning.CalculatorResult, error) {
	if err := ValidateInput(cat, input); err != nil {
		return nil, err
	}
	logger := common.LoggerFromContext(ctx)
	p := newPipeline(cat, input, s.solver, logger, onProgress)
	return p.run(ctx)
}

// TheoreticalMax validates the request and solves the zoneless upper bound.
func (s *PlannerService) TheoreticalMax(ctx context.Context, cat *catalog.Catalog, input *planning.CalculatorInput) (float64, error) {
	if err := ValidateInput(cat, input); err != nil {
		return 0, err
	}
	return TheoreticalMaxIncome(ctx, cat, input, s.solver)
}
