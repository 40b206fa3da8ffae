package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// SolvePlanCommand runs the full optimization pipeline for one request.
type SolvePlanCommand struct {
	Input *planning.CalculatorInput

	// IncludeTheoreticalMax also solves the zoneless baseline and attaches it
	// to the result for comparison.
	IncludeTheoreticalMax bool

	// OnProgress, when set, receives stage events as the pipeline advances.
	OnProgress planning.ProgressFunc
}

// SolvePlanResponse wraps the materialized result.
type SolvePlanResponse struct {
	Result *planning.CalculatorResult
}

// SolvePlanHandler loads the catalogue and delegates to the planner service.
type SolvePlanHandler struct {
	catalogRepo appPlanning.CatalogRepository
	service     *appPlanning.PlannerService
}

// NewSolvePlanHandler creates a new solve handler.
func NewSolvePlanHandler(catalogRepo appPlanning.CatalogRepository, service *appPlanning.PlannerService) *SolvePlanHandler {
	return &SolvePlanHandler{catalogRepo: catalogRepo, service: service}
}

func (h *SolvePlanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SolvePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SolvePlanCommand")
	}
	if cmd.Input == nil {
		return nil, fmt.Errorf("input is required")
	}

	cat, err := h.catalogRepo.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	result, err := h.service.Solve(ctx, cat, cmd.Input, cmd.OnProgress)
	if err != nil {
		return nil, err
	}

	if cmd.IncludeTheoreticalMax {
		max, err := h.service.TheoreticalMax(ctx, cat, cmd.Input)
		if err != nil {
			return nil, fmt.Errorf("theoretical max: %w", err)
		}
		result.TheoreticalMaxIncome = &max
	}

	return &SolvePlanResponse{Result: result}, nil
}
