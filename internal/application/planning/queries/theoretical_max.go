package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// TheoreticalMaxQuery asks for the zoneless income upper bound of a request.
type TheoreticalMaxQuery struct {
	Input *planning.CalculatorInput
}

// TheoreticalMaxResponse carries the bound; +Inf when uncapped.
type TheoreticalMaxResponse struct {
	Income float64
}

type TheoreticalMaxHandler struct {
	catalogRepo appPlanning.CatalogRepository
	service     *appPlanning.PlannerService
}

func NewTheoreticalMaxHandler(catalogRepo appPlanning.CatalogRepository, service *appPlanning.PlannerService) *TheoreticalMaxHandler {
	return &TheoreticalMaxHandler{catalogRepo: catalogRepo, service: service}
}

func (h *TheoreticalMaxHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*TheoreticalMaxQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TheoreticalMaxQuery")
	}
	if query.Input == nil {
		return nil, fmt.Errorf("input is required")
	}

	cat, err := h.catalogRepo.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	income, err := h.service.TheoreticalMax(ctx, cat, query.Input)
	if err != nil {
		return nil, err
	}
	return &TheoreticalMaxResponse{Income: income}, nil
}
