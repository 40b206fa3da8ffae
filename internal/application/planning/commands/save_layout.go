package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// SaveLayoutCommand persists the zone assignments of a solved result under a
// name, so the plan can be reloaded later as locked assignments.
type SaveLayoutCommand struct {
	Name   string
	Result *planning.CalculatorResult
}

// SaveLayoutResponse returns the stored layout.
type SaveLayoutResponse struct {
	Layout *planning.Layout
}

type SaveLayoutHandler struct {
	layoutRepo appPlanning.LayoutRepository
}

func NewSaveLayoutHandler(layoutRepo appPlanning.LayoutRepository) *SaveLayoutHandler {
	return &SaveLayoutHandler{layoutRepo: layoutRepo}
}

func (h *SaveLayoutHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SaveLayoutCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveLayoutCommand")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Result == nil {
		return nil, fmt.Errorf("result is required")
	}

	layout := &planning.Layout{
		ID:        uuid.New().String(),
		Name:      cmd.Name,
		CreatedAt: time.Now(),
	}
	for _, zr := range cmd.Result.ZoneResults {
		layout.Assignments = append(layout.Assignments, zr.Assignments...)
	}

	if err := h.layoutRepo.SaveLayout(ctx, layout); err != nil {
		return nil, fmt.Errorf("saving layout %q: %w", cmd.Name, err)
	}
	return &SaveLayoutResponse{Layout: layout}, nil
}
