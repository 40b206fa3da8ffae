package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/zoneplanner-go/internal/application/planning"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// GetLayoutQuery fetches one saved layout by name.
type GetLayoutQuery struct {
	Name string
}

type GetLayoutResponse struct {
	Layout *planning.Layout
}

type GetLayoutHandler struct {
	layoutRepo appPlanning.LayoutRepository
}

func NewGetLayoutHandler(layoutRepo appPlanning.LayoutRepository) *GetLayoutHandler {
	return &GetLayoutHandler{layoutRepo: layoutRepo}
}

func (h *GetLayoutHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetLayoutQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetLayoutQuery")
	}
	if query.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	layout, err := h.layoutRepo.GetLayout(ctx, query.Name)
	if err != nil {
		return nil, err
	}
	return &GetLayoutResponse{Layout: layout}, nil
}

// ListLayoutsQuery fetches all saved layouts.
type ListLayoutsQuery struct{}

type ListLayoutsResponse struct {
	Layouts []*planning.Layout
}

type ListLayoutsHandler struct {
	layoutRepo appPlanning.LayoutRepository
}

func NewListLayoutsHandler(layoutRepo appPlanning.LayoutRepository) *ListLayoutsHandler {
	return &ListLayoutsHandler{layoutRepo: layoutRepo}
}

func (h *ListLayoutsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListLayoutsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListLayoutsQuery")
	}
	layouts, err := h.layoutRepo.ListLayouts(ctx)
	if err != nil {
		return nil, err
	}
	return &ListLayoutsResponse{Layouts: layouts}, nil
}
