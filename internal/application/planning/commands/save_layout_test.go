package commands_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/zoneplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

type memoryLayoutRepo struct {
	layouts map[string]*planning.Layout
}

func newMemoryLayoutRepo() *memoryLayoutRepo {
	return &memoryLayoutRepo{layouts: make(map[string]*planning.Layout)}
}

func (r *memoryLayoutRepo) SaveLayout(_ context.Context, layout *planning.Layout) error {
	r.layouts[layout.Name] = layout
	return nil
}

func (r *memoryLayoutRepo) GetLayout(_ context.Context, name string) (*planning.Layout, error) {
	l, ok := r.layouts[name]
	if !ok {
		return nil, fmt.Errorf("layout not found: %s", name)
	}
	return l, nil
}

func (r *memoryLayoutRepo) ListLayouts(context.Context) ([]*planning.Layout, error) {
	out := make([]*planning.Layout, 0, len(r.layouts))
	for _, l := range r.layouts {
		out = append(out, l)
	}
	return out, nil
}

func (r *memoryLayoutRepo) DeleteLayout(_ context.Context, name string) error {
	if _, ok := r.layouts[name]; !ok {
		return fmt.Errorf("layout not found: %s", name)
	}
	delete(r.layouts, name)
	return nil
}

func solvedResult() *planning.CalculatorResult {
	return &planning.CalculatorResult{
		Feasible: true,
		ZoneResults: []*planning.ZoneResult{
			{
				Zone: &planning.Zone{ID: "a"},
				Assignments: []planning.ZoneAssignment{
					{ZoneID: "a", RecipeID: "smelt-iron", MachineCount: 5, Utilization: 5},
				},
			},
			{
				Zone: &planning.Zone{ID: "b"},
				Assignments: []planning.ZoneAssignment{
					{ZoneID: "b", RecipeID: "press-gear", MachineCount: 2, Utilization: 2},
				},
			},
		},
	}
}

func TestSaveLayoutHandlerCollectsAllZoneAssignments(t *testing.T) {
	// Arrange
	repo := newMemoryLayoutRepo()
	handler := commands.NewSaveLayoutHandler(repo)
	cmd := &commands.SaveLayoutCommand{Name: "main-base", Result: solvedResult()}

	// Act
	response, err := handler.Handle(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	layout := response.(*commands.SaveLayoutResponse).Layout
	assert.NotEmpty(t, layout.ID)
	assert.Equal(t, "main-base", layout.Name)
	require.Len(t, layout.Assignments, 2)
	assert.Equal(t, "smelt-iron", layout.Assignments[0].RecipeID)
	assert.Equal(t, "press-gear", layout.Assignments[1].RecipeID)

	stored, err := repo.GetLayout(context.Background(), "main-base")
	require.NoError(t, err)
	assert.Equal(t, layout, stored)
}

func TestSaveLayoutHandlerRequiresNameAndResult(t *testing.T) {
	// Arrange
	handler := commands.NewSaveLayoutHandler(newMemoryLayoutRepo())

	// Act & Assert
	_, err := handler.Handle(context.Background(), &commands.SaveLayoutCommand{Result: solvedResult()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	_, err = handler.Handle(context.Background(), &commands.SaveLayoutCommand{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result is required")
}
