package milp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/zoneplanner-go/internal/adapters/milp"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
)

var (
	varX = solver.TransferVar("x", "z")
	varY = solver.TransferVar("y", "z")
)

func TestSolveMaximizesSimpleLP(t *testing.T) {
	// Arrange: max 3x+2y, x+y <= 4, x <= 2
	m := solver.NewModel(solver.Maximize)
	m.Var(varX).Objective = 3
	m.Var(varY).Objective = 2
	sum := solver.GlobalPoolCon("sum")
	m.AddCoeff(varX, sum, 1)
	m.AddCoeff(varY, sum, 1)
	m.SetMax(sum, 4)
	capX := solver.GlobalPoolCon("capX")
	m.AddCoeff(varX, capX, 1)
	m.SetMax(capX, 2)

	// Act
	sol, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.NoError(t, err)
	require.True(t, sol.Feasible)
	assert.InDelta(t, 10.0, sol.Objective, 1e-6)
	assert.InDelta(t, 2.0, sol.Value(varX), 1e-6)
	assert.InDelta(t, 2.0, sol.Value(varY), 1e-6)
	assert.Zero(t, sol.Value(solver.TransferVar("absent", "z")))
}

func TestSolveMinimizesWithLowerBound(t *testing.T) {
	// Arrange: min x, x >= 3
	m := solver.NewModel(solver.Minimize)
	m.Var(varX).Objective = 1
	con := solver.GlobalPoolCon("floor")
	m.AddCoeff(varX, con, 1)
	m.SetMin(con, 3)

	// Act
	sol, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.NoError(t, err)
	require.True(t, sol.Feasible)
	assert.InDelta(t, 3.0, sol.Objective, 1e-6)
	assert.InDelta(t, 3.0, sol.Value(varX), 1e-6)
}

func TestSolveHonorsEqualityRow(t *testing.T) {
	// Arrange: max x, x == 2.5
	m := solver.NewModel(solver.Maximize)
	m.Var(varX).Objective = 1
	con := solver.GlobalPoolCon("pin")
	m.AddCoeff(varX, con, 1)
	m.SetEqual(con, 2.5)

	// Act
	sol, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.NoError(t, err)
	require.True(t, sol.Feasible)
	assert.InDelta(t, 2.5, sol.Value(varX), 1e-6)
}

func TestSolveRoundsIntegerColumnDown(t *testing.T) {
	// Arrange: max 2x, x <= 2.5, x integer
	m := solver.NewModel(solver.Maximize)
	line := solver.LineVar("x", "z", solver.LineOut)
	m.Var(line).Objective = 2
	m.Var(line).Integer = true
	con := solver.LinkOutCon("x", "z")
	m.AddCoeff(line, con, 1)
	m.SetMax(con, 2.5)

	// Act
	sol, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.NoError(t, err)
	require.True(t, sol.Feasible)
	assert.InDelta(t, 2.0, sol.Value(line), 1e-9)
	assert.InDelta(t, 4.0, sol.Objective, 1e-6)
}

func TestSolveRoundsIntegerColumnUpToCoverFlow(t *testing.T) {
	// Arrange: min y, 30y >= 45, y integer. Lines must cover flow from above.
	m := solver.NewModel(solver.Minimize)
	line := solver.LineVar("x", "z", solver.LineOut)
	m.Var(line).Objective = 1
	m.Var(line).Integer = true
	con := solver.LinkOutCon("x", "z")
	m.AddCoeff(line, con, 30)
	m.SetMin(con, 45)

	// Act
	sol, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.NoError(t, err)
	require.True(t, sol.Feasible)
	assert.InDelta(t, 2.0, sol.Value(line), 1e-9)
}

func TestSolveReportsInfeasibilityAsData(t *testing.T) {
	// Arrange: x >= 5 and x <= 3
	m := solver.NewModel(solver.Maximize)
	m.Var(varX).Objective = 1
	con := solver.GlobalPoolCon("contradiction")
	m.AddCoeff(varX, con, 1)
	m.SetMin(con, 5)
	m.SetMax(con, 3)

	// Act
	sol, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.NoError(t, err)
	assert.False(t, sol.Feasible)
}

func TestSolveDetectsTriviallyInfeasibleRow(t *testing.T) {
	// Arrange: a bounded row no variable participates in
	m := solver.NewModel(solver.Maximize)
	m.Var(varX).Objective = 1
	capX := solver.GlobalPoolCon("capX")
	m.AddCoeff(varX, capX, 1)
	m.SetMax(capX, 3)
	m.SetMin(solver.TargetCon("unproducible"), 5)

	// Act
	sol, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.NoError(t, err)
	assert.False(t, sol.Feasible)
}

func TestSolveReturnsErrUnbounded(t *testing.T) {
	// Arrange: max x+y with only y capped
	m := solver.NewModel(solver.Maximize)
	m.Var(varX).Objective = 1
	m.Var(varY).Objective = 1
	capY := solver.GlobalPoolCon("capY")
	m.AddCoeff(varY, capY, 1)
	m.SetMax(capY, 5)

	// Act
	_, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.ErrorIs(t, err, solver.ErrUnbounded)
}

func TestSolveEmptyModelIsFeasible(t *testing.T) {
	// Arrange
	m := solver.NewModel(solver.Maximize)

	// Act
	sol, err := milp.NewSimplexSolver().Solve(context.Background(), m)

	// Assert
	require.NoError(t, err)
	assert.True(t, sol.Feasible)
	assert.Zero(t, sol.Objective)
}

func TestSolveStopsOnCancelledContext(t *testing.T) {
	// Arrange
	m := solver.NewModel(solver.Maximize)
	m.Var(varX).Objective = 1
	con := solver.GlobalPoolCon("capX")
	m.AddCoeff(varX, con, 1)
	m.SetMax(con, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := milp.NewSimplexSolver().Solve(ctx, m)

	// Assert
	require.ErrorIs(t, err, context.Canceled)
}
