// Package milp adapts the planner's tagged MILP models onto gonum's simplex
// solver, adding branch and bound for the integer line variables. It is the
// concrete implementation of the solver.Solver contract.
package milp

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
)

const (
	defaultIntegerTolerance = 1e-6
	defaultMaxNodes         = 20000
)

// SimplexSolver solves tagged models by expanding them to standard form,
// solving the LP relaxation with gonum, and branching on fractional integer
// columns until an integer-feasible optimum is found.
type SimplexSolver struct {
	simplexTol float64 // 0 lets gonum pick its default
	intTol     float64
	maxNodes   int
}

// Option configures a SimplexSolver.
type Option func(*SimplexSolver)

// WithSimplexTolerance overrides the LP tolerance handed to gonum.
func WithSimplexTolerance(tol float64) Option {
	return func(s *SimplexSolver) { s.simplexTol = tol }
}

// WithIntegerTolerance sets how close a value must be to a whole number to
// count as integral.
func WithIntegerTolerance(tol float64) Option {
	return func(s *SimplexSolver) { s.intTol = tol }
}

// WithMaxNodes caps the branch and bound search.
func WithMaxNodes(n int) Option {
	return func(s *SimplexSolver) { s.maxNodes = n }
}

// NewSimplexSolver creates a solver with default tolerances.
func NewSimplexSolver(opts ...Option) *SimplexSolver {
	s := &SimplexSolver{
		intTol:   defaultIntegerTolerance,
		maxNodes: defaultMaxNodes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve implements solver.Solver. Infeasibility comes back as data; errors
// are reserved for cancellation, unbounded objectives and solver failures.
func (s *SimplexSolver) Solve(ctx context.Context, model *solver.Model) (*solver.Solution, error) {
	p := newProblem(model)
	if p.infeasible {
		return solver.Infeasible(), nil
	}
	if len(p.cols) == 0 {
		return &solver.Solution{Feasible: true, Values: map[solver.VarKey]float64{}}, nil
	}
	return s.branchAndBound(ctx, p)
}

type relaxStatus int

const (
	relaxOptimal relaxStatus = iota
	relaxInfeasible
	relaxUnbounded
)

// solveRelaxation solves the LP relaxation of the problem plus any branching
// rows, in standard form (min c'x, Ax=b, x>=0): one slack column per
// inequality row, rows with negative right-hand side negated in place.
func (s *SimplexSolver) solveRelaxation(p *problem, branches []row) ([]float64, float64, relaxStatus, error) {
	rows := make([]row, 0, len(p.rows)+len(branches))
	rows = append(rows, p.rows...)
	rows = append(rows, branches...)

	ncols := len(p.cols)

	// With no rows at all the optimum is trivial: x=0 unless some column can
	// decrease the objective without limit. gonum cannot take an empty matrix.
	if len(rows) == 0 {
		for _, c := range p.obj {
			if c < 0 {
				return nil, 0, relaxUnbounded, nil
			}
		}
		return make([]float64, ncols), 0, relaxOptimal, nil
	}
	nslack := 0
	for _, r := range rows {
		if r.kind != rowEQ {
			nslack++
		}
	}

	n := ncols + nslack
	c := make([]float64, n)
	copy(c, p.obj)

	a := mat.NewDense(len(rows), n, nil)
	b := make([]float64, len(rows))

	slack := ncols
	for i, r := range rows {
		for col, coeff := range r.coeffs {
			a.Set(i, col, coeff)
		}
		b[i] = r.rhs
		switch r.kind {
		case rowLE:
			a.Set(i, slack, 1)
			slack++
		case rowGE:
			a.Set(i, slack, -1)
			slack++
		}
		if b[i] < 0 {
			for j := 0; j < n; j++ {
				a.Set(i, j, -a.At(i, j))
			}
			b[i] = -b[i]
		}
	}

	optF, optX, err := lp.Simplex(c, a, b, s.simplexTol, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, 0, relaxInfeasible, nil
		case errors.Is(err, lp.ErrUnbounded):
			return nil, 0, relaxUnbounded, nil
		default:
			return nil, 0, relaxInfeasible, fmt.Errorf("milp: simplex failed: %w", err)
		}
	}

	x := make([]float64, ncols)
	copy(x, optX[:ncols])

	obj := optF
	if p.maximize {
		obj = -obj
	}
	return x, obj, relaxOptimal, nil
}
