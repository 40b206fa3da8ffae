package milp

import (
	"context"
	"math"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
)

type node struct {
	branches []row
}

// branchAndBound runs a depth-first search over the integer columns, solving
// the LP relaxation at each node and pruning against the incumbent. The
// ceiling branch is explored first: line variables must cover continuous
// flows from above, so rounding up tends to reach integer feasibility fast.
func (s *SimplexSolver) branchAndBound(ctx context.Context, p *problem) (*solver.Solution, error) {
	var best []float64
	bestMin := math.Inf(1) // incumbent objective in minimize sense
	bestObj := 0.0         // incumbent objective in the model's sense

	stack := []node{{}}
	visited := 0

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if visited >= s.maxNodes {
			break
		}
		visited++

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		isRoot := len(n.branches) == 0

		x, obj, status, err := s.solveRelaxation(p, n.branches)
		if err != nil {
			return nil, err
		}
		switch status {
		case relaxInfeasible:
			if isRoot {
				return solver.Infeasible(), nil
			}
			continue
		case relaxUnbounded:
			if isRoot {
				return nil, solver.ErrUnbounded
			}
			continue
		}

		minObj := obj
		if p.maximize {
			minObj = -obj
		}
		if minObj >= bestMin-1e-9 {
			continue
		}

		branchCol := s.fractionalColumn(p, x)
		if branchCol < 0 {
			best = x
			bestMin = minObj
			bestObj = obj
			continue
		}

		floor := math.Floor(x[branchCol] + s.intTol)
		down := append(append([]row{}, n.branches...), row{
			coeffs: map[int]float64{branchCol: 1}, rhs: floor, kind: rowLE,
		})
		up := append(append([]row{}, n.branches...), row{
			coeffs: map[int]float64{branchCol: 1}, rhs: floor + 1, kind: rowGE,
		})
		stack = append(stack, node{branches: down}, node{branches: up})
	}

	if best == nil {
		if visited >= s.maxNodes {
			return nil, solver.ErrNodeLimit
		}
		return solver.Infeasible(), nil
	}

	for _, col := range p.integer {
		best[col] = math.Round(best[col])
	}
	return p.solution(best, bestObj), nil
}

// fractionalColumn returns the first integer column whose relaxed value is
// not whole, or -1 when the point is integer feasible. First-in-column-order
// keeps the search deterministic.
func (s *SimplexSolver) fractionalColumn(p *problem, x []float64) int {
	for _, col := range p.integer {
		if math.Abs(x[col]-math.Round(x[col])) > s.intTol {
			return col
		}
	}
	return -1
}
