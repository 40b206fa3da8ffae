package milp

import (
	"math"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/solver"
)

type rowKind int

const (
	rowLE rowKind = iota
	rowGE
	rowEQ
)

// row is one linear restriction over the expanded columns.
type row struct {
	coeffs map[int]float64
	rhs    float64
	kind   rowKind
}

// problem is the flat numeric expansion of a tagged model: columns in
// VarKey.Less order, rows in ConKey.Less order, plus the reverse lookup that
// maps the optimum back onto keys. All columns are >= 0.
type problem struct {
	cols     []solver.VarKey
	colIndex map[solver.VarKey]int
	obj      []float64 // always minimize sense
	rows     []row
	integer  []int // column indices restricted to whole values, ascending
	maximize bool

	// trivially infeasible when a bounded row has no participating columns
	// and zero violates its bound (e.g. a target on an unproducible item).
	infeasible bool
}

func newProblem(m *solver.Model) *problem {
	p := &problem{
		colIndex: make(map[solver.VarKey]int),
		maximize: m.Direction == solver.Maximize,
	}

	for _, key := range m.SortedVarKeys() {
		idx := len(p.cols)
		p.cols = append(p.cols, key)
		p.colIndex[key] = idx

		v := m.Variables[key]
		obj := v.Objective
		if p.maximize {
			obj = -obj
		}
		p.obj = append(p.obj, obj)
		if v.Integer {
			p.integer = append(p.integer, idx)
		}
	}

	// constraint -> column coefficients
	byCon := make(map[solver.ConKey]map[int]float64)
	for key, v := range m.Variables {
		idx := p.colIndex[key]
		for con, coeff := range v.Coeffs {
			if coeff == 0 {
				continue
			}
			cc, ok := byCon[con]
			if !ok {
				cc = make(map[int]float64)
				byCon[con] = cc
			}
			cc[idx] += coeff
		}
	}

	for _, con := range m.SortedConKeys() {
		bound := m.Constraints[con]
		coeffs := byCon[con]

		if len(coeffs) == 0 {
			if bound.HasMin && !math.IsInf(bound.Min, -1) && bound.Min > 0 {
				p.infeasible = true
			}
			if bound.HasMax && !math.IsInf(bound.Max, 1) && bound.Max < 0 {
				p.infeasible = true
			}
			continue
		}

		if bound.Equal() {
			p.rows = append(p.rows, row{coeffs: coeffs, rhs: bound.Min, kind: rowEQ})
			continue
		}
		if bound.HasMax && !math.IsInf(bound.Max, 1) {
			p.rows = append(p.rows, row{coeffs: coeffs, rhs: bound.Max, kind: rowLE})
		}
		if bound.HasMin && !math.IsInf(bound.Min, -1) {
			p.rows = append(p.rows, row{coeffs: coeffs, rhs: bound.Min, kind: rowGE})
		}
	}

	return p
}

// solution maps expanded column values back onto variable keys, dropping
// exact zeros per the adapter contract (a missing key reads as 0).
func (p *problem) solution(x []float64, objective float64) *solver.Solution {
	values := make(map[solver.VarKey]float64, len(p.cols))
	for i, key := range p.cols {
		if x[i] != 0 {
			values[key] = x[i]
		}
	}
	return &solver.Solution{Feasible: true, Objective: objective, Values: values}
}
