package solver

import (
	"context"
	"errors"
	"sort"
)

// Sentinel errors a Solver may return for failures that are not plain
// infeasibility.
var (
	// ErrUnbounded means the objective can be improved without limit; the
	// model is missing a capacity somewhere.
	ErrUnbounded = errors.New("solver: objective is unbounded")

	// ErrNodeLimit means branch and bound hit its node budget before finding
	// any integer-feasible point.
	ErrNodeLimit = errors.New("solver: branch and bound node limit exceeded")
)

// Direction is the optimization sense of a model.
type Direction int

const (
	Maximize Direction = iota
	Minimize
)

// Bound is an optional lower/upper bound pair on a constraint row. When both
// sides are present and equal the row is an equality. Unbounded sides are
// simply absent, matching the permissive named-constraint contract of the
// underlying solver.
type Bound struct {
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Equal reports whether the bound pins the row to a single value.
func (b Bound) Equal() bool {
	return b.HasMin && b.HasMax && b.Min == b.Max
}

// Variable is one column of the model: its active objective coefficient and
// its coefficient in every constraint row it participates in. All variables
// are implicitly >= 0. Integer variables are additionally restricted to whole
// values by the adapter's branch and bound.
type Variable struct {
	Objective float64
	Coeffs    map[ConKey]float64
	Integer   bool
}

// Model is one MILP instance. Variables and constraints are keyed by typed
// identity; the adapter expands them into a flat numeric matrix and keeps a
// reverse lookup to map the optimum back onto keys.
type Model struct {
	Direction   Direction
	Variables   map[VarKey]*Variable
	Constraints map[ConKey]Bound
}

// NewModel creates an empty model with the given optimization sense.
func NewModel(dir Direction) *Model {
	return &Model{
		Direction:   dir,
		Variables:   make(map[VarKey]*Variable),
		Constraints: make(map[ConKey]Bound),
	}
}

// Var returns the variable for key, creating it on first use.
func (m *Model) Var(key VarKey) *Variable {
	v, ok := m.Variables[key]
	if !ok {
		v = &Variable{Coeffs: make(map[ConKey]float64)}
		m.Variables[key] = v
	}
	return v
}

// HasVar reports whether the key already has a variable.
func (m *Model) HasVar(key VarKey) bool {
	_, ok := m.Variables[key]
	return ok
}

// AddCoeff accumulates a coefficient of a variable in a constraint row.
func (m *Model) AddCoeff(key VarKey, con ConKey, coeff float64) {
	v := m.Var(key)
	v.Coeffs[con] += coeff
}

// SetMax sets (or tightens to exactly) the upper bound of a constraint row.
func (m *Model) SetMax(con ConKey, max float64) {
	b := m.Constraints[con]
	b.Max = max
	b.HasMax = true
	m.Constraints[con] = b
}

// SetMin sets the lower bound of a constraint row.
func (m *Model) SetMin(con ConKey, min float64) {
	b := m.Constraints[con]
	b.Min = min
	b.HasMin = true
	m.Constraints[con] = b
}

// SetEqual pins a constraint row to an exact value.
func (m *Model) SetEqual(con ConKey, value float64) {
	m.Constraints[con] = Bound{Min: value, Max: value, HasMin: true, HasMax: true}
}

// SortedVarKeys returns all variable keys in VarKey.Less order.
func (m *Model) SortedVarKeys() []VarKey {
	keys := make([]VarKey, 0, len(m.Variables))
	for k := range m.Variables {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// SortedConKeys returns all bounded constraint keys in ConKey.Less order.
func (m *Model) SortedConKeys() []ConKey {
	keys := make([]ConKey, 0, len(m.Constraints))
	for k := range m.Constraints {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Solution is the outcome of one solve. Values only holds variables that
// participated in the optimum: a missing key reads as 0 through Value, per
// the adapter contract.
type Solution struct {
	Feasible  bool
	Objective float64
	Values    map[VarKey]float64
}

// Value returns the solved value of a variable, 0 when absent.
func (s *Solution) Value(key VarKey) float64 {
	if s == nil || s.Values == nil {
		return 0
	}
	return s.Values[key]
}

// Infeasible is a ready-made infeasible solution.
func Infeasible() *Solution {
	return &Solution{Feasible: false, Values: map[VarKey]float64{}}
}

// Solver is the external MILP collaborator. Implementations must treat
// infeasibility as data (Feasible=false, nil error) and reserve errors for
// unexpected failures: cancellation, singular systems, unbounded objectives.
type Solver interface {
	Solve(ctx context.Context, model *Model) (*Solution, error)
}
