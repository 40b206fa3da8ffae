package config

import "time"

// SolverConfig holds MILP solver tuning configuration
type SolverConfig struct {
	// Maximum branch and bound nodes before the solve aborts
	MaxNodes int `mapstructure:"max_nodes" validate:"min=1"`

	// Tolerance for treating a relaxed value as integral
	IntegerTolerance float64 `mapstructure:"integer_tolerance" validate:"gt=0"`

	// LP tolerance handed to the simplex; 0 uses the solver default
	SimplexTolerance float64 `mapstructure:"simplex_tolerance" validate:"min=0"`

	// Wall-clock budget for one full pipeline run; 0 disables the deadline
	Timeout time.Duration `mapstructure:"timeout"`
}
