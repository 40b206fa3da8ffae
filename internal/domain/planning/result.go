package planning

// InfeasibleReason is a best-effort explanation when Feasible is false.
type InfeasibleReason string

const (
	ReasonSolverInfeasible InfeasibleReason = "solver_infeasible"
	ReasonUnmetTargets     InfeasibleReason = "unmet_targets"
	ReasonUnknown          InfeasibleReason = "unknown"
)

// RatedItem pairs an item with a rate in units/min.
type RatedItem struct {
	ItemID string
	Rate   float64
}

// ItemFlow is one inter-zone (or pool) movement of an item. An empty zone id
// means the global pool side: raw supply enters with FromZoneID == "" and
// storage exports leave with ToZoneID == "".
type ItemFlow struct {
	ItemID     string
	FromZoneID string
	ToZoneID   string
	Rate       float64
}

// UnmetTarget reports how far a target's realized net export fell short.
type UnmetTarget struct {
	ItemID    string
	Shortfall float64
}

// ZoneResult is the materialized per-zone outcome of a solve.
type ZoneResult struct {
	Zone        *Zone
	Assignments []ZoneAssignment

	// OutputPortsUsed counts lines pulling from the pool (the bottleneck side).
	OutputPortsUsed int

	// InputPortsUsed counts lines pushing to the pool, sales included.
	InputPortsUsed int

	TotalMachines int

	ItemsFromPool []RatedItem
	ItemsToPool   []RatedItem
	ItemsSold     []RatedItem

	// AreaUsed is only populated when the zone has an area limit configured.
	AreaUsed float64
}

// CalculatorResult is the self-contained outcome of one solve invocation.
type CalculatorResult struct {
	// Feasible means the solver found a feasible point AND every target is met.
	Feasible bool

	// SolverFeasible is the raw LP feasibility, ignoring target shortfall.
	SolverFeasible bool

	// InfeasibleReason is set when Feasible is false.
	InfeasibleReason InfeasibleReason

	ZoneResults []*ZoneResult

	// TotalIncome is units sold per minute times price, counting only exports
	// beyond what targets consumed.
	TotalIncome float64

	TotalOutputPortsUsed int

	// GlobalResourceUsage is raw material consumption across all zones.
	GlobalResourceUsage []RatedItem

	// ItemFlows lists inter-zone transfers for visualization.
	ItemFlows []ItemFlow

	UnmetTargets []UnmetTarget
	Warnings     []string

	// TheoreticalMaxIncome is the zoneless single-pool baseline, populated on
	// request for comparison.
	TheoreticalMaxIncome *float64

	// TransferOverhead counts extra port lines consumed by inter-zone
	// transfers of intermediate items.
	TransferOverhead int

	Telemetry *Telemetry
}
