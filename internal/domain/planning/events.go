package planning

import "time"

// OptimizerStage tags one step of the solve pipeline.
type OptimizerStage string

const (
	StageInit            OptimizerStage = "INIT"
	StageA               OptimizerStage = "STAGE_A"          // continuous relaxation
	StageB               OptimizerStage = "STAGE_B"          // integer-fixed profit solve
	StageSpaceValidation OptimizerStage = "SPACE_VALIDATION" // fixed-count limit cross-check
	StageFallback        OptimizerStage = "FALLBACK"         // pairwise zone-swap rescue
	StageDerounding      OptimizerStage = "DEROUNDING"       // greedy capacity decrements
	StageConsolidation   OptimizerStage = "CONSOLIDATION"    // merge same-recipe zones
	StageB2              OptimizerStage = "STAGE_B2"         // waste minimization
	StageShrink          OptimizerStage = "SHRINK"           // drop idle installed capacity
	StageFinal           OptimizerStage = "FINAL"
)

// StageMetrics is the metrics snapshot attached to a progress event.
type StageMetrics struct {
	Income    float64
	Profit    float64
	Waste     *float64 // only meaningful after the waste-minimizing solve
	Machines  int
	Transfers int
	Feasible  bool
}

// StageChange describes the concrete edit a stage made, when it made one.
type StageChange struct {
	Type        string // add, remove, update, check
	Description string
}

// OptimizerEvent is one entry of the ordered progress log.
type OptimizerEvent struct {
	Stage     OptimizerStage
	Timestamp time.Time
	Message   string
	Metrics   *StageMetrics
	Change    *StageChange
}

// ProgressFunc receives events as the pipeline advances. It is called
// synchronously from the solve goroutine.
type ProgressFunc func(OptimizerEvent)

// Telemetry is the full event log of one solve run.
type Telemetry struct {
	RunID         string
	StartTime     time.Time
	EndTime       time.Time
	TotalDuration time.Duration
	Events        []OptimizerEvent
}
