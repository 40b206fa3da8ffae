package planning

// Zone is a bounded production area with its own logistics and space budget.
//
// Port semantics follow the game's observed behavior, which is inverted
// relative to the field names: OutputPorts caps the integer line variables
// backing pool->zone transfers, and InputPorts caps the lines backing
// zone->pool sends. The linkage is preserved exactly and pinned by tests;
// do not "fix" it without re-deriving the intended direction.
type Zone struct {
	ID   string
	Name string

	// OutputPorts is the number of lines available to extract items from the
	// global pool into this zone (the scarce side).
	OutputPorts int

	// InputPorts is the number of lines available to push items from this
	// zone into the global pool, including sales.
	InputPorts int

	// PortThroughput is units/min carried by a single line.
	PortThroughput float64

	// MachineSlots caps the total machines installed in the zone. 0 = unlimited.
	MachineSlots int

	// AreaLimit caps the summed machine footprint. 0 = unlimited.
	AreaLimit float64
}

// ZoneAssignment records how many machines run one recipe in one zone, with
// the relaxed (required) and final (actual) throughput alongside.
type ZoneAssignment struct {
	ZoneID   string
	RecipeID string

	// MachineCount is the installed integer capacity.
	MachineCount int

	// Utilization is the effective number of machines running, 0..MachineCount.
	Utilization float64

	// RequiredRate is the output rate the relaxed solve asked for.
	RequiredRate float64

	// ActualRate is the output rate of the final solve.
	ActualRate float64

	// ExcessRate is ActualRate - RequiredRate (negative when throttled).
	ExcessRate float64

	// Locked assignments are pinned by the user; the optimizer must keep
	// their machine count exactly.
	Locked bool
}
