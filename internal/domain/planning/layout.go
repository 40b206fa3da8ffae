package planning

import "time"

// Layout is a saved production plan: the per-zone machine assignments of a
// solve the user wants to keep, typically reloaded later as locked
// assignments for an incremental re-solve.
type Layout struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	Assignments []ZoneAssignment
}

// LockedAssignments returns the layout's assignments marked as locked, ready
// to be fed back into a CalculatorInput.
func (l *Layout) LockedAssignments() []ZoneAssignment {
	out := make([]ZoneAssignment, len(l.Assignments))
	for i, a := range l.Assignments {
		a.Locked = true
		out[i] = a
	}
	return out
}
